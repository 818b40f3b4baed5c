package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	stationModel "arcade/internal/domains/station/model"
	gModel "arcade/shared/model"
)

const (
	TableName  = "checkout_records"
	EntityName = "checkout"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldRoomName    = "room_name"
	FieldCategory    = "category"
	FieldPhone       = "phone"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldDurationMS  = "duration_ms"
	FieldRoomCharge  = "room_charge"
	FieldDrinksTotal = "drinks_total"
	FieldTotal       = "total"
	FieldOrders      = "orders"
)

// OrderList stores a session's drink orders as a JSONB column.
type OrderList []stationModel.DrinkOrder

func (o OrderList) Value() (driver.Value, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order list: %w", err)
	}

	return data, nil
}

func (o *OrderList) Scan(src any) error {
	if src == nil {
		*o = nil

		return nil
	}

	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported order list source type %T", src)
	}

	if err := json.Unmarshal(data, o); err != nil {
		return fmt.Errorf("failed to unmarshal order list: %w", err)
	}

	return nil
}

// Stats aggregates the log: how many checkouts matched and the revenue split.
type Stats struct {
	Checkouts     int `db:"checkouts"`
	Revenue       int `db:"revenue"`
	RoomRevenue   int `db:"room_revenue"`
	DrinksRevenue int `db:"drinks_revenue"`
}

// CheckoutRecord is the immutable snapshot taken when a session closes. It is
// never edited or removed; the log reads newest first.
type CheckoutRecord struct {
	ID          string                `db:"id"`
	RoomID      int                   `db:"room_id"`
	RoomName    string                `db:"room_name"`
	Category    stationModel.Category `db:"category"`
	Phone       string                `db:"phone"`
	StartTime   time.Time             `db:"start_time"`
	EndTime     time.Time             `db:"end_time"`
	DurationMS  int64                 `db:"duration_ms"`
	RoomCharge  int                   `db:"room_charge"`
	DrinksTotal int                   `db:"drinks_total"`
	Total       int                   `db:"total"`
	Orders      OrderList             `db:"orders"`
	gModel.Metadata
}
