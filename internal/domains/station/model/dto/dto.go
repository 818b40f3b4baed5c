package dto

import (
	"arcade/internal/domains/billing"
	historyModel "arcade/internal/domains/history/model"
	historyDto "arcade/internal/domains/history/model/dto"
	"arcade/internal/domains/station/model"
	"arcade/shared/constant"
	"arcade/shared/timezone"
)

type BookRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type OrderRequest struct {
	DrinkID  string `json:"drink_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type UpdateRatesRequest struct {
	PS5       int `json:"ps5"       validate:"required,gt=0"`
	PS4       int `json:"ps4"       validate:"required,gt=0"`
	Billiards int `json:"billiards" validate:"required,gt=0"`
}

func (r *UpdateRatesRequest) ToModel() model.RateTable {
	return model.RateTable{
		model.CategoryPS5:       r.PS5,
		model.CategoryPS4:       r.PS4,
		model.CategoryBilliards: r.Billiards,
	}
}

type RatesResponse struct {
	PS5       int `json:"ps5"`
	PS4       int `json:"ps4"`
	Billiards int `json:"billiards"`
}

func (r *RatesResponse) FromModel(rates model.RateTable) {
	r.PS5 = rates[model.CategoryPS5]
	r.PS4 = rates[model.CategoryPS4]
	r.Billiards = rates[model.CategoryBilliards]
}

type OrderResponse struct {
	DrinkID   string `json:"drink_id"`
	Quantity  int    `json:"quantity"`
	Timestamp string `json:"timestamp"`
}

type SessionResponse struct {
	CustomerID string          `json:"customer_id"`
	Phone      string          `json:"phone"`
	Category   string          `json:"category"`
	HourlyRate int             `json:"hourly_rate"`
	StartTime  string          `json:"start_time"`
	Orders     []OrderResponse `json:"orders"`
}

func (r *SessionResponse) FromModel(session model.Session) {
	r.CustomerID = session.CustomerID
	r.Phone = session.Phone
	r.Category = string(session.Category)
	r.HourlyRate = session.HourlyRate
	r.StartTime = timezone.Format(session.StartTime, constant.DateFormat)

	r.Orders = make([]OrderResponse, len(session.Orders))
	for i, order := range session.Orders {
		r.Orders[i] = OrderResponse{
			DrinkID:   order.DrinkID,
			Quantity:  order.Quantity,
			Timestamp: timezone.Format(order.Timestamp, constant.DateFormat),
		}
	}
}

type RoomResponse struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Occupied bool             `json:"occupied"`
	Session  *SessionResponse `json:"session,omitempty"`
}

func (r *RoomResponse) FromModel(room model.Room) {
	r.ID = room.ID
	r.Name = room.Name
	r.Category = string(room.Category)
	r.Occupied = room.Occupied

	if room.Session != nil {
		session := SessionResponse{}
		session.FromModel(*room.Session)
		r.Session = &session
	}
}

type GetRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

func (r *GetRoomsResponse) FromModels(rooms []model.Room) {
	r.Rooms = make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		r.Rooms[i].FromModel(room)
	}
}

// BillResponse is a live quote for an open session. Nothing is closed or
// persisted when it is produced.
type BillResponse struct {
	RoomID      int    `json:"room_id"`
	AsOf        string `json:"as_of"`
	RoomCharge  int    `json:"room_charge"`
	DrinksTotal int    `json:"drinks_total"`
	Total       int    `json:"total"`
}

func (r *BillResponse) FromModel(roomID int, charges billing.Charges, asOf string) {
	r.RoomID = roomID
	r.AsOf = asOf
	r.RoomCharge = charges.RoomCharge
	r.DrinksTotal = charges.DrinksTotal
	r.Total = charges.Total
}

// ReceiptResponse is the final bill handed over at checkout.
type ReceiptResponse struct {
	historyDto.CheckoutResponse
	HoursPlayed int `json:"hours_played"`
}

func (r *ReceiptResponse) FromModel(record historyModel.CheckoutRecord, hoursPlayed int) {
	r.CheckoutResponse.FromModel(record)
	r.HoursPlayed = hoursPlayed
}
