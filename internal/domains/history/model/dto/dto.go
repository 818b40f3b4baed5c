package dto

import (
	"arcade/internal/domains/history/model"
	"arcade/shared"
	"arcade/shared/constant"
	"arcade/shared/timezone"
)

type OrderResponse struct {
	DrinkID   string `json:"drink_id"`
	Quantity  int    `json:"quantity"`
	Timestamp string `json:"timestamp"`
}

type CheckoutResponse struct {
	ID          string `json:"id"`
	RoomID      int    `json:"room_id"`
	RoomName    string `json:"room_name"`
	Category    string `json:"category"`
	Phone       string `json:"phone"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	DurationMS  int64  `json:"duration_ms"`
	RoomCharge  int    `json:"room_charge"`
	DrinksTotal int    `json:"drinks_total"`
	Total       int    `json:"total"`

	Orders []OrderResponse `json:"orders"`
}

func (r *CheckoutResponse) FromModel(mod model.CheckoutRecord) {
	r.ID = mod.ID
	r.RoomID = mod.RoomID
	r.RoomName = mod.RoomName
	r.Category = string(mod.Category)
	r.Phone = mod.Phone
	r.StartTime = timezone.Format(mod.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(mod.EndTime, constant.DateFormat)
	r.DurationMS = mod.DurationMS
	r.RoomCharge = mod.RoomCharge
	r.DrinksTotal = mod.DrinksTotal
	r.Total = mod.Total

	r.Orders = make([]OrderResponse, len(mod.Orders))
	for i, order := range mod.Orders {
		r.Orders[i] = OrderResponse{
			DrinkID:   order.DrinkID,
			Quantity:  order.Quantity,
			Timestamp: timezone.Format(order.Timestamp, constant.DateFormat),
		}
	}
}

type GetCheckoutsResponse struct {
	Checkouts []CheckoutResponse `json:"checkouts"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCheckoutsResponse) FromModels(models []model.CheckoutRecord, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Checkouts = make([]CheckoutResponse, len(models))
	for i, mod := range models {
		r.Checkouts[i].FromModel(mod)
	}
}

type StatsResponse struct {
	Checkouts     int `json:"checkouts"`
	Revenue       int `json:"revenue"`
	RoomRevenue   int `json:"room_revenue"`
	DrinksRevenue int `json:"drinks_revenue"`
}

func (r *StatsResponse) FromModel(mod model.Stats) {
	r.Checkouts = mod.Checkouts
	r.Revenue = mod.Revenue
	r.RoomRevenue = mod.RoomRevenue
	r.DrinksRevenue = mod.DrinksRevenue
}
