// Package billing holds the pure charge calculator. It has no side effects and
// is safe to call repeatedly, both for live quotes on an open session and for
// the final bill at checkout; the caller supplies the effective end instant.
package billing

import (
	"time"

	"arcade/internal/domains/station/model"
	"arcade/shared/constant"
)

// Menu maps a drink id to its unit price. Lookups are best-effort: an order
// referencing a missing drink contributes nothing.
type Menu map[string]int

// Charges is the billing breakdown for a session.
type Charges struct {
	RoomCharge  int `json:"room_charge"`
	DrinksTotal int `json:"drinks_total"`
	Total       int `json:"total"`
}

// RoomCharge bills elapsed time at the hourly rate, rounded up to the next
// whole currency unit. The discount percentage is applied after the ceiling
// and its amount is truncated, so rounding always favours the house: a
// 1-millisecond session at any positive rate bills at least 1 unit.
func RoomCharge(duration time.Duration, rate, discountPercent int) int {
	if duration <= 0 || rate <= 0 {
		return 0
	}

	ms := duration.Milliseconds()
	base := int((ms*int64(rate) + constant.MillisPerHour - 1) / constant.MillisPerHour)

	if discountPercent <= 0 {
		return base
	}

	if discountPercent > 100 {
		discountPercent = 100
	}

	return base - base*discountPercent/100
}

// DrinksTotal sums unit price times quantity over every order. Orders are
// never merged, so quantities for one drink may be spread across entries.
func DrinksTotal(orders []model.DrinkOrder, menu Menu) int {
	total := 0
	for _, order := range orders {
		total += menu[order.DrinkID] * order.Quantity
	}

	return total
}

// Quote computes the full breakdown for a session as of the given instant.
func Quote(session model.Session, asOf time.Time, menu Menu, discountPercent int) Charges {
	roomCharge := RoomCharge(asOf.Sub(session.StartTime), session.HourlyRate, discountPercent)
	drinksTotal := DrinksTotal(session.Orders, menu)

	return Charges{
		RoomCharge:  roomCharge,
		DrinksTotal: drinksTotal,
		Total:       roomCharge + drinksTotal,
	}
}

// HoursPlayed converts a session duration into the whole hours credited to
// the customer ledger, rounded up.
func HoursPlayed(duration time.Duration) int {
	if duration <= 0 {
		return 0
	}

	return int((duration.Milliseconds() + constant.MillisPerHour - 1) / constant.MillisPerHour)
}
