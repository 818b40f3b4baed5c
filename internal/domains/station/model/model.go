package model

import (
	"time"
)

const (
	EntityName = "station"
)

// Category is the pricing/equipment tier of a station.
type Category string

const (
	CategoryPS5       Category = "PS5"
	CategoryPS4       Category = "PS4"
	CategoryBilliards Category = "Billiards"
)

// Categories lists every provisionable tier.
func Categories() []Category {
	return []Category{CategoryPS5, CategoryPS4, CategoryBilliards}
}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}

	return "", false
}

// RateTable maps a station category to its hourly rate in whole currency
// units. Every category must carry a rate > 0.
type RateTable map[Category]int

func (t RateTable) Clone() RateTable {
	cloned := make(RateTable, len(t))
	for category, rate := range t {
		cloned[category] = rate
	}

	return cloned
}

// DrinkOrder is one line ordered against an open session. Orders are
// append-only; two orders for the same drink may coexist.
type DrinkOrder struct {
	DrinkID   string    `json:"drink_id"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one open rental. Category and hourly rate are snapshotted at
// booking time so later rate or menu edits never change an open session's
// billing basis.
type Session struct {
	CustomerID string       `json:"customer_id"`
	Phone      string       `json:"phone"`
	Category   Category     `json:"category"`
	HourlyRate int          `json:"hourly_rate"`
	StartTime  time.Time    `json:"start_time"`
	Orders     []DrinkOrder `json:"orders"`
}

func (s Session) clone() Session {
	cloned := s
	cloned.Orders = make([]DrinkOrder, len(s.Orders))
	copy(cloned.Orders, s.Orders)

	return cloned
}

// Room is one gaming station. Occupied == true iff Session != nil.
type Room struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Occupied bool     `json:"occupied"`
	Session  *Session `json:"session,omitempty"`
}

func (r Room) Clone() Room {
	cloned := r
	if r.Session != nil {
		sess := r.Session.clone()
		cloned.Session = &sess
	}

	return cloned
}
