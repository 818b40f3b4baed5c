// Package state owns the in-memory room/session state machine. The floor is
// the single authority for occupancy; every transition happens under one
// mutex and either applies fully or returns an error with nothing changed.
// The package performs no I/O.
package state

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"arcade/internal/domains/billing"
	historyModel "arcade/internal/domains/history/model"
	"arcade/internal/domains/station/model"
	"arcade/shared/clock"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("room is already occupied")
	ErrRoomNotOccupied = errors.New("room has no open session")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidRate     = errors.New("hourly rate must be positive")
)

// Checkout is the outcome of closing a session: the immutable history record,
// the hours credited to the customer ledger, and the closed session itself so
// the caller can compensate if archiving fails.
type Checkout struct {
	Record      historyModel.CheckoutRecord
	HoursPlayed int
	Session     model.Session
}

// Floor holds every room and the live rate table.
type Floor struct {
	mu    sync.Mutex
	clock clock.Clock
	rooms map[int]*model.Room
	order []int
	rates model.RateTable
}

// NewFloor provisions the floor. Rooms are created once here and recycled
// indefinitely; there is no runtime room CRUD.
func NewFloor(rooms []model.Room, rates model.RateTable, clk clock.Clock) (*Floor, error) {
	if len(rooms) == 0 {
		return nil, errors.New("floor needs at least one room")
	}

	if err := validateRates(rates); err != nil {
		return nil, err
	}

	floor := &Floor{
		clock: clk,
		rooms: make(map[int]*model.Room, len(rooms)),
		order: make([]int, 0, len(rooms)),
		rates: rates.Clone(),
	}

	for _, room := range rooms {
		if _, dup := floor.rooms[room.ID]; dup {
			return nil, fmt.Errorf("duplicate room id %d", room.ID)
		}

		if _, ok := floor.rates[room.Category]; !ok {
			return nil, fmt.Errorf("no rate configured for category %q", room.Category)
		}

		cloned := room.Clone()
		cloned.Occupied = false
		cloned.Session = nil

		floor.rooms[room.ID] = &cloned
		floor.order = append(floor.order, room.ID)
	}

	sort.Ints(floor.order)

	return floor, nil
}

func validateRates(rates model.RateTable) error {
	for _, category := range model.Categories() {
		if rates[category] <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidRate, category)
		}
	}

	return nil
}

// Book opens a session on an available room. The category and current hourly
// rate are snapshotted onto the session; later rate edits do not reprice it.
// Booking an occupied room fails and leaves the open session untouched.
func (f *Floor) Book(roomID int, customerID, phone string) (model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	room, ok := f.rooms[roomID]
	if !ok {
		return model.Session{}, ErrRoomNotFound
	}

	if room.Occupied {
		return model.Session{}, ErrRoomUnavailable
	}

	session := model.Session{
		CustomerID: customerID,
		Phone:      phone,
		Category:   room.Category,
		HourlyRate: f.rates[room.Category],
		StartTime:  f.clock.Now(),
		Orders:     []model.DrinkOrder{},
	}

	room.Occupied = true
	room.Session = &session

	snapshot := room.Clone()

	return *snapshot.Session, nil
}

// AddOrder appends a drink order to the room's open session. Orders are never
// merged; repeated orders for one drink stay separate entries.
func (f *Floor) AddOrder(roomID int, drinkID string, quantity int) (model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	room, ok := f.rooms[roomID]
	if !ok {
		return model.Session{}, ErrRoomNotFound
	}

	if !room.Occupied || room.Session == nil {
		return model.Session{}, ErrRoomNotOccupied
	}

	if quantity <= 0 {
		return model.Session{}, ErrInvalidQuantity
	}

	room.Session.Orders = append(room.Session.Orders, model.DrinkOrder{
		DrinkID:   drinkID,
		Quantity:  quantity,
		Timestamp: f.clock.Now(),
	})

	snapshot := room.Clone()

	return *snapshot.Session, nil
}

// Checkout closes the room's session: it bills elapsed time and orders, builds
// the history record, clears the session and marks the room available again.
// The whole transition happens atomically under the floor lock.
func (f *Floor) Checkout(roomID int, menu billing.Menu, discountPercent int) (Checkout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	room, ok := f.rooms[roomID]
	if !ok {
		return Checkout{}, ErrRoomNotFound
	}

	if !room.Occupied || room.Session == nil {
		return Checkout{}, ErrRoomNotOccupied
	}

	session := *room.Session
	endTime := f.clock.Now()
	duration := endTime.Sub(session.StartTime)
	charges := billing.Quote(session, endTime, menu, discountPercent)

	record := historyModel.CheckoutRecord{
		ID:          uuid.NewString(),
		RoomID:      room.ID,
		RoomName:    room.Name,
		Category:    session.Category,
		Phone:       session.Phone,
		StartTime:   session.StartTime,
		EndTime:     endTime,
		DurationMS:  duration.Milliseconds(),
		RoomCharge:  charges.RoomCharge,
		DrinksTotal: charges.DrinksTotal,
		Total:       charges.Total,
		Orders:      historyModel.OrderList(session.Orders),
	}

	room.Occupied = false
	room.Session = nil

	return Checkout{
		Record:      record,
		HoursPlayed: billing.HoursPlayed(duration),
		Session:     session,
	}, nil
}

// Restore puts a session back on a room after a failed checkout archive. It
// refuses to displace a session opened in the meantime.
func (f *Floor) Restore(roomID int, session model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	room, ok := f.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}

	if room.Occupied {
		return ErrRoomUnavailable
	}

	room.Occupied = true
	room.Session = &session

	return nil
}

// Quote computes the live charge for a room's open session as of now.
func (f *Floor) Quote(roomID int, menu billing.Menu, discountPercent int) (billing.Charges, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	room, ok := f.rooms[roomID]
	if !ok {
		return billing.Charges{}, ErrRoomNotFound
	}

	if !room.Occupied || room.Session == nil {
		return billing.Charges{}, ErrRoomNotOccupied
	}

	return billing.Quote(*room.Session, f.clock.Now(), menu, discountPercent), nil
}

// Room returns a copy of one room.
func (f *Floor) Room(roomID int) (model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	room, ok := f.rooms[roomID]
	if !ok {
		return model.Room{}, ErrRoomNotFound
	}

	return room.Clone(), nil
}

// Rooms returns a copy of the whole floor, ordered by room id.
func (f *Floor) Rooms() []model.Room {
	f.mu.Lock()
	defer f.mu.Unlock()

	rooms := make([]model.Room, 0, len(f.order))
	for _, id := range f.order {
		rooms = append(rooms, f.rooms[id].Clone())
	}

	return rooms
}

// Rates returns a copy of the current rate table.
func (f *Floor) Rates() model.RateTable {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.rates.Clone()
}

// SetRates replaces the rate table. Rates <= 0 are rejected, never clamped.
// Open sessions keep their snapshotted rate.
func (f *Floor) SetRates(rates model.RateTable) error {
	if err := validateRates(rates); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.rates = rates.Clone()

	return nil
}
