package model

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultRatePS5       = 40
	defaultRatePS4       = 30
	defaultRateBilliards = 50
)

// DefaultLayout is the floor provisioned when no layout is configured.
func DefaultLayout() []Room {
	categories := []Category{
		CategoryPS5,
		CategoryPS5,
		CategoryPS4,
		CategoryPS4,
		CategoryPS4,
		CategoryBilliards,
	}

	rooms := make([]Room, len(categories))
	for i, category := range categories {
		id := i + 1
		rooms[i] = Room{
			ID:       id,
			Name:     fmt.Sprintf("Room %d", id),
			Category: category,
		}
	}

	return rooms
}

// DefaultRates returns the built-in hourly rates.
func DefaultRates() RateTable {
	return RateTable{
		CategoryPS5:       defaultRatePS5,
		CategoryPS4:       defaultRatePS4,
		CategoryBilliards: defaultRateBilliards,
	}
}

// ParseLayout builds a floor from "<id>:<category>" entries, e.g. "1:PS5".
// IDs must be positive and unique.
func ParseLayout(entries []string) ([]Room, error) {
	rooms := make([]Room, 0, len(entries))
	seen := map[int]bool{}

	for _, entry := range entries {
		idPart, categoryPart, found := strings.Cut(strings.TrimSpace(entry), ":")
		if !found {
			return nil, fmt.Errorf("invalid layout entry %q, want <id>:<category>", entry)
		}

		id, err := strconv.Atoi(idPart)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid station id in layout entry %q", entry)
		}

		if seen[id] {
			return nil, fmt.Errorf("duplicate station id %d in layout", id)
		}

		category, ok := ParseCategory(categoryPart)
		if !ok {
			return nil, fmt.Errorf("unknown station category %q", categoryPart)
		}

		seen[id] = true

		rooms = append(rooms, Room{
			ID:       id,
			Name:     fmt.Sprintf("Room %d", id),
			Category: category,
		})
	}

	return rooms, nil
}
