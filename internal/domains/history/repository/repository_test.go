package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arcade/internal/domains/history/repository"
	gDto "arcade/shared/dto"
)

func TestFilterBySearch(t *testing.T) {
	group := repository.FilterBySearch("Room 1")

	assert.Equal(t, gDto.FilterGroupOperatorOr, group.Operator)
	require.Len(t, group.Filters, 2)

	where, args := group.GetWhereClause()

	assert.Contains(t, where, "LOWER(checkout_records.phone) LIKE LOWER(:search_phone)")
	assert.Contains(t, where, "LOWER(checkout_records.room_name) LIKE LOWER(:search_room_name)")
	assert.Contains(t, where, " OR ")

	assert.Equal(t, "%Room 1%", args["search_phone"])
	assert.Equal(t, "%Room 1%", args["search_room_name"])
}

func TestFilterBySearch_NestsUnderConjunction(t *testing.T) {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			repository.FilterByRoom(3),
			repository.FilterBySearch("628"),
		},
	}

	where, args := group.GetWhereClause()

	// The search alternatives stay bracketed so the room filter applies to both.
	assert.Contains(t, where, "checkout_records.room_id = :room_id AND (")
	assert.Equal(t, 3, args["room_id"])
	assert.Equal(t, "%628%", args["search_phone"])
	assert.Equal(t, "%628%", args["search_room_name"])
}

func TestPeriodFilters_UseDistinctArgNames(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			repository.FilterFrom(from),
			repository.FilterUntil(until),
		},
	}

	where, args := group.GetWhereClause()

	assert.Contains(t, where, "checkout_records.end_time >= :end_time_from")
	assert.Contains(t, where, "checkout_records.end_time <= :end_time_until")
	assert.Equal(t, from, args["end_time_from"])
	assert.Equal(t, until, args["end_time_until"])
}
