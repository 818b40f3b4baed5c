package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/history_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"arcade/infras/otel"
	"arcade/infras/postgres"
	"arcade/internal/domains/history/model"
	"arcade/shared/constant"
	gDto "arcade/shared/dto"
	"arcade/shared/logger"
	gRepo "arcade/shared/repository"
)

type History interface {
	Insert(ctx context.Context, model model.CheckoutRecord) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.CheckoutRecord, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.CheckoutRecord, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Stats(ctx context.Context, filter gDto.FilterGroup) (model.Stats, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.CheckoutRecord]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) History {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.CheckoutRecord](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FilterByPhone narrows the log to one customer's checkouts.
func FilterByPhone(phone string) gDto.Filter {
	return gDto.Filter{
		Field:    model.FieldPhone,
		Value:    phone,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	}
}

// FilterByRoom narrows the log to one room.
func FilterByRoom(roomID int) gDto.Filter {
	return gDto.Filter{
		Field:    model.FieldRoomID,
		Value:    roomID,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	}
}

// FilterBySearch matches the term as a substring of the customer phone or the
// room name.
func FilterBySearch(term string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{
				ArgName:  "search_phone",
				Field:    model.FieldPhone,
				Value:    term,
				Operator: gDto.FilterOperatorLike,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "search_room_name",
				Field:    model.FieldRoomName,
				Value:    term,
				Operator: gDto.FilterOperatorLike,
				Table:    model.TableName,
			},
		},
	}
}

// FilterFrom bounds the log to checkouts at or after the instant.
func FilterFrom(from time.Time) gDto.Filter {
	return gDto.Filter{
		ArgName:  "end_time_from",
		Field:    model.FieldEndTime,
		Value:    from,
		Operator: gDto.FilterOperatorGreaterEq,
		Table:    model.TableName,
	}
}

// FilterUntil bounds the log to checkouts at or before the instant.
func FilterUntil(until time.Time) gDto.Filter {
	return gDto.Filter{
		ArgName:  "end_time_until",
		Field:    model.FieldEndTime,
		Value:    until,
		Operator: gDto.FilterOperatorLessEq,
		Table:    model.TableName,
	}
}

// Stats aggregates the matching records in one round trip. COALESCE keeps the
// sums at zero when the filter matches nothing.
func (repo *repositoryImpl) Stats(ctx context.Context, filter gDto.FilterGroup) (model.Stats, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Stats")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf(
		"SELECT COUNT(%s) AS checkouts, COALESCE(SUM(%s), 0) AS revenue, COALESCE(SUM(%s), 0) AS room_revenue, COALESCE(SUM(%s), 0) AS drinks_revenue FROM %s %s",
		model.FieldID,
		model.FieldTotal,
		model.FieldRoomCharge,
		model.FieldDrinksTotal,
		model.TableName,
		where,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var stats model.Stats

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return stats, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &stats, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return stats, fmt.Errorf("failed to aggregate checkout stats: %w", err)
	}

	return stats, nil
}
