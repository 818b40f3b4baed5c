package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/station_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"arcade/infras/otel"
	"arcade/infras/postgres"
	customerModel "arcade/internal/domains/customer/model"
	historyModel "arcade/internal/domains/history/model"
	"arcade/shared/constant"
	"arcade/shared/logger"
	gRepo "arcade/shared/repository"
)

// Station persists the durable side of a checkout. The in-memory floor stays
// the authority for live sessions; only closed sessions reach the database.
type Station interface {
	Archive(ctx context.Context, record historyModel.CheckoutRecord, hoursPlayed int) error
}

type repositoryImpl struct {
	history gRepo.Repository[historyModel.CheckoutRecord]
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Station {
	return &repositoryImpl{
		history: gRepo.NewRepository[historyModel.CheckoutRecord](historyModel.EntityName, historyModel.TableName, historyModel.FieldID, db, otel),
		db:      db,
		otel:    otel,
	}
}

// Archive appends the checkout record and credits the customer's hours balance
// in one transaction. Either both land or neither does, so the log and the
// ledger cannot drift apart.
func (repo *repositoryImpl) Archive(ctx context.Context, record historyModel.CheckoutRecord, hoursPlayed int) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".station.Archive")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin checkout transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to roll back checkout transaction")
			}
		}
	}()

	if err = repo.history.InsertTx(ctx, tx, record); err != nil {
		return fmt.Errorf("failed to append checkout record: %w", err)
	}

	// The credit is additive, so the generic update (SET col = :col) does not
	// fit here.
	query := fmt.Sprintf(
		"UPDATE %s SET %s = %s + :hours, %s = :last_visit, modified_at = :last_visit WHERE %s = :phone",
		customerModel.TableName,
		customerModel.FieldHours,
		customerModel.FieldHours,
		customerModel.FieldLastVisit,
		customerModel.FieldPhone,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"hours":      hoursPlayed,
		"last_visit": record.EndTime,
		"phone":      record.Phone,
	}

	if _, err = tx.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to credit customer hours: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit checkout transaction: %w", err)
	}

	return nil
}
