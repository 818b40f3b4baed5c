package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/drink_mock.go -package=mocks

import (
	"context"

	"arcade/infras/otel"
	"arcade/infras/postgres"
	"arcade/internal/domains/drink/model"
	gDto "arcade/shared/dto"
	gRepo "arcade/shared/repository"
)

type Drink interface {
	Insert(ctx context.Context, model model.Drink) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Drink, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Drink, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Drink]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Drink {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Drink](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
