package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"asteria/infras/otel"
	"asteria/infras/postgres"
	"asteria/internal/domains/quote/model"
	gDto "asteria/shared/dto"
	gRepo "asteria/shared/repository"
	"context"
)

type Quote interface {
	Insert(ctx context.Context, model model.Quote) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Quote, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Quote, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Quote]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Quote {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Quote](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
