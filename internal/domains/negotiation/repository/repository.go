package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"bazaar/infras/otel"
	"bazaar/infras/postgres"
	"bazaar/internal/domains/negotiation/model"
	gDto "bazaar/shared/dto"
	gRepo "bazaar/shared/repository"
)

type Request interface {
	Insert(ctx context.Context, request model.Request) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Request, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Request, error)
	UpdateAffectedTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type Offer interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, offer model.Offer) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Offer, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Offer, error)
	UpdateAffectedTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type requestRepositoryImpl struct {
	gRepo.Repository[model.Request]
}

func NewRequest(db *postgres.Connection, otel otel.Otel) Request {
	return &requestRepositoryImpl{
		Repository: gRepo.NewRepository[model.Request](model.RequestEntityName, model.RequestTableName, model.FieldID, db, otel),
	}
}

type offerRepositoryImpl struct {
	gRepo.Repository[model.Offer]
}

func NewOffer(db *postgres.Connection, otel otel.Otel) Offer {
	return &offerRepositoryImpl{
		Repository: gRepo.NewRepository[model.Offer](model.OfferEntityName, model.OfferTableName, model.FieldID, db, otel),
	}
}
