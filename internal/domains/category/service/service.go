package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bazaar/infras/otel"
	"bazaar/internal/domains/category/model"
	"bazaar/internal/domains/category/repository"
	"bazaar/shared"
	"bazaar/shared/constant"
	"bazaar/shared/failure"
)

// Resolver loads the booking rules of a category. Every call reads the current document.
type Resolver interface {
	Resolve(ctx context.Context, categoryID string) (model.BookingConfig, error)
	Get(ctx context.Context, categoryID string) (model.Category, error)
}

type resolverImpl struct {
	repo repository.Category
	otel otel.Otel
}

func New(repo repository.Category, otel otel.Otel) Resolver {
	return &resolverImpl{
		repo: repo,
		otel: otel,
	}
}

func (r *resolverImpl) Get(ctx context.Context, categoryID string) (res model.Category, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".category.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = r.repo.Get(ctx, shared.FilterByID(categoryID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("category_id", categoryID).Msg("failed to get category")

		return res, fmt.Errorf("failed to get category: %w", err)
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("category not found") // nolint:wrapcheck
	}

	return res, nil
}

func (r *resolverImpl) Resolve(ctx context.Context, categoryID string) (model.BookingConfig, error) {
	category, err := r.Get(ctx, categoryID)
	if err != nil {
		return model.BookingConfig{}, err
	}

	if err := category.BookingConfig.Check(); err != nil {
		log.Error().Err(err).Str("category_id", categoryID).Msg("category has an unusable booking config")

		return model.BookingConfig{}, fmt.Errorf("invalid booking config for category %s: %w", categoryID, err)
	}

	return category.BookingConfig, nil
}
