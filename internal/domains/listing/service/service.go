package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bazaar/infras/otel"
	"bazaar/internal/domains/listing/model"
	"bazaar/internal/domains/listing/repository"
	"bazaar/shared"
	"bazaar/shared/constant"
	"bazaar/shared/failure"
	gModel "bazaar/shared/model"
)

// Lookup answers the catalog questions the booking core asks.
type Lookup interface {
	Get(ctx context.Context, listingID string) (model.Listing, error)
	IsBusinessMember(ctx context.Context, businessID, userID string) (bool, error)
	// Fulfils reports whether the principal is the listing's vendor or works for its business.
	Fulfils(ctx context.Context, principal gModel.Principal, vendorID string, businessID *string) (bool, error)
}

type serviceImpl struct {
	repo     repository.Listing
	business repository.Business
	otel     otel.Otel
}

func New(repo repository.Listing, business repository.Business, otel otel.Otel) Lookup {
	return &serviceImpl{
		repo:     repo,
		business: business,
		otel:     otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, listingID string) (res model.Listing, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Get(ctx, shared.FilterByID(listingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("listing not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) IsBusinessMember(ctx context.Context, businessID, userID string) (bool, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".listing.IsBusinessMember")
	defer scope.End()

	if businessID == constant.Empty || userID == constant.Empty {
		return false, nil
	}

	member, err := s.business.IsMember(ctx, businessID, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to check business membership")

		return false, fmt.Errorf("failed to check business membership: %w", err)
	}

	return member, nil
}

func (s *serviceImpl) Fulfils(ctx context.Context, principal gModel.Principal, vendorID string, businessID *string) (bool, error) {
	if principal.ID == vendorID {
		return true, nil
	}

	if businessID == nil {
		return false, nil
	}

	return s.IsBusinessMember(ctx, *businessID, principal.ID)
}
