// Package availability decides whether a listing is free for a candidate span.
package availability

//go:generate go run go.uber.org/mock/mockgen -source=./availability.go -destination=../mocks/availability_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"bazaar/infras/otel"
	"bazaar/internal/domains/booking/model"
	"bazaar/internal/domains/booking/repository"
	categoryModel "bazaar/internal/domains/category/model"
	"bazaar/shared/constant"
)

const MsgNotAvailable = "Listing not available for selected dates"

// Checker answers against bookings whose status still holds their dates.
// HasConflictTx must be used when the answer guards an insert in the same transaction.
type Checker interface {
	HasConflict(ctx context.Context, listingID string, span model.DateSpan) (bool, error)
	HasConflictTx(ctx context.Context, sqltx *sqlx.Tx, listingID string, span model.DateSpan) (bool, error)
}

type checkerImpl struct {
	repo repository.Booking
	otel otel.Otel
}

func New(repo repository.Booking, otel otel.Otel) Checker {
	return &checkerImpl{
		repo: repo,
		otel: otel,
	}
}

func (c *checkerImpl) HasConflict(ctx context.Context, listingID string, span model.DateSpan) (bool, error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.HasConflict")
	defer scope.End()

	count, err := c.repo.CountOverlapping(ctx, listingID, span)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to check availability")

		return false, fmt.Errorf("failed to check availability: %w", err)
	}

	return count > 0, nil
}

func (c *checkerImpl) HasConflictTx(ctx context.Context, sqltx *sqlx.Tx, listingID string, span model.DateSpan) (bool, error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.HasConflictTx")
	defer scope.End()

	count, err := c.repo.CountOverlappingTx(ctx, sqltx, listingID, span)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to check availability")

		return false, fmt.Errorf("failed to check availability: %w", err)
	}

	return count > 0, nil
}

// SpanFor derives the days a payload would hold. Categories without dates, and payloads
// whose dates are missing or malformed, hold nothing.
func SpanFor(cfg categoryModel.BookingConfig, payload model.Payload) (model.DateSpan, bool) {
	switch cfg.DateType {
	case categoryModel.DateTypeRange:
		return RangeSpan(payload.StartDate, payload.EndDate)
	case categoryModel.DateTypeSingle:
		day, err := model.ParseDay(payload.BookingDate)
		if err != nil {
			return model.DateSpan{}, false
		}

		return model.SingleDay(day), true
	case categoryModel.DateTypeNone:
	}

	return model.DateSpan{}, false
}

// RangeSpan parses an inclusive range; an empty end means a single day.
func RangeSpan(start, end string) (model.DateSpan, bool) {
	first, err := model.ParseDay(start)
	if err != nil {
		return model.DateSpan{}, false
	}

	if end == constant.Empty {
		return model.SingleDay(first), true
	}

	last, err := model.ParseDay(end)
	if err != nil || last.Before(first) {
		return model.DateSpan{}, false
	}

	return model.DateSpan{Start: first, End: last}, true
}
