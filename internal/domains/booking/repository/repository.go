package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bazaar/infras/otel"
	"bazaar/infras/postgres"
	"bazaar/internal/domains/booking/model"
	"bazaar/shared/constant"
	gDto "bazaar/shared/dto"
	"bazaar/shared/logger"
	gRepo "bazaar/shared/repository"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, booking model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateAffectedTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
	CountOverlapping(ctx context.Context, listingID string, span model.DateSpan) (int, error)
	CountOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, listingID string, span model.DateSpan) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// The booked span of a row is [first, last] where single-day rows only carry booking_date.
// The three clauses mirror DateSpan.Overlaps.
var overlapQuery = fmt.Sprintf(`SELECT COUNT(1) FROM %[1]s
WHERE %[1]s.listing_id = :listing_id
	AND %[1]s.holds_inventory
	AND %[1]s.status NOT IN (:inactive_0, :inactive_1)
	AND (
		(COALESCE(start_date, booking_date) <= :span_start AND :span_start <= COALESCE(end_date, start_date, booking_date))
		OR (COALESCE(start_date, booking_date) <= :span_end AND :span_end <= COALESCE(end_date, start_date, booking_date))
		OR (:span_start <= COALESCE(start_date, booking_date) AND COALESCE(end_date, start_date, booking_date) <= :span_end)
	)`, model.TableName)

type queryer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

func (r *repositoryImpl) countOverlapping(ctx context.Context, db queryer, listingID string, span model.DateSpan) (count int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.countOverlapping")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelQueryAttributeKey, overlapQuery)

	prepare, err := db.PrepareNamedContext(ctx, overlapQuery)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	args := map[string]any{
		"listing_id": listingID,
		"inactive_0": string(model.InactiveStatuses[0]),
		"inactive_1": string(model.InactiveStatuses[1]),
		"span_start": span.Start.Format(constant.DayFormat),
		"span_end":   span.End.Format(constant.DayFormat),
	}

	if err = prepare.GetContext(ctx, &count, args); err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return count, nil
}

func (r *repositoryImpl) CountOverlapping(ctx context.Context, listingID string, span model.DateSpan) (int, error) {
	return r.countOverlapping(ctx, r.db.Write, listingID, span)
}

func (r *repositoryImpl) CountOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, listingID string, span model.DateSpan) (int, error) {
	return r.countOverlapping(ctx, sqltx, listingID, span)
}
