package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"bazaar/config"
	"bazaar/infras/metrics"
	"bazaar/infras/otel"
	"bazaar/infras/postgres"
	"bazaar/internal/domains/booking/availability"
	"bazaar/internal/domains/booking/model"
	"bazaar/internal/domains/booking/model/dto"
	"bazaar/internal/domains/booking/repository"
	"bazaar/internal/domains/booking/validation"
	categoryService "bazaar/internal/domains/category/service"
	listingService "bazaar/internal/domains/listing/service"
	"bazaar/internal/events"
	"bazaar/shared"
	"bazaar/shared/cache"
	"bazaar/shared/constant"
	gDto "bazaar/shared/dto"
	"bazaar/shared/failure"
	gModel "bazaar/shared/model"
	"bazaar/shared/timezone"
)

const (
	msgAvailable   = "Available"
	msgValid       = "Booking data is valid"
	msgNoPrincipal = "authentication required"
	msgNotParty    = "you are not a party to this booking"
	msgNotMember   = "you are not the owner or staff of this business"
	msgNotFound    = "booking not found"
)

// now is swapped in tests that pin the cancellation window.
var now = timezone.Now

type Booking interface {
	Requirements(ctx context.Context, listingID string) (dto.RequirementsResponse, error)
	CheckAvailability(ctx context.Context, req dto.PayloadRequest) (dto.AvailabilityResponse, error)
	Validate(ctx context.Context, req dto.PayloadRequest) (dto.ValidationResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	ListUser(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) (dto.BookingsResponse, error)
	ListVendor(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) (dto.BookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	resolver   categoryService.Resolver
	lookup     listingService.Lookup
	checker    availability.Checker
	transactor postgres.Transactor
	publisher  events.Publisher
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	resolver categoryService.Resolver,
	lookup listingService.Lookup,
	checker availability.Checker,
	transactor postgres.Transactor,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		resolver:   resolver,
		lookup:     lookup,
		checker:    checker,
		transactor: transactor,
		publisher:  publisher,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func principalFrom(ctx context.Context) (gModel.Principal, error) {
	principal, ok := shared.GetPrincipal(ctx)
	if !ok {
		return principal, failure.Unauthorized(msgNoPrincipal) // nolint:wrapcheck
	}

	return principal, nil
}

func (s *serviceImpl) Requirements(ctx context.Context, listingID string) (res dto.RequirementsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Requirements")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	listing, err := s.lookup.Get(ctx, listingID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	category, err := s.resolver.Get(ctx, listing.CategoryID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModels(listing, category, s.cfg.Booking.DefaultCurrency)

	return res, nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.PayloadRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	listing, err := s.lookup.Get(ctx, req.ListingID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	cfg, err := s.resolver.Resolve(ctx, listing.CategoryID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	span, ok := availability.SpanFor(cfg, req.Payload)
	if !ok {
		return dto.AvailabilityResponse{Available: true, Message: msgAvailable}, nil
	}

	conflict, err := s.checker.HasConflict(ctx, listing.ID, span)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if conflict {
		return dto.AvailabilityResponse{Available: false, Message: availability.MsgNotAvailable}, nil
	}

	return dto.AvailabilityResponse{Available: true, Message: msgAvailable}, nil
}

func (s *serviceImpl) Validate(ctx context.Context, req dto.PayloadRequest) (res dto.ValidationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Validate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	listing, err := s.lookup.Get(ctx, req.ListingID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	cfg, err := s.resolver.Resolve(ctx, listing.CategoryID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	result := validation.Validate(cfg, req.Payload, now())
	if !result.Valid {
		metrics.IncValidationFailure()

		return dto.ValidationResponse{Valid: false, Errors: result.Errors}, failure.ValidationFailed(result.Errors) // nolint:wrapcheck
	}

	return dto.ValidationResponse{Valid: true, Message: msgValid}, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := principalFrom(ctx)
	if err != nil {
		return res, err
	}

	listing, err := s.lookup.Get(ctx, req.ListingID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	cfg, err := s.resolver.Resolve(ctx, listing.CategoryID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	current := now()

	result := validation.Validate(cfg, req.Payload, current)
	if !result.Valid {
		metrics.IncValidationFailure()

		return res, failure.ValidationFailed(result.Errors) // nolint:wrapcheck
	}

	span, holds := availability.SpanFor(cfg, req.Payload)

	booking, err := req.ToModel(dto.Draft{
		Principal:       principal,
		Listing:         listing,
		DateType:        cfg.DateType,
		HoldsInventory:  holds,
		DefaultCurrency: s.cfg.Booking.DefaultCurrency,
		Now:             current,
	})
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	err = s.transactor.WithTransaction(ctx, sql.LevelSerializable, func(ctx context.Context, tx *sqlx.Tx) error {
		if holds {
			conflict, err := s.checker.HasConflictTx(ctx, tx, listing.ID, span)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if conflict {
				return failure.ConflictDetected(availability.MsgNotAvailable) // nolint:wrapcheck
			}
		}

		return s.repo.InsertTx(ctx, tx, booking) //nolint:wrapcheck
	})
	if err != nil {
		return res, s.creationError(err, listing.ID)
	}

	metrics.IncBookingCreated(metrics.PathDirect)

	res.FromModel(booking)

	s.invalidate(ctx)
	s.publisher.Publish(ctx, events.New(events.TypeBookingCreated, booking.ID, res))

	return res, nil
}

// creationError turns both the in-transaction check and the exclusion constraint into a conflict.
func (s *serviceImpl) creationError(err error, listingID string) error {
	if failure.GetReason(err) == failure.ReasonConflictDetected || postgres.IsExclusionViolation(err) {
		metrics.IncConflict()
		log.Info().Str("listing_id", listingID).Msg("booking rejected, dates already taken")

		return failure.ConflictDetected(availability.MsgNotAvailable) // nolint:wrapcheck
	}

	log.Error().Err(err).Str("listing_id", listingID).Msg("failed to create booking")

	return fmt.Errorf("failed to create booking: %w", err)
}

func (s *serviceImpl) ListUser(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) (res dto.BookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := principalFrom(ctx)
	if err != nil {
		return res, err
	}

	return s.list(ctx, params, filter.ToFilterGroup(model.FieldUserID, principal.ID))
}

func (s *serviceImpl) ListVendor(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) (res dto.BookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListVendor")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := principalFrom(ctx)
	if err != nil {
		return res, err
	}

	if filter.BusinessID == constant.Empty {
		return s.list(ctx, params, filter.ToFilterGroup(model.FieldVendorID, principal.ID))
	}

	member, err := s.lookup.IsBusinessMember(ctx, filter.BusinessID, principal.ID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !member {
		return res, failure.Forbidden(msgNotMember) // nolint:wrapcheck
	}

	return s.list(ctx, params, filter.ToFilterGroup(model.FieldBusinessID, filter.BusinessID))
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.BookingsResponse, err error) {
	if params.SortBy == constant.Empty {
		params.SortBy = constant.DefaultValueSortBy
		params.SortDir = constant.DefaultValueSortDir
	}

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheKeyList, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheKeyCount, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := principalFrom(ctx)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(model.CacheKeyGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

			return res, fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return res, failure.NotFound(msgNotFound) // nolint:wrapcheck
		}

		res.FromModel(booking)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	allowed, err := s.canAct(ctx, principal, res.UserID, res.VendorID, res.BusinessID)
	if err != nil {
		return dto.BookingResponse{}, err
	}

	if !allowed {
		return dto.BookingResponse{}, failure.Forbidden(msgNotParty) // nolint:wrapcheck
	}

	return res, nil
}

// canAct lets the customer act on their own booking and the vendor on bookings they fulfil.
// Admins moderate every booking.
func (s *serviceImpl) canAct(ctx context.Context, principal gModel.Principal, userID, vendorID string, businessID *string) (bool, error) {
	switch {
	case principal.IsAdmin():
		return true, nil
	case principal.IsCustomer():
		return principal.ID == userID, nil
	case principal.IsVendor():
		return s.lookup.Fulfils(ctx, principal, vendorID, businessID) //nolint:wrapcheck
	default:
		return false, nil
	}
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := principalFrom(ctx)
	if err != nil {
		return res, err
	}

	if !req.Status.IsValid() {
		return res, failure.BadRequestFromString(fmt.Sprintf("unknown status %q", req.Status)) // nolint:wrapcheck
	}

	var (
		booking model.Booking
		prior   model.Status
	)

	err = s.transactor.WithTransaction(ctx, sql.LevelReadCommitted, func(ctx context.Context, tx *sqlx.Tx) error {
		booking, err = s.lockForActor(ctx, tx, id, principal)
		if err != nil {
			return err
		}

		prior = booking.Status

		if !prior.CanTransitionTo(req.Status) {
			return failure.InvalidTransition(string(prior), string(req.Status)) // nolint:wrapcheck
		}

		current := now()

		if req.Status == model.StatusCancelled {
			if err = s.checkCancellationWindow(ctx, booking, current); err != nil {
				return err
			}
		}

		changes := transitionChanges(req.Status, current, principal.ID)

		if req.Notes != constant.Empty {
			changes[model.FieldVendorNotes] = req.Notes
			booking.VendorNotes = &req.Notes
		}

		if err = s.transition(ctx, tx, &booking, changes); err != nil {
			return err
		}

		stamp(&booking, req.Status, current, principal.ID)

		return nil
	})
	if err != nil {
		return res, s.transitionError(err, id)
	}

	metrics.IncTransition(string(prior), string(req.Status))

	res.FromModel(booking)

	s.invalidate(ctx, id)
	s.publisher.Publish(ctx, events.New(events.TypeBookingStatusChanged, booking.ID, map[string]any{
		"from":    prior,
		"to":      req.Status,
		"booking": res,
	}))

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := principalFrom(ctx)
	if err != nil {
		return res, err
	}

	var (
		booking model.Booking
		prior   model.Status
	)

	err = s.transactor.WithTransaction(ctx, sql.LevelReadCommitted, func(ctx context.Context, tx *sqlx.Tx) error {
		booking, err = s.lockForActor(ctx, tx, id, principal)
		if err != nil {
			return err
		}

		prior = booking.Status

		if !prior.CanTransitionTo(model.StatusCancelled) {
			return failure.InvalidTransition(string(prior), string(model.StatusCancelled)) // nolint:wrapcheck
		}

		current := now()

		if err = s.checkCancellationWindow(ctx, booking, current); err != nil {
			return err
		}

		changes := transitionChanges(model.StatusCancelled, current, principal.ID)

		if req.Reason != constant.Empty {
			changes[model.FieldCancellationReason] = req.Reason
			booking.CancellationReason = &req.Reason
		}

		if err = s.transition(ctx, tx, &booking, changes); err != nil {
			return err
		}

		stamp(&booking, model.StatusCancelled, current, principal.ID)

		return nil
	})
	if err != nil {
		return res, s.transitionError(err, id)
	}

	metrics.IncTransition(string(prior), string(model.StatusCancelled))

	res.FromModel(booking)

	s.invalidate(ctx, id)
	s.publisher.Publish(ctx, events.New(events.TypeBookingCancelled, booking.ID, res))

	return res, nil
}

// checkCancellationWindow refuses when fewer than the window's hours remain. Exactly the window is allowed.
func (s *serviceImpl) checkCancellationWindow(ctx context.Context, booking model.Booking, current time.Time) error {
	startsAt, ok := booking.StartsAt(timezone.GetLocation())
	if !ok {
		return nil
	}

	cfg, err := s.resolver.Resolve(ctx, booking.CategoryID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	window := cfg.CancellationWindow(s.cfg.Booking.DefaultCancellationHours)

	if startsAt.Sub(current) < time.Duration(window)*time.Hour {
		return failure.CancellationWindowViolation(window) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) lockForActor(ctx context.Context, tx *sqlx.Tx, id string, principal gModel.Principal) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(msgNotFound) // nolint:wrapcheck
	}

	allowed, err := s.canAct(ctx, principal, booking.UserID, booking.VendorID, booking.BusinessID)
	if err != nil {
		return booking, err
	}

	if !allowed {
		return booking, failure.Forbidden(msgNotParty) // nolint:wrapcheck
	}

	return booking, nil
}

// transition writes only if the row still carries the status that was read.
func (s *serviceImpl) transition(ctx context.Context, tx *sqlx.Tx, booking *model.Booking, changes map[string]any) error {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: booking.ID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: string(booking.Status), Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	affected, err := s.repo.UpdateAffectedTx(ctx, tx, changes, filter)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if affected == 0 {
		target, _ := changes[model.FieldStatus].(string)

		return failure.InvalidTransition(string(booking.Status), target) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) transitionError(err error, id string) error {
	if failure.GetReason(err) != constant.Empty {
		return err
	}

	log.Error().Err(err).Str("booking_id", id).Msg("failed to change booking status")

	return fmt.Errorf("failed to change booking status: %w", err)
}

func transitionChanges(target model.Status, current time.Time, actor string) map[string]any {
	changes := map[string]any{
		model.FieldStatus:        string(target),
		constant.FieldModifiedAt: current,
		constant.FieldModifiedBy: actor,
	}

	switch target {
	case model.StatusConfirmed:
		changes[model.FieldConfirmedAt] = current
	case model.StatusCancelled:
		changes[model.FieldCancelledAt] = current
	case model.StatusCompleted:
		changes[model.FieldCompletedAt] = current
	case model.StatusPending, model.StatusRejected, model.StatusAppealed:
	}

	return changes
}

func stamp(booking *model.Booking, target model.Status, current time.Time, actor string) {
	booking.Status = target
	booking.ModifiedAt = current
	booking.ModifiedBy = actor

	switch target {
	case model.StatusConfirmed:
		booking.ConfirmedAt = &current
	case model.StatusCancelled:
		booking.CancelledAt = &current
	case model.StatusCompleted:
		booking.CompletedAt = &current
	case model.StatusPending, model.StatusRejected, model.StatusAppealed:
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheKeyGet, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, model.CacheKeyList)
		shared.InvalidateCaches(c, s.cache, model.CacheKeyCount)
	}()
}
