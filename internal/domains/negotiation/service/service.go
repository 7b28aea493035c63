package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"bazaar/config"
	"bazaar/infras/metrics"
	"bazaar/infras/otel"
	"bazaar/infras/postgres"
	"bazaar/internal/domains/booking/availability"
	bookingModel "bazaar/internal/domains/booking/model"
	bookingDto "bazaar/internal/domains/booking/model/dto"
	bookingRepository "bazaar/internal/domains/booking/repository"
	categoryModel "bazaar/internal/domains/category/model"
	categoryService "bazaar/internal/domains/category/service"
	listingModel "bazaar/internal/domains/listing/model"
	listingService "bazaar/internal/domains/listing/service"
	"bazaar/internal/domains/negotiation/model"
	"bazaar/internal/domains/negotiation/model/dto"
	"bazaar/internal/domains/negotiation/repository"
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
	msgNoPrincipal      = "authentication required"
	msgRequestNotFound  = "request not found"
	msgOfferNotFound    = "offer not found"
	msgNoRequest        = "no request for this listing"
	msgNotRequester     = "you did not make this request"
	msgNotVendor        = "you are not the vendor for this request"
	msgNotMember        = "you are not the owner or staff of this business"
	msgPaymentMethodReq = "paymentMethod is required"
)

// now is swapped in tests.
var now = timezone.Now

type Negotiation interface {
	CreateRequest(ctx context.Context, req dto.CreateRequestRequest) (dto.RequestResponse, error)
	GetRequestStatus(ctx context.Context, listingID string) (dto.RequestResponse, error)
	ListUserRequests(ctx context.Context, params gDto.QueryParams) (dto.RequestsResponse, error)
	ListVendorRequests(ctx context.Context, params gDto.QueryParams, businessID string) (dto.RequestsResponse, error)
	CancelRequest(ctx context.Context, requestID string) (dto.RequestResponse, error)
	CreateOffer(ctx context.Context, req dto.CreateOfferRequest) (dto.OfferResponse, error)
	AcceptOffer(ctx context.Context, offerID string, req dto.AcceptOfferRequest) (bookingDto.BookingResponse, error)
	CancelOffer(ctx context.Context, offerID string) (dto.OfferResponse, error)
}

type serviceImpl struct {
	requests   repository.Request
	offers     repository.Offer
	bookings   bookingRepository.Booking
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
	requests repository.Request,
	offers repository.Offer,
	bookings bookingRepository.Booking,
	resolver categoryService.Resolver,
	lookup listingService.Lookup,
	checker availability.Checker,
	transactor postgres.Transactor,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Negotiation {
	return &serviceImpl{
		requests:   requests,
		offers:     offers,
		bookings:   bookings,
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

func byField(table, field string, value any) gDto.Filter {
	return gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: table}
}

func and(filters ...any) gDto.FilterGroup {
	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

func (s *serviceImpl) CreateRequest(ctx context.Context, req dto.CreateRequestRequest) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".negotiation.CreateRequest")
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

	request, err := req.ToModel(principal, listing, now())
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.requests.Insert(ctx, request); err != nil {
		log.Error().Err(err).Str("listing_id", listing.ID).Msg("failed to create request")

		return res, fmt.Errorf("failed to create request: %w", err)
	}

	res.FromModel(request, nil)

	s.publisher.Publish(ctx, events.New(events.TypeRequestCreated, request.ID, res))

	return res, nil
}

// GetRequestStatus returns the caller's latest request for the listing with its offers.
func (s *serviceImpl) GetRequestStatus(ctx context.Context, listingID string) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".negotiation.GetRequestStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := principalFrom(ctx)
	if err != nil {
		return res, err
	}

	params := gDto.QueryParams{Limit: 1, SortBy: constant.DefaultValueSortBy, SortDir: constant.DefaultValueSortDir}
	filter := and(
		byField(model.RequestTableName, model.FieldUserID, principal.ID),
		byField(model.RequestTableName, model.FieldListingID, listingID),
	)

	requests, err := s.requests.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str("listing_id", listingID).Msg("failed to get request status")

		return res, fmt.Errorf("failed to get request status: %w", err)
	}

	if len(requests) == 0 {
		return res, failure.NotFound(msgNoRequest) // nolint:wrapcheck
	}

	offers, err := s.offersFor(ctx, requests)
	if err != nil {
		return res, err
	}

	res.FromModel(requests[0], offers)

	return res, nil
}

func (s *serviceImpl) ListUserRequests(ctx context.Context, params gDto.QueryParams) (res dto.RequestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".negotiation.ListUserRequests")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := principalFrom(ctx)
	if err != nil {
		return res, err
	}

	return s.list(ctx, params, and(byField(model.RequestTableName, model.FieldUserID, principal.ID)))
}

// ListVendorRequests is the vendor dashboard. With a business id it lists the business's requests for its members.
func (s *serviceImpl) ListVendorRequests(ctx context.Context, params gDto.QueryParams, businessID string) (res dto.RequestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".negotiation.ListVendorRequests")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := principalFrom(ctx)
	if err != nil {
		return res, err
	}

	if businessID == constant.Empty {
		return s.list(ctx, params, and(byField(model.RequestTableName, model.FieldVendorID, principal.ID)))
	}

	member, err := s.lookup.IsBusinessMember(ctx, businessID, principal.ID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !member {
		return res, failure.Forbidden(msgNotMember) // nolint:wrapcheck
	}

	return s.list(ctx, params, and(byField(model.RequestTableName, model.FieldBusinessID, businessID)))
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.RequestsResponse, err error) {
	if params.SortBy == constant.Empty {
		params.SortBy = constant.DefaultValueSortBy
		params.SortDir = constant.DefaultValueSortDir
	}

	total, err := s.requests.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count requests")

		return res, fmt.Errorf("failed to count requests: %w", err)
	}

	requests, err := s.requests.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get requests")

		return res, fmt.Errorf("failed to get requests: %w", err)
	}

	offers, err := s.offersFor(ctx, requests)
	if err != nil {
		return res, err
	}

	res.FromModels(requests, offers, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) offersFor(ctx context.Context, requests []model.Request) ([]model.Offer, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	ids := make([]string, len(requests))
	for i, request := range requests {
		ids[i] = request.ID
	}

	params := gDto.QueryParams{SortBy: constant.DefaultValueSortBy, SortDir: constant.DefaultValueSortDir}
	filter := and(gDto.Filter{Field: model.FieldRequestID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.OfferTableName})

	offers, err := s.offers.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get offers")

		return nil, fmt.Errorf("failed to get offers: %w", err)
	}

	return offers, nil
}

// CancelRequest lets the customer withdraw an open request. Its pending offers are cancelled with it.
func (s *serviceImpl) CancelRequest(ctx context.Context, requestID string) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".negotiation.CancelRequest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := principalFrom(ctx)
	if err != nil {
		return res, err
	}

	var request model.Request

	err = s.transactor.WithTransaction(ctx, sql.LevelReadCommitted, func(ctx context.Context, tx *sqlx.Tx) error {
		request, err = s.lockRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}

		if request.UserID != principal.ID {
			return failure.Forbidden(msgNotRequester) // nolint:wrapcheck
		}

		if err = s.moveRequest(ctx, tx, &request, model.RequestStatusCancelled, principal.ID); err != nil {
			return err
		}

		_, err = s.cancelPendingOffers(ctx, tx, request.ID, constant.Empty, principal.ID)

		return err
	})
	if err != nil {
		return res, wrapError(err, "failed to cancel request", requestID)
	}

	res.FromModel(request, nil)

	s.publisher.Publish(ctx, events.New(events.TypeRequestCancelled, request.ID, res))

	return res, nil
}

func (s *serviceImpl) CreateOffer(ctx context.Context, req dto.CreateOfferRequest) (res dto.OfferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".negotiation.CreateOffer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := principalFrom(ctx)
	if err != nil {
		return res, err
	}

	var offer model.Offer

	err = s.transactor.WithTransaction(ctx, sql.LevelReadCommitted, func(ctx context.Context, tx *sqlx.Tx) error {
		request, err := s.lockRequest(ctx, tx, req.RequestID)
		if err != nil {
			return err
		}

		allowed, err := s.lookup.Fulfils(ctx, principal, request.VendorID, request.BusinessID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if !allowed {
			return failure.Forbidden(msgNotVendor) // nolint:wrapcheck
		}

		if !request.Status.AcceptsOffers() {
			return failure.InvalidTransition(string(request.Status), string(model.RequestStatusResponded)) // nolint:wrapcheck
		}

		offer, err = req.ToModel(request, principal.ID, now())
		if err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}

		if err = s.offers.InsertTx(ctx, tx, offer); err != nil {
			return fmt.Errorf("failed to insert offer: %w", err)
		}

		if request.Status == model.RequestStatusResponded {
			return nil
		}

		return s.moveRequest(ctx, tx, &request, model.RequestStatusResponded, principal.ID)
	})
	if err != nil {
		return res, wrapError(err, "failed to create offer", req.RequestID)
	}

	metrics.IncOffer(metrics.OfferCreated)

	res.FromModel(offer)

	s.publisher.Publish(ctx, events.New(events.TypeOfferCreated, offer.RequestID, res))

	return res, nil
}

// acceptance is what the accept transaction produced.
type acceptance struct {
	booking  bookingModel.Booking
	offer    model.Offer
	siblings int64
}

// AcceptOffer finalizes a negotiation. The booking insert, the offer and request transitions and the
// cancellation of competing offers commit together or not at all.
func (s *serviceImpl) AcceptOffer(ctx context.Context, offerID string, req dto.AcceptOfferRequest) (res bookingDto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".negotiation.AcceptOffer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := principalFrom(ctx)
	if err != nil {
		return res, err
	}

	if req.PaymentMethod == constant.Empty {
		return res, failure.BadRequestFromString(msgPaymentMethodReq) // nolint:wrapcheck
	}

	var result acceptance

	err = s.transactor.WithTransaction(ctx, sql.LevelSerializable, func(ctx context.Context, tx *sqlx.Tx) error {
		result, err = s.accept(ctx, tx, offerID, principal, req.PaymentMethod)

		return err
	})
	if err != nil {
		return res, s.acceptanceError(err, offerID)
	}

	metrics.IncBookingCreated(metrics.PathOffer)
	metrics.IncOffer(metrics.OfferAccepted)

	res.FromModel(result.booking)

	log.Info().Str("offer_id", offerID).Int64("siblings_cancelled", result.siblings).Msg("offer accepted")

	s.invalidateBookings(ctx)

	var offer dto.OfferResponse
	offer.FromModel(result.offer)

	s.publisher.Publish(ctx,
		events.New(events.TypeOfferAccepted, result.offer.RequestID, offer),
		events.New(events.TypeBookingCreated, result.booking.ID, res),
	)

	return res, nil
}

func (s *serviceImpl) accept(ctx context.Context, tx *sqlx.Tx, offerID string, principal gModel.Principal, paymentMethod string) (acceptance, error) {
	offer, err := s.lockOffer(ctx, tx, and(byField(model.OfferTableName, model.FieldID, offerID)))
	if err != nil {
		return acceptance{}, err
	}

	request, err := s.lockRequest(ctx, tx, offer.RequestID)
	if err != nil {
		return acceptance{}, err
	}

	if request.UserID != principal.ID {
		return acceptance{}, failure.Forbidden(msgNotRequester) // nolint:wrapcheck
	}

	if !offer.Status.CanTransitionTo(model.OfferStatusAccepted) {
		return acceptance{}, failure.InvalidTransition(string(offer.Status), string(model.OfferStatusAccepted)) // nolint:wrapcheck
	}

	if !request.Status.CanTransitionTo(model.RequestStatusAccepted) {
		return acceptance{}, failure.InvalidTransition(string(request.Status), string(model.RequestStatusAccepted)) // nolint:wrapcheck
	}

	listing, err := s.lookup.Get(ctx, request.ListingID)
	if err != nil {
		return acceptance{}, err //nolint:wrapcheck
	}

	cfg, err := s.resolver.Resolve(ctx, listing.CategoryID)
	if err != nil {
		return acceptance{}, err //nolint:wrapcheck
	}

	current := now()
	booking := s.bookingFrom(offer, request, listing, cfg, paymentMethod, current)

	if booking.HoldsInventory {
		span, _ := offer.Span()

		conflict, err := s.checker.HasConflictTx(ctx, tx, listing.ID, span)
		if err != nil {
			return acceptance{}, err //nolint:wrapcheck
		}

		if conflict {
			return acceptance{}, failure.ConflictDetected(availability.MsgNotAvailable) // nolint:wrapcheck
		}
	}

	if err = s.bookings.InsertTx(ctx, tx, booking); err != nil {
		return acceptance{}, fmt.Errorf("failed to insert booking: %w", err)
	}

	if err = s.moveOffer(ctx, tx, &offer, model.OfferStatusAccepted, principal.ID); err != nil {
		return acceptance{}, err
	}

	if err = s.moveRequest(ctx, tx, &request, model.RequestStatusAccepted, principal.ID); err != nil {
		return acceptance{}, err
	}

	siblings, err := s.cancelPendingOffers(ctx, tx, request.ID, offer.ID, principal.ID)
	if err != nil {
		return acceptance{}, err
	}

	return acceptance{booking: booking, offer: offer, siblings: siblings}, nil
}

// bookingFrom builds the confirmed booking an accepted offer turns into.
func (s *serviceImpl) bookingFrom(
	offer model.Offer,
	request model.Request,
	listing listingModel.Listing,
	cfg categoryModel.BookingConfig,
	paymentMethod string,
	current time.Time,
) bookingModel.Booking {
	currency := listing.Currency
	if currency == constant.Empty {
		currency = s.cfg.Booking.DefaultCurrency
	}

	offerID, requestID := offer.ID, request.ID

	booking := bookingModel.Booking{
		ID:            uuid.NewString(),
		OfferID:       &offerID,
		RequestID:     &requestID,
		ListingID:     listing.ID,
		UserID:        request.UserID,
		VendorID:      offer.VendorID,
		BusinessID:    listing.BusinessID,
		CategoryID:    listing.CategoryID,
		Guests:        bookingModel.Guests{bookingModel.GuestTotalKey: offer.OfferedQuantity},
		TotalPrice:    offer.OfferedPrice,
		Currency:      currency,
		PaymentMethod: paymentMethod,
		PaymentStatus: bookingModel.PaymentStatusFor(paymentMethod),
		Status:        bookingModel.StatusConfirmed,
		ConfirmedAt:   &current,
		Metadata:      gModel.NewMetadata(current, request.UserID),
	}

	span, ok := offer.Span()
	if !ok {
		return booking
	}

	switch cfg.DateType {
	case categoryModel.DateTypeSingle:
		booking.BookingDate = &span.Start
		booking.HoldsInventory = true
	case categoryModel.DateTypeRange:
		booking.StartDate, booking.EndDate = &span.Start, &span.End
		booking.HoldsInventory = true
	default:
		// informational dates, the listing stays open
		booking.StartDate, booking.EndDate = &span.Start, &span.End
	}

	return booking
}

// acceptanceError maps races lost at the storage layer. A second acceptance of the same offer trips the
// unique offer_id index and an overlapping stay trips the exclusion constraint.
func (s *serviceImpl) acceptanceError(err error, offerID string) error {
	switch {
	case failure.GetReason(err) == failure.ReasonConflictDetected || postgres.IsExclusionViolation(err):
		metrics.IncConflict()

		return failure.ConflictDetected(availability.MsgNotAvailable) // nolint:wrapcheck
	case postgres.IsUniqueViolation(err):
		return failure.InvalidTransition(string(model.OfferStatusAccepted), string(model.OfferStatusAccepted)) // nolint:wrapcheck
	default:
		return wrapError(err, "failed to accept offer", offerID)
	}
}

// CancelOffer withdraws a pending offer. Offers that are missing or belong to another vendor are not found.
func (s *serviceImpl) CancelOffer(ctx context.Context, offerID string) (res dto.OfferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".negotiation.CancelOffer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := principalFrom(ctx)
	if err != nil {
		return res, err
	}

	var offer model.Offer

	err = s.transactor.WithTransaction(ctx, sql.LevelReadCommitted, func(ctx context.Context, tx *sqlx.Tx) error {
		offer, err = s.lockOffer(ctx, tx, and(
			byField(model.OfferTableName, model.FieldID, offerID),
			byField(model.OfferTableName, model.FieldVendorID, principal.ID),
		))
		if err != nil {
			return err
		}

		return s.moveOffer(ctx, tx, &offer, model.OfferStatusCancelled, principal.ID)
	})
	if err != nil {
		return res, wrapError(err, "failed to cancel offer", offerID)
	}

	metrics.IncOffer(metrics.OfferCancelled)

	res.FromModel(offer)

	s.publisher.Publish(ctx, events.New(events.TypeOfferCancelled, offer.RequestID, res))

	return res, nil
}

func (s *serviceImpl) lockRequest(ctx context.Context, tx *sqlx.Tx, requestID string) (model.Request, error) {
	request, err := s.requests.GetForUpdateTx(ctx, tx, shared.FilterByID(requestID, model.FieldID, model.RequestTableName))
	if err != nil {
		return request, fmt.Errorf("failed to lock request: %w", err)
	}

	if request.ID == constant.Empty {
		return request, failure.NotFound(msgRequestNotFound) // nolint:wrapcheck
	}

	return request, nil
}

func (s *serviceImpl) lockOffer(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Offer, error) {
	offer, err := s.offers.GetForUpdateTx(ctx, tx, filter)
	if err != nil {
		return offer, fmt.Errorf("failed to lock offer: %w", err)
	}

	if offer.ID == constant.Empty {
		return offer, failure.NotFound(msgOfferNotFound) // nolint:wrapcheck
	}

	return offer, nil
}

func transitionChanges(status string, current time.Time, actor string) map[string]any {
	return map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: current,
		constant.FieldModifiedBy: actor,
	}
}

// moveRequest writes only if the request still carries the status that was read.
func (s *serviceImpl) moveRequest(ctx context.Context, tx *sqlx.Tx, request *model.Request, target model.RequestStatus, actor string) error {
	if !request.Status.CanTransitionTo(target) {
		return failure.InvalidTransition(string(request.Status), string(target)) // nolint:wrapcheck
	}

	current := now()

	affected, err := s.requests.UpdateAffectedTx(ctx, tx, transitionChanges(string(target), current, actor), and(
		byField(model.RequestTableName, model.FieldID, request.ID),
		byField(model.RequestTableName, model.FieldStatus, string(request.Status)),
	))
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}

	if affected == 0 {
		return failure.InvalidTransition(string(request.Status), string(target)) // nolint:wrapcheck
	}

	request.Status = target
	request.ModifiedAt = current
	request.ModifiedBy = actor

	return nil
}

func (s *serviceImpl) moveOffer(ctx context.Context, tx *sqlx.Tx, offer *model.Offer, target model.OfferStatus, actor string) error {
	if !offer.Status.CanTransitionTo(target) {
		return failure.InvalidTransition(string(offer.Status), string(target)) // nolint:wrapcheck
	}

	current := now()

	affected, err := s.offers.UpdateAffectedTx(ctx, tx, transitionChanges(string(target), current, actor), and(
		byField(model.OfferTableName, model.FieldID, offer.ID),
		byField(model.OfferTableName, model.FieldStatus, string(offer.Status)),
	))
	if err != nil {
		return fmt.Errorf("failed to update offer status: %w", err)
	}

	if affected == 0 {
		return failure.InvalidTransition(string(offer.Status), string(target)) // nolint:wrapcheck
	}

	offer.Status = target
	offer.ModifiedAt = current
	offer.ModifiedBy = actor

	return nil
}

// cancelPendingOffers closes the request's other pending offers. keepID may be empty.
func (s *serviceImpl) cancelPendingOffers(ctx context.Context, tx *sqlx.Tx, requestID, keepID, actor string) (int64, error) {
	filter := and(
		byField(model.OfferTableName, model.FieldRequestID, requestID),
		byField(model.OfferTableName, model.FieldStatus, string(model.OfferStatusPending)),
	)

	if keepID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldID, Value: keepID, Operator: gDto.FilterOperatorNotEq, Table: model.OfferTableName,
		})
	}

	affected, err := s.offers.UpdateAffectedTx(ctx, tx, transitionChanges(string(model.OfferStatusCancelled), now(), actor), filter)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel competing offers: %w", err)
	}

	return affected, nil
}

func (s *serviceImpl) invalidateBookings(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, bookingModel.CacheKeyList)
		shared.InvalidateCaches(c, s.cache, bookingModel.CacheKeyCount)
	}()
}

func wrapError(err error, msg, id string) error {
	if failure.GetReason(err) != constant.Empty || failure.GetCode(err) < http.StatusInternalServerError {
		return err
	}

	log.Error().Err(err).Str("id", id).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}
