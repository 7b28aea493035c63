package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bazaar/config"
	"bazaar/infras/otel/mocks"
	pgMocks "bazaar/infras/postgres/mocks"
	bookingMocks "bazaar/internal/domains/booking/mocks"
	bookingModel "bazaar/internal/domains/booking/model"
	categoryMocks "bazaar/internal/domains/category/mocks"
	categoryModel "bazaar/internal/domains/category/model"
	listingMocks "bazaar/internal/domains/listing/mocks"
	listingModel "bazaar/internal/domains/listing/model"
	negotiationMocks "bazaar/internal/domains/negotiation/mocks"
	"bazaar/internal/domains/negotiation/model"
	"bazaar/internal/domains/negotiation/model/dto"
	"bazaar/internal/domains/negotiation/service"
	eventMocks "bazaar/internal/events/mocks"
	"bazaar/shared"
	"bazaar/shared/cache"
	gDto "bazaar/shared/dto"
	"bazaar/shared/failure"
	gModel "bazaar/shared/model"
)

var (
	customer = gModel.Principal{ID: "customer-1", Role: "customer"}
	vendor   = gModel.Principal{ID: "vendor-1", Role: "vendor"}

	listing = listingModel.Listing{ID: "listing-1", VendorID: "vendor-1", CategoryID: "stays", Price: 100, Currency: "EUR"}
	stays   = categoryModel.BookingConfig{RequiresBooking: true, DateType: categoryModel.DateTypeRange}
)

type fixture struct {
	svc        service.Negotiation
	requests   *negotiationMocks.MockRequest
	offers     *negotiationMocks.MockOffer
	bookings   *bookingMocks.MockBooking
	resolver   *categoryMocks.MockResolver
	lookup     *listingMocks.MockLookup
	checker    *bookingMocks.MockChecker
	publisher  *eventMocks.MockPublisher
	transactor *pgMocks.Transactor
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.Booking.DefaultCurrency = "USD"

	f := fixture{
		requests:   negotiationMocks.NewMockRequest(ctrl),
		offers:     negotiationMocks.NewMockOffer(ctrl),
		bookings:   bookingMocks.NewMockBooking(ctrl),
		resolver:   categoryMocks.NewMockResolver(ctrl),
		lookup:     listingMocks.NewMockLookup(ctrl),
		checker:    bookingMocks.NewMockChecker(ctrl),
		publisher:  eventMocks.NewMockPublisher(ctrl),
		transactor: pgMocks.NewTransactor(),
	}

	f.svc = service.New(f.requests, f.offers, f.bookings, f.resolver, f.lookup, f.checker, f.transactor, f.publisher,
		cfg, cache.NewRedisCache(client, mocks.NewOtel()), mocks.NewOtel())

	return f
}

func pinClock(t *testing.T) {
	t.Helper()

	pinned := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	t.Cleanup(service.SetNow(func() time.Time { return pinned }))
}

func day(t *testing.T, value string) *time.Time {
	t.Helper()

	d, err := bookingModel.ParseDay(value)
	require.NoError(t, err)

	return &d
}

func request5(status model.RequestStatus) model.Request {
	return model.Request{ID: "request-5", ListingID: listing.ID, UserID: customer.ID, VendorID: vendor.ID, Quantity: 2, Status: status}
}

func offer10(t *testing.T, status model.OfferStatus) model.Offer {
	t.Helper()

	return model.Offer{
		ID:              "offer-10",
		RequestID:       "request-5",
		VendorID:        vendor.ID,
		OfferedStart:    day(t, "2025-07-10"),
		OfferedEnd:      day(t, "2025-07-12"),
		OfferedQuantity: 2,
		OfferedPrice:    300,
		Status:          status,
	}
}

func statusOf(changes map[string]any) string {
	status, _ := changes["status"].(string)

	return status
}

func TestNegotiation_AcceptOffer(t *testing.T) {
	pinClock(t)

	t.Run("cash acceptance creates an unpaid booking and closes the negotiation", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		var inserted bookingModel.Booking

		f.offers.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(offer10(t, model.OfferStatusPending), nil)
		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusResponded), nil)
		f.lookup.EXPECT().Get(gomock.Any(), listing.ID).Return(listing, nil)
		f.resolver.EXPECT().Resolve(gomock.Any(), "stays").Return(stays, nil)
		f.checker.EXPECT().HasConflictTx(gomock.Any(), gomock.Nil(), listing.ID, gomock.Any()).Return(false, nil)
		f.bookings.EXPECT().
			InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking bookingModel.Booking) error {
				inserted = booking

				return nil
			})

		gomock.InOrder(
			f.offers.EXPECT().
				UpdateAffectedTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, changes map[string]any, filter gDto.FilterGroup) (int64, error) {
					assert.Equal(t, "accepted", statusOf(changes))

					_, args := filter.GetWhereClause()
					assert.Equal(t, "offer-10", args["id"])
					assert.Equal(t, "pending", args["status"])

					return 1, nil
				}),
			f.offers.EXPECT().
				UpdateAffectedTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, changes map[string]any, filter gDto.FilterGroup) (int64, error) {
					assert.Equal(t, "cancelled", statusOf(changes))

					where, args := filter.GetWhereClause()
					assert.Contains(t, where, "vendor_offers.id != :id")
					assert.Equal(t, "request-5", args["request_id"])

					return 2, nil
				}),
		)

		f.requests.EXPECT().
			UpdateAffectedTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, changes map[string]any, filter gDto.FilterGroup) (int64, error) {
				assert.Equal(t, "accepted", statusOf(changes))

				_, args := filter.GetWhereClause()
				assert.Equal(t, "responded", args["status"])

				return 1, nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any())

		res, err := f.svc.AcceptOffer(ctx, "offer-10", dto.AcceptOfferRequest{PaymentMethod: "cash"})

		require.NoError(t, err)
		assert.Equal(t, bookingModel.PaymentStatusUnpaid, res.PaymentStatus)
		assert.Equal(t, bookingModel.StatusConfirmed, res.Status)
		assert.Equal(t, "offer-10", *inserted.OfferID)
		assert.Equal(t, "request-5", *inserted.RequestID)
		assert.Equal(t, "2025-07-10", res.StartDate)
		assert.Equal(t, "2025-07-12", res.EndDate)
		assert.InDelta(t, 300.0, inserted.TotalPrice, 0.001)
		assert.Equal(t, "EUR", inserted.Currency)
		assert.True(t, inserted.HoldsInventory)
		assert.Equal(t, 2, inserted.Guests.Total())
		assert.Equal(t, []sql.IsolationLevel{sql.LevelSerializable}, f.transactor.Isolations)
	})

	t.Run("card acceptance is paid", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		f.offers.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(offer10(t, model.OfferStatusPending), nil)
		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusResponded), nil)
		f.lookup.EXPECT().Get(gomock.Any(), listing.ID).Return(listing, nil)
		f.resolver.EXPECT().Resolve(gomock.Any(), "stays").Return(categoryModel.BookingConfig{DateType: categoryModel.DateTypeNone}, nil)
		f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
		f.offers.EXPECT().UpdateAffectedTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return(int64(1), nil).Times(2)
		f.requests.EXPECT().UpdateAffectedTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any())

		res, err := f.svc.AcceptOffer(ctx, "offer-10", dto.AcceptOfferRequest{PaymentMethod: "card"})

		require.NoError(t, err)
		assert.Equal(t, bookingModel.PaymentStatusPaid, res.PaymentStatus)
	})

	for _, status := range []model.OfferStatus{model.OfferStatusAccepted, model.OfferStatusCancelled} {
		t.Run("offer already "+string(status)+" never books twice", func(t *testing.T) {
			f := newFixture(t)
			ctx := shared.WithPrincipal(context.Background(), customer)

			f.offers.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(offer10(t, status), nil)
			f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusAccepted), nil)

			_, err := f.svc.AcceptOffer(ctx, "offer-10", dto.AcceptOfferRequest{PaymentMethod: "cash"})

			assert.Equal(t, failure.ReasonInvalidTransition, failure.GetReason(err))
		})
	}

	t.Run("request cancelled by the customer", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		f.offers.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(offer10(t, model.OfferStatusPending), nil)
		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusCancelled), nil)

		_, err := f.svc.AcceptOffer(ctx, "offer-10", dto.AcceptOfferRequest{PaymentMethod: "cash"})

		assert.Equal(t, failure.ReasonInvalidTransition, failure.GetReason(err))
	})

	t.Run("someone else's request", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), gModel.Principal{ID: "customer-2", Role: "customer"})

		f.offers.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(offer10(t, model.OfferStatusPending), nil)
		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusResponded), nil)

		_, err := f.svc.AcceptOffer(ctx, "offer-10", dto.AcceptOfferRequest{PaymentMethod: "cash"})

		assert.Equal(t, failure.ReasonUnauthorized, failure.GetReason(err))
	})

	t.Run("offer not found", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		f.offers.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(model.Offer{}, nil)

		_, err := f.svc.AcceptOffer(ctx, "missing", dto.AcceptOfferRequest{PaymentMethod: "cash"})

		assert.Equal(t, failure.ReasonNotFound, failure.GetReason(err))
	})

	t.Run("payment method is required", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		_, err := f.svc.AcceptOffer(ctx, "offer-10", dto.AcceptOfferRequest{})

		assert.Equal(t, 400, failure.GetCode(err))
		assert.Empty(t, f.transactor.Isolations)
	})

	t.Run("dates taken meanwhile", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		f.offers.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(offer10(t, model.OfferStatusPending), nil)
		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusResponded), nil)
		f.lookup.EXPECT().Get(gomock.Any(), listing.ID).Return(listing, nil)
		f.resolver.EXPECT().Resolve(gomock.Any(), "stays").Return(stays, nil)
		f.checker.EXPECT().HasConflictTx(gomock.Any(), gomock.Nil(), listing.ID, gomock.Any()).Return(true, nil)

		_, err := f.svc.AcceptOffer(ctx, "offer-10", dto.AcceptOfferRequest{PaymentMethod: "cash"})

		assert.Equal(t, failure.ReasonConflictDetected, failure.GetReason(err))
	})

	t.Run("concurrent acceptance trips the unique offer index", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		f.offers.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(offer10(t, model.OfferStatusPending), nil)
		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusResponded), nil)
		f.lookup.EXPECT().Get(gomock.Any(), listing.ID).Return(listing, nil)
		f.resolver.EXPECT().Resolve(gomock.Any(), "stays").Return(stays, nil)
		f.checker.EXPECT().HasConflictTx(gomock.Any(), gomock.Nil(), listing.ID, gomock.Any()).Return(false, nil)
		f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(&pq.Error{Code: "23505"})

		_, err := f.svc.AcceptOffer(ctx, "offer-10", dto.AcceptOfferRequest{PaymentMethod: "cash"})

		assert.Equal(t, failure.ReasonInvalidTransition, failure.GetReason(err))
	})

	t.Run("storage failure mid acceptance is a generic error", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		f.offers.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(offer10(t, model.OfferStatusPending), nil)
		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusResponded), nil)
		f.lookup.EXPECT().Get(gomock.Any(), listing.ID).Return(listing, nil)
		f.resolver.EXPECT().Resolve(gomock.Any(), "stays").Return(stays, nil)
		f.checker.EXPECT().HasConflictTx(gomock.Any(), gomock.Nil(), listing.ID, gomock.Any()).Return(false, nil)
		f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
		f.offers.EXPECT().UpdateAffectedTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))

		_, err := f.svc.AcceptOffer(ctx, "offer-10", dto.AcceptOfferRequest{PaymentMethod: "cash"})

		assert.Error(t, err)
		assert.Equal(t, 500, failure.GetCode(err))
	})
}

func TestNegotiation_CreateOffer(t *testing.T) {
	pinClock(t)

	price := 280.0
	req := dto.CreateOfferRequest{RequestID: "request-5", OfferedPrice: &price}

	t.Run("first offer moves the request to responded", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), vendor)

		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusPending), nil)
		f.lookup.EXPECT().Fulfils(gomock.Any(), vendor, vendor.ID, gomock.Nil()).Return(true, nil)
		f.offers.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
		f.requests.EXPECT().
			UpdateAffectedTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, changes map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, "responded", statusOf(changes))

				return 1, nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		res, err := f.svc.CreateOffer(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, model.OfferStatusPending, res.Status)
		assert.Equal(t, vendor.ID, res.VendorID)
		assert.Equal(t, 2, res.OfferedQuantity)
	})

	t.Run("second offer leaves the request responded", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), vendor)

		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusResponded), nil)
		f.lookup.EXPECT().Fulfils(gomock.Any(), vendor, vendor.ID, gomock.Nil()).Return(true, nil)
		f.offers.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		_, err := f.svc.CreateOffer(ctx, req)

		assert.NoError(t, err)
	})

	for _, status := range []model.RequestStatus{model.RequestStatusAccepted, model.RequestStatusCancelled} {
		t.Run("closed request "+string(status), func(t *testing.T) {
			f := newFixture(t)
			ctx := shared.WithPrincipal(context.Background(), vendor)

			f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(status), nil)
			f.lookup.EXPECT().Fulfils(gomock.Any(), vendor, vendor.ID, gomock.Nil()).Return(true, nil)

			_, err := f.svc.CreateOffer(ctx, req)

			assert.Equal(t, failure.ReasonInvalidTransition, failure.GetReason(err))
		})
	}

	t.Run("vendor that does not own the request", func(t *testing.T) {
		f := newFixture(t)
		other := gModel.Principal{ID: "vendor-2", Role: "vendor"}
		ctx := shared.WithPrincipal(context.Background(), other)

		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusPending), nil)
		f.lookup.EXPECT().Fulfils(gomock.Any(), other, vendor.ID, gomock.Nil()).Return(false, nil)

		_, err := f.svc.CreateOffer(ctx, req)

		assert.Equal(t, failure.ReasonUnauthorized, failure.GetReason(err))
	})

	t.Run("request not found", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), vendor)

		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(model.Request{}, nil)

		_, err := f.svc.CreateOffer(ctx, req)

		assert.Equal(t, failure.ReasonNotFound, failure.GetReason(err))
	})
}

func TestNegotiation_CancelOffer(t *testing.T) {
	pinClock(t)

	t.Run("pending offer", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), vendor)

		f.offers.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, _ ...string) (model.Offer, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, vendor.ID, args["vendor_id"])

				return offer10(t, model.OfferStatusPending), nil
			})
		f.offers.EXPECT().UpdateAffectedTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		res, err := f.svc.CancelOffer(ctx, "offer-10")

		require.NoError(t, err)
		assert.Equal(t, model.OfferStatusCancelled, res.Status)
	})

	t.Run("missing or another vendor's offer", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), vendor)

		f.offers.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(model.Offer{}, nil)

		_, err := f.svc.CancelOffer(ctx, "offer-10")

		assert.Equal(t, failure.ReasonNotFound, failure.GetReason(err))
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("accepted offer", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), vendor)

		f.offers.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(offer10(t, model.OfferStatusAccepted), nil)

		_, err := f.svc.CancelOffer(ctx, "offer-10")

		assert.Equal(t, failure.ReasonInvalidTransition, failure.GetReason(err))
	})
}

func TestNegotiation_CreateRequest(t *testing.T) {
	pinClock(t)

	t.Run("addressed to the listing vendor", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		f.lookup.EXPECT().Get(gomock.Any(), listing.ID).Return(listing, nil)
		f.requests.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		res, err := f.svc.CreateRequest(ctx, dto.CreateRequestRequest{ListingID: listing.ID, RequestedStart: "2025-07-10", RequestedEnd: "2025-07-12"})

		require.NoError(t, err)
		assert.Equal(t, model.RequestStatusPending, res.Status)
		assert.Equal(t, vendor.ID, res.VendorID)
		assert.Equal(t, "2025-07-10", res.RequestedStart)
	})

	t.Run("listing not found", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		f.lookup.EXPECT().Get(gomock.Any(), "missing").Return(listingModel.Listing{}, failure.NotFound("listing not found"))

		_, err := f.svc.CreateRequest(ctx, dto.CreateRequestRequest{ListingID: "missing"})

		assert.Equal(t, failure.ReasonNotFound, failure.GetReason(err))
	})

	t.Run("inverted dates", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		f.lookup.EXPECT().Get(gomock.Any(), listing.ID).Return(listing, nil)

		_, err := f.svc.CreateRequest(ctx, dto.CreateRequestRequest{ListingID: listing.ID, RequestedStart: "2025-07-12", RequestedEnd: "2025-07-10"})

		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestNegotiation_CancelRequest(t *testing.T) {
	pinClock(t)

	t.Run("open request and its pending offers", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusResponded), nil)
		f.requests.EXPECT().UpdateAffectedTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.offers.EXPECT().
			UpdateAffectedTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, changes map[string]any, filter gDto.FilterGroup) (int64, error) {
				assert.Equal(t, "cancelled", statusOf(changes))

				where, _ := filter.GetWhereClause()
				assert.NotContains(t, where, "!=")

				return 1, nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

		res, err := f.svc.CancelRequest(ctx, "request-5")

		require.NoError(t, err)
		assert.Equal(t, model.RequestStatusCancelled, res.Status)
	})

	t.Run("accepted request", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusAccepted), nil)

		_, err := f.svc.CancelRequest(ctx, "request-5")

		assert.Equal(t, failure.ReasonInvalidTransition, failure.GetReason(err))
	})

	t.Run("not the requester", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), vendor)

		f.requests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(request5(model.RequestStatusPending), nil)

		_, err := f.svc.CancelRequest(ctx, "request-5")

		assert.Equal(t, failure.ReasonUnauthorized, failure.GetReason(err))
	})
}

func TestNegotiation_GetRequestStatus(t *testing.T) {
	t.Run("latest request with offers", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		f.requests.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Request, error) {
				assert.Equal(t, 1, params.Limit)
				assert.Equal(t, "DESC", params.SortDir)

				return []model.Request{request5(model.RequestStatusResponded)}, nil
			})
		f.offers.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Offer{offer10(t, model.OfferStatusPending)}, nil)

		res, err := f.svc.GetRequestStatus(ctx, listing.ID)

		require.NoError(t, err)
		require.Len(t, res.Offers, 1)
		assert.Equal(t, "offer-10", res.Offers[0].ID)
	})

	t.Run("no request yet", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), customer)

		f.requests.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Request{}, nil)

		_, err := f.svc.GetRequestStatus(ctx, listing.ID)

		assert.Equal(t, failure.ReasonNotFound, failure.GetReason(err))
	})
}

func TestNegotiation_ListVendorRequests(t *testing.T) {
	t.Run("not a member of the business", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), vendor)

		f.lookup.EXPECT().IsBusinessMember(gomock.Any(), "biz-1", vendor.ID).Return(false, nil)

		_, err := f.svc.ListVendorRequests(ctx, gDto.QueryParams{}, "biz-1")

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("own requests", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithPrincipal(context.Background(), vendor)

		f.requests.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, vendor.ID, args["vendor_id"])

				return 1, nil
			})
		f.requests.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Request{request5(model.RequestStatusPending)}, nil)
		f.offers.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.ListVendorRequests(ctx, gDto.QueryParams{Limit: 10}, "")

		require.NoError(t, err)
		assert.Len(t, res.Requests, 1)
		assert.Empty(t, res.Requests[0].Offers)
	})
}

func TestNegotiation_ListUserRequests(t *testing.T) {
	f := newFixture(t)
	ctx := shared.WithPrincipal(context.Background(), customer)

	f.requests.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	f.requests.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Request{}, nil)

	res, err := f.svc.ListUserRequests(ctx, gDto.QueryParams{Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, res.Requests)
	assert.Equal(t, 0, res.TotalData)
}
