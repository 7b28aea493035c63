package service_test

//nolint:revive
import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar/config"
	"bazaar/infras/kafka"
	"bazaar/infras/otel/mocks"
	"bazaar/infras/postgres"
	"bazaar/internal/domains/booking/availability"
	bookingRepository "bazaar/internal/domains/booking/repository"
	categoryRepository "bazaar/internal/domains/category/repository"
	categoryService "bazaar/internal/domains/category/service"
	listingRepository "bazaar/internal/domains/listing/repository"
	listingService "bazaar/internal/domains/listing/service"
	"bazaar/internal/domains/negotiation/model/dto"
	"bazaar/internal/domains/negotiation/repository"
	"bazaar/internal/domains/negotiation/service"
	"bazaar/internal/events"
	"bazaar/shared"
	"bazaar/shared/cache"
	"bazaar/shared/failure"
	gModel "bazaar/shared/model"
)

const dsnEnv = "BAZAAR_TEST_POSTGRES_DSN"

type store struct {
	db        *sqlx.DB
	svc       service.Negotiation
	listingID string
	requestID string
	customer  gModel.Principal
}

func openStore(t *testing.T) store {
	t.Helper()

	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s not set", dsnEnv)
	}

	mig, err := migrate.New("file://../../../../migrations/postgres", dsn)
	require.NoError(t, err)

	if err = mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err)
	}

	_, _ = mig.Close()

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Booking.DefaultCancellationHours = 24
	cfg.Booking.DefaultCurrency = "USD"
	cfg.DB.Postgres.TxMaxRetry = 5
	cfg.DB.Postgres.TxRetryWaitMS = 10

	conn := &postgres.Connection{Read: db, Write: db}
	otl := mocks.NewOtel()
	bookings := bookingRepository.New(conn, otl)

	svc := service.New(
		repository.NewRequest(conn, otl),
		repository.NewOffer(conn, otl),
		bookings,
		categoryService.New(categoryRepository.New(conn, otl), otl),
		listingService.New(listingRepository.New(conn, otl), listingRepository.NewBusiness(conn, otl), otl),
		availability.New(bookings, otl),
		postgres.NewTransactor(conn, cfg),
		events.NewPublisher(kafka.New(cfg), cfg, otl),
		cfg,
		cache.NewRedisCache(client, otl),
		otl,
	)

	s := store{
		db:        db,
		svc:       svc,
		listingID: uuid.NewString(),
		requestID: uuid.NewString(),
		customer:  gModel.Principal{ID: "customer-" + uuid.NewString()[:8], Role: "customer"},
	}

	categoryID := uuid.NewString()

	db.MustExec(`INSERT INTO categories (id, name, slug, booking_config)
		VALUES ($1, 'Stays', $1, '{"requires_booking":true,"date_type":"range","requires_guests":true}')`, categoryID)
	db.MustExec(`INSERT INTO listings (id, vendor_id, category_id, title, price)
		VALUES ($1, 'vendor-1', $2, 'Cabin', 100)`, s.listingID, categoryID)
	db.MustExec(`INSERT INTO user_requests (id, listing_id, user_id, vendor_id, requested_start, requested_end, status)
		VALUES ($1, $2, $3, 'vendor-1', '2032-08-10', '2032-08-12', 'responded')`, s.requestID, s.listingID, s.customer.ID)

	t.Cleanup(func() {
		db.MustExec(`DELETE FROM bookings WHERE listing_id = $1`, s.listingID)
		db.MustExec(`DELETE FROM user_requests WHERE listing_id = $1`, s.listingID)
		db.MustExec(`DELETE FROM listings WHERE id = $1`, s.listingID)
		db.MustExec(`DELETE FROM categories WHERE id = $1`, categoryID)
	})

	return s
}

func (s store) offer(t *testing.T, price float64) string {
	t.Helper()

	id := uuid.NewString()
	s.db.MustExec(`INSERT INTO vendor_offers (id, request_id, vendor_id, offered_start, offered_end, offered_quantity, offered_price)
		VALUES ($1, $2, 'vendor-1', '2032-08-10', '2032-08-12', 2, $3)`, id, s.requestID, price)

	return id
}

func (s store) status(t *testing.T, table, id string) string {
	t.Helper()

	var status string
	require.NoError(t, s.db.Get(&status, `SELECT status FROM `+table+` WHERE id = $1`, id))

	return status
}

func (s store) countBookings(t *testing.T) int {
	t.Helper()

	var count int
	require.NoError(t, s.db.Get(&count, `SELECT COUNT(1) FROM bookings WHERE listing_id = $1`, s.listingID))

	return count
}

func TestAcceptOffer_RollsBackOnConflict(t *testing.T) {
	s := openStore(t)
	ctx := shared.WithPrincipal(context.Background(), s.customer)

	offerID := s.offer(t, 250)

	s.db.MustExec(`INSERT INTO bookings (id, listing_id, user_id, vendor_id, category_id, start_date, end_date, status)
		SELECT $1, id, 'someone-else', vendor_id, category_id, '2032-08-11', '2032-08-14', 'confirmed'
		FROM listings WHERE id = $2`, uuid.NewString(), s.listingID)

	_, err := s.svc.AcceptOffer(ctx, offerID, dto.AcceptOfferRequest{PaymentMethod: "card"})

	require.Error(t, err)
	assert.Equal(t, failure.ReasonConflictDetected, failure.GetReason(err))

	assert.Equal(t, 1, s.countBookings(t))
	assert.Equal(t, "pending", s.status(t, "vendor_offers", offerID))
	assert.Equal(t, "responded", s.status(t, "user_requests", s.requestID))
}

func TestAcceptOffer_ConcurrentSiblings(t *testing.T) {
	s := openStore(t)
	ctx := shared.WithPrincipal(context.Background(), s.customer)

	offers := []string{s.offer(t, 250), s.offer(t, 240)}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		lost     int
	)

	for _, offerID := range offers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := s.svc.AcceptOffer(ctx, offerID, dto.AcceptOfferRequest{PaymentMethod: "cash"})

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				accepted++
			case failure.GetReason(err) == failure.ReasonInvalidTransition:
				lost++
			default:
				t.Errorf("unexpected acceptance error: %v", err)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, lost)
	assert.Equal(t, 1, s.countBookings(t))

	var statuses []string
	require.NoError(t, s.db.Select(&statuses, `SELECT status FROM vendor_offers WHERE request_id = $1 ORDER BY status`, s.requestID))
	assert.Equal(t, []string{"accepted", "cancelled"}, statuses)
	assert.Equal(t, "accepted", s.status(t, "user_requests", s.requestID))
}
