package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar/internal/domains/booking/model"
	"bazaar/internal/domains/booking/model/dto"
	categoryModel "bazaar/internal/domains/category/model"
	listingModel "bazaar/internal/domains/listing/model"
	gModel "bazaar/shared/model"
)

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func draft(dateType categoryModel.DateType) dto.Draft {
	return dto.Draft{
		Principal:       gModel.Principal{ID: "customer-1", Role: "customer"},
		Listing:         listingModel.Listing{ID: "listing-1", VendorID: "vendor-1", CategoryID: "tours", Price: 80},
		DateType:        dateType,
		HoldsInventory:  true,
		DefaultCurrency: "USD",
		Now:             now,
	}
}

func request(payload model.Payload) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{PayloadRequest: dto.PayloadRequest{ListingID: "listing-1", Payload: payload}}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	both := model.Payload{StartDate: "2025-07-01", EndDate: "2025-07-03", BookingDate: "2025-07-09"}

	t.Run("single date categories keep only the booking date", func(t *testing.T) {
		req := request(both)

		booking, err := req.ToModel(draft(categoryModel.DateTypeSingle))

		require.NoError(t, err)
		require.NotNil(t, booking.BookingDate)
		assert.Equal(t, "2025-07-09", booking.BookingDate.Format(time.DateOnly))
		assert.Nil(t, booking.StartDate)
		assert.Nil(t, booking.EndDate)

		first, ok := booking.FirstDay()
		assert.True(t, ok)
		assert.Equal(t, *booking.BookingDate, first)
	})

	t.Run("range categories keep only the stay", func(t *testing.T) {
		req := request(both)

		booking, err := req.ToModel(draft(categoryModel.DateTypeRange))

		require.NoError(t, err)
		assert.Nil(t, booking.BookingDate)
		assert.Equal(t, "2025-07-01", booking.StartDate.Format(time.DateOnly))
		assert.Equal(t, "2025-07-03", booking.EndDate.Format(time.DateOnly))
	})

	t.Run("informational dates are kept as sent", func(t *testing.T) {
		req := request(both)

		booking, err := req.ToModel(draft(categoryModel.DateTypeNone))

		require.NoError(t, err)
		assert.NotNil(t, booking.BookingDate)
		assert.NotNil(t, booking.StartDate)
		assert.NotNil(t, booking.EndDate)
	})

	t.Run("defaults", func(t *testing.T) {
		req := request(model.Payload{BookingDate: "2025-07-09"})

		booking, err := req.ToModel(draft(categoryModel.DateTypeSingle))

		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, booking.Status)
		assert.Equal(t, model.PaymentMethodCash, booking.PaymentMethod)
		assert.Equal(t, model.PaymentStatusUnpaid, booking.PaymentStatus)
		assert.Equal(t, "USD", booking.Currency)
		assert.InDelta(t, 80, booking.TotalPrice, 0.001)
		assert.Equal(t, "vendor-1", booking.VendorID)
		assert.Equal(t, "customer-1", booking.UserID)
	})

	t.Run("malformed date", func(t *testing.T) {
		req := request(model.Payload{StartDate: "01/07/2025"})

		_, err := req.ToModel(draft(categoryModel.DateTypeRange))

		assert.ErrorContains(t, err, "start_date")
	})
}
