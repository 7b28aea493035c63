package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bazaar/internal/domains/booking/model"
	categoryModel "bazaar/internal/domains/category/model"
	listingModel "bazaar/internal/domains/listing/model"
	"bazaar/shared/constant"
	gDto "bazaar/shared/dto"
	gModel "bazaar/shared/model"
	"bazaar/shared/timezone"
)

// PayloadRequest is the body of validate and check-availability: a listing plus the category dependent fields.
type PayloadRequest struct {
	ListingID string `json:"listingId" validate:"required"`
	model.Payload
}

type CreateBookingRequest struct {
	PayloadRequest
	TotalPrice       *float64       `json:"total_price"       validate:"omitempty,gte=0"`
	Currency         string         `json:"currency"          validate:"omitempty,len=3"`
	PaymentMethod    string         `json:"payment_method"    validate:"omitempty,max=32"`
	PricingBreakdown map[string]any `json:"pricing_breakdown"`
}

// Draft is what Create resolved before the booking is persisted.
type Draft struct {
	Principal       gModel.Principal
	Listing         listingModel.Listing
	DateType        categoryModel.DateType
	HoldsInventory  bool
	DefaultCurrency string
	Now             time.Time
}

func parseOptionalDay(field, value string) (*time.Time, error) {
	if value == constant.Empty {
		return nil, nil //nolint:nilnil
	}

	day, err := model.ParseDay(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}

	return &day, nil
}

func optionalString(value string) *string {
	if value == constant.Empty {
		return nil
	}

	return &value
}

// ToModel builds a confirmed direct booking. Dates that do not parse are rejected even when the
// category treats them as informational.
func (c *CreateBookingRequest) ToModel(draft Draft) (model.Booking, error) {
	startDate, err := parseOptionalDay("start_date", c.StartDate)
	if err != nil {
		return model.Booking{}, err
	}

	endDate, err := parseOptionalDay("end_date", c.EndDate)
	if err != nil {
		return model.Booking{}, err
	}

	bookingDate, err := parseOptionalDay("booking_date", c.BookingDate)
	if err != nil {
		return model.Booking{}, err
	}

	// Only the fields the category books by are kept, so the stored stay is the span that was checked.
	switch draft.DateType {
	case categoryModel.DateTypeSingle:
		startDate, endDate = nil, nil
	case categoryModel.DateTypeRange:
		bookingDate = nil
	case categoryModel.DateTypeNone:
	}

	guests := c.Guests
	if len(guests) == 0 {
		guests = model.Guests{model.GuestTotalKey: constant.DefaultGuests}
	}

	totalPrice := draft.Listing.Price
	if c.TotalPrice != nil {
		totalPrice = *c.TotalPrice
	}

	currency := c.Currency
	if currency == constant.Empty {
		currency = draft.Listing.Currency
	}

	if currency == constant.Empty {
		currency = draft.DefaultCurrency
	}

	paymentMethod := c.PaymentMethod
	if paymentMethod == constant.Empty {
		paymentMethod = model.PaymentMethodCash
	}

	now := draft.Now

	return model.Booking{
		ID:               uuid.NewString(),
		ListingID:        draft.Listing.ID,
		UserID:           draft.Principal.ID,
		VendorID:         draft.Listing.VendorID,
		BusinessID:       draft.Listing.BusinessID,
		CategoryID:       draft.Listing.CategoryID,
		BookingDate:      bookingDate,
		StartDate:        startDate,
		EndDate:          endDate,
		BookingTime:      optionalString(c.BookingTime),
		HoldsInventory:   draft.HoldsInventory,
		Guests:           guests,
		TotalPrice:       totalPrice,
		Currency:         currency,
		PaymentMethod:    paymentMethod,
		PaymentStatus:    model.PaymentStatusFor(paymentMethod),
		Status:           model.StatusConfirmed,
		CustomData:       c.CustomData,
		PricingBreakdown: c.PricingBreakdown,
		ConfirmedAt:      &now,
		Metadata:         gModel.NewMetadata(now, draft.Principal.ID),
	}, nil
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required,oneof=pending confirmed cancelled rejected completed appealed"`
	Notes  string       `json:"notes"  validate:"omitempty,max=1000"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

// BookingFilter holds the optional list filters shared by the customer and vendor listings.
type BookingFilter struct {
	Status     string `json:"status"      validate:"omitempty,oneof=pending confirmed cancelled rejected completed appealed"`
	CategoryID string `json:"category_id" validate:"omitempty"`
	BusinessID string `json:"business_id" validate:"omitempty"`
}

func (f *BookingFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.Status = query.Get(constant.RequestParamStatus)
	f.CategoryID = query.Get(constant.RequestParamCategoryID)
	f.BusinessID = query.Get(constant.RequestParamBusinessID)
}

// ToFilterGroup scopes the listing to ownerField = ownerID before applying the optional filters.
func (f *BookingFilter) ToFilterGroup(ownerField, ownerID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: ownerField, Value: ownerID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if f.Status != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.CategoryID != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldCategoryID, Value: f.CategoryID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Pricing struct {
	BasePrice float64 `json:"basePrice"`
	Currency  string  `json:"currency"`
}

type RequirementsResponse struct {
	ListingID     string                      `json:"listingId"`
	Category      CategorySummary             `json:"category"`
	BookingConfig categoryModel.BookingConfig `json:"bookingConfig"`
	Pricing       Pricing                     `json:"pricing"`
}

func (r *RequirementsResponse) FromModels(listing listingModel.Listing, category categoryModel.Category, defaultCurrency string) {
	r.ListingID = listing.ID
	r.Category = CategorySummary{ID: category.ID, Name: category.Name, Slug: category.Slug}
	r.BookingConfig = category.BookingConfig

	r.Pricing = Pricing{BasePrice: listing.Price, Currency: listing.Currency}
	if r.Pricing.Currency == constant.Empty {
		r.Pricing.Currency = defaultCurrency
	}
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

type ValidationResponse struct {
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors,omitempty"`
	Message string   `json:"message,omitempty"`
}

type BookingResponse struct {
	ID                 string         `json:"id"`
	OfferID            *string        `json:"offer_id"`
	RequestID          *string        `json:"request_id"`
	ListingID          string         `json:"listing_id"`
	UserID             string         `json:"user_id"`
	VendorID           string         `json:"vendor_id"`
	BusinessID         *string        `json:"business_id"`
	CategoryID         string         `json:"category_id"`
	BookingDate        string         `json:"booking_date,omitempty"`
	StartDate          string         `json:"start_date,omitempty"`
	EndDate            string         `json:"end_date,omitempty"`
	BookingTime        *string        `json:"booking_time"`
	Guests             model.Guests   `json:"guests"`
	TotalPrice         float64        `json:"total_price"`
	Currency           string         `json:"currency"`
	PaymentMethod      string         `json:"payment_method"`
	PaymentStatus      string         `json:"payment_status"`
	Status             model.Status   `json:"status"`
	CustomData         map[string]any `json:"custom_data"`
	PricingBreakdown   map[string]any `json:"pricing_breakdown"`
	VendorNotes        *string        `json:"vendor_notes"`
	CancellationReason *string        `json:"cancellation_reason"`
	ConfirmedAt        string         `json:"confirmed_at,omitempty"`
	CancelledAt        string         `json:"cancelled_at,omitempty"`
	CompletedAt        string         `json:"completed_at,omitempty"`
	gDto.Metadata
}

func formatDay(t *time.Time) string {
	if t == nil {
		return constant.Empty
	}

	return t.Format(constant.DayFormat)
}

func formatInstant(t *time.Time) string {
	if t == nil {
		return constant.Empty
	}

	return timezone.Format(*t, constant.DateFormat)
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.OfferID = model.OfferID
	r.RequestID = model.RequestID
	r.ListingID = model.ListingID
	r.UserID = model.UserID
	r.VendorID = model.VendorID
	r.BusinessID = model.BusinessID
	r.CategoryID = model.CategoryID
	r.BookingDate = formatDay(model.BookingDate)
	r.StartDate = formatDay(model.StartDate)
	r.EndDate = formatDay(model.EndDate)
	r.BookingTime = model.BookingTime
	r.Guests = model.Guests
	r.TotalPrice = model.TotalPrice
	r.Currency = model.Currency
	r.PaymentMethod = model.PaymentMethod
	r.PaymentStatus = model.PaymentStatus
	r.Status = model.Status
	r.CustomData = model.CustomData
	r.PricingBreakdown = model.PricingBreakdown
	r.VendorNotes = model.VendorNotes
	r.CancellationReason = model.CancellationReason
	r.ConfirmedAt = formatInstant(model.ConfirmedAt)
	r.CancelledAt = formatInstant(model.CancelledAt)
	r.CompletedAt = formatInstant(model.CompletedAt)
	r.Metadata.FromModel(model.Metadata)
}

// Party reports whether the user is the customer or the recorded vendor.
func (r *BookingResponse) Party(userID string) bool {
	return r.UserID == userID || r.VendorID == userID
}

type BookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	gDto.Page
}

func (r *BookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.Page = gDto.NewPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
