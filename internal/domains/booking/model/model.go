package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"bazaar/shared/constant"
	"bazaar/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldOfferID            = "offer_id"
	FieldRequestID          = "request_id"
	FieldListingID          = "listing_id"
	FieldUserID             = "user_id"
	FieldVendorID           = "vendor_id"
	FieldBusinessID         = "business_id"
	FieldCategoryID         = "category_id"
	FieldStartDate          = "start_date"
	FieldEndDate            = "end_date"
	FieldBookingDate        = "booking_date"
	FieldHoldsInventory     = "holds_inventory"
	FieldStatus             = "status"
	FieldVendorNotes        = "vendor_notes"
	FieldCancellationReason = "cancellation_reason"
	FieldConfirmedAt        = "confirmed_at"
	FieldCancelledAt        = "cancelled_at"
	FieldCompletedAt        = "completed_at"
)

// Cache prefixes are shared with the negotiation flow, which also creates bookings.
const (
	CacheKeyGet   = "booking:get"
	CacheKeyList  = "booking:gets"
	CacheKeyCount = "booking:count"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusAppealed  Status = "appealed"
)

// transitions is the full status graph; a status missing from a list is not reachable from that state.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCancelled: {},
	StatusRejected:  {},
	StatusCompleted: {},
	StatusAppealed:  {},
}

// InactiveStatuses release the listing's dates.
var InactiveStatuses = []Status{StatusCancelled, StatusRejected}

func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusRejected, StatusCompleted, StatusAppealed}
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]

	return ok
}

func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(transitions[s], target)
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// HoldsDates reports whether a booking in this status blocks its dates for others.
func (s Status) HoldsDates() bool {
	return !slices.Contains(InactiveStatuses, s)
}

const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"

	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

// PaymentStatusFor records a declared method; no gateway is involved.
func PaymentStatusFor(method string) string {
	if method == PaymentMethodCard {
		return PaymentStatusPaid
	}

	return PaymentStatusUnpaid
}

const GuestTotalKey = "total"

// Guests holds the declared total under "total" plus optional per-type counts.
type Guests map[string]int

func (g Guests) Total() int {
	return g[GuestTotalKey]
}

func (g *Guests) Scan(src any) error {
	return scanJSON(src, g)
}

func (g Guests) Value() (driver.Value, error) {
	if g == nil {
		g = Guests{}
	}

	return valueJSON(g)
}

// JSONMap maps free-form JSONB columns.
type JSONMap map[string]any

func (m *JSONMap) Scan(src any) error {
	return scanJSON(src, m)
}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}

	return valueJSON(m)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst) //nolint:wrapcheck
	case string:
		return json.Unmarshal([]byte(v), dst) //nolint:wrapcheck
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
}

func valueJSON(v any) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json column: %w", err)
	}

	return string(raw), nil
}

// DateSpan is an inclusive range of calendar days.
type DateSpan struct {
	Start time.Time
	End   time.Time
}

func SingleDay(day time.Time) DateSpan {
	return DateSpan{Start: day, End: day}
}

// Overlaps applies the listing conflict rule; for single days it reduces to equality.
func (d DateSpan) Overlaps(other DateSpan) bool {
	within := func(t time.Time, span DateSpan) bool {
		return !t.Before(span.Start) && !t.After(span.End)
	}

	return within(other.Start, d) ||
		within(other.End, d) ||
		(!other.Start.After(d.Start) && !d.End.After(other.End))
}

type Booking struct {
	ID                 string     `db:"id"`
	OfferID            *string    `db:"offer_id"`
	RequestID          *string    `db:"request_id"`
	ListingID          string     `db:"listing_id"`
	UserID             string     `db:"user_id"`
	VendorID           string     `db:"vendor_id"`
	BusinessID         *string    `db:"business_id"`
	CategoryID         string     `db:"category_id"`
	BookingDate        *time.Time `db:"booking_date"`
	StartDate          *time.Time `db:"start_date"`
	EndDate            *time.Time `db:"end_date"`
	BookingTime        *string    `db:"booking_time"`
	HoldsInventory     bool       `db:"holds_inventory"`
	Guests             Guests     `db:"guests"`
	TotalPrice         float64    `db:"total_price"`
	Currency           string     `db:"currency"`
	PaymentMethod      string     `db:"payment_method"`
	PaymentStatus      string     `db:"payment_status"`
	Status             Status     `db:"status"`
	CustomData         JSONMap    `db:"custom_data"`
	PricingBreakdown   JSONMap    `db:"pricing_breakdown"`
	VendorNotes        *string    `db:"vendor_notes"`
	CancellationReason *string    `db:"cancellation_reason"`
	ConfirmedAt        *time.Time `db:"confirmed_at"`
	CancelledAt        *time.Time `db:"cancelled_at"`
	CompletedAt        *time.Time `db:"completed_at"`
	model.Metadata
}

// FirstDay is the start date for stays or the booking date for single-day categories.
func (b Booking) FirstDay() (time.Time, bool) {
	if b.StartDate != nil {
		return *b.StartDate, true
	}

	if b.BookingDate != nil {
		return *b.BookingDate, true
	}

	return time.Time{}, false
}

// StartsAt combines the first day with the booking time in loc. Midnight when no time is set.
func (b Booking) StartsAt(loc *time.Location) (time.Time, bool) {
	day, ok := b.FirstDay()
	if !ok {
		return time.Time{}, false
	}

	hour, minute := 0, 0

	if b.BookingTime != nil {
		if clock, err := time.Parse(constant.ClockFormat, *b.BookingTime); err == nil {
			hour, minute = clock.Hour(), clock.Minute()
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), true
}

// ParseDay reads a YYYY-MM-DD calendar day as UTC midnight so day arithmetic is exact.
func ParseDay(value string) (time.Time, error) {
	day, err := time.Parse(constant.DayFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", value, err)
	}

	return day, nil
}

// DayOf truncates an instant to its calendar day in the instant's own location.
func DayOf(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / constant.HoursPerDay)
}

// Payload is the category-dependent part of a booking submission, kept raw so every rule can report on it.
type Payload struct {
	StartDate   string         `json:"start_date,omitempty"`
	EndDate     string         `json:"end_date,omitempty"`
	BookingDate string         `json:"booking_date,omitempty"`
	BookingTime string         `json:"booking_time,omitempty"`
	Guests      Guests         `json:"guests,omitempty"`
	CustomData  map[string]any `json:"custom_data,omitempty"`
}
