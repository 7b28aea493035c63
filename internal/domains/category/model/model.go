package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"bazaar/shared/model"
)

const (
	TableName  = "categories"
	EntityName = "category"

	FieldID            = "id"
	FieldName          = "name"
	FieldSlug          = "slug"
	FieldBookingConfig = "booking_config"
)

type DateType string

const (
	DateTypeRange  DateType = "range"
	DateTypeSingle DateType = "single"
	DateTypeNone   DateType = "none"
)

type CustomField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// BookingConfig is stored as JSONB on the category row and must keep this exact shape.
type BookingConfig struct {
	RequiresBooking    bool          `json:"requires_booking"`
	DateType           DateType      `json:"date_type"`
	RequiresTime       bool          `json:"requires_time"`
	RequiresGuests     bool          `json:"requires_guests"`
	GuestTypes         []string      `json:"guest_types"`
	MinBookingDays     *int          `json:"min_booking_days,omitempty"`
	MaxBookingDays     *int          `json:"max_booking_days,omitempty"`
	AdvanceBookingDays *int          `json:"advance_booking_days,omitempty"`
	CancellationHours  *int          `json:"cancellation_hours,omitempty"`
	CustomFields       []CustomField `json:"custom_fields,omitempty"`
}

// Scan implements sql.Scanner.
func (c *BookingConfig) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		*c = BookingConfig{}

		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported booking config type %T", src)
	}

	if err := json.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("failed to decode booking config: %w", err)
	}

	return nil
}

// Value implements driver.Valuer.
func (c BookingConfig) Value() (driver.Value, error) {
	if c.GuestTypes == nil {
		c.GuestTypes = []string{}
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode booking config: %w", err)
	}

	return string(raw), nil
}

var errUnknownDateType = errors.New("unknown date_type")

// Check rejects documents the validator cannot interpret. A missing date_type reads as none.
func (c BookingConfig) Check() error {
	switch c.DateType {
	case DateTypeRange, DateTypeSingle, DateTypeNone, "":
		return nil
	default:
		return fmt.Errorf("%w: %s", errUnknownDateType, c.DateType)
	}
}

// CancellationWindow returns the configured window in hours, or fallback when unset.
func (c BookingConfig) CancellationWindow(fallback int) int {
	if c.CancellationHours == nil {
		return fallback
	}

	return *c.CancellationHours
}

type Category struct {
	ID            string        `db:"id"`
	Name          string        `db:"name"`
	Slug          string        `db:"slug"`
	BookingConfig BookingConfig `db:"booking_config"`
	model.Metadata
}
