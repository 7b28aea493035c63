// Package validation interprets a category's BookingConfig against a booking payload.
// Rules are independent: every violation is reported, none short-circuits another.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"bazaar/internal/domains/booking/model"
	categoryModel "bazaar/internal/domains/category/model"
	"bazaar/shared/constant"
)

const (
	MsgRangeRequired     = "Start date and end date are required for range bookings"
	MsgMinBookingDays    = "Minimum booking duration is %d days"
	MsgMaxBookingDays    = "Maximum booking duration is %d days"
	MsgEndBeforeStart    = "End date must be on or after start date"
	MsgDateRequired      = "Booking date is required"
	MsgInvalidDate       = "%s must be a valid date (YYYY-MM-DD)"
	MsgAdvanceBooking    = "Bookings must be made at least %d days in advance"
	MsgTimeRequired      = "Booking time is required"
	MsgInvalidTime       = "Booking time must be in HH:MM format"
	MsgGuestsRequired    = "Guest count is required"
	MsgNegativeGuests    = "Guest counts cannot be negative"
	MsgGuestBreakdown    = "Guest breakdown does not match total"
	MsgCustomFieldNeeded = "%s is required"
)

type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

type rule func(cfg categoryModel.BookingConfig, payload model.Payload, today time.Time) []string

var rules = []rule{
	checkDates,
	checkAdvance,
	checkTime,
	checkGuests,
	checkCustomFields,
}

// Validate never fails on its own; now only supplies today's calendar day.
func Validate(cfg categoryModel.BookingConfig, payload model.Payload, now time.Time) Result {
	if !cfg.RequiresBooking {
		return Result{Valid: true}
	}

	today := model.DayOf(now)
	errs := []string{}

	for _, check := range rules {
		errs = append(errs, check(cfg, payload, today)...)
	}

	if len(errs) > 0 {
		return Result{Valid: false, Errors: errs}
	}

	return Result{Valid: true}
}

func parseField(label, value string) (time.Time, string, bool) {
	day, err := model.ParseDay(value)
	if err != nil {
		return time.Time{}, fmt.Sprintf(MsgInvalidDate, label), false
	}

	return day, "", true
}

func checkDates(cfg categoryModel.BookingConfig, payload model.Payload, _ time.Time) []string {
	switch cfg.DateType {
	case categoryModel.DateTypeRange:
		return checkRange(cfg, payload)
	case categoryModel.DateTypeSingle:
		if payload.BookingDate == constant.Empty {
			return []string{MsgDateRequired}
		}

		if _, msg, ok := parseField("Booking date", payload.BookingDate); !ok {
			return []string{msg}
		}
	case categoryModel.DateTypeNone:
	}

	return nil
}

func checkRange(cfg categoryModel.BookingConfig, payload model.Payload) []string {
	if payload.StartDate == constant.Empty || payload.EndDate == constant.Empty {
		return []string{MsgRangeRequired}
	}

	errs := []string{}

	start, msg, startOK := parseField("Start date", payload.StartDate)
	if !startOK {
		errs = append(errs, msg)
	}

	end, msg, endOK := parseField("End date", payload.EndDate)
	if !endOK {
		errs = append(errs, msg)
	}

	if !startOK || !endOK {
		return errs
	}

	if end.Before(start) {
		return append(errs, MsgEndBeforeStart)
	}

	days := model.DaysBetween(start, end)

	if isSet(cfg.MinBookingDays) && days < *cfg.MinBookingDays {
		errs = append(errs, fmt.Sprintf(MsgMinBookingDays, *cfg.MinBookingDays))
	}

	if isSet(cfg.MaxBookingDays) && days > *cfg.MaxBookingDays {
		errs = append(errs, fmt.Sprintf(MsgMaxBookingDays, *cfg.MaxBookingDays))
	}

	return errs
}

// checkAdvance measures from today's midnight to the first booked day.
// Unparsable dates are reported by checkDates.
func checkAdvance(cfg categoryModel.BookingConfig, payload model.Payload, today time.Time) []string {
	if !isSet(cfg.AdvanceBookingDays) {
		return nil
	}

	first := payload.StartDate
	if first == constant.Empty {
		first = payload.BookingDate
	}

	if first == constant.Empty {
		return nil
	}

	day, err := model.ParseDay(first)
	if err != nil {
		return nil
	}

	if model.DaysBetween(today, day) < *cfg.AdvanceBookingDays {
		return []string{fmt.Sprintf(MsgAdvanceBooking, *cfg.AdvanceBookingDays)}
	}

	return nil
}

func checkTime(cfg categoryModel.BookingConfig, payload model.Payload, _ time.Time) []string {
	if payload.BookingTime == constant.Empty {
		if cfg.RequiresTime {
			return []string{MsgTimeRequired}
		}

		return nil
	}

	if _, err := time.Parse(constant.ClockFormat, payload.BookingTime); err != nil {
		return []string{MsgInvalidTime}
	}

	return nil
}

func checkGuests(cfg categoryModel.BookingConfig, payload model.Payload, _ time.Time) []string {
	if !cfg.RequiresGuests {
		return nil
	}

	errs := []string{}
	total := payload.Guests.Total()

	if total < 1 {
		errs = append(errs, MsgGuestsRequired)
	}

	if len(cfg.GuestTypes) == 0 {
		return errs
	}

	sum := 0
	negative := false

	for _, guestType := range cfg.GuestTypes {
		count := payload.Guests[guestType]
		if count < 0 {
			negative = true
		}

		sum += count
	}

	if negative {
		errs = append(errs, MsgNegativeGuests)
	}

	if sum != total {
		errs = append(errs, MsgGuestBreakdown)
	}

	return errs
}

func checkCustomFields(cfg categoryModel.BookingConfig, payload model.Payload, _ time.Time) []string {
	errs := []string{}

	for _, field := range cfg.CustomFields {
		if !field.Required || !isEmpty(payload.CustomData[field.Name]) {
			continue
		}

		label := field.Label
		if label == constant.Empty {
			label = field.Name
		}

		errs = append(errs, fmt.Sprintf(MsgCustomFieldNeeded, label))
	}

	return errs
}

func isSet(limit *int) bool {
	return limit != nil && *limit > 0
}

// isEmpty treats missing, null, blank text and empty collections as no answer.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	if text, ok := value.(string); ok {
		return strings.TrimSpace(text) == constant.Empty
	}

	v := reflect.ValueOf(value)

	switch v.Kind() { //nolint:exhaustive
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
