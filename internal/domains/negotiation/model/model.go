package model

import (
	"slices"
	"time"

	bookingModel "bazaar/internal/domains/booking/model"
	"bazaar/shared/model"
)

const (
	RequestTableName  = "user_requests"
	RequestEntityName = "request"
	OfferTableName    = "vendor_offers"
	OfferEntityName   = "offer"

	FieldID         = "id"
	FieldListingID  = "listing_id"
	FieldUserID     = "user_id"
	FieldVendorID   = "vendor_id"
	FieldBusinessID = "business_id"
	FieldRequestID  = "request_id"
	FieldStatus     = "status"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusResponded RequestStatus = "responded"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusCancelled RequestStatus = "cancelled"
)

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:   {RequestStatusResponded, RequestStatusCancelled},
	RequestStatusResponded: {RequestStatusAccepted, RequestStatusCancelled},
	RequestStatusAccepted:  {},
	RequestStatusCancelled: {},
}

func RequestStatuses() []RequestStatus {
	return []RequestStatus{RequestStatusPending, RequestStatusResponded, RequestStatusAccepted, RequestStatusCancelled}
}

func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	return slices.Contains(requestTransitions[s], target)
}

func (s RequestStatus) IsTerminal() bool {
	return len(requestTransitions[s]) == 0
}

// AcceptsOffers reports whether a vendor may still answer the request. A responded request takes further offers.
func (s RequestStatus) AcceptsOffers() bool {
	return s == RequestStatusPending || s == RequestStatusResponded
}

type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "pending"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusCancelled OfferStatus = "cancelled"
)

var offerTransitions = map[OfferStatus][]OfferStatus{
	OfferStatusPending:   {OfferStatusAccepted, OfferStatusCancelled},
	OfferStatusAccepted:  {},
	OfferStatusCancelled: {},
}

func OfferStatuses() []OfferStatus {
	return []OfferStatus{OfferStatusPending, OfferStatusAccepted, OfferStatusCancelled}
}

func (s OfferStatus) CanTransitionTo(target OfferStatus) bool {
	return slices.Contains(offerTransitions[s], target)
}

func (s OfferStatus) IsTerminal() bool {
	return len(offerTransitions[s]) == 0
}

// Request is a customer's ask for a listing before price and dates are agreed.
type Request struct {
	ID             string        `db:"id"`
	ListingID      string        `db:"listing_id"`
	UserID         string        `db:"user_id"`
	VendorID       string        `db:"vendor_id"`
	BusinessID     *string       `db:"business_id"`
	RequestedStart *time.Time    `db:"requested_start"`
	RequestedEnd   *time.Time    `db:"requested_end"`
	Quantity       int           `db:"quantity"`
	UserMessage    *string       `db:"user_message"`
	Status         RequestStatus `db:"status"`
	model.Metadata
}

// Offer is a vendor's answer to a request.
type Offer struct {
	ID              string      `db:"id"`
	RequestID       string      `db:"request_id"`
	VendorID        string      `db:"vendor_id"`
	OfferedStart    *time.Time  `db:"offered_start"`
	OfferedEnd      *time.Time  `db:"offered_end"`
	OfferedQuantity int         `db:"offered_quantity"`
	OfferedPrice    float64     `db:"offered_price"`
	OfferMessage    *string     `db:"offer_message"`
	Status          OfferStatus `db:"status"`
	model.Metadata
}

// Span is the offered stay, or false when the offer carries no start day.
func (o Offer) Span() (bookingModel.DateSpan, bool) {
	if o.OfferedStart == nil {
		return bookingModel.DateSpan{}, false
	}

	if o.OfferedEnd == nil {
		return bookingModel.SingleDay(*o.OfferedStart), true
	}

	return bookingModel.DateSpan{Start: *o.OfferedStart, End: *o.OfferedEnd}, true
}
