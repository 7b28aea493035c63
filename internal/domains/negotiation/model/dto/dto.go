package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookingModel "bazaar/internal/domains/booking/model"
	listingModel "bazaar/internal/domains/listing/model"
	"bazaar/internal/domains/negotiation/model"
	"bazaar/shared/constant"
	gDto "bazaar/shared/dto"
	gModel "bazaar/shared/model"
)

var errEndBeforeStart = errors.New("end date must be on or after start date")

func parseOptionalDay(field, value string) (*time.Time, error) {
	if value == constant.Empty {
		return nil, nil //nolint:nilnil
	}

	day, err := bookingModel.ParseDay(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}

	return &day, nil
}

func parseSpan(startField, start, endField, end string) (*time.Time, *time.Time, error) {
	startDay, err := parseOptionalDay(startField, start)
	if err != nil {
		return nil, nil, err
	}

	endDay, err := parseOptionalDay(endField, end)
	if err != nil {
		return nil, nil, err
	}

	if startDay != nil && endDay != nil && endDay.Before(*startDay) {
		return nil, nil, errEndBeforeStart
	}

	return startDay, endDay, nil
}

func optionalString(value string) *string {
	if value == constant.Empty {
		return nil
	}

	return &value
}

type CreateRequestRequest struct {
	ListingID      string `json:"listing_id"      validate:"required"`
	RequestedStart string `json:"requested_start" validate:"omitempty,day"`
	RequestedEnd   string `json:"requested_end"   validate:"omitempty,day"`
	Quantity       int    `json:"quantity"        validate:"omitempty,gte=1"`
	UserMessage    string `json:"user_message"    validate:"omitempty,max=2000"`
}

// ToModel builds a pending request addressed to the listing's vendor.
func (c *CreateRequestRequest) ToModel(principal gModel.Principal, listing listingModel.Listing, now time.Time) (model.Request, error) {
	start, end, err := parseSpan("requested_start", c.RequestedStart, "requested_end", c.RequestedEnd)
	if err != nil {
		return model.Request{}, err
	}

	quantity := c.Quantity
	if quantity == 0 {
		quantity = constant.DefaultGuests
	}

	return model.Request{
		ID:             uuid.NewString(),
		ListingID:      listing.ID,
		UserID:         principal.ID,
		VendorID:       listing.VendorID,
		BusinessID:     listing.BusinessID,
		RequestedStart: start,
		RequestedEnd:   end,
		Quantity:       quantity,
		UserMessage:    optionalString(c.UserMessage),
		Status:         model.RequestStatusPending,
		Metadata:       gModel.NewMetadata(now, principal.ID),
	}, nil
}

type CreateOfferRequest struct {
	RequestID       string   `json:"request_id"       validate:"required"`
	OfferedStart    string   `json:"offered_start"    validate:"omitempty,day"`
	OfferedEnd      string   `json:"offered_end"      validate:"omitempty,day"`
	OfferedQuantity int      `json:"offered_quantity" validate:"omitempty,gte=1"`
	OfferedPrice    *float64 `json:"offered_price"    validate:"required,gte=0"`
	OfferMessage    string   `json:"offer_message"    validate:"omitempty,max=2000"`
}

// ToModel builds a pending offer. Dates and quantity left out fall back to what the customer asked for.
func (c *CreateOfferRequest) ToModel(request model.Request, vendorID string, now time.Time) (model.Offer, error) {
	start, end, err := parseSpan("offered_start", c.OfferedStart, "offered_end", c.OfferedEnd)
	if err != nil {
		return model.Offer{}, err
	}

	if start == nil && end == nil {
		start, end = request.RequestedStart, request.RequestedEnd
	}

	quantity := c.OfferedQuantity
	if quantity == 0 {
		quantity = request.Quantity
	}

	var price float64
	if c.OfferedPrice != nil {
		price = *c.OfferedPrice
	}

	return model.Offer{
		ID:              uuid.NewString(),
		RequestID:       request.ID,
		VendorID:        vendorID,
		OfferedStart:    start,
		OfferedEnd:      end,
		OfferedQuantity: quantity,
		OfferedPrice:    price,
		OfferMessage:    optionalString(c.OfferMessage),
		Status:          model.OfferStatusPending,
		Metadata:        gModel.NewMetadata(now, vendorID),
	}, nil
}

type AcceptOfferRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,max=32"`
}

type OfferResponse struct {
	ID              string            `json:"id"`
	RequestID       string            `json:"request_id"`
	VendorID        string            `json:"vendor_id"`
	OfferedStart    string            `json:"offered_start,omitempty"`
	OfferedEnd      string            `json:"offered_end,omitempty"`
	OfferedQuantity int               `json:"offered_quantity"`
	OfferedPrice    float64           `json:"offered_price"`
	OfferMessage    *string           `json:"offer_message"`
	Status          model.OfferStatus `json:"status"`
	gDto.Metadata
}

func formatDay(t *time.Time) string {
	if t == nil {
		return constant.Empty
	}

	return t.Format(constant.DayFormat)
}

func (r *OfferResponse) FromModel(offer model.Offer) {
	r.ID = offer.ID
	r.RequestID = offer.RequestID
	r.VendorID = offer.VendorID
	r.OfferedStart = formatDay(offer.OfferedStart)
	r.OfferedEnd = formatDay(offer.OfferedEnd)
	r.OfferedQuantity = offer.OfferedQuantity
	r.OfferedPrice = offer.OfferedPrice
	r.OfferMessage = offer.OfferMessage
	r.Status = offer.Status
	r.Metadata.FromModel(offer.Metadata)
}

type RequestResponse struct {
	ID             string              `json:"id"`
	ListingID      string              `json:"listing_id"`
	UserID         string              `json:"user_id"`
	VendorID       string              `json:"vendor_id"`
	BusinessID     *string             `json:"business_id"`
	RequestedStart string              `json:"requested_start,omitempty"`
	RequestedEnd   string              `json:"requested_end,omitempty"`
	Quantity       int                 `json:"quantity"`
	UserMessage    *string             `json:"user_message"`
	Status         model.RequestStatus `json:"status"`
	Offers         []OfferResponse     `json:"offers"`
	gDto.Metadata
}

// FromModel keeps only the offers made against this request.
func (r *RequestResponse) FromModel(request model.Request, offers []model.Offer) {
	r.ID = request.ID
	r.ListingID = request.ListingID
	r.UserID = request.UserID
	r.VendorID = request.VendorID
	r.BusinessID = request.BusinessID
	r.RequestedStart = formatDay(request.RequestedStart)
	r.RequestedEnd = formatDay(request.RequestedEnd)
	r.Quantity = request.Quantity
	r.UserMessage = request.UserMessage
	r.Status = request.Status
	r.Metadata.FromModel(request.Metadata)

	r.Offers = []OfferResponse{}

	for _, offer := range offers {
		if offer.RequestID != request.ID {
			continue
		}

		var res OfferResponse
		res.FromModel(offer)
		r.Offers = append(r.Offers, res)
	}
}

type RequestsResponse struct {
	Requests []RequestResponse `json:"requests"`
	gDto.Page
}

func (r *RequestsResponse) FromModels(requests []model.Request, offers []model.Offer, totalData, limit int) {
	r.Page = gDto.NewPage(totalData, limit)

	r.Requests = make([]RequestResponse, len(requests))
	for i, request := range requests {
		r.Requests[i].FromModel(request, offers)
	}
}
