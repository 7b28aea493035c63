package negotiation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"bazaar/infras/otel"
	bookingDto "bazaar/internal/domains/booking/model/dto"
	"bazaar/internal/domains/negotiation/model/dto"
	"bazaar/internal/domains/negotiation/service"
	"bazaar/shared/constant"
	gDto "bazaar/shared/dto"
	"bazaar/shared/failure"
	"bazaar/shared/validator"
	"bazaar/transport/http/response"
)

type Handler struct {
	service service.Negotiation
	otel    otel.Otel
}

func New(service service.Negotiation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/booking", func(routerGroup chi.Router) {
		routerGroup.Post("/request", handler.CreateRequest)
		routerGroup.Get("/status/{listingId}", handler.GetRequestStatus)
		routerGroup.Get("/requests", handler.GetUserRequests)
		routerGroup.Patch("/requests/{requestId}/cancel", handler.CancelRequest)
		routerGroup.Get("/dashboard", handler.GetDashboard)
		routerGroup.Post("/offer", handler.CreateOffer)
		routerGroup.Patch("/offers/{offerId}/accept", handler.AcceptOffer)
		routerGroup.Patch("/offers/{offerId}/cancel", handler.CancelOffer)
	})
}

func (handler *Handler) fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)

	if failure.GetCode(err) >= http.StatusInternalServerError {
		log.Error().Err(err).Msg(msg)
	}

	response.WithError(w, err)
}

// CreateRequest opens a negotiation with the listing's vendor.
// @Summary Create a booking request
// @Tags Negotiation
// @Accept json
// @Produce json
// @Param request body dto.CreateRequestRequest true "Requested dates and quantity"
// @Success 201 {object} response.Data[dto.RequestResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error "listing not found"
// @Router /v1/booking/request [post]
// @Security BearerAuth
func (handler *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRequest")
	defer scope.End()

	req := dto.CreateRequestRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.CreateRequest(ctx, req)
	if err != nil {
		handler.fail(w, scope, err, "failed to create request")

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetRequestStatus returns the caller's latest request on a listing with its offers.
// @Summary Get request status
// @Tags Negotiation
// @Produce json
// @Param listingId path string true "Listing ID"
// @Success 200 {object} response.Data[dto.RequestResponse]
// @Failure 404 {object} response.Error
// @Router /v1/booking/status/{listingId} [get]
// @Security BearerAuth
func (handler *Handler) GetRequestStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRequestStatus")
	defer scope.End()

	res, err := handler.service.GetRequestStatus(ctx, chi.URLParam(r, constant.RequestParamListingID))
	if err != nil {
		handler.fail(w, scope, err, "failed to get request status")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetUserRequests lists the caller's requests.
// @Summary List my requests
// @Tags Negotiation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.RequestsResponse]
// @Router /v1/booking/requests [get]
// @Security BearerAuth
func (handler *Handler) GetUserRequests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserRequests")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	res, err := handler.service.ListUserRequests(ctx, params)
	if err != nil {
		handler.fail(w, scope, err, "failed to get user requests")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetDashboard lists requests addressed to the caller, or to a business they belong to.
// @Summary Vendor request dashboard
// @Tags Negotiation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param business_id query string false "Business the caller owns or staffs"
// @Success 200 {object} response.Data[dto.RequestsResponse]
// @Failure 403 {object} response.Error
// @Router /v1/booking/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboard")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	res, err := handler.service.ListVendorRequests(ctx, params, r.URL.Query().Get(constant.RequestParamBusinessID))
	if err != nil {
		handler.fail(w, scope, err, "failed to get vendor dashboard")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CancelRequest withdraws an open request and its pending offers.
// @Summary Cancel a request
// @Tags Negotiation
// @Produce json
// @Param requestId path string true "Request ID"
// @Success 200 {object} response.Data[dto.RequestResponse]
// @Failure 400 {object} response.Error "invalid_transition"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/booking/requests/{requestId}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelRequest")
	defer scope.End()

	res, err := handler.service.CancelRequest(ctx, chi.URLParam(r, constant.RequestParamRequestID))
	if err != nil {
		handler.fail(w, scope, err, "failed to cancel request")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateOffer answers a request with a price and optionally different dates.
// @Summary Create an offer
// @Tags Negotiation
// @Accept json
// @Produce json
// @Param request body dto.CreateOfferRequest true "Offer"
// @Success 201 {object} response.Data[dto.OfferResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/booking/offer [post]
// @Security BearerAuth
func (handler *Handler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOffer")
	defer scope.End()

	req := dto.CreateOfferRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.CreateOffer(ctx, req)
	if err != nil {
		handler.fail(w, scope, err, "failed to create offer")

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// AcceptOffer turns an offer into a confirmed booking.
// @Summary Accept an offer
// @Tags Negotiation
// @Accept json
// @Produce json
// @Param offerId path string true "Offer ID"
// @Param request body dto.AcceptOfferRequest true "Payment method"
// @Success 200 {object} response.Data[bookingDto.BookingResponse]
// @Failure 400 {object} response.Error "missing paymentMethod, invalid_transition or conflict_detected"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/booking/offers/{offerId}/accept [patch]
// @Security BearerAuth
func (handler *Handler) AcceptOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcceptOffer")
	defer scope.End()

	req := dto.AcceptOfferRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, "failed to validate request body")

		return
	}

	var res bookingDto.BookingResponse

	res, err := handler.service.AcceptOffer(ctx, chi.URLParam(r, constant.RequestParamOfferID), req)
	if err != nil {
		handler.fail(w, scope, err, "failed to accept offer")

		return
	}

	scope.AddEvent("Offer accepted into booking " + res.ID)

	response.WithJSON(w, http.StatusOK, res)
}

// CancelOffer withdraws a pending offer.
// @Summary Cancel an offer
// @Tags Negotiation
// @Produce json
// @Param offerId path string true "Offer ID"
// @Success 200 {object} response.Data[dto.OfferResponse]
// @Failure 400 {object} response.Error "invalid_transition"
// @Failure 404 {object} response.Error
// @Router /v1/booking/offers/{offerId}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelOffer")
	defer scope.End()

	res, err := handler.service.CancelOffer(ctx, chi.URLParam(r, constant.RequestParamOfferID))
	if err != nil {
		handler.fail(w, scope, err, "failed to cancel offer")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
