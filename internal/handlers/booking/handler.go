package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"bazaar/infras/otel"
	"bazaar/internal/domains/booking/model/dto"
	"bazaar/internal/domains/booking/service"
	"bazaar/shared/constant"
	gDto "bazaar/shared/dto"
	"bazaar/shared/failure"
	"bazaar/shared/validator"
	"bazaar/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/requirements/{listingId}", handler.GetRequirements)
		routerGroup.Post("/check-availability", handler.CheckAvailability)
		routerGroup.Post("/validate", handler.ValidateBooking)
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/user", handler.GetUserBookings)
		routerGroup.Get("/vendor", handler.GetVendorBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/status", handler.UpdateBookingStatus)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
	})
}

func respondError(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)

	if failure.GetCode(err) >= http.StatusInternalServerError {
		log.Error().Err(err).Msg(msg)
	} else {
		log.Debug().Err(err).Msg(msg)
	}

	response.WithError(w, err)
}

// GetRequirements returns what a booking on the listing must provide.
// @Summary Get booking requirements
// @Description Resolve the listing's category booking config together with pricing.
// @Tags Booking
// @Produce json
// @Param listingId path string true "Listing ID"
// @Success 200 {object} response.Data[dto.RequirementsResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/requirements/{listingId} [get]
func (handler *Handler) GetRequirements(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRequirements")
	defer scope.End()

	res, err := handler.service.Requirements(ctx, chi.URLParam(r, constant.RequestParamListingID))
	if err != nil {
		respondError(w, scope, err, "failed to get booking requirements")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CheckAvailability reports whether the requested dates are free.
// @Summary Check availability
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.PayloadRequest true "Listing and dates"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/check-availability [post]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dto.PayloadRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		respondError(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.CheckAvailability(ctx, req)
	if err != nil {
		respondError(w, scope, err, "failed to check availability")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ValidateBooking checks a payload against the category rules without booking.
// @Summary Validate booking payload
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.PayloadRequest true "Listing and payload"
// @Success 200 {object} response.Data[dto.ValidationResponse]
// @Failure 400 {object} response.Error "reason validation_failed with errors"
// @Failure 404 {object} response.Error
// @Router /v1/bookings/validate [post]
func (handler *Handler) ValidateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ValidateBooking")
	defer scope.End()

	req := dto.PayloadRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		respondError(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.Validate(ctx, req)
	if err != nil {
		respondError(w, scope, err, "booking payload rejected")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateBooking books a listing directly.
// @Summary Create a booking
// @Description Validate the payload against the category, check availability and store a confirmed booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error "validation_failed or conflict_detected"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		respondError(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		respondError(w, scope, err, "failed to create booking")

		return
	}

	scope.AddEvent("Booking created " + res.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

func listParams(r *http.Request) (gDto.QueryParams, dto.BookingFilter, error) {
	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	filter := dto.BookingFilter{}
	filter.FromRequest(r)

	if err := validator.ValidateStruct(&filter); err != nil {
		return params, filter, err //nolint:wrapcheck
	}

	return params, filter, nil
}

// GetUserBookings lists the caller's bookings.
// @Summary List my bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param category_id query string false "Filter by category"
// @Success 200 {object} response.Data[dto.BookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/bookings/user [get]
// @Security BearerAuth
func (handler *Handler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserBookings")
	defer scope.End()

	params, filter, err := listParams(r)
	if err != nil {
		respondError(w, scope, err, "invalid booking filter")

		return
	}

	res, err := handler.service.ListUser(ctx, params, filter)
	if err != nil {
		respondError(w, scope, err, "failed to get user bookings")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetVendorBookings lists bookings on the caller's listings, or on a business they belong to.
// @Summary List vendor bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param category_id query string false "Filter by category"
// @Param business_id query string false "Business the caller owns or staffs"
// @Success 200 {object} response.Data[dto.BookingsResponse]
// @Failure 403 {object} response.Error
// @Router /v1/bookings/vendor [get]
// @Security BearerAuth
func (handler *Handler) GetVendorBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVendorBookings")
	defer scope.End()

	params, filter, err := listParams(r)
	if err != nil {
		respondError(w, scope, err, "invalid booking filter")

		return
	}

	res, err := handler.service.ListVendor(ctx, params, filter)
	if err != nil {
		respondError(w, scope, err, "failed to get vendor bookings")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingByID returns one booking to a party of it.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		respondError(w, scope, err, "failed to get booking by ID")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateBookingStatus moves a booking through its lifecycle.
// @Summary Update booking status
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateStatusRequest true "Target status and notes"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error "invalid_transition"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		respondError(w, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.UpdateStatus(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		respondError(w, scope, err, "failed to update booking status")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CancelBooking cancels a booking inside the category's cancellation window.
// @Summary Cancel a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CancelBookingRequest false "Reason"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error "cancellation_window_violation or invalid_transition"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	req := dto.CancelBookingRequest{}

	if r.ContentLength != 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			respondError(w, scope, err, "failed to validate request body")

			return
		}
	}

	res, err := handler.service.Cancel(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		respondError(w, scope, err, "failed to cancel booking")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
