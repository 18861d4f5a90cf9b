package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/apiclient"
)

type BookingHandler struct {
	client *apiclient.Client
}

func NewBookingHandler(client *apiclient.Client) *BookingHandler {
	return &BookingHandler{client: client}
}

type bookingRequest struct {
	CheckInDate     string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate    string `json:"check_out_date" validate:"required,datetime=2006-01-02,after=CheckInDate"`
	GuestName       string `json:"guest_name" validate:"required,max=255"`
	GuestEmail      string `json:"guest_email" validate:"required,email"`
	GuestPhone      string `json:"guest_phone" validate:"required,max=20"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
}

type availabilityQuery struct {
	CheckInDate  string `query:"check_in_date" json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string `query:"check_out_date" json:"check_out_date" validate:"required,datetime=2006-01-02,after=CheckInDate"`
}

// List handles GET /bookings.
//
// @Summary      My bookings
// @Tags         bookings
// @Produce      json
// @Success      200  {object}  domain.Page[domain.Booking]
// @Failure      401  {object}  ErrorResponse
// @Router       /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}
	page, err := client.Bookings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /bookings/:booking.
//
// @Summary      Booking detail
// @Tags         bookings
// @Produce      json
// @Param        booking  path      int  true  "Booking id"
// @Success      200      {object}  domain.Response[domain.Booking]
// @Router       /bookings/{booking} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := idParam(c, "booking")
	if err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.Booking(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /properties/:property/bookings.
//
// @Summary      Book a rental
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        property  path      int             true  "Listing id"
// @Param        body      body      bookingRequest  true  "Stay and guest details"
// @Success      201       {object}  domain.Response[domain.Booking]
// @Failure      422       {object}  ErrorResponse
// @Router       /properties/{property}/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	id, err := idParam(c, "property")
	if err != nil {
		return err
	}
	var req bookingRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.CreateBooking(c.Request().Context(), id, domain.BookingInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

// Transition applies cancel, confirm or complete.
//
// @Summary      Change booking status
// @Tags         bookings
// @Produce      json
// @Param        booking  path      int     true  "Booking id"
// @Param        action   path      string  true  "cancel | confirm | complete"
// @Success      200      {object}  domain.Response[domain.Booking]
// @Failure      404      {object}  ErrorResponse
// @Router       /bookings/{booking}/{action} [put]
func (h *BookingHandler) Transition(c echo.Context) error {
	id, err := idParam(c, "booking")
	if err != nil {
		return err
	}
	action := apiclient.BookingAction(c.Param("action"))
	switch action {
	case apiclient.BookingCancel, apiclient.BookingConfirm, apiclient.BookingComplete:
	default:
		return echo.NewHTTPError(http.StatusNotFound, "unknown booking action")
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.TransitionBooking(c.Request().Context(), id, action)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Stats handles GET /bookings/stats.
//
// @Summary      Booking counters
// @Tags         bookings
// @Produce      json
// @Success      200  {object}  domain.Response[domain.BookingStats]
// @Router       /bookings/stats [get]
func (h *BookingHandler) Stats(c echo.Context) error {
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}
	resp, err := client.BookingStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Availability is public.
//
// @Summary      Check a stay window
// @Tags         bookings
// @Produce      json
// @Param        property        path      int     true  "Listing id"
// @Param        check_in_date   query     string  true  "YYYY-MM-DD"
// @Param        check_out_date  query     string  true  "YYYY-MM-DD"
// @Success      200             {object}  domain.Response[domain.Availability]
// @Failure      422             {object}  ErrorResponse
// @Router       /properties/{property}/availability [get]
func (h *BookingHandler) Availability(c echo.Context) error {
	id, err := idParam(c, "property")
	if err != nil {
		return err
	}
	var q availabilityQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.CheckAvailability(c.Request().Context(), id, domain.StayWindow(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// PropertyBookings lists bookings on the owner's listings.
//
// @Summary      Bookings on my listings
// @Tags         bookings
// @Produce      json
// @Success      200  {object}  domain.Page[domain.Booking]
// @Failure      403  {object}  ErrorResponse
// @Router       /property-bookings [get]
func (h *BookingHandler) PropertyBookings(c echo.Context) error {
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}
	page, err := client.PropertyBookings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
