package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

// BookingAction is a status transition requested by the owner or the guest.
type BookingAction string

const (
	BookingCancel   BookingAction = "cancel"
	BookingConfirm  BookingAction = "confirm"
	BookingComplete BookingAction = "complete"
)

func (c *Client) Bookings(ctx context.Context) (*domain.Page[domain.Booking], error) {
	return fetchPage[domain.Booking](ctx, c, request{
		method: http.MethodGet, path: "/bookings", route: "/bookings",
	})
}

func (c *Client) Booking(ctx context.Context, id int64) (*domain.Response[domain.Booking], error) {
	return fetch[domain.Booking](ctx, c, request{
		method: http.MethodGet, path: bookingPath(id), route: "/bookings/{id}",
	})
}

func (c *Client) CreateBooking(ctx context.Context, propertyID int64, in domain.BookingInput) (*domain.Response[domain.Booking], error) {
	return fetch[domain.Booking](ctx, c, request{
		method: http.MethodPost, path: propertyPath(propertyID) + "/bookings", route: "/properties/{id}/bookings", body: in,
	})
}

// TransitionBooking applies action to booking id via PUT /bookings/{id}/{action}.
func (c *Client) TransitionBooking(ctx context.Context, id int64, action BookingAction) (*domain.Response[domain.Booking], error) {
	switch action {
	case BookingCancel, BookingConfirm, BookingComplete:
	default:
		return nil, fmt.Errorf("apiclient: unknown booking action %q", action)
	}
	return fetch[domain.Booking](ctx, c, request{
		method: http.MethodPut,
		path:   bookingPath(id) + "/" + string(action),
		route:  "/bookings/{id}/" + string(action),
	})
}

func (c *Client) CancelBooking(ctx context.Context, id int64) (*domain.Response[domain.Booking], error) {
	return c.TransitionBooking(ctx, id, BookingCancel)
}

func (c *Client) ConfirmBooking(ctx context.Context, id int64) (*domain.Response[domain.Booking], error) {
	return c.TransitionBooking(ctx, id, BookingConfirm)
}

func (c *Client) CompleteBooking(ctx context.Context, id int64) (*domain.Response[domain.Booking], error) {
	return c.TransitionBooking(ctx, id, BookingComplete)
}

func (c *Client) BookingStats(ctx context.Context) (*domain.Response[domain.BookingStats], error) {
	return fetch[domain.BookingStats](ctx, c, request{
		method: http.MethodGet, path: "/bookings/stats", route: "/bookings/stats",
	})
}

// CheckAvailability asks whether a listing is free for the given stay.
func (c *Client) CheckAvailability(ctx context.Context, propertyID int64, stay domain.StayWindow) (*domain.Response[domain.Availability], error) {
	q := url.Values{}
	q.Set("check_in_date", stay.CheckInDate)
	q.Set("check_out_date", stay.CheckOutDate)
	return fetch[domain.Availability](ctx, c, request{
		method: http.MethodGet, path: propertyPath(propertyID) + "/availability", route: "/properties/{id}/availability", query: q,
	})
}

// PropertyBookings lists bookings made on the bound owner's listings.
func (c *Client) PropertyBookings(ctx context.Context) (*domain.Page[domain.Booking], error) {
	return fetchPage[domain.Booking](ctx, c, request{
		method: http.MethodGet, path: "/property-bookings", route: "/property-bookings",
	})
}

func bookingPath(id int64) string {
	return fmt.Sprintf("/bookings/%d", id)
}
