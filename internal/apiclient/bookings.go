package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/magabrotheeeer/rentify-web/internal/models"
)

// CreateBooking бронирует автомобиль. Доступность дат проверяет только сервер.
func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	var b models.Booking
	if err := c.sendJSON(ctx, "apiclient.CreateBooking", http.MethodPost, "/bookings", req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// MyBookings возвращает бронирования текущего пользователя.
func (c *Client) MyBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.getJSON(ctx, "apiclient.MyBookings", "/users/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// AllBookings возвращает все бронирования (для администратора).
func (c *Client) AllBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.getJSON(ctx, "apiclient.AllBookings", "/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CancelBooking отменяет бронирование.
func (c *Client) CancelBooking(ctx context.Context, id int64) error {
	return c.delete(ctx, "apiclient.CancelBooking", "/bookings/"+strconv.FormatInt(id, 10))
}
