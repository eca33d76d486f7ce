package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/rentify-web/internal/audit"
	"github.com/magabrotheeeer/rentify-web/internal/models"
)

// BookingStats — число бронирований по состояниям.
type BookingStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Paid      int `json:"paid"`
	Cancelled int `json:"cancelled"`
}

// CountBookings считает статистику по коллекции бронирований.
func CountBookings(bookings []models.Booking) BookingStats {
	st := BookingStats{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case models.BookingBooked:
			st.Active++
		case models.BookingPaid:
			st.Paid++
		case models.BookingCancelled:
			st.Cancelled++
		}
	}
	return st
}

// BookingBoard — все бронирования со статистикой.
type BookingBoard struct {
	Bookings []models.Booking `json:"bookings"`
	Stats    BookingStats     `json:"stats"`
}

func (s *Service) Bookings(ctx context.Context) (*BookingBoard, error) {
	const op = "admin.Bookings"

	bookings, err := s.api.AllBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &BookingBoard{Bookings: bookings, Stats: CountBookings(bookings)}, nil
}

// CancelBooking отменяет бронирование, только если действие подтверждено.
func (s *Service) CancelBooking(ctx context.Context, actor string, id int64, confirmed bool) error {
	const op = "admin.CancelBooking"

	if !confirmed {
		return ErrNotConfirmed
	}
	if err := s.api.CancelBooking(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("booking cancelled", slog.Int64("booking_id", id))
	s.publish(ctx, audit.BookingCancelled, actor, id, nil)
	return nil
}
