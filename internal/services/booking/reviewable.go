package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/services/review"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotReviewable   = errors.New("booking cannot be reviewed")
	ErrAlreadyReviewed = errors.New("car already reviewed")
)

// Reviewable находит бронирование пользователя и проверяет, что по нему можно
// оставить отзыв: оплачено, аренда закончилась, отзыва об автомобиле ещё нет.
func (s *Service) Reviewable(ctx context.Context, bookingID int64, viewer Viewer) (*models.Booking, error) {
	const op = "booking.Reviewable"

	bookings, err := s.api.MyBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var found *models.Booking
	for i := range bookings {
		if bookings[i].ID == bookingID {
			found = &bookings[i]
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
	}
	if !canReview(*found, false, s.now()) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotReviewable)
	}

	who := review.Reviewer{UserID: viewer.UserID, Name: viewer.Name}
	if who.UserID == 0 {
		profile, err := s.api.Me(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		who.UserID = profile.ID
		if profile.Name != "" {
			who.Name = profile.Name
		}
	}

	reviews, err := s.api.CarReviews(ctx, found.CarID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if review.ReviewedBy(reviews, who) {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyReviewed)
	}
	return found, nil
}

func canReview(b models.Booking, reviewed bool, now time.Time) bool {
	return b.Status == models.BookingPaid && b.EndDate.Before(now) && !reviewed
}
