package booking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/services/review"
)

// Viewer — кто открыл кабинет, по данным сессии.
type Viewer struct {
	UserID int64
	Name   string
}

// DashboardBooking — строка кабинета с доступными действиями.
type DashboardBooking struct {
	Row
	CanPay    bool `json:"canPay"`
	CanReview bool `json:"canReview"`
	Reviewed  bool `json:"reviewed"`
}

// Counts — сводка по бронированиям пользователя.
type Counts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Paid      int `json:"paid"`
	Cancelled int `json:"cancelled"`
}

// Dashboard — данные личного кабинета.
type Dashboard struct {
	Profile  *models.User       `json:"profile"`
	Bookings []DashboardBooking `json:"bookings"`
	Counts   Counts             `json:"counts"`
}

// Dashboard параллельно загружает профиль и бронирования, затем отзывы по
// автомобилям оплаченных бронирований, чтобы понять, где ещё можно оставить отзыв.
func (s *Service) Dashboard(ctx context.Context, viewer Viewer) (*Dashboard, error) {
	const op = "booking.Dashboard"

	var (
		profile  *models.User
		bookings []models.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.api.Me(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = s.api.MyBookings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	who := review.Reviewer{UserID: viewer.UserID, Name: viewer.Name}
	if profile.ID != 0 {
		who.UserID = profile.ID
	}
	if profile.Name != "" {
		who.Name = profile.Name
	}

	reviewed := s.reviewedCars(ctx, bookings, who)
	now := s.now()

	d := &Dashboard{Profile: profile, Bookings: make([]DashboardBooking, 0, len(bookings))}
	for _, b := range bookings {
		row := DashboardBooking{Row: Row{Booking: b}}
		row.Amount, row.HasAmount = Total(b)
		row.CanPay = b.Status == models.BookingBooked
		row.Reviewed = reviewed[b.CarID]
		row.CanReview = canReview(b, row.Reviewed, now)
		d.Bookings = append(d.Bookings, row)
		d.Counts.add(b.Status)
	}
	return d, nil
}

func (c *Counts) add(status models.BookingStatus) {
	c.Total++
	switch status {
	case models.BookingBooked:
		c.Active++
	case models.BookingPaid:
		c.Paid++
	case models.BookingCancelled:
		c.Cancelled++
	}
}

// reviewedCars загружает отзывы по каждому автомобилю оплаченных бронирований один раз.
func (s *Service) reviewedCars(ctx context.Context, bookings []models.Booking, who review.Reviewer) map[int64]bool {
	carIDs := make(map[int64]struct{})
	for _, b := range bookings {
		if b.Status == models.BookingPaid {
			carIDs[b.CarID] = struct{}{}
		}
	}

	var (
		mu  sync.Mutex
		out = make(map[int64]bool, len(carIDs))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupLimit)
	for carID := range carIDs {
		carID := carID
		g.Go(func() error {
			reviews, err := s.api.CarReviews(gctx, carID)
			if err != nil {
				s.log.Warn("failed to load reviews", slog.Int64("car_id", carID), sl.Err(err))
				return nil
			}
			mu.Lock()
			out[carID] = review.ReviewedBy(reviews, who)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
