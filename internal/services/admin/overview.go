package admin

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/models"
)

// Overview — сводка для главной страницы back-office.
type Overview struct {
	Profile  *models.User `json:"profile,omitempty"`
	Users    int          `json:"users"`
	Cars     int          `json:"cars"`
	Bookings int          `json:"bookings"`
	Revenue  float64      `json:"revenue"`
}

// Overview загружает все четыре коллекции параллельно. Профиль администратора
// необязателен: без него сводка всё равно показывается.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	const op = "admin.Overview"

	var (
		ov       Overview
		payments []models.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := s.api.ListUsers(gctx)
		ov.Users = len(users)
		return err
	})
	g.Go(func() error {
		cars, err := s.api.ListCars(gctx)
		ov.Cars = len(cars)
		return err
	})
	g.Go(func() error {
		bookings, err := s.api.AllBookings(gctx)
		ov.Bookings = len(bookings)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.api.AllPayments(gctx)
		return err
	})
	g.Go(func() error {
		p, err := s.api.Me(gctx)
		if err != nil {
			s.log.Warn("failed to load admin profile", sl.Err(err))
			return nil
		}
		ov.Profile = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range payments {
		ov.Revenue += p.Amount
	}
	return &ov, nil
}
