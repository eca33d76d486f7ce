// Package booking обслуживает бронирования клиента: создание, история с расчётом сумм
// и личный кабинет с признаками "можно оплатить" и "можно оставить отзыв".
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/rentify-web/internal/lib/validation"
	"github.com/magabrotheeeer/rentify-web/internal/models"
)

// API — методы удалённого API для бронирований.
type API interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	MyBookings(ctx context.Context) ([]models.Booking, error)
	GetCar(ctx context.Context, id int64) (*models.Car, error)
	BookingPayment(ctx context.Context, bookingID int64) (*models.Payment, error)
	CarReviews(ctx context.Context, carID int64) ([]models.Review, error)
	Me(ctx context.Context) (*models.User, error)
}

// Service — бизнес-логика бронирований.
type Service struct {
	log *slog.Logger
	api API
	now func() time.Time
}

// New создаёт Service.
func New(log *slog.Logger, api API) *Service {
	return &Service{log: log, api: api, now: time.Now}
}

// Create проверяет даты и бронирует автомобиль. Пересечения проверяет сервер.
func (s *Service) Create(ctx context.Context, carID int64, start, end string) (*models.Booking, error) {
	const op = "booking.Create"

	from, err := models.ParseDate(start)
	if err != nil {
		return nil, validation.New("startDate", "Please select a valid start date.")
	}
	to, err := models.ParseDate(end)
	if err != nil {
		return nil, validation.New("endDate", "Please select a valid end date.")
	}
	if !from.Before(to.Time) {
		return nil, validation.New("endDate", "End date must be after start date.")
	}

	b, err := s.api.CreateBooking(ctx, models.BookingRequest{
		CarID:     carID,
		StartDate: from.String(),
		EndDate:   to.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("booking created", slog.Int64("car_id", carID), slog.String("start", start), slog.String("end", end))
	return b, nil
}

// Total возвращает сумму бронирования: из ответа сервера, а если её нет,
// цена в сутки умноженная на число суток. false, если посчитать не из чего.
func Total(b models.Booking) (float64, bool) {
	if b.TotalAmount != nil {
		return *b.TotalAmount, true
	}
	if b.PricePerDay != nil {
		return FallbackTotal(*b.PricePerDay, b), true
	}
	return 0, false
}

// FallbackTotal — цена в сутки × max(1, ceil(сутки)).
func FallbackTotal(pricePerDay float64, b models.Booking) float64 {
	return pricePerDay * float64(b.Days())
}
