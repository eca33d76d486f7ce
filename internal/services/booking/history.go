package booking

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/models"
)

const lookupLimit = 8

// Row — бронирование с вычисленной суммой.
type Row struct {
	models.Booking
	Amount    float64 `json:"amount"`
	HasAmount bool    `json:"hasAmount"`
}

// History возвращает бронирования пользователя с суммами. Если сумма не пришла
// и не считается по цене из бронирования, берётся сумма платежа (для оплаченных)
// или цена автомобиля. Неудачные дозапросы оставляют сумму неизвестной.
func (s *Service) History(ctx context.Context) ([]Row, error) {
	const op = "booking.History"

	bookings, err := s.api.MyBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows := make([]Row, len(bookings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupLimit)
	for i, b := range bookings {
		i, b := i, b
		rows[i].Booking = b
		if total, ok := Total(b); ok {
			rows[i].Amount, rows[i].HasAmount = total, true
			continue
		}
		g.Go(func() error {
			rows[i].Amount, rows[i].HasAmount = s.lookupAmount(gctx, b)
			return nil
		})
	}
	_ = g.Wait()

	return rows, nil
}

func (s *Service) lookupAmount(ctx context.Context, b models.Booking) (float64, bool) {
	log := s.log.With(slog.Int64("booking_id", b.ID))

	if b.Status == models.BookingPaid {
		p, err := s.api.BookingPayment(ctx, b.ID)
		switch {
		case err != nil:
			log.Debug("payment lookup failed", sl.Err(err))
		case p.Amount > 0:
			return p.Amount, true
		}
	}

	if b.CarID == 0 {
		return 0, false
	}
	car, err := s.api.GetCar(ctx, b.CarID)
	if err != nil {
		log.Debug("car lookup failed", sl.Err(err))
		return 0, false
	}
	if car.PricePerDay <= 0 {
		return 0, false
	}
	return FallbackTotal(car.PricePerDay, b), true
}
