// Package payment проводит оплату бронирования в два шага: сервер создаёт заказ,
// внешний виджет принимает оплату, затем подписанный ответ виджета
// проверяется сервером. Статус бронирования после этого перечитывается с сервера.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/rentify-web/internal/apiclient"
	"github.com/magabrotheeeer/rentify-web/internal/audit"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/lib/validation"
	"github.com/magabrotheeeer/rentify-web/internal/models"
)

const (
	SuccessNotice      = "Payment successful!"
	VerifyFailedNotice = "Payment verification failed!"
)

// API — методы удалённого API для оплаты.
type API interface {
	CreatePaymentOrder(ctx context.Context, bookingID int64) (*models.PaymentOrder, error)
	VerifyPayment(ctx context.Context, conf models.PaymentConfirmation) error
	Me(ctx context.Context) (*models.User, error)
}

// Options — оформление платёжного виджета.
type Options struct {
	MerchantName string
	Description  string
	ThemeColor   string
}

// Prefill — данные покупателя для виджета.
type Prefill struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Checkout — всё, что нужно виджету для открытия формы оплаты.
type Checkout struct {
	BookingID   int64   `json:"bookingId"`
	Key         string  `json:"key"`
	OrderID     string  `json:"order_id"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Prefill     Prefill `json:"prefill"`
	Theme       Theme   `json:"theme"`
}

// Theme — цвет оформления виджета.
type Theme struct {
	Color string `json:"color"`
}

// Service — бизнес-логика оплаты.
type Service struct {
	log   *slog.Logger
	api   API
	audit audit.Publisher
	opts  Options
}

// New создаёт Service.
func New(log *slog.Logger, api API, publisher audit.Publisher, opts Options) *Service {
	return &Service{log: log, api: api, audit: publisher, opts: opts}
}

// Start создаёт заказ и собирает описание для виджета. Профиль нужен только
// для подстановки имени и почты, без него оплата всё равно возможна.
func (s *Service) Start(ctx context.Context, bookingID int64) (*Checkout, error) {
	const op = "payment.Start"

	var (
		order   *models.PaymentOrder
		profile *models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		order, err = s.api.CreatePaymentOrder(gctx, bookingID)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = s.api.Me(gctx)
		if err != nil {
			s.log.Warn("failed to load profile for checkout", sl.Err(err))
			profile = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := &Checkout{
		BookingID:   bookingID,
		Key:         order.Key,
		OrderID:     order.OrderID,
		Amount:      MinorUnits(order.Amount),
		Currency:    order.Currency,
		Name:        s.opts.MerchantName,
		Description: s.opts.Description,
		Theme:       Theme{Color: s.opts.ThemeColor},
	}
	if c.Currency == "" {
		c.Currency = "INR"
	}
	if profile != nil {
		c.Prefill = Prefill{Name: profile.Name, Email: profile.Email}
	}
	return c, nil
}

// StartFailureNotice — текст, если заказ создать не удалось.
func StartFailureNotice(err error) string {
	return "Could not initiate payment: " + apiclient.MessageOf(err, apiclient.GenericMessage)
}

// Verify передаёт серверу подписанный ответ виджета.
func (s *Service) Verify(ctx context.Context, actor string, conf models.PaymentConfirmation) error {
	const op = "payment.Verify"

	if err := validation.Struct(conf); err != nil {
		return err
	}
	if err := s.api.VerifyPayment(ctx, conf); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment verified", slog.String("order_id", conf.OrderID))
	err := s.audit.Publish(ctx, audit.Event{
		Action:   audit.PaymentVerified,
		Actor:    actor,
		TargetID: conf.OrderID,
		Details:  map[string]string{"payment_id": conf.PaymentID},
	})
	if err != nil {
		s.log.Error("failed to publish audit event", sl.Err(err))
	}
	return nil
}

// MinorUnits переводит сумму в минимальные единицы валюты (пайсы, копейки).
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
