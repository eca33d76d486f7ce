package admin

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/services/payment"
)

// PaymentRow — платёж с нормализованным статусом.
type PaymentRow struct {
	models.Payment
	State payment.Status `json:"state"`
}

// PaymentBoard — все платежи со сводкой.
type PaymentBoard struct {
	Payments []PaymentRow  `json:"payments"`
	Stats    payment.Stats `json:"stats"`
}

func (s *Service) Payments(ctx context.Context) (*PaymentBoard, error) {
	const op = "admin.Payments"

	payments, err := s.api.AllPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, PaymentRow{Payment: p, State: payment.NormalizeStatus(p.Status)})
	}
	return &PaymentBoard{Payments: rows, Stats: payment.Summarize(payments)}, nil
}
