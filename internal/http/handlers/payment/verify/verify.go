// Package verify выполняет второй шаг оплаты: подписанный ответ виджета передаётся
// серверу. Только после подтверждения пользователь возвращается в кабинет,
// который перечитывает бронирования с сервера.
package verify

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/services/payment"
)

// Request — поля, которые виджет возвращает после оплаты.
type Request struct {
	OrderID   string `json:"razorpay_order_id" form:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id" form:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature" form:"razorpay_signature"`
}

type Service interface {
	Verify(ctx context.Context, actor string, conf models.PaymentConfirmation) error
}

type Handler struct {
	log      *slog.Logger
	payments Service
	view     handlers.View
}

func New(log *slog.Logger, payments Service, v handlers.View) *Handler {
	return &Handler{log: log, payments: payments, view: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.view.Fail(w, r, http.StatusBadRequest, "/dashboard", payment.VerifyFailedNotice)
		return
	}

	err := h.payments.Verify(r.Context(), handlers.Actor(r), models.PaymentConfirmation{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if handlers.Expired(h.view, w, r, err) {
		return
	}
	if err != nil {
		log.Error("payment verification failed", slog.String("order_id", req.OrderID), sl.Err(err))
		h.view.Fail(w, r, handlers.StatusFor(err), "/dashboard", payment.VerifyFailedNotice)
		return
	}

	log.Info("payment verified", slog.String("order_id", req.OrderID))
	h.view.Done(w, r, "/dashboard", payment.SuccessNotice, map[string]string{"orderId": req.OrderID})
}
