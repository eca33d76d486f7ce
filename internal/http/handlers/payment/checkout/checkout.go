// Package checkout выполняет первый шаг оплаты: сервер создаёт заказ, страница
// открывает платёжный виджет с его параметрами.
package checkout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/services/payment"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

type Service interface {
	Start(ctx context.Context, bookingID int64) (*payment.Checkout, error)
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
	const op = "handlers.payment.checkout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	bookingID, err := handlers.ID(r, "id")
	if err != nil {
		h.view.Fail(w, r, http.StatusNotFound, "/dashboard", "Booking not found.")
		return
	}

	c, err := h.payments.Start(r.Context(), bookingID)
	if handlers.Expired(h.view, w, r, err) {
		return
	}
	if err != nil {
		log.Error("failed to create payment order", slog.Int64("booking_id", bookingID), sl.Err(err))
		h.view.Fail(w, r, handlers.StatusFor(err), "/dashboard", payment.StartFailureNotice(err))
		return
	}

	log.Info("payment order created", slog.Int64("booking_id", bookingID), slog.String("order_id", c.OrderID))
	h.view.Render(w, r, http.StatusOK, "checkout", view.Page{
		Title: "Payment",
		Data: view.CheckoutData{
			Checkout: c,
			Display:  float64(c.Amount) / 100,
		},
	})
}
