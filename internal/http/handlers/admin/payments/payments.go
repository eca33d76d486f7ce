// Package payments показывает все платежи с выручкой и числом оплаченных и ожидающих.
package payments

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/services/admin"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

type Service interface {
	Payments(ctx context.Context) (*admin.PaymentBoard, error)
}

type Handler struct {
	log   *slog.Logger
	admin Service
	view  handlers.View
}

func New(log *slog.Logger, svc Service, v handlers.View) *Handler {
	return &Handler{log: log, admin: svc, view: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.payments"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	board, err := h.admin.Payments(r.Context())
	if err != nil {
		log.Error("failed to load payments", sl.Err(err))
		if handlers.Expired(h.view, w, r, err) {
			return
		}
		h.view.Error(w, r, handlers.StatusFor(err), admin.LoadFailedMessage)
		return
	}
	h.view.Render(w, r, http.StatusOK, "admin_payments", view.Page{Title: "Payments", Data: board})
}
