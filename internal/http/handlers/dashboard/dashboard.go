// Package dashboard показывает личный кабинет клиента: профиль, сводка и бронирования
// с кнопками оплаты и отзыва.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/services/booking"
	"github.com/magabrotheeeer/rentify-web/internal/session"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

const LoadFailed = "Failed to load your dashboard."

type Service interface {
	Dashboard(ctx context.Context, viewer booking.Viewer) (*booking.Dashboard, error)
}

type Handler struct {
	log      *slog.Logger
	bookings Service
	view     handlers.View
}

func New(log *slog.Logger, bookings Service, v handlers.View) *Handler {
	return &Handler{log: log, bookings: bookings, view: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var viewer booking.Viewer
	if sess := session.Current(r.Context()); sess != nil {
		viewer = booking.Viewer{UserID: sess.UserID, Name: sess.Name}
	}

	d, err := h.bookings.Dashboard(r.Context(), viewer)
	if err != nil {
		log.Error("failed to load dashboard", sl.Err(err))
		if handlers.Expired(h.view, w, r, err) {
			return
		}
		h.view.Error(w, r, handlers.StatusFor(err), LoadFailed)
		return
	}
	h.view.Render(w, r, http.StatusOK, "dashboard", view.Page{Title: "Dashboard", Data: d})
}
