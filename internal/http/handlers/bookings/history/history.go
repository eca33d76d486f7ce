// Package history показывает все бронирования пользователя с суммами.
package history

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/services/booking"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

const LoadFailed = "Failed to load bookings."

type Service interface {
	History(ctx context.Context) ([]booking.Row, error)
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
	const op = "handlers.bookings.history"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rows, err := h.bookings.History(r.Context())
	if err != nil {
		log.Error("failed to load bookings", sl.Err(err))
		if handlers.Expired(h.view, w, r, err) {
			return
		}
		h.view.Error(w, r, handlers.StatusFor(err), LoadFailed)
		return
	}
	h.view.Render(w, r, http.StatusOK, "bookings", view.Page{Title: "Booking History", Data: rows})
}
