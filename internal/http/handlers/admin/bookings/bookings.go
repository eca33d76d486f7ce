// Package bookings показывает все бронирования со статистикой и отменяет их с подтверждением.
package bookings

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

const (
	back = "/admin/bookings"

	Cancelled = "Booking cancelled."
)

type Service interface {
	Bookings(ctx context.Context) (*admin.BookingBoard, error)
	CancelBooking(ctx context.Context, actor string, id int64, confirmed bool) error
}

type Handler struct {
	log   *slog.Logger
	admin Service
	view  handlers.View
}

func New(log *slog.Logger, svc Service, v handlers.View) *Handler {
	return &Handler{log: log, admin: svc, view: v}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List показывает бронирования и счётчики по состояниям.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.bookings.list")

	board, err := h.admin.Bookings(r.Context())
	if err != nil {
		log.Error("failed to load bookings", sl.Err(err))
		if handlers.Expired(h.view, w, r, err) {
			return
		}
		h.view.Error(w, r, handlers.StatusFor(err), admin.LoadFailedMessage)
		return
	}
	h.view.Render(w, r, http.StatusOK, "admin_bookings", view.Page{Title: "Manage Bookings", Data: board})
}

// Cancel отменяет бронирование. Без confirm=yes показывает страницу подтверждения.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.bookings.cancel")

	id, err := handlers.ID(r, "id")
	if err != nil {
		h.view.Fail(w, r, http.StatusNotFound, back, "Booking not found.")
		return
	}
	if !handlers.Confirmed(r) {
		handlers.AskConfirm(h.view, w, r, "Cancel Booking", admin.ConfirmCancelBooking, back)
		return
	}

	err = h.admin.CancelBooking(r.Context(), handlers.Actor(r), id, true)
	if handlers.Expired(h.view, w, r, err) {
		return
	}
	if err != nil {
		log.Error("failed to cancel booking", slog.Int64("booking_id", id), sl.Err(err))
		h.view.Fail(w, r, handlers.StatusFor(err), back, admin.FailureNotice(err, admin.CancelFailed))
		return
	}

	// Статистика пересчитывается по свежему списку с сервера.
	var data any
	if view.WantsJSON(r) {
		board, err := h.admin.Bookings(r.Context())
		if err != nil {
			log.Warn("failed to refetch bookings", sl.Err(err))
		} else {
			data = board
		}
	}
	h.view.Done(w, r, back, Cancelled, data)
}
