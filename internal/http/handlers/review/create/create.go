// Package create принимает отзыв об автомобиле из оплаченного бронирования.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/lib/validation"
	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/services/booking"
	"github.com/magabrotheeeer/rentify-web/internal/services/review"
	"github.com/magabrotheeeer/rentify-web/internal/session"
)

const (
	NotFoundNotice        = "Failed to submit review: booking not found"
	NotReviewableNotice   = "Failed to submit review: only paid bookings can be reviewed after the rental ends"
	AlreadyReviewedNotice = "Failed to submit review: You have already reviewed this car"
)

// Request — поля формы отзыва. Автомобиль берётся из бронирования.
type Request struct {
	Rating  int    `json:"rating" form:"rating"`
	Comment string `json:"comment" form:"comment"`
}

type Service interface {
	Submit(ctx context.Context, carID int64, rating int, comment string) error
}

type BookingService interface {
	Reviewable(ctx context.Context, bookingID int64, viewer booking.Viewer) (*models.Booking, error)
}

type Handler struct {
	log      *slog.Logger
	bookings BookingService
	reviews  Service
	view     handlers.View
}

func New(log *slog.Logger, bookings BookingService, reviews Service, v handlers.View) *Handler {
	return &Handler{log: log, bookings: bookings, reviews: reviews, view: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	bookingID, err := handlers.ID(r, "id")
	if err != nil {
		log.Info("invalid booking id", slog.String("id", chi.URLParam(r, "id")))
		h.view.Fail(w, r, http.StatusBadRequest, "/dashboard", review.FailureNotice(err))
		return
	}

	var req Request
	if err := render.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.view.Fail(w, r, http.StatusBadRequest, "/dashboard", "invalid request body")
		return
	}

	var viewer booking.Viewer
	if sess := session.Current(r.Context()); sess != nil {
		viewer = booking.Viewer{UserID: sess.UserID, Name: sess.Name}
	}

	b, err := h.bookings.Reviewable(r.Context(), bookingID, viewer)
	if handlers.Expired(h.view, w, r, err) {
		return
	}
	if err != nil {
		log.Info("review refused", slog.Int64("booking_id", bookingID), sl.Err(err))
		switch {
		case errors.Is(err, booking.ErrBookingNotFound):
			h.view.Fail(w, r, http.StatusNotFound, "/dashboard", NotFoundNotice)
		case errors.Is(err, booking.ErrNotReviewable):
			h.view.Fail(w, r, http.StatusForbidden, "/dashboard", NotReviewableNotice)
		case errors.Is(err, booking.ErrAlreadyReviewed):
			h.view.Fail(w, r, http.StatusConflict, "/dashboard", AlreadyReviewedNotice)
		default:
			h.view.Fail(w, r, handlers.StatusFor(err), "/dashboard", review.FailureNotice(err))
		}
		return
	}
	carID := b.CarID

	err = h.reviews.Submit(r.Context(), carID, req.Rating, req.Comment)
	if handlers.Expired(h.view, w, r, err) {
		return
	}
	if msg, ok := validation.Message(err); ok {
		h.view.Fail(w, r, http.StatusUnprocessableEntity, "/dashboard", msg)
		return
	}
	if err != nil {
		log.Error("failed to submit review", slog.Int64("car_id", carID), sl.Err(err))
		h.view.Fail(w, r, handlers.StatusFor(err), "/dashboard", review.FailureNotice(err))
		return
	}

	log.Info("review submitted", slog.Int64("car_id", carID))
	h.view.Done(w, r, "/dashboard", review.SuccessNotice, nil)
}
