// Package create бронирует автомобиль на выбранные даты.
//
// Ошибка в датах показывается рядом с формой на карточке автомобиля. Отказ
// сервера (например, пересечение дат) возвращает на карточку с уведомлением.
package create

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/cars/detail"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/lib/validation"
	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/services/booking"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

// Request — поля формы бронирования.
type Request struct {
	StartDate string `json:"startDate" form:"startDate"`
	EndDate   string `json:"endDate" form:"endDate"`
}

type Service interface {
	Create(ctx context.Context, carID int64, start, end string) (*models.Booking, error)
}

type Handler struct {
	log      *slog.Logger
	bookings Service
	catalog  detail.Service
	view     handlers.View
}

func New(log *slog.Logger, bookings Service, catalog detail.Service, v handlers.View) *Handler {
	return &Handler{log: log, bookings: bookings, catalog: catalog, view: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.bookings.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	carID, err := handlers.ID(r, "id")
	if err != nil {
		h.view.Error(w, r, http.StatusNotFound, detail.NotFound)
		return
	}
	back := fmt.Sprintf("/cars/%d", carID)

	var req Request
	if err := render.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.view.Fail(w, r, http.StatusBadRequest, back, "invalid request body")
		return
	}

	b, err := h.bookings.Create(r.Context(), carID, req.StartDate, req.EndDate)
	if msg, ok := validation.Message(err); ok {
		log.Info("invalid booking dates", slog.String("reason", msg))
		h.formError(w, r, log, carID, msg, req)
		return
	}
	if handlers.Expired(h.view, w, r, err) {
		return
	}
	if err != nil {
		rej := booking.TranslateRejection(err)
		log.Info("booking rejected", slog.Bool("date_conflict", rej.DateConflict), sl.Err(err))
		h.view.Fail(w, r, handlers.StatusFor(err), back, rej.Notice())
		return
	}

	log.Info("booking created", slog.Int64("booking_id", b.ID))
	h.view.Done(w, r, "/dashboard", booking.SuccessNotice, b)
}

// formError снова показывает карточку с введёнными датами и ошибкой.
func (h *Handler) formError(w http.ResponseWriter, r *http.Request, log *slog.Logger, carID int64, msg string, req Request) {
	d, err := h.catalog.Detail(r.Context(), carID)
	if err != nil {
		log.Error("failed to reload car", sl.Err(err))
		h.view.Fail(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("/cars/%d", carID), msg)
		return
	}
	detail.Render(h.view, w, r, http.StatusUnprocessableEntity, d, msg, view.CarDetailData{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
}
