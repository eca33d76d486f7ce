// Package detail показывает карточку автомобиля: описание, средний рейтинг,
// отзывы и форму бронирования.
package detail

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/rentify-web/internal/apiclient"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/services/catalog"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

const (
	NotFound   = "Car not found."
	LoadFailed = "Failed to load car details."
)

type Service interface {
	Detail(ctx context.Context, id int64) (*catalog.Detail, error)
}

type Handler struct {
	log     *slog.Logger
	catalog Service
	view    handlers.View
}

func New(log *slog.Logger, catalog Service, v handlers.View) *Handler {
	return &Handler{log: log, catalog: catalog, view: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cars.detail"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := handlers.ID(r, "id")
	if err != nil {
		h.view.Error(w, r, http.StatusNotFound, NotFound)
		return
	}

	d, err := h.catalog.Detail(r.Context(), id)
	if err != nil {
		log.Error("failed to load car", slog.Int64("car_id", id), sl.Err(err))
		if apiclient.IsNotFound(err) {
			h.view.Error(w, r, http.StatusNotFound, NotFound)
			return
		}
		h.view.Error(w, r, http.StatusBadGateway, LoadFailed)
		return
	}

	Render(h.view, w, r, http.StatusOK, d, "", view.CarDetailData{})
}

// Render отрисовывает карточку с ранее введёнными датами form и ошибкой формы formErr.
func Render(v handlers.View, w http.ResponseWriter, r *http.Request, status int, d *catalog.Detail, formErr string, form view.CarDetailData) {
	form.Detail = d
	v.Render(w, r, status, "car_detail", view.Page{
		Title: d.Car.Brand + " " + d.Car.Model,
		Error: formErr,
		Data:  form,
	})
}
