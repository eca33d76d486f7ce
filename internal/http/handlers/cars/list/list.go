// Package list показывает каталог автомобилей с поиском по марке, модели,
// типу и диапазону цены. Пустой фильтр означает весь каталог.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

// LoadFailed — текст, если каталог загрузить не удалось.
const LoadFailed = "Failed to load cars. Please try again."

type Service interface {
	Search(ctx context.Context, f models.CarFilter) ([]models.Car, error)
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
	const op = "handlers.cars.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.FilterFromQuery(r.URL.Query())
	data := view.CarsData{Filter: filter}

	cars, err := h.catalog.Search(r.Context(), filter)
	if err != nil {
		log.Error("failed to load cars", sl.Err(err))
		data.LoadError = LoadFailed
	}
	data.Cars = cars

	h.view.Render(w, r, http.StatusOK, "cars", view.Page{Title: "Cars", Data: data})
}
