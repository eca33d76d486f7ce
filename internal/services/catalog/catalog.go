// Package catalog отвечает за каталог автомобилей: поиск и карточку с отзывами.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/models"
)

// API — методы удалённого API, которые нужны каталогу.
type API interface {
	ListCars(ctx context.Context) ([]models.Car, error)
	SearchCars(ctx context.Context, f models.CarFilter) ([]models.Car, error)
	GetCar(ctx context.Context, id int64) (*models.Car, error)
	CarReviews(ctx context.Context, carID int64) ([]models.Review, error)
}

// Service — бизнес-логика каталога.
type Service struct {
	log *slog.Logger
	api API
}

// New создаёт Service.
func New(log *slog.Logger, api API) *Service {
	return &Service{log: log, api: api}
}

// Search возвращает весь каталог при пустом фильтре и результат поиска иначе.
func (s *Service) Search(ctx context.Context, f models.CarFilter) ([]models.Car, error) {
	const op = "catalog.Search"

	var (
		cars []models.Car
		err  error
	)
	if f.IsEmpty() {
		cars, err = s.api.ListCars(ctx)
	} else {
		cars, err = s.api.SearchCars(ctx, f)
	}
	if err != nil {
		return []models.Car{}, fmt.Errorf("%s: %w", op, err)
	}
	return cars, nil
}

// Detail — карточка автомобиля.
type Detail struct {
	Car     models.Car      `json:"car"`
	Reviews []models.Review `json:"reviews"`
	Rating  Rating          `json:"rating"`
}

// Detail параллельно загружает автомобиль и отзывы о нём.
// Без отзывов карточка всё равно показывается.
func (s *Service) Detail(ctx context.Context, id int64) (*Detail, error) {
	const op = "catalog.Detail"

	var (
		car     *models.Car
		reviews []models.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		car, err = s.api.GetCar(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = s.api.CarReviews(gctx, id)
		if err != nil {
			s.log.Warn("failed to load reviews", slog.Int64("car_id", id), sl.Err(err))
			reviews = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if reviews == nil {
		reviews = []models.Review{}
	}
	return &Detail{Car: *car, Reviews: reviews, Rating: NewRating(reviews)}, nil
}
