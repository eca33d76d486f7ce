package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/rentify-web/internal/audit"
	"github.com/magabrotheeeer/rentify-web/internal/lib/validation"
	"github.com/magabrotheeeer/rentify-web/internal/models"
)

func (s *Service) Cars(ctx context.Context) ([]models.Car, error) {
	const op = "admin.Cars"

	cars, err := s.api.ListCars(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cars, nil
}

func (s *Service) Car(ctx context.Context, id int64) (*models.Car, error) {
	const op = "admin.Car"

	car, err := s.api.GetCar(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return car, nil
}

// SaveCar создаёт автомобиль (id == 0) или изменяет существующий.
// Изображение необязательно; при изменении без изображения сервер оставляет старое.
func (s *Service) SaveCar(ctx context.Context, actor string, id int64, in models.CarInput, img *models.Image) (*models.Car, error) {
	const op = "admin.SaveCar"

	in.Brand = strings.TrimSpace(in.Brand)
	in.Model = strings.TrimSpace(in.Model)
	in.Type = strings.TrimSpace(in.Type)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if img != nil && len(img.Data) == 0 {
		img = nil
	}

	var (
		car *models.Car
		err error
	)
	if id == 0 {
		car, err = s.api.CreateCar(ctx, in, img)
	} else {
		car, err = s.api.UpdateCar(ctx, id, in, img)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if car != nil && car.ID != 0 {
		id = car.ID
	}
	s.log.Info("car saved", slog.Int64("car_id", id), slog.Bool("with_image", img != nil))
	s.publish(ctx, audit.CarSaved, actor, id, in)
	return car, nil
}

// DeleteCar удаляет автомобиль, только если действие подтверждено.
func (s *Service) DeleteCar(ctx context.Context, actor string, id int64, confirmed bool) error {
	const op = "admin.DeleteCar"

	if !confirmed {
		return ErrNotConfirmed
	}
	if err := s.api.DeleteCar(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("car deleted", slog.Int64("car_id", id))
	s.publish(ctx, audit.CarDeleted, actor, id, nil)
	return nil
}
