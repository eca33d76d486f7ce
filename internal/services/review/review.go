// Package review обрабатывает отзывы клиентов: проверка и отправка, а также
// определение, оставил ли пользователь уже отзыв об автомобиле.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/rentify-web/internal/apiclient"
	"github.com/magabrotheeeer/rentify-web/internal/lib/validation"
	"github.com/magabrotheeeer/rentify-web/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5

	SuccessNotice = "Review submitted!"
)

// API — методы удалённого API для отзывов.
type API interface {
	CreateReview(ctx context.Context, req models.ReviewRequest) error
}

// Service отправляет отзывы.
type Service struct {
	log *slog.Logger
	api API
}

// New создаёт Service.
func New(log *slog.Logger, api API) *Service {
	return &Service{log: log, api: api}
}

// Submit проверяет отзыв и отправляет его.
func (s *Service) Submit(ctx context.Context, carID int64, rating int, comment string) error {
	const op = "review.Submit"

	comment = strings.TrimSpace(comment)
	if comment == "" {
		return validation.New("comment", "Comment is required.")
	}
	if rating < MinRating || rating > MaxRating {
		return validation.New("rating", "Rating must be between 1 and 5.")
	}

	err := s.api.CreateReview(ctx, models.ReviewRequest{CarID: carID, Rating: rating, Comment: comment})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("review submitted", slog.Int64("car_id", carID), slog.Int("rating", rating))
	return nil
}

// FailureNotice — текст ошибки отправки отзыва для пользователя.
func FailureNotice(err error) string {
	if msg, ok := validation.Message(err); ok {
		return msg
	}
	return "Failed to submit review: " + apiclient.MessageOf(err, apiclient.GenericMessage)
}

// Reviewer — кто проверяется на наличие отзыва.
type Reviewer struct {
	UserID int64
	Name   string
}

// ReviewedBy сообщает, есть ли среди отзывов отзыв этого пользователя.
// Если у отзыва и у пользователя известен id, сравнивается только он;
// иначе сравнивается отображаемое имя.
func ReviewedBy(reviews []models.Review, who Reviewer) bool {
	for _, r := range reviews {
		if who.UserID != 0 && r.UserID != 0 {
			if r.UserID == who.UserID {
				return true
			}
			continue
		}
		if who.Name != "" && r.Username == who.Name {
			return true
		}
	}
	return false
}
