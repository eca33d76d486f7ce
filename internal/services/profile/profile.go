// Package profile позволяет просматривать и изменять собственный профиль.
package profile

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
	SuccessNotice = "Profile updated successfully!"
	FailedMessage = "Failed to update profile"
)

// API — методы удалённого API для профиля.
type API interface {
	Me(ctx context.Context) (*models.User, error)
	UpdateMe(ctx context.Context, upd models.UserUpdate) (*models.User, error)
}

type Service struct {
	log *slog.Logger
	api API
}

func New(log *slog.Logger, api API) *Service {
	return &Service{log: log, api: api}
}

// Get возвращает профиль текущего пользователя.
func (s *Service) Get(ctx context.Context) (*models.User, error) {
	const op = "profile.Get"

	u, err := s.api.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Update меняет имя и почту. Ошибки проверки полей возвращаются как *validation.Error.
func (s *Service) Update(ctx context.Context, upd models.UserUpdate) (*models.User, error) {
	const op = "profile.Update"

	upd.Name = strings.TrimSpace(upd.Name)
	upd.Email = strings.TrimSpace(upd.Email)
	if err := validation.Struct(upd); err != nil {
		return nil, err
	}

	u, err := s.api.UpdateMe(ctx, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("profile updated", slog.Int64("user_id", u.ID))
	return u, nil
}

// FailureNotice — сообщение сервера или общий текст.
func FailureNotice(err error) string {
	return apiclient.MessageOf(err, FailedMessage)
}
