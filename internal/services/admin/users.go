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

// Users возвращает всех пользователей.
func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	const op = "admin.Users"

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// User ищет пользователя в общем списке: отдельного запроса по id у API нет.
func (s *Service) User(ctx context.Context, id int64) (*models.User, error) {
	const op = "admin.User"

	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
}

// ChangeRole назначает пользователю роль.
func (s *Service) ChangeRole(ctx context.Context, actor string, id int64, role models.Role) error {
	const op = "admin.ChangeRole"

	if !role.Valid() {
		return validation.New("role", "Please select a valid role.")
	}
	if err := s.api.UpdateUserRole(ctx, id, role); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user role changed", slog.Int64("user_id", id), slog.String("role", role.String()))
	s.publish(ctx, audit.UserRoleChanged, actor, id, map[string]string{"role": role.String()})
	return nil
}

// UpdateUser меняет имя и почту пользователя.
func (s *Service) UpdateUser(ctx context.Context, actor string, id int64, upd models.UserUpdate) (*models.User, error) {
	const op = "admin.UpdateUser"

	upd.Name = strings.TrimSpace(upd.Name)
	upd.Email = strings.TrimSpace(upd.Email)
	if err := validation.Struct(upd); err != nil {
		return nil, err
	}
	u, err := s.api.UpdateUser(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user updated", slog.Int64("user_id", id))
	s.publish(ctx, audit.UserUpdated, actor, id, upd)
	return u, nil
}

// DeleteUser удаляет пользователя, только если действие подтверждено.
func (s *Service) DeleteUser(ctx context.Context, actor string, id int64, confirmed bool) error {
	const op = "admin.DeleteUser"

	if !confirmed {
		return ErrNotConfirmed
	}
	if err := s.api.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user deleted", slog.Int64("user_id", id))
	s.publish(ctx, audit.UserDeleted, actor, id, nil)
	return nil
}
