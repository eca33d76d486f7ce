package login

import (
	"context"

	"github.com/magabrotheeeer/rentify-web/internal/models"
)

// Service — вход по почте и паролю, возвращает токен доступа.
type Service interface {
	Login(ctx context.Context, creds models.Credentials) (string, error)
}
