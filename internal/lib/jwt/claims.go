// Package jwt декодирует claims токена доступа, выданного API.
//
// Подпись здесь не проверяется: клиенту нужны только имя, роль и идентификатор
// для отображения и маршрутизации, а поддельный токен отклонит сам API.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/rentify-web/internal/models"
)

var (
	// ErrMissingSubject — в токене нет claim "sub".
	ErrMissingSubject = errors.New("token has no subject")
	// ErrExpired — срок действия токена истёк.
	ErrExpired = errors.New("token is expired")
)

// Claims описывает данные пользователя, которые API кладёт в токен.
type Claims struct {
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"`
	UserID int64  `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// Decoded — результат разбора токена с уже проверенной ролью.
type Decoded struct {
	Subject string
	Name    string
	UserID  int64
	Role    models.Role
}

// Decode разбирает токен без проверки подписи.
// Токен без subject, с неизвестной ролью или с истёкшим сроком считается недекодируемым.
func Decode(token string) (*Decoded, error) {
	const op = "jwt.Decode"

	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingSubject)
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(time.Now()) {
		return nil, fmt.Errorf("%s: %w", op, ErrExpired)
	}

	name := claims.Name
	if name == "" {
		name = claims.Subject
	}
	return &Decoded{
		Subject: claims.Subject,
		Name:    name,
		UserID:  claims.UserID,
		Role:    role,
	}, nil
}
