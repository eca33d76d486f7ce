package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issue подписывает claims ключом HS256. Нужен для локальной разработки
// и тестов, когда настоящего API под рукой нет.
func Issue(subject, name, role string, userID int64, ttl time.Duration, key []byte) (string, error) {
	claims := Claims{
		Name:   name,
		Role:   role,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}
