package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"

	"github.com/magabrotheeeer/rentify-web/internal/cache"
)

type record struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisStorage хранит токен в redis, а в cookie кладёт только подписанный id сессии.
type RedisStorage struct {
	cache  *cache.Cache
	codec  *securecookie.SecureCookie
	name   string
	ttl    time.Duration
	secure bool
}

// NewRedisStorage создаёт хранилище. hashKey подписывает cookie с id, blockKey (может быть nil) шифрует её.
func NewRedisStorage(c *cache.Cache, name string, ttl time.Duration, secure bool, hashKey, blockKey []byte) *RedisStorage {
	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(int(ttl.Seconds()))
	return &RedisStorage{cache: c, codec: codec, name: name, ttl: ttl, secure: secure}
}

func key(id string) string {
	return "session:" + id
}

func (s *RedisStorage) sessionID(r *http.Request) (string, error) {
	c, err := r.Cookie(s.name)
	if err == http.ErrNoCookie {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var id string
	if err := s.codec.Decode(s.name, c.Value, &id); err != nil {
		return "", err
	}
	return id, nil
}

// Load возвращает токен по id из cookie. Без cookie или записи токен пустой.
func (s *RedisStorage) Load(r *http.Request) (string, error) {
	const op = "session.RedisStorage.Load"
	id, err := s.sessionID(r)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if id == "" {
		return "", nil
	}
	var rec record
	found, err := s.cache.Get(r.Context(), key(id), &rec)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return "", nil
	}
	return rec.Token, nil
}

// Save заводит новую сессию и удаляет запись предыдущей, если она была.
// Новый id сразу виден последующим Load и Clear в этом же запросе.
func (s *RedisStorage) Save(w http.ResponseWriter, r *http.Request, token string) error {
	const op = "session.RedisStorage.Save"
	prev, _ := s.sessionID(r)

	id := uuid.NewString()
	if err := s.cache.Set(r.Context(), key(id), record{Token: token, CreatedAt: time.Now().UTC()}, s.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	encoded, err := s.codec.Encode(s.name, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	http.SetCookie(w, s.cookie(encoded, int(s.ttl.Seconds())))
	s.replaceCookie(r, encoded)

	if prev != "" {
		if err := s.cache.Invalidate(r.Context(), key(prev)); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// Clear удаляет запись в redis и cookie.
func (s *RedisStorage) Clear(w http.ResponseWriter, r *http.Request) error {
	const op = "session.RedisStorage.Clear"
	http.SetCookie(w, s.cookie("", -1))
	id, err := s.sessionID(r)
	s.replaceCookie(r, "")
	if err != nil || id == "" {
		return nil
	}
	if err := s.cache.Invalidate(r.Context(), key(id)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// replaceCookie подменяет cookie сессии во входящем запросе. Пустое значение убирает её.
func (s *RedisStorage) replaceCookie(r *http.Request, value string) {
	cookies := r.Cookies()
	r.Header.Del("Cookie")
	for _, c := range cookies {
		if c.Name != s.name {
			r.AddCookie(c)
		}
	}
	if value != "" {
		r.AddCookie(&http.Cookie{Name: s.name, Value: value})
	}
}

func (s *RedisStorage) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
