// Package config предоставляет структуры и функции для загрузки конфигурации веб-клиента.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// SessionBackendCookie хранит токен прямо в подписанной cookie.
	SessionBackendCookie = "cookie"
	// SessionBackendRedis хранит токен в redis, в cookie только идентификатор сессии.
	SessionBackendRedis = "redis"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	API             `yaml:"api"`
	HTTPServer      `yaml:"http_server"`
	Session         `yaml:"session"`
	RedisConnection `yaml:"redis_connection"`
	RateLimit       `yaml:"rate_limit"`
	Payment         `yaml:"payment"`
	AMQP            `yaml:"amqp"`
}

// API адрес удалённого API бронирования
type API struct {
	BaseURL    string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:2005/api"`
	APITimeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"0s"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":3000"`
	TimeoutHTTP time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Session настройки хранения сессии браузера
type Session struct {
	Backend    string        `yaml:"backend" env:"SESSION_BACKEND" env-default:"cookie"`
	CookieName string        `yaml:"cookie_name" env-default:"rentify_session"`
	HashKey    string        `yaml:"hash_key" env:"SESSION_HASH_KEY" env-required:"true"`
	BlockKey   string        `yaml:"block_key" env:"SESSION_BLOCK_KEY"`
	MaxAge     time.Duration `yaml:"max_age" env-default:"24h"`
	Secure     bool          `yaml:"secure" env:"SESSION_SECURE"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"address" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeout" env-default:"3s"`
}

// RateLimit ограничение частоты попыток входа с одного адреса
type RateLimit struct {
	LoginRPS   float64 `yaml:"login_rps" env-default:"1"`
	LoginBurst int     `yaml:"login_burst" env-default:"5"`
}

// Payment параметры платёжного виджета
type Payment struct {
	MerchantName   string `yaml:"merchant_name" env-default:"Rentify Car Rental"`
	Description    string `yaml:"description" env-default:"Car Booking Payment"`
	ThemeColor     string `yaml:"theme_color" env-default:"#333333"`
	CheckoutScript string `yaml:"checkout_script" env-default:"https://checkout.razorpay.com/v1/checkout.js"`
}

// AMQP подключение для публикации событий аудита. Пустой URL отключает публикацию.
type AMQP struct {
	AMQPURL  string `yaml:"url" env:"AMQP_URL"`
	Exchange string `yaml:"exchange" env-default:"rentify.audit"`
}

// Load читает конфиг из файла и переменных окружения и проверяет его.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Validate проверяет значения, которые нельзя выразить тегами.
func (c *Config) Validate() error {
	switch c.Backend {
	case SessionBackendCookie, SessionBackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.Backend)
	}
	if len(c.HashKey) < 32 {
		return errors.New("session hash_key must be at least 32 bytes")
	}
	switch len(c.BlockKey) {
	case 0, 16, 24, 32:
	default:
		return errors.New("session block_key must be 16, 24 or 32 bytes")
	}
	if c.BaseURL == "" {
		return errors.New("api base_url is empty")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"API:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Session:\n"+
			"  Backend: %s\n"+
			"  CookieName: %s\n"+
			"  MaxAge: %s\n"+
			"  Secure: %t\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"AMQP:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n",
		c.Env,
		c.BaseURL,
		c.APITimeout,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Backend,
		c.CookieName,
		c.MaxAge,
		c.Secure,
		c.AddressRedis,
		c.User,
		c.DB,
		c.AMQPURL != "",
		c.Exchange,
	)
}
