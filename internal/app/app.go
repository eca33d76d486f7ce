// Package app собирает веб-клиент: хранилище сессий, клиент API, сервисы,
// шаблоны и HTTP-сервер.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/rentify-web/internal/apiclient"
	"github.com/magabrotheeeer/rentify-web/internal/audit"
	"github.com/magabrotheeeer/rentify-web/internal/cache"
	"github.com/magabrotheeeer/rentify-web/internal/config"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/health"
	"github.com/magabrotheeeer/rentify-web/internal/http/middlewarectx"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/services/admin"
	"github.com/magabrotheeeer/rentify-web/internal/services/booking"
	"github.com/magabrotheeeer/rentify-web/internal/services/catalog"
	"github.com/magabrotheeeer/rentify-web/internal/services/payment"
	"github.com/magabrotheeeer/rentify-web/internal/services/profile"
	"github.com/magabrotheeeer/rentify-web/internal/services/review"
	"github.com/magabrotheeeer/rentify-web/internal/session"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

const (
	shutdownTimeout = 15 * time.Second
	amqpRetries     = 5
	amqpRetryDelay  = 2 * time.Second
)

// Services — всё, что нужно обработчикам.
type Services struct {
	API      *apiclient.Client
	Catalog  *catalog.Service
	Bookings *booking.Service
	Reviews  *review.Service
	Payments *payment.Service
	Profile  *profile.Service
	Admin    *admin.Service
}

type App struct {
	server  *http.Server
	logger  *slog.Logger
	closers []io.Closer
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	a := &App{logger: logger}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	storage, pingers, err := a.sessionStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	opts := session.CookieOptions(cfg.MaxAge, cfg.Secure)
	flashes := session.NewCookieStore(opts, []byte(cfg.HashKey), []byte(cfg.BlockKey))
	sessions := session.NewManager(logger, storage, flashes, cfg.CookieName)

	publisher, err := a.auditPublisher(cfg)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	api := apiclient.New(cfg.BaseURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithTokenSource(session.Tokens{}),
		apiclient.WithMetrics(apiclient.NewMetrics(reg)),
		apiclient.WithLogger(logger),
	)
	svc := Services{
		API:      api,
		Catalog:  catalog.New(logger, api),
		Bookings: booking.New(logger, api),
		Reviews:  review.New(logger, api),
		Payments: payment.New(logger, api, publisher, payment.Options{
			MerchantName: cfg.MerchantName,
			Description:  cfg.Description,
			ThemeColor:   cfg.ThemeColor,
		}),
		Profile: profile.New(logger, api),
		Admin:   admin.New(logger, api, publisher),
	}

	renderer, err := view.New(logger, view.Options{CheckoutScript: cfg.CheckoutScript})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:   logger,
		Services: svc,
		View:     renderer,
		Sessions: sessions,
		Guards:   middlewarectx.NewGuards(logger, renderer),
		Limiter:  middlewarectx.NewLimiter(cfg.LoginRPS, cfg.LoginBurst),
		Metrics:  middlewarectx.NewMetrics(reg),
		Registry: reg,
		Pingers:  pingers,
	})

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

// sessionStorage выбирает, где хранить токен: в самой cookie или в redis.
func (a *App) sessionStorage(ctx context.Context, cfg *config.Config) (session.TokenStorage, map[string]health.Pinger, error) {
	hashKey, blockKey := []byte(cfg.HashKey), []byte(cfg.BlockKey)
	pingers := map[string]health.Pinger{}

	if cfg.Backend == config.SessionBackendRedis {
		c, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, c)
		pingers["redis"] = c
		a.logger.Info("sessions are stored in redis", slog.String("address", cfg.AddressRedis))
		return session.NewRedisStorage(c, cfg.CookieName, cfg.MaxAge, cfg.Secure, hashKey, blockKey), pingers, nil
	}

	store := session.NewCookieStore(session.CookieOptions(cfg.MaxAge, cfg.Secure), hashKey, blockKey)
	a.logger.Info("sessions are stored in cookies")
	return session.NewCookieStorage(store, cfg.CookieName), pingers, nil
}

// auditPublisher подключается к RabbitMQ; без адреса события не публикуются.
func (a *App) auditPublisher(cfg *config.Config) (audit.Publisher, error) {
	if cfg.AMQPURL == "" {
		a.logger.Info("audit publishing is disabled")
		return audit.Nop{}, nil
	}
	p, err := audit.Connect(cfg.AMQPURL, cfg.Exchange, amqpRetries, amqpRetryDelay)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, p)
	a.logger.Info("audit events are published", slog.String("exchange", cfg.Exchange))
	return p, nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Error("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}
