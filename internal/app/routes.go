package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminbookings "github.com/magabrotheeeer/rentify-web/internal/http/handlers/admin/bookings"
	admincars "github.com/magabrotheeeer/rentify-web/internal/http/handlers/admin/cars"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/admin/overview"
	adminpayments "github.com/magabrotheeeer/rentify-web/internal/http/handlers/admin/payments"
	adminusers "github.com/magabrotheeeer/rentify-web/internal/http/handlers/admin/users"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/auth/logout"
	bookingcreate "github.com/magabrotheeeer/rentify-web/internal/http/handlers/bookings/create"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/bookings/history"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/cars/detail"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/cars/list"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/health"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/pages"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/payment/checkout"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/payment/verify"
	profilehandler "github.com/magabrotheeeer/rentify-web/internal/http/handlers/profile"
	reviewcreate "github.com/magabrotheeeer/rentify-web/internal/http/handlers/review/create"
	"github.com/magabrotheeeer/rentify-web/internal/http/middlewarectx"
	"github.com/magabrotheeeer/rentify-web/internal/session"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

// BookingNotice — уведомление гостю, открывшему карточку автомобиля.
const BookingNotice = "Sign In or Register to start your booking journey!"

// Deps — зависимости маршрутов.
type Deps struct {
	Logger   *slog.Logger
	Services Services
	View     *view.Renderer
	Sessions *session.Manager
	Guards   *middlewarectx.Guards
	Limiter  *middlewarectx.Limiter
	Metrics  *middlewarectx.Metrics
	Registry *prometheus.Registry
	Pingers  map[string]health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	log, svc, v, g := d.Logger, d.Services, d.View, d.Guards

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		d.Metrics.Middleware,
		middleware.Logger,
		middleware.Recoverer,
	)

	// Служебные конечные точки без сессии
	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", health.New(log, d.Pingers).ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(d.Sessions.Middleware)

		// Только для гостей
		r.Group(func(r chi.Router) {
			r.Use(g.PublicOnly)
			loginHandler := login.New(log, svc.API, v)
			r.Get("/", pages.NewLanding(v).ServeHTTP)
			r.Get("/login", loginHandler.ServeHTTP)
			r.With(middlewarectx.RateLimitMiddleware(log, d.Limiter, v)).Post("/login", loginHandler.ServeHTTP)
		})

		// Открытые страницы
		r.Post("/logout", logout.New(log, v).ServeHTTP)
		r.Get("/cars", list.New(log, svc.Catalog, v).ServeHTTP)
		for path, page := range pages.Static {
			r.Get(path, pages.New(v, page).ServeHTTP)
		}

		r.With(g.RequireSession(middlewarectx.AreaAny, middlewarectx.WithNotice(BookingNotice))).
			Get("/cars/{id}", detail.New(log, svc.Catalog, v).ServeHTTP)

		// Любой вошедший пользователь
		r.Group(func(r chi.Router) {
			r.Use(g.RequireSession(middlewarectx.AreaAny))
			r.Post("/cars/{id}/bookings", bookingcreate.New(log, svc.Bookings, svc.Catalog, v).ServeHTTP)
			r.Get("/bookings", history.New(log, svc.Bookings, v).ServeHTTP)
			r.Post("/bookings/{id}/pay", checkout.New(log, svc.Payments, v).ServeHTTP)
			r.Post("/bookings/{id}/review", reviewcreate.New(log, svc.Bookings, svc.Reviews, v).ServeHTTP)
			r.Post("/payments/verify", verify.New(log, svc.Payments, v).ServeHTTP)

			profileHandler := profilehandler.New(log, svc.Profile, v)
			r.Get("/profile", profileHandler.ServeHTTP)
			r.Post("/profile", profileHandler.ServeHTTP)
		})

		// Кабинет клиента
		r.With(g.RequireSession(middlewarectx.AreaCustomer)).
			Get("/dashboard", dashboard.New(log, svc.Bookings, v).ServeHTTP)

		// Back-office
		r.Route("/admin", func(r chi.Router) {
			r.Use(g.RequireAdmin)
			r.Get("/", overview.New(log, svc.Admin, v).ServeHTTP)

			users := adminusers.New(log, svc.Admin, v)
			r.Get("/users", users.List)
			r.Get("/users/{id}/edit", users.Edit)
			r.Post("/users/{id}", users.Update)
			r.Post("/users/{id}/role", users.ChangeRole)
			r.Post("/users/{id}/delete", users.Delete)

			cars := admincars.New(log, svc.Admin, v)
			r.Get("/cars", cars.List)
			r.Get("/cars/new", cars.NewForm)
			r.Get("/cars/{id}/edit", cars.Edit)
			r.Post("/cars", cars.Create)
			r.Post("/cars/{id}", cars.Update)
			r.Post("/cars/{id}/delete", cars.Delete)

			bookings := adminbookings.New(log, svc.Admin, v)
			r.Get("/bookings", bookings.List)
			r.Post("/bookings/{id}/cancel", bookings.Cancel)

			r.Get("/payments", adminpayments.New(log, svc.Admin, v).ServeHTTP)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			v.Redirect(w, r, "/")
		})
	})
}
