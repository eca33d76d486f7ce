package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/rentify-web/internal/apiclient"
	"github.com/magabrotheeeer/rentify-web/internal/audit"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/handlertest"
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
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	upstream := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(upstream.Close)

	log := sl.Discard()
	reg := prometheus.NewRegistry()
	api := apiclient.New(upstream.URL, apiclient.WithTokenSource(session.Tokens{}))
	v := handlertest.View(t)

	r := chi.NewRouter()
	RegisterRoutes(r, Deps{
		Logger: log,
		Services: Services{
			API:      api,
			Catalog:  catalog.New(log, api),
			Bookings: booking.New(log, api),
			Reviews:  review.New(log, api),
			Payments: payment.New(log, api, audit.Nop{}, payment.Options{}),
			Profile:  profile.New(log, api),
			Admin:    admin.New(log, api, audit.Nop{}),
		},
		View:     v,
		Sessions: handlertest.Manager(),
		Guards:   middlewarectx.NewGuards(log, v),
		Limiter:  middlewarectx.NewLimiter(1, 5),
		Metrics:  middlewarectx.NewMetrics(reg),
		Registry: reg,
		Pingers:  map[string]health.Pinger{},
	})
	return r
}

func TestRoutes_Guards(t *testing.T) {
	router := newRouter(t)
	m := handlertest.Manager()

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		wantTo string
	}{
		{name: "guest dashboard", method: http.MethodGet, path: "/dashboard", wantTo: "/login"},
		{name: "guest car detail", method: http.MethodGet, path: "/cars/7", wantTo: "/login"},
		{name: "guest admin", method: http.MethodGet, path: "/admin/users", wantTo: "/login"},
		{name: "customer admin", method: http.MethodGet, path: "/admin", role: "CUSTOMER", wantTo: "/dashboard"},
		{name: "admin dashboard", method: http.MethodGet, path: "/dashboard", role: "ADMIN", wantTo: "/admin"},
		{name: "customer login page", method: http.MethodGet, path: "/login", role: "CUSTOMER", wantTo: "/dashboard"},
		{name: "admin landing", method: http.MethodGet, path: "/", role: "ADMIN", wantTo: "/admin"},
		{name: "unknown path", method: http.MethodGet, path: "/no/such/page", wantTo: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := handlertest.Request(t, m, tt.method, tt.path, nil, tt.role)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.wantTo, rec.Header().Get("Location"))
		})
	}
}

func TestRoutes_GuestNotice(t *testing.T) {
	router := newRouter(t)
	m := handlertest.Manager()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, handlertest.Request(t, m, http.MethodGet, "/cars/7", nil, ""))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{BookingNotice}, handlertest.Messages(handlertest.Flashes(m, rec)))
}

func TestRoutes_Public(t *testing.T) {
	router := newRouter(t)
	m := handlertest.Manager()

	for _, path := range []string{"/", "/login", "/about", "/faq", "/healthz", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, handlertest.Request(t, m, http.MethodGet, path, nil, ""))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}
