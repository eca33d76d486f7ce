package view

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/rentify-web/internal/http/response"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/services/admin"
	"github.com/magabrotheeeer/rentify-web/internal/services/booking"
	"github.com/magabrotheeeer/rentify-web/internal/services/catalog"
	"github.com/magabrotheeeer/rentify-web/internal/services/payment"
	"github.com/magabrotheeeer/rentify-web/internal/session"
)

var hashKey = []byte("0123456789abcdef0123456789abcdef")

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	v, err := New(sl.Discard(), Options{CheckoutScript: "https://checkout.example.com/v1/checkout.js"})
	require.NoError(t, err)
	return v
}

func newManager() *session.Manager {
	opts := session.CookieOptions(time.Hour, false)
	storage := session.NewCookieStorage(session.NewCookieStore(opts, hashKey, nil), "rs")
	return session.NewManager(sl.Discard(), storage, session.NewCookieStore(opts, hashKey, nil), "rs")
}

func price(v float64) *float64 { return &v }

func TestRender_AllPages(t *testing.T) {
	v := newRenderer(t)
	day := func(s string) models.Date {
		d, err := models.ParseDate(s)
		require.NoError(t, err)
		return d
	}
	car := models.Car{ID: 7, Brand: "Tata", Model: "Nexon", Type: "SUV", PricePerDay: 2500, Available: true}
	b := models.Booking{ID: 1, CarID: 7, CarModel: "Nexon", StartDate: day("2025-06-01"), EndDate: day("2025-06-03"),
		Status: models.BookingPaid, PricePerDay: price(2500)}

	tests := []struct {
		page string
		data any
		want string
	}{
		{"loading", nil, "Loading"},
		{"error", "Something broke", "Something broke"},
		{"landing", nil, "Browse Cars"},
		{"login", LoginForm{Email: "asha@example.com"}, "asha@example.com"},
		{"static", "Coming soon.", "Coming soon."},
		{"cars", CarsData{Cars: []models.Car{car}}, "₹2,500/day"},
		{"cars", CarsData{LoadError: "Failed to load cars"}, "No cars found."},
		{"car_detail", CarDetailData{Detail: &catalog.Detail{
			Car:     car,
			Reviews: []models.Review{{Rating: 4, Comment: "Smooth ride", Username: "Ravi"}},
			Rating:  catalog.NewRating([]models.Review{{Rating: 4}, {Rating: 5}}),
		}}, "4.5 (2 reviews)"},
		{"dashboard", &booking.Dashboard{
			Profile: &models.User{Name: "Asha"},
			Bookings: []booking.DashboardBooking{
				{Row: booking.Row{Booking: b, Amount: 5000, HasAmount: true}, CanReview: true},
			},
			Counts: booking.Counts{Total: 1, Paid: 1},
		}, "Submit Review"},
		{"bookings", []booking.Row{{Booking: b, Amount: 5000, HasAmount: true}}, "2 days"},
		{"profile", &models.User{Name: "Asha", Email: "asha@example.com", Role: "CUSTOMER"}, "Update Profile"},
		{"checkout", CheckoutData{Checkout: &payment.Checkout{OrderID: "order_1", Amount: 500000}, Display: 5000}, "order_1"},
		{"confirm", ConfirmData{Question: admin.ConfirmDeleteCar, Action: "/admin/cars/7/delete", Back: "/admin/cars"}, "delete this car"},
		{"admin_overview", &admin.Overview{Users: 3, Revenue: 1234.5}, "₹1,234.5"},
		{"admin_users", []models.User{{ID: 2, Name: "Ravi", Role: "ADMIN"}}, "/admin/users/2/role"},
		{"admin_user_edit", &models.User{ID: 2, Name: "Ravi"}, "/admin/users/2"},
		{"admin_cars", []models.Car{car}, "/admin/cars/7/edit"},
		{"admin_car_form", CarFormData{}, "Add Car"},
		{"admin_car_form", CarFormData{ID: 7, Input: car.Input()}, "Edit Car"},
		{"admin_bookings", &admin.BookingBoard{Bookings: []models.Booking{b}, Stats: admin.CountBookings([]models.Booking{b})}, "Paid: 1"},
		{"admin_payments", &admin.PaymentBoard{
			Payments: []admin.PaymentRow{{Payment: models.Payment{OrderID: "o1", Amount: 10, Status: "PAID"}, State: payment.StatusCompleted}},
		}, "Completed"},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			v.Render(rec, req, http.StatusOK, tt.page, Page{Title: "T", Data: tt.data, Error: errorFor(tt.page)})

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func errorFor(page string) string {
	if page == "error" {
		return "Something broke"
	}
	return ""
}

func TestRender_JSON(t *testing.T) {
	v := newRenderer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cars", nil)
	req.Header.Set("Accept", "application/json")
	v.Render(rec, req, http.StatusOK, "cars", Page{Data: CarsData{Cars: []models.Car{{ID: 1}}}})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, response.StatusOK, resp.Status)
}

func TestLoading(t *testing.T) {
	v := newRenderer(t)
	rec := httptest.NewRecorder()
	v.Loading(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `http-equiv="refresh"`)
}

func TestDone_FlashSurvivesRedirect(t *testing.T) {
	v := newRenderer(t)
	m := newManager()

	rec := httptest.NewRecorder()
	m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v.Done(w, r, "/dashboard", "Payment successful!", nil)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments/verify", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	next := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()
	m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v.Render(w, r, http.StatusOK, "landing", Page{})
	})).ServeHTTP(rec2, next)

	assert.Contains(t, rec2.Body.String(), "Payment successful!")
	assert.Contains(t, rec2.Body.String(), "flash-notice")
}

func TestFail_JSON(t *testing.T) {
	v := newRenderer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/cars/1/delete", nil)
	req.Header.Set("Accept", "application/json")

	v.Fail(rec, req, http.StatusBadGateway, "/admin/cars", "Failed to delete car.")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "Failed to delete car."))
}

func TestFail_JSONValidation(t *testing.T) {
	v := newRenderer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/profile", nil)
	req.Header.Set("Accept", "application/json")

	v.Fail(rec, req, http.StatusUnprocessableEntity, "/profile", "field Email must be a valid email")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var got response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, response.Error("field Email must be a valid email"), got)
}

func TestMoney(t *testing.T) {
	tests := map[float64]string{
		0:          "0",
		5:          "5",
		999.5:      "999.5",
		1000:       "1,000",
		1234567.89: "1,234,567.89",
		-2500:      "-2,500",
	}
	for in, want := range tests {
		assert.Equal(t, want, Money(in), "%v", in)
	}
}

func TestFormatDate(t *testing.T) {
	d, err := models.ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "Jun 1, 2025", FormatDate(d))
	assert.Equal(t, "", FormatDate(models.Date{}))
	assert.Equal(t, "", FormatDate("2025-06-01"))
}
