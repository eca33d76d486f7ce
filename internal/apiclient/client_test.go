package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/rentify-web/internal/models"
)

type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Token(ctx context.Context) (string, bool) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1)
}

func (m *MockTokens) Expire(ctx context.Context) {
	m.Called(ctx)
}

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestBearerHeader(t *testing.T) {
	var gotAuth string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/cars", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":1,"brand":"Toyota","model":"Corolla","pricePerDay":50,"available":true}]`)
	})

	t.Run("token present", func(t *testing.T) {
		tokens := new(MockTokens)
		tokens.On("Token", mock.Anything).Return("abc", true)
		c := New(srv.URL+"/api/", WithTokenSource(tokens))

		cars, err := c.ListCars(context.Background())
		require.NoError(t, err)
		require.Len(t, cars, 1)
		assert.Equal(t, "Toyota", cars[0].Brand)
		assert.Equal(t, "Bearer abc", gotAuth)
	})

	t.Run("no token", func(t *testing.T) {
		c := New(srv.URL + "/api")
		_, err := c.ListCars(context.Background())
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "json message", status: 400, body: `{"message":"Car is not available for selected dates"}`, wantMsg: "Car is not available for selected dates"},
		{name: "json string", status: 409, body: `"Overlapping booking"`, wantMsg: "Overlapping booking"},
		{name: "plain text", status: 400, body: "Invalid dates", wantMsg: "Invalid dates"},
		{name: "json without message", status: 500, body: `{"error":"boom"}`, wantMsg: ""},
		{name: "html page", status: 502, body: "<html>Bad Gateway</html>", wantMsg: ""},
		{name: "empty", status: 500, body: "", wantMsg: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			c := New(srv.URL)

			_, err := c.CreateBooking(context.Background(), models.BookingRequest{CarID: 1})
			require.Error(t, err)

			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Contains(t, err.Error(), "apiclient.CreateBooking")

			want := tt.wantMsg
			if want == "" {
				want = "Booking failed."
			}
			assert.Equal(t, want, MessageOf(err, "Booking failed."))
		})
	}
}

func TestUnauthorizedExpiresSession(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"token expired"}`)
	})

	t.Run("with token", func(t *testing.T) {
		tokens := new(MockTokens)
		tokens.On("Token", mock.Anything).Return("stale", true)
		tokens.On("Expire", mock.Anything).Return().Once()
		c := New(srv.URL, WithTokenSource(tokens))

		_, err := c.Me(context.Background())
		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))
		tokens.AssertExpectations(t)
	})

	t.Run("without token", func(t *testing.T) {
		tokens := new(MockTokens)
		tokens.On("Token", mock.Anything).Return("", false)
		c := New(srv.URL, WithTokenSource(tokens))

		_, err := c.Me(context.Background())
		require.Error(t, err)
		tokens.AssertNotCalled(t, "Expire", mock.Anything)
	})

	t.Run("login is anonymous", func(t *testing.T) {
		tokens := new(MockTokens)
		c := New(srv.URL, WithTokenSource(tokens))

		_, err := c.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "x"})
		require.Error(t, err)
		assert.Equal(t, "token expired", MessageOf(err, "Login failed"))
		tokens.AssertNotCalled(t, "Token", mock.Anything)
		tokens.AssertNotCalled(t, "Expire", mock.Anything)
	})
}

func TestSearchCarsQuery(t *testing.T) {
	var gotQuery string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cars/search", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[]`)
	})
	c := New(srv.URL)

	cars, err := c.SearchCars(context.Background(), models.CarFilter{Brand: "BMW", MinPrice: "100"})
	require.NoError(t, err)
	assert.Empty(t, cars)
	assert.Equal(t, "brand=BMW&minPrice=100", gotQuery)
}

func TestLogin(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/auth/login", r.URL.Path)
		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ann@mail.com", creds.Email)
		_, _ = io.WriteString(w, `{"token":"jwt-token"}`)
	})

	token, err := New(srv.URL).Login(context.Background(), models.Credentials{Email: "ann@mail.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
}

func TestSaveCarMultipart(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/cars/5", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var in models.CarInput
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("car")), &in))
		assert.Equal(t, "Tesla", in.Brand)
		assert.Equal(t, 120.0, in.PricePerDay)

		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "car.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, []byte("png-bytes"), data)

		_, _ = io.WriteString(w, `{"id":5,"brand":"Tesla","imageUrl":"/img/5.png"}`)
	})

	car, err := New(srv.URL).UpdateCar(context.Background(), 5,
		models.CarInput{Brand: "Tesla", Model: "3", Type: "Sedan", PricePerDay: 120},
		&models.Image{Filename: "car.png", ContentType: "image/png", Data: []byte("png-bytes")})
	require.NoError(t, err)
	assert.Equal(t, "/img/5.png", car.ImageURL)
}

func TestCreateCarWithoutImage(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("image")
		assert.ErrorIs(t, err, http.ErrMissingFile)
		_, _ = io.WriteString(w, "Car created")
	})

	_, err := New(srv.URL).CreateCar(context.Background(), models.CarInput{Brand: "Kia"}, nil)
	assert.NoError(t, err)
}

func TestUpdateUserRole(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/9/role", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ADMIN", body["role"])
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, New(srv.URL).UpdateUserRole(context.Background(), 9, models.RoleAdmin))
}

func TestTransportError(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.AllPayments(context.Background())
	require.Error(t, err)
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
	assert.Equal(t, GenericMessage, MessageOf(err, GenericMessage))
}

func TestMetrics(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	})
	reg := prometheus.NewRegistry()
	c := New(srv.URL, WithMetrics(NewMetrics(reg)))

	_, err := c.AllBookings(context.Background())
	require.NoError(t, err)
	_, err = c.ListUsers(context.Background())
	require.Error(t, err)

	assert.Equal(t, 2, testutil.CollectAndCount(reg, "rentify_api_client_request_duration_seconds"))
}

func TestDecodeError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	})

	_, err := New(srv.URL).GetCar(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
