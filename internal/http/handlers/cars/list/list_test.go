package list

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/handlertest"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/models"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Search(ctx context.Context, f models.CarFilter) ([]models.Car, error) {
	args := m.Called(ctx, f)
	cars, _ := args.Get(0).([]models.Car)
	return cars, args.Error(1)
}

func TestListHandler(t *testing.T) {
	m := handlertest.Manager()
	v := handlertest.View(t)

	cat := new(MockCatalog)
	cat.On("Search", mock.Anything, models.CarFilter{Brand: "Tata", MaxPrice: "3000"}).
		Return([]models.Car{{ID: 7, Brand: "Tata", Model: "Nexon", PricePerDay: 2500}}, nil).Once()

	req := handlertest.Request(t, m, http.MethodGet, "/cars?brand=+Tata+&maxPrice=3000", nil, "")
	rec := handlertest.Serve(m, http.MethodGet, "/cars", New(sl.Discard(), cat, v), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/cars/7"`)
	assert.Contains(t, rec.Body.String(), `value="Tata"`)
	cat.AssertExpectations(t)
}

func TestListHandler_Failure(t *testing.T) {
	m := handlertest.Manager()
	cat := new(MockCatalog)
	cat.On("Search", mock.Anything, models.CarFilter{}).Return([]models.Car{}, errors.New("down")).Once()

	req := handlertest.Request(t, m, http.MethodGet, "/cars", nil, "")
	rec := handlertest.Serve(m, http.MethodGet, "/cars", New(sl.Discard(), cat, handlertest.View(t)), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), LoadFailed)
	assert.Contains(t, rec.Body.String(), "No cars found.")
}
