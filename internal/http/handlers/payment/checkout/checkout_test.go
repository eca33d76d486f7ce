package checkout

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/handlertest"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/services/payment"
)

type MockPayments struct {
	mock.Mock
}

func (m *MockPayments) Start(ctx context.Context, bookingID int64) (*payment.Checkout, error) {
	args := m.Called(ctx, bookingID)
	c, _ := args.Get(0).(*payment.Checkout)
	return c, args.Error(1)
}

func TestCheckoutHandler(t *testing.T) {
	m := handlertest.Manager()
	payments := new(MockPayments)
	payments.On("Start", mock.Anything, int64(3)).Return(&payment.Checkout{
		BookingID: 3,
		Key:       "rzp_test_key",
		OrderID:   "order_9",
		Amount:    750050,
		Currency:  "INR",
		Name:      "Rentify",
	}, nil).Once()

	req := handlertest.Request(t, m, http.MethodPost, "/bookings/3/pay", nil, "CUSTOMER")
	rec := handlertest.Serve(m, http.MethodPost, "/bookings/{id}/pay", New(sl.Discard(), payments, handlertest.View(t)), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "₹7,500.5")
	assert.Contains(t, body, "order_9")
	assert.Contains(t, body, "https://checkout.example.com/v1/checkout.js")
	payments.AssertExpectations(t)
}

func TestCheckoutHandler_Failure(t *testing.T) {
	m := handlertest.Manager()
	payments := new(MockPayments)
	payments.On("Start", mock.Anything, int64(3)).Return(nil, errors.New("gateway down")).Once()

	req := handlertest.Request(t, m, http.MethodPost, "/bookings/3/pay", nil, "CUSTOMER")
	rec := handlertest.Serve(m, http.MethodPost, "/bookings/{id}/pay", New(sl.Discard(), payments, handlertest.View(t)), req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.Equal(t,
		[]string{payment.StartFailureNotice(errors.New("gateway down"))},
		handlertest.Messages(handlertest.Flashes(m, rec)))
}
