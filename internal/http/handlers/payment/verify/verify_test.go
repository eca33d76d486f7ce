package verify

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/rentify-web/internal/apiclient"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/http/handlers/handlertest"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/services/payment"
)

type MockPayments struct {
	mock.Mock
}

func (m *MockPayments) Verify(ctx context.Context, actor string, conf models.PaymentConfirmation) error {
	return m.Called(ctx, actor, conf).Error(0)
}

func TestVerifyHandler(t *testing.T) {
	form := url.Values{
		"razorpay_order_id":   {"order_9"},
		"razorpay_payment_id": {"pay_1"},
		"razorpay_signature":  {"sig"},
	}
	conf := models.PaymentConfirmation{OrderID: "order_9", PaymentID: "pay_1", Signature: "sig"}

	tests := []struct {
		name      string
		err       error
		wantTo    string
		wantFlash string
	}{
		{name: "verified", wantTo: "/dashboard", wantFlash: payment.SuccessNotice},
		{
			name:      "bad signature",
			err:       &apiclient.APIError{Status: http.StatusBadRequest, Message: "Invalid signature"},
			wantTo:    "/dashboard",
			wantFlash: payment.VerifyFailedNotice,
		},
		{
			name:      "session expired",
			err:       &apiclient.APIError{Status: http.StatusUnauthorized},
			wantTo:    "/login",
			wantFlash: handlers.SessionExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := handlertest.Manager()
			payments := new(MockPayments)
			payments.On("Verify", mock.Anything, "ann@mail.com", conf).Return(tt.err).Once()

			req := handlertest.Request(t, m, http.MethodPost, "/payments/verify", form, "CUSTOMER")
			rec := handlertest.Serve(m, http.MethodPost, "/payments/verify", New(sl.Discard(), payments, handlertest.View(t)), req)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.wantTo, rec.Header().Get("Location"))
			assert.Equal(t, []string{tt.wantFlash}, handlertest.Messages(handlertest.Flashes(m, rec)))
			payments.AssertExpectations(t)
		})
	}
}
