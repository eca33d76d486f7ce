package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/magabrotheeeer/rentify-web/internal/models"
)

type createOrderRequest struct {
	BookingID int64 `json:"bookingId"`
}

// CreatePaymentOrder создаёт заказ на оплату бронирования.
func (c *Client) CreatePaymentOrder(ctx context.Context, bookingID int64) (*models.PaymentOrder, error) {
	const op = "apiclient.CreatePaymentOrder"

	body, err := jsonBody(createOrderRequest{BookingID: bookingID})
	if err != nil {
		return nil, err
	}
	var order models.PaymentOrder
	err = c.do(ctx, call{
		op:          op,
		method:      http.MethodPost,
		path:        "/payments/create",
		body:        body,
		contentType: "application/json",
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyPayment передаёт серверу подписанные поля из платёжного виджета.
func (c *Client) VerifyPayment(ctx context.Context, conf models.PaymentConfirmation) error {
	return c.sendJSON(ctx, "apiclient.VerifyPayment", http.MethodPost, "/payments/verify", conf, nil)
}

// BookingPayment возвращает платёж по бронированию.
func (c *Client) BookingPayment(ctx context.Context, bookingID int64) (*models.Payment, error) {
	var p models.Payment
	path := "/payments/booking/" + strconv.FormatInt(bookingID, 10)
	if err := c.getJSON(ctx, "apiclient.BookingPayment", path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AllPayments возвращает все платежи (для администратора).
func (c *Client) AllPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := c.getJSON(ctx, "apiclient.AllPayments", "/payments/all", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
