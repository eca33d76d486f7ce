package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/magabrotheeeer/rentify-web/internal/models"
)

type loginResponse struct {
	Token string `json:"token"`
}

// Login обменивает логин и пароль на токен доступа.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, error) {
	const op = "apiclient.Login"

	body, err := jsonBody(creds)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	var resp loginResponse
	err = c.do(ctx, call{
		op:          op,
		method:      http.MethodPost,
		path:        "/v1/auth/login",
		body:        body,
		contentType: "application/json",
		anonymous:   true,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%s: %w", op, errors.New("empty token in response"))
	}
	return resp.Token, nil
}
