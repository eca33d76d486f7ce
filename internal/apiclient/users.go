package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/magabrotheeeer/rentify-web/internal/models"
)

// Me возвращает профиль текущего пользователя.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.getJSON(ctx, "apiclient.Me", "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateMe изменяет имя и почту текущего пользователя.
func (c *Client) UpdateMe(ctx context.Context, upd models.UserUpdate) (*models.User, error) {
	var u models.User
	if err := c.sendJSON(ctx, "apiclient.UpdateMe", http.MethodPut, "/users/me", upd, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers возвращает всех пользователей.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.getJSON(ctx, "apiclient.ListUsers", "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser изменяет имя и почту пользователя от имени администратора.
func (c *Client) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	var u models.User
	if err := c.sendJSON(ctx, "apiclient.UpdateUser", http.MethodPut, userPath(id), upd, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

type roleRequest struct {
	Role string `json:"role"`
}

// UpdateUserRole меняет роль пользователя.
func (c *Client) UpdateUserRole(ctx context.Context, id int64, role models.Role) error {
	return c.sendJSON(ctx, "apiclient.UpdateUserRole", http.MethodPatch, userPath(id)+"/role", roleRequest{Role: role.String()}, nil)
}

// DeleteUser удаляет пользователя.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, "apiclient.DeleteUser", userPath(id))
}

func userPath(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10)
}
