package models

import "errors"

// Role — роль пользователя, закодированная в токене доступа.
type Role int

const (
	// RoleCustomer — обычный клиент проката.
	RoleCustomer Role = iota + 1
	// RoleAdmin — администратор back-office.
	RoleAdmin
)

// ErrUnknownRole возвращается, если значение роли не распознано.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole разбирает роль в том виде, в котором её выдаёт API.
func ParseRole(s string) (Role, error) {
	switch s {
	case "CUSTOMER":
		return RoleCustomer, nil
	case "ADMIN":
		return RoleAdmin, nil
	default:
		return 0, ErrUnknownRole
	}
}

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "CUSTOMER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return ""
	}
}

// Valid сообщает, является ли значение одной из известных ролей.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Home возвращает домашнюю страницу для роли.
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleCustomer:
		return "/dashboard"
	default:
		return "/login"
	}
}
