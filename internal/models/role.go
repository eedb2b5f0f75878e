package models

import (
	"errors"
	"fmt"
)

// ErrUnknownRole — значение роли вне закрытого набора.
var ErrUnknownRole = errors.New("unknown role")

// Role — роль пользователя. Набор закрыт: member и admin.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// ParseRole разбирает роль из хранилища/конфига.
// Любое значение вне набора — ошибка, а не молчаливый member.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMember, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// IsAdmin сообщает, является ли роль административной.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleMember:
		return false
	default:
		return false
	}
}
