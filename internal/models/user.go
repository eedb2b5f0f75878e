package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User — пользователь, аутентифицированный через внешнего провайдера.
// Идентичность определяется ExternalID: e-mail может меняться.
type User struct {
	ID             uuid.UUID
	ExternalID     string
	Email          string
	Name           string
	Role           Role
	Avatar         string
	AvatarSyncedAt *time.Time
	AccessToken    string
	RefreshToken   string
	TokenExpiresAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EmailDomain возвращает домен e-mail в нижнем регистре или "" если '@' нет.
func (u *User) EmailDomain() string {
	i := strings.LastIndexByte(u.Email, '@')
	if i < 0 || i == len(u.Email)-1 {
		return ""
	}

	return strings.ToLower(u.Email[i+1:])
}

// Profile — проверенный профиль от провайдера идентичности.
type Profile struct {
	ExternalID string
	Email      string
	Name       string
	AvatarURL  string
}

// ProviderTokens — токены, полученные от провайдера идентичности.
type ProviderTokens struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}
