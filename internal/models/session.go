package models

import (
	"time"

	"github.com/google/uuid"
)

// Session — серверная сессия.
//
// ID — sha256-хэш непрозрачного токена (в БД токен в открытом виде не хранится).
// Token заполняется только при создании/ротации, когда его нужно отдать клиенту.
// Fresh=true означает, что сессия только что ротирована и клиенту нужна новая кука.
// Replaces — ID сессии, предъявленной в запросе, если эта сессия её только что сменила.
type Session struct {
	ID        string
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	RotatedAt *time.Time
	Fresh     bool
	Replaces  string
}

// IDs — сессии, которые нужно удалить при выходе: текущая и сменённая ею.
func (s *Session) IDs() []string {
	if s.Replaces == "" {
		return []string{s.ID}
	}

	return []string{s.ID, s.Replaces}
}

// IsExpired — истекла ли сессия к моменту now. Граница включительная.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// NeedsRenewal — попала ли сессия в окно продления и ещё не ротирована.
func (s *Session) NeedsRenewal(now time.Time, window time.Duration) bool {
	if s.RotatedAt != nil {
		return false
	}

	return s.ExpiresAt.Sub(now) < window
}
