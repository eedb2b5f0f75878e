package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/pkg/log"
	"github.com/pribylovaa/rfd-tracker/internal/pkg/redact"
)

// RestrictedPath — информационная страница для отозванных пользователей.
const RestrictedPath = "/restricted"

// Decision — итог проверки допуска для одного запроса.
//
// User/Session заполнены только при успехе. SetToken — новая кука после ротации
// (истекает в SetExpires). ClearCookie — выставить пустую куку.
// Redirect — ответить редиректом вместо обработки запроса.
type Decision struct {
	User        *models.User
	Session     *models.Session
	SetToken    string
	SetExpires  time.Time
	ClearCookie bool
	Redirect    string
}

// Authorize проверяет допуск на каждом запросе: сессия -> пользователь -> allow-list.
//
// Пользователь, чей домен убран из allow-list, теряет сессию на сервере на первом же
// запросе. Вне /auth/* и /restricted он получает редирект на /restricted?email=...,
// а на этих путях запрос продолжается как анонимный.
// Ошибка возвращается только при отказе хранилища.
func (s *Service) Authorize(ctx context.Context, token, path string) (Decision, error) {
	const op = "service.gate.Authorize"

	if token == "" {
		return Decision{}, nil
	}

	sess, user, err := s.ValidateSession(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return Decision{ClearCookie: true}, nil
		}

		return Decision{}, fmt.Errorf("%s: %w", op, err)
	}

	if !s.allow.Allows(user.Email) {
		// Ротация могла оставить старую сессию в grace-периоде: удаляем все сессии пользователя.
		if err := s.InvalidateUserSessions(ctx, user.ID); err != nil {
			return Decision{}, fmt.Errorf("%s: %w", op, err)
		}

		s.metrics.GateRevocation()
		log.From(ctx).Warn("session_revoked",
			slog.String("user_id", user.ID.String()),
			slog.String("email", redact.Email(user.Email)),
		)

		d := Decision{ClearCookie: true}
		if !isExemptPath(path) {
			d.Redirect = RestrictedPath + "?email=" + url.QueryEscape(user.Email)
		}

		return d, nil
	}

	d := Decision{User: user, Session: sess}
	if sess.Fresh {
		d.SetToken = sess.Token
		d.SetExpires = sess.ExpiresAt
	}

	return d, nil
}

// isExemptPath — пути, на которых отозванный пользователь не перенаправляется.
func isExemptPath(path string) bool {
	return strings.HasPrefix(path, "/auth/") || path == RestrictedPath
}
