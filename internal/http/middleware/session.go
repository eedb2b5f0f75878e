package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/pribylovaa/rfd-tracker/internal/errors"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/pkg/log"
	"github.com/pribylovaa/rfd-tracker/internal/service"
)

// Authorizer — проверка допуска на каждом запросе (service.Service.Authorize).
type Authorizer interface {
	Authorize(ctx context.Context, token, path string) (service.Decision, error)
}

// CookieConfig — параметры сессионной куки.
type CookieConfig struct {
	Name   string
	Secure bool
}

// SetSessionCookie выставляет сессионную куку до expires.
func SetSessionCookie(w http.ResponseWriter, c CookieConfig, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie выставляет пустую куку, которую браузер сразу удаляет.
func ClearSessionCookie(w http.ResponseWriter, c CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type sessionKey struct{}

type principal struct {
	user    *models.User
	session *models.Session
}

// WithPrincipal кладёт пользователя и сессию в контекст.
func WithPrincipal(ctx context.Context, user *models.User, sess *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, principal{user: user, session: sess})
}

// UserFrom — аутентифицированный пользователь запроса или nil.
func UserFrom(ctx context.Context) *models.User {
	p, _ := ctx.Value(sessionKey{}).(principal)
	return p.user
}

// SessionFrom — сессия запроса или nil.
func SessionFrom(ctx context.Context) *models.Session {
	p, _ := ctx.Value(sessionKey{}).(principal)
	return p.session
}

// Session разрешает сессионную куку через Authorizer на каждом запросе.
//
// Запрос без действительной сессии идёт дальше анонимным: защищённые маршруты
// отклоняет RequireUser. Устаревшая кука стирается, после ротации выдаётся новая.
// Отозванный пользователь получает 303 на страницу /restricted.
func Session(gate Authorizer, c CookieConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if ck, err := r.Cookie(c.Name); err == nil {
				token = ck.Value
			}

			d, err := gate.Authorize(r.Context(), token, r.URL.Path)
			if err != nil {
				log.From(r.Context()).Error("session_authorize_failed", slog.String("err", err.Error()))
				apierrors.WriteError(w, r, err)
				return
			}

			if d.ClearCookie {
				ClearSessionCookie(w, c)
			}

			if d.Redirect != "" {
				http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
				return
			}

			if d.SetToken != "" {
				SetSessionCookie(w, c, d.SetToken, d.SetExpires)
			}

			ctx := r.Context()
			if d.User != nil {
				ctx = WithPrincipal(ctx, d.User, d.Session)
				ctx = log.With(ctx, slog.String("user_id", d.User.ID.String()))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser отклоняет анонимные запросы с 401/unauthenticated.
func RequireUser() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserFrom(r.Context()) == nil {
				apierrors.WriteError(w, r, service.ErrUnauthenticated)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
