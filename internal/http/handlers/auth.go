package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	apierrors "github.com/pribylovaa/rfd-tracker/internal/errors"
	"github.com/pribylovaa/rfd-tracker/internal/http/middleware"
	"github.com/pribylovaa/rfd-tracker/internal/pkg/log"
	"github.com/pribylovaa/rfd-tracker/internal/service"
)

const restrictedMessage = "Your account is not authorized to access this application. Contact an administrator if you believe this is a mistake."

// GoogleLogin начинает OAuth-вход: state и PKCE verifier уезжают в подписанную куку.
func (h *Handlers) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state, verifier, err := h.issueState(w)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	http.Redirect(w, r, h.svc.AuthCodeURL(state, verifier), http.StatusFound)
}

// GoogleCallback завершает вход и выставляет сессионную куку.
func (h *Handlers) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lg := log.From(r.Context())

	verifier, err := h.consumeState(w, r, q.Get("state"))
	if err != nil {
		lg.Warn("oauth_state_rejected", slog.String("err", err.Error()))
		apierrors.WriteError(w, r, invalidArgument(err))
		return
	}

	if e := q.Get("error"); e != "" {
		lg.Info("oauth_consent_denied", slog.String("reason", e))
		apierrors.WriteError(w, r, invalidArgument(errors.New(e)))
		return
	}

	code := q.Get("code")
	if code == "" {
		apierrors.WriteError(w, r, invalidArgument(errors.New("missing code")))
		return
	}

	_, sess, err := h.svc.Login(r.Context(), code, verifier)
	if err != nil {
		var revoked *service.RevokedError
		if errors.As(err, &revoked) {
			http.Redirect(w, r, service.RestrictedPath+"?email="+url.QueryEscape(revoked.Email), http.StatusFound)
			return
		}

		apierrors.WriteError(w, r, err)
		return
	}

	middleware.SetSessionCookie(w, h.cfg.Cookie, sess.Token, sess.ExpiresAt)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout удаляет текущую сессию на сервере и стирает куку.
// Если сессия ротирована этим же запросом, удаляется и предъявленная.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFrom(r.Context()); sess != nil {
		for _, id := range sess.IDs() {
			if err := h.svc.InvalidateSession(r.Context(), id); err != nil {
				apierrors.WriteError(w, r, err)
				return
			}
		}
	}

	middleware.ClearSessionCookie(w, h.cfg.Cookie)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Restricted — информационная страница для пользователей вне allow-list.
func (h *Handlers) Restricted(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, restrictedResponse{
		Email:   r.URL.Query().Get("email"),
		Message: restrictedMessage,
	})
}

// Me — текущий пользователь.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFromModel(middleware.UserFrom(r.Context())))
}
