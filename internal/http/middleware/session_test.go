package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/service"
	"github.com/stretchr/testify/require"
)

type authorizeFunc func(ctx context.Context, token, path string) (service.Decision, error)

func (f authorizeFunc) Authorize(ctx context.Context, token, path string) (service.Decision, error) {
	return f(ctx, token, path)
}

var testCookie = CookieConfig{Name: "auth_session", Secure: true}

func cookieNamed(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSession_PassesTokenAndPath(t *testing.T) {
	var gotToken, gotPath string
	gate := authorizeFunc(func(_ context.Context, token, path string) (service.Decision, error) {
		gotToken, gotPath = token, path
		return service.Decision{}, nil
	})

	var user *models.User
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user = UserFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := makeReq("/api/rfds")
	req.AddCookie(&http.Cookie{Name: "auth_session", Value: "tok"})
	rr := httptest.NewRecorder()
	Chain(final, Session(gate, testCookie)).ServeHTTP(rr, req)

	require.Equal(t, "tok", gotToken)
	require.Equal(t, "/api/rfds", gotPath)
	require.Nil(t, user)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Empty(t, rr.Result().Cookies())
}

func TestSession_AttachesPrincipalAndRotatesCookie(t *testing.T) {
	u := &models.User{ID: uuid.New(), Email: "a@example.com"}
	s := &models.Session{ID: "sid", UserID: u.ID}
	expires := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)

	gate := authorizeFunc(func(context.Context, string, string) (service.Decision, error) {
		return service.Decision{User: u, Session: s, SetToken: "new-token", SetExpires: expires}, nil
	})

	var gotUser *models.User
	var gotSess *models.Session
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotSess = UserFrom(r.Context()), SessionFrom(r.Context())
	})

	rr := httptest.NewRecorder()
	Chain(final, Session(gate, testCookie)).ServeHTTP(rr, makeReq("/api/me"))

	require.Equal(t, u, gotUser)
	require.Equal(t, s, gotSess)

	c := cookieNamed(rr, "auth_session")
	require.NotNil(t, c)
	require.Equal(t, "new-token", c.Value)
	require.Equal(t, "/", c.Path)
	require.True(t, c.HttpOnly)
	require.True(t, c.Secure)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	require.True(t, expires.Equal(c.Expires))
}

func TestSession_RevokedRedirectClearsCookie(t *testing.T) {
	gate := authorizeFunc(func(context.Context, string, string) (service.Decision, error) {
		return service.Decision{ClearCookie: true, Redirect: "/restricted?email=bob%40other.org"}, nil
	})

	called := false
	final := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	req := makeReq("/api/rfds")
	req.AddCookie(&http.Cookie{Name: "auth_session", Value: "tok"})
	rr := httptest.NewRecorder()
	Chain(final, Session(gate, testCookie)).ServeHTTP(rr, req)

	require.False(t, called)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/restricted?email=bob%40other.org", rr.Header().Get("Location"))

	c := cookieNamed(rr, "auth_session")
	require.NotNil(t, c)
	require.Empty(t, c.Value)
	require.Equal(t, -1, c.MaxAge)
}

func TestSession_ClearCookieFallsThrough(t *testing.T) {
	gate := authorizeFunc(func(context.Context, string, string) (service.Decision, error) {
		return service.Decision{ClearCookie: true}, nil
	})

	called := false
	final := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	rr := httptest.NewRecorder()
	Chain(final, Session(gate, testCookie)).ServeHTTP(rr, makeReq("/auth/google"))

	require.True(t, called)
	require.NotNil(t, cookieNamed(rr, "auth_session"))
}

func TestSession_StorageFailureIs500(t *testing.T) {
	gate := authorizeFunc(func(context.Context, string, string) (service.Decision, error) {
		return service.Decision{}, errors.New("db down")
	})

	rr := httptest.NewRecorder()
	Chain(http.NotFoundHandler(), Session(gate, testCookie)).ServeHTTP(rr, makeReq("/api/rfds"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "internal", decodeEnvelope(t, rr).Error.Code)
}

func TestRequireUser(t *testing.T) {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := Chain(final, RequireUser())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, makeReq("/api/me"))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "unauthenticated", decodeEnvelope(t, rr).Error.Code)

	req := makeReq("/api/me")
	req = req.WithContext(WithPrincipal(req.Context(), &models.User{ID: uuid.New()}, &models.Session{}))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}
