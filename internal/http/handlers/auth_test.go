package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/rfd-tracker/internal/http/handlers/mocks"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/service"
)

// startLogin проходит /auth/google: возвращает state, verifier и куку состояния.
func startLogin(t *testing.T, h *Handlers, svc *mocks.MockService) (string, string, *http.Cookie) {
	t.Helper()

	var state, verifier string
	svc.EXPECT().AuthCodeURL(gomock.Any(), gomock.Any()).DoAndReturn(func(st, pv string) string {
		state, verifier = st, pv
		return "https://accounts.google.com/o/oauth2/auth?state=" + url.QueryEscape(st)
	})

	rr := do(t, routes(h, nil), http.MethodGet, "/auth/google", nil)
	require.Equal(t, http.StatusFound, rr.Code)
	require.Contains(t, rr.Header().Get("Location"), "accounts.google.com")

	ck := cookieNamed(rr, stateCookie)
	require.NotNil(t, ck)
	require.True(t, ck.HttpOnly)
	require.Equal(t, "/", ck.Path)
	require.NotEmpty(t, state)
	require.NotEmpty(t, verifier)

	return state, verifier, ck
}

func TestGoogleCallback_Success(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	state, verifier, ck := startLogin(t, h, svc)

	user := member()
	sess := &models.Session{ID: "sid", Token: "session-token", UserID: user.ID, ExpiresAt: testNow.Add(30 * 24 * time.Hour)}
	svc.EXPECT().Login(gomock.Any(), "auth-code", verifier).Return(user, sess, nil)

	rr := do(t, routes(h, nil), http.MethodGet, "/auth/google/callback?code=auth-code&state="+url.QueryEscape(state), nil, ck)

	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, "/", rr.Header().Get("Location"))

	sc := cookieNamed(rr, "auth_session")
	require.NotNil(t, sc)
	require.Equal(t, "session-token", sc.Value)
	require.True(t, sc.Secure)

	cleared := cookieNamed(rr, stateCookie)
	require.NotNil(t, cleared)
	require.Equal(t, -1, cleared.MaxAge)
}

func TestGoogleCallback_StateMismatch(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	_, _, ck := startLogin(t, h, svc)

	rr := do(t, routes(h, nil), http.MethodGet, "/auth/google/callback?code=auth-code&state=forged", nil, ck)
	requireAPIError(t, rr, http.StatusBadRequest, "invalid_argument")
}

func TestGoogleCallback_MissingStateCookie(t *testing.T) {
	t.Parallel()

	h, _ := newHandlers(t)

	rr := do(t, routes(h, nil), http.MethodGet, "/auth/google/callback?code=auth-code&state=abc", nil)
	requireAPIError(t, rr, http.StatusBadRequest, "invalid_argument")
}

func TestGoogleCallback_ExpiredState(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	state, _, ck := startLogin(t, h, svc)

	h.now = func() time.Time { return testNow.Add(11 * time.Minute) }

	rr := do(t, routes(h, nil), http.MethodGet, "/auth/google/callback?code=auth-code&state="+url.QueryEscape(state), nil, ck)
	requireAPIError(t, rr, http.StatusBadRequest, "invalid_argument")
}

func TestGoogleCallback_ForeignSecret(t *testing.T) {
	t.Parallel()

	other, otherSvc := newHandlers(t)
	state, _, ck := startLogin(t, other, otherSvc)

	h, _ := newHandlers(t)
	h.cfg.StateSecret = []byte("another-secret")

	rr := do(t, routes(h, nil), http.MethodGet, "/auth/google/callback?code=auth-code&state="+url.QueryEscape(state), nil, ck)
	requireAPIError(t, rr, http.StatusBadRequest, "invalid_argument")
}

func TestGoogleCallback_ConsentDenied(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	state, _, ck := startLogin(t, h, svc)

	rr := do(t, routes(h, nil), http.MethodGet, "/auth/google/callback?error=access_denied&state="+url.QueryEscape(state), nil, ck)
	requireAPIError(t, rr, http.StatusBadRequest, "invalid_argument")
}

func TestGoogleCallback_MissingCode(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	state, _, ck := startLogin(t, h, svc)

	rr := do(t, routes(h, nil), http.MethodGet, "/auth/google/callback?state="+url.QueryEscape(state), nil, ck)
	requireAPIError(t, rr, http.StatusBadRequest, "invalid_argument")
}

func TestGoogleCallback_RevokedRedirectsToRestricted(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	state, _, ck := startLogin(t, h, svc)

	svc.EXPECT().Login(gomock.Any(), "auth-code", gomock.Any()).
		Return(nil, nil, &service.RevokedError{Email: "bob@other.org"})

	rr := do(t, routes(h, nil), http.MethodGet, "/auth/google/callback?code=auth-code&state="+url.QueryEscape(state), nil, ck)

	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, "/restricted?email=bob%40other.org", rr.Header().Get("Location"))
	require.Nil(t, cookieNamed(rr, "auth_session"))
}

func TestGoogleCallback_UpstreamFailure(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	state, _, ck := startLogin(t, h, svc)

	svc.EXPECT().Login(gomock.Any(), "auth-code", gomock.Any()).
		Return(nil, nil, errors.Join(service.ErrUpstream, errors.New("token endpoint down")))

	rr := do(t, routes(h, nil), http.MethodGet, "/auth/google/callback?code=auth-code&state="+url.QueryEscape(state), nil, ck)
	requireAPIError(t, rr, http.StatusBadGateway, "upstream_failure")
}

func TestLogout_InvalidatesSessionAndClearsCookie(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	svc.EXPECT().InvalidateSession(gomock.Any(), "sid").Return(nil)

	rr := do(t, routes(h, member()), http.MethodPost, "/auth/logout", nil)

	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, "/", rr.Header().Get("Location"))

	c := cookieNamed(rr, "auth_session")
	require.NotNil(t, c)
	require.Equal(t, -1, c.MaxAge)
}

func TestLogout_RotatedSession_InvalidatesPresentedToo(t *testing.T) {
	t.Parallel()

	h, svc := newHandlers(t)
	u := member()
	sess := &models.Session{ID: "new-sid", UserID: u.ID, Fresh: true, Replaces: "old-sid"}

	gomock.InOrder(
		svc.EXPECT().InvalidateSession(gomock.Any(), "new-sid").Return(nil),
		svc.EXPECT().InvalidateSession(gomock.Any(), "old-sid").Return(nil),
	)

	rr := do(t, routesWithSession(h, u, sess), http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, -1, cookieNamed(rr, "auth_session").MaxAge)
}

func TestLogout_Anonymous(t *testing.T) {
	t.Parallel()

	h, _ := newHandlers(t)

	rr := do(t, routes(h, nil), http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusFound, rr.Code)
}

func TestRestricted(t *testing.T) {
	t.Parallel()

	h, _ := newHandlers(t)

	rr := do(t, routes(h, nil), http.MethodGet, "/restricted?email=bob%40other.org", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeBody[restrictedResponse](t, rr)
	require.Equal(t, "bob@other.org", resp.Email)
	require.Equal(t, restrictedMessage, resp.Message)
}

func TestMe(t *testing.T) {
	t.Parallel()

	h, _ := newHandlers(t)
	u := member()

	rr := do(t, routes(h, u), http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeBody[userResponse](t, rr)
	require.Equal(t, u.ID.String(), resp.ID)
	require.Equal(t, "member", resp.Role)
}
