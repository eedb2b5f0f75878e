package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apierrors "github.com/pribylovaa/rfd-tracker/internal/errors"
	"github.com/pribylovaa/rfd-tracker/internal/http/handlers/mocks"
	"github.com/pribylovaa/rfd-tracker/internal/http/middleware"
	"github.com/pribylovaa/rfd-tracker/internal/models"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

var testCookie = middleware.CookieConfig{Name: "auth_session", Secure: true}

func newHandlers(t *testing.T) (*Handlers, *mocks.MockService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)

	h := New(svc, Config{Cookie: testCookie, StateSecret: []byte("state-secret")})
	h.now = func() time.Time { return testNow }

	return h, svc
}

// routes — минимальная маршрутизация chi, чтобы работали URL-параметры.
func routes(h *Handlers, user *models.User) http.Handler {
	var sess *models.Session
	if user != nil {
		sess = &models.Session{ID: "sid", UserID: user.ID}
	}

	return routesWithSession(h, user, sess)
}

// routesWithSession — то же, что routes, с заданной сессией принципала.
func routesWithSession(h *Handlers, user *models.User, sess *models.Session) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if user != nil {
				req = req.WithContext(middleware.WithPrincipal(req.Context(), user, sess))
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/auth/google", h.GoogleLogin)
	r.Get("/auth/google/callback", h.GoogleCallback)
	r.Post("/auth/logout", h.Logout)
	r.Get("/restricted", h.Restricted)
	r.Get("/api/me", h.Me)
	r.Get("/api/rfds", h.ListRFDs)
	r.Post("/api/rfds", h.CreateRFD)
	r.Get("/api/rfds/number/{number}", h.GetRFDByNumber)
	r.Get("/api/rfds/{id}", h.GetRFD)
	r.Put("/api/rfds/{id}", h.UpdateRFD)
	r.Put("/api/rfds/{id}/status", h.UpdateRFDStatus)
	r.Get("/api/rfds/{id}/history", h.History)
	r.Get("/api/rfds/{id}/endorsers", h.Endorsers)
	r.Post("/api/rfds/{id}/endorsement", h.Endorse)
	r.Delete("/api/rfds/{id}/endorsement", h.Unendorse)
	r.Get("/api/tags", h.Tags)
	r.Get("/api/templates", h.Templates)

	return r
}

func do(t *testing.T, h http.Handler, method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func requireAPIError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	require.Equal(t, status, rr.Code, rr.Body.String())
	resp := decodeBody[apierrors.ErrorResponse](t, rr)
	require.Equal(t, code, resp.Error.Code)
}

func cookieNamed(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func member() *models.User {
	return &models.User{ID: uuid.New(), Email: "alice@example.com", Name: "Alice", Role: models.RoleMember}
}

func viewOf(author *models.User, status models.Status) *models.RFDView {
	return &models.RFDView{
		RFD: models.RFD{
			ID:          uuid.New(),
			Number:      7,
			Title:       "Use Go",
			Status:      status,
			AuthorID:    author.ID,
			AuthorName:  author.Name,
			AuthorEmail: author.Email,
			Doc:         models.DocRef{ID: "doc-1", URL: "https://docs.google.com/document/d/doc-1/edit"},
			IsActive:    true,
			CreatedAt:   testNow,
			UpdatedAt:   testNow,
		},
	}
}
