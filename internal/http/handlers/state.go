package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	stateCookie   = "oauth_state"
	stateIssuer   = "rfd-service"
	stateAudience = "oauth-callback"
)

var errInvalidState = errors.New("invalid oauth state")

// stateClaims — state и PKCE verifier, пережившие редирект к провайдеру.
type stateClaims struct {
	State    string `json:"st"`
	Verifier string `json:"pv"`
	jwt.RegisteredClaims
}

func newState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// issueState генерирует state и verifier и кладёт их в подписанную куку.
func (h *Handlers) issueState(w http.ResponseWriter) (state, verifier string, err error) {
	state, err = newState()
	if err != nil {
		return "", "", err
	}
	verifier = oauth2.GenerateVerifier()

	now := h.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, stateClaims{
		State:    state,
		Verifier: verifier,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    stateIssuer,
			Audience:  jwt.ClaimStrings{stateAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.cfg.StateTTL)),
		},
	})

	signed, err := token.SignedString(h.cfg.StateSecret)
	if err != nil {
		return "", "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(h.cfg.StateTTL / time.Second),
		HttpOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return state, verifier, nil
}

// consumeState проверяет куку против state из callback и стирает её.
// Возвращает PKCE verifier.
func (h *Handlers) consumeState(w http.ResponseWriter, r *http.Request, state string) (string, error) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	ck, err := r.Cookie(stateCookie)
	if err != nil || state == "" {
		return "", errInvalidState
	}

	var claims stateClaims
	_, err = jwt.ParseWithClaims(ck.Value, &claims,
		func(*jwt.Token) (interface{}, error) { return h.cfg.StateSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(stateIssuer),
		jwt.WithAudience(stateAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(h.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidState, err)
	}

	if claims.State != state || claims.Verifier == "" {
		return "", errInvalidState
	}

	return claims.Verifier, nil
}
