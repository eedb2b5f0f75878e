// identity — провайдер идентичности Google (OAuth2 Authorization Code + PKCE).
// Пакет не знает о пользователях и сессиях: только обмен кода, профиль и обновление токена.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pribylovaa/rfd-tracker/internal/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// DefaultScopes — профиль пользователя и чтение Drive (для списка шаблонов его токеном).
var DefaultScopes = []string{
	"openid",
	"email",
	"profile",
	"https://www.googleapis.com/auth/drive.readonly",
}

var (
	// ErrInvalidCode — провайдер отверг код авторизации (истёк, уже использован, чужой verifier).
	ErrInvalidCode = errors.New("invalid authorization code")
	// ErrInvalidProfile — в профиле нет обязательных полей.
	ErrInvalidProfile = errors.New("invalid profile")
)

// Google — клиент провайдера.
// apiEndpoint пустой — базовый адрес Google API по умолчанию.
type Google struct {
	oauth       *oauth2.Config
	apiEndpoint string
	httpClient  *http.Client
}

// Option — функциональная опция Google.
type Option func(*Google)

// WithEndpoint подменяет OAuth-эндпоинты (тесты, прокси).
func WithEndpoint(ep oauth2.Endpoint) Option {
	return func(g *Google) { g.oauth.Endpoint = ep }
}

// WithAPIEndpoint подменяет базовый адрес Google API, из которого читается userinfo.
func WithAPIEndpoint(u string) Option {
	return func(g *Google) { g.apiEndpoint = strings.TrimRight(u, "/") + "/" }
}

// WithHTTPClient задаёт HTTP-клиент для всех вызовов провайдера.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Google) { g.httpClient = c }
}

// WithScopes заменяет набор scope.
func WithScopes(scopes ...string) Option {
	return func(g *Google) { g.oauth.Scopes = scopes }
}

// NewGoogle создаёт клиента; redirectURL — полный адрес callback.
func NewGoogle(clientID, clientSecret, redirectURL string, opts ...Option) *Google {
	g := &Google{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       DefaultScopes,
		},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// AuthCodeURL строит адрес согласия. access_type=offline и prompt=consent нужны,
// чтобы провайдер выдавал refresh-токен при каждом входе.
func (g *Google) AuthCodeURL(state, verifier string) string {
	return g.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(verifier),
	)
}

// Exchange меняет код на токены.
func (g *Google) Exchange(ctx context.Context, code, verifier string) (models.ProviderTokens, error) {
	const op = "identity.google.Exchange"

	tok, err := g.oauth.Exchange(g.ctx(ctx), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return models.ProviderTokens{}, fmt.Errorf("%s: %w", op, classify(err))
	}

	return tokens(tok), nil
}

// Refresh получает новый access-токен по refresh-токену.
func (g *Google) Refresh(ctx context.Context, refreshToken string) (models.ProviderTokens, error) {
	const op = "identity.google.Refresh"

	tok, err := g.oauth.TokenSource(g.ctx(ctx), &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return models.ProviderTokens{}, fmt.Errorf("%s: %w", op, classify(err))
	}

	return tokens(tok), nil
}

// Profile читает профиль пользователя по access-токену (userinfo v2).
func (g *Google) Profile(ctx context.Context, accessToken string) (models.Profile, error) {
	const op = "identity.google.Profile"

	svc, err := goauth2.NewService(ctx, g.apiOptions(ctx, accessToken)...)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	ui, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	if ui.Id == "" || ui.Email == "" {
		return models.Profile{}, fmt.Errorf("%s: %w", op, ErrInvalidProfile)
	}

	name := ui.Name
	if name == "" {
		name = ui.Email
	}

	return models.Profile{
		ExternalID: ui.Id,
		Email:      ui.Email,
		Name:       name,
		AvatarURL:  ui.Picture,
	}, nil
}

// apiOptions — авторизация токеном пользователя. Свой HTTP-клиент заменяет
// транспорт API целиком, поэтому токен навешивается поверх него.
func (g *Google) apiOptions(ctx context.Context, accessToken string) []option.ClientOption {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})

	auth := option.WithTokenSource(ts)
	if g.httpClient != nil {
		auth = option.WithHTTPClient(oauth2.NewClient(g.ctx(ctx), ts))
	}

	opts := []option.ClientOption{auth}
	if g.apiEndpoint != "" {
		opts = append(opts, option.WithEndpoint(g.apiEndpoint))
	}

	return opts
}

func (g *Google) ctx(ctx context.Context) context.Context {
	if g.httpClient == nil {
		return ctx
	}

	return context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
}

func tokens(tok *oauth2.Token) models.ProviderTokens {
	return models.ProviderTokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}
}

// classify превращает отказ провайдера по коду/токену в ErrInvalidCode.
func classify(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		switch re.ErrorCode {
		case "invalid_grant", "bad_verification_code":
			return fmt.Errorf("%w: %s", ErrInvalidCode, re.ErrorCode)
		}
	}

	return err
}
