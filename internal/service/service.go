// service содержит бизнес-логику rfd-service:
// сессии и их ротацию, проверку допуска на каждом запросе (Gate),
// вход через провайдера идентичности, жизненный цикл RFD и реестр одобрений.
//
// Основные аспекты:
//   - Service не хранит состояние запроса и безопасен для конкурентного
//     использования, если потокобезопасны переданные зависимости.
//   - Решение политики и запись изменения RFD выполняются в одной транзакции
//     хранилища (storage.MutateFunc), поэтому проверка видит ту же строку, что пишется.
//   - Ошибки — сентинелы ниже; транспорт маппит их на HTTP-коды (internal/errors).
package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/pribylovaa/rfd-tracker/internal/cache"
	"github.com/pribylovaa/rfd-tracker/internal/config"
	"github.com/pribylovaa/rfd-tracker/internal/metrics"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/policy"
	"github.com/pribylovaa/rfd-tracker/internal/storage"
)

var (
	// ErrUnauthenticated — нет сессии или она недействительна/истекла. HTTP 401.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrRevoked — пользователь больше не проходит allow-list доменов.
	// Конкретный e-mail несёт *RevokedError. Транспорт: редирект на /restricted.
	ErrRevoked = errors.New("access revoked")

	// ErrNotFound — RFD нет или он скрыт правилами видимости. HTTP 404.
	ErrNotFound = errors.New("rfd not found")

	// ErrInvalidArgument — некорректный ввод (пустой title, теги, номер). HTTP 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidStatus — статус вне закрытого набора. HTTP 400.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrNoChanges — обновление не меняет ни одного поля. HTTP 409.
	ErrNoChanges = errors.New("no changes to update")

	// ErrAlreadyEndorsed — повторное одобрение. HTTP 409.
	ErrAlreadyEndorsed = errors.New("already endorsed")

	// ErrNotEndorsed — отзыв несуществующего одобрения. HTTP 409.
	ErrNotEndorsed = errors.New("not endorsed")

	// ErrNumberConflict — гонка за номер RFD; запрос можно повторить. HTTP 409.
	ErrNumberConflict = errors.New("rfd number conflict")

	// ErrUpstream — отказ провайдера идентичности или сервиса документов. HTTP 502.
	ErrUpstream = errors.New("upstream failure")

	// ErrMissingRefreshToken — провайдер не выдал refresh-токен при входе. HTTP 500.
	ErrMissingRefreshToken = errors.New("no refresh token received from identity provider")

	// ErrDriveAccessRequired — нет рабочего токена пользователя для сервиса документов. HTTP 401.
	ErrDriveAccessRequired = errors.New("drive access required")

	// ErrDocumentsUnavailable — создание документов не сконфигурировано. HTTP 503.
	ErrDocumentsUnavailable = errors.New("document service is not configured")
)

// RevokedError — отказ allow-list с e-mail для страницы /restricted.
type RevokedError struct {
	Email string
}

func (e *RevokedError) Error() string { return "access revoked for " + e.Email }

// Is позволяет errors.Is(err, ErrRevoked).
func (e *RevokedError) Is(target error) bool { return target == ErrRevoked }

//go:generate mockgen -destination=../../mocks/identity.go -package=mocks github.com/pribylovaa/rfd-tracker/internal/service IdentityProvider
//go:generate mockgen -destination=../../mocks/docs.go -package=mocks github.com/pribylovaa/rfd-tracker/internal/service DocumentService

// IdentityProvider — внешний провайдер идентичности (OAuth2 + PKCE).
type IdentityProvider interface {
	AuthCodeURL(state, verifier string) string
	Exchange(ctx context.Context, code, verifier string) (models.ProviderTokens, error)
	Profile(ctx context.Context, accessToken string) (models.Profile, error)
	Refresh(ctx context.Context, refreshToken string) (models.ProviderTokens, error)
}

// DocumentService — внешний сервис документов.
type DocumentService interface {
	// HasServiceAccount — доступно ли создание документов.
	HasServiceAccount() bool
	CreateFromTemplate(ctx context.Context, templateID string, data models.TemplateData) (models.DocRef, error)
	// ListTemplates использует сервисный аккаунт, а без него — userAccessToken.
	ListTemplates(ctx context.Context, userAccessToken string) ([]models.Template, error)
}

// Service описывает бизнес-логику rfd-service.
type Service struct {
	storage  storage.Storage
	identity IdentityProvider
	docs     DocumentService
	cfg      *config.Config

	allow       policy.AllowList
	adminEmails map[string]struct{}

	sessions   cache.SessionCache // может быть nil, если кэш не сконфигурирован
	avatars    storage.Avatars    // может быть nil: тогда хранится ссылка провайдера
	metrics    *metrics.Metrics   // может быть nil
	httpClient *http.Client
	now        func() time.Time
}

// Option — функциональная опция Service.
type Option func(*Service)

// WithClock подменяет часы (тесты).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSessionCache включает кэш проверок сессий.
func WithSessionCache(c cache.SessionCache) Option {
	return func(s *Service) { s.sessions = c }
}

// WithAvatars включает кэширование аватаров в объектном хранилище.
func WithAvatars(a storage.Avatars) Option {
	return func(s *Service) { s.avatars = a }
}

// WithMetrics подключает доменные счётчики.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithHTTPClient задаёт клиента для скачивания аватаров.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) { s.httpClient = c }
}

// New создаёт новый экземпляр Service.
func New(st storage.Storage, idp IdentityProvider, docs DocumentService, cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		storage:     st,
		identity:    idp,
		docs:        docs,
		cfg:         cfg,
		allow:       policy.NewAllowList(cfg.Auth.AuthorizedDomains...),
		adminEmails: make(map[string]struct{}, len(cfg.Auth.AdminEmails)),
		httpClient:  http.DefaultClient,
		now:         time.Now,
	}

	for _, e := range cfg.Auth.AdminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			s.adminEmails[e] = struct{}{}
		}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) clock() time.Time { return s.now().UTC() }

// viewer строит правило видимости для хранилища.
func (s *Service) viewer(actor *models.User) storage.Viewer {
	return storage.Viewer{
		UserID:    actor.ID,
		SeeDrafts: s.cfg.RFD.AdminDraftAccess && actor.Role.IsAdmin(),
	}
}
