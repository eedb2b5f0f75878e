// config — загрузка конфигурации rfd-service.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
//
// Поверх файла всегда накладываются переменные окружения.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	DB       DBConfig      `yaml:"db"`
	Redis    RedisConfig   `yaml:"redis"`
	Session  SessionConfig `yaml:"session"`
	Auth     AuthConfig    `yaml:"auth"`
	Google   GoogleConfig  `yaml:"google"`
	Drive    DriveConfig   `yaml:"drive"`
	S3       S3Config      `yaml:"s3"`
	Avatar   AvatarConfig  `yaml:"avatar"`
	RFD      RFDConfig     `yaml:"rfd"`
	Rate     RateConfig    `yaml:"rate"`
}

// HTTPConfig — публичный HTTP-сервер.
// BaseURL — внешний адрес сервиса, из него строится OAuth redirect URL.
type HTTPConfig struct {
	Host    string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port    string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	BaseURL string `yaml:"base_url" env:"ORIGIN" env-default:"http://localhost:8080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// TimeoutConfig — общий дедлайн обработки запроса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"15s"`
}

// DBConfig — подключение к PostgreSQL.
type DBConfig struct {
	DatabaseURL string `yaml:"db_url" env:"DATABASE_URL" env-required:"true"`
}

// RedisConfig — кэш сессий. Пустой URL отключает кэш.
type RedisConfig struct {
	RedisURL   string        `yaml:"redis_url" env:"REDIS_URL"`
	SessionTTL time.Duration `yaml:"session_ttl" env:"REDIS_SESSION_TTL" env-default:"5m"`
}

// SessionConfig — параметры сессий и куки.
type SessionConfig struct {
	CookieName    string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"auth_session"`
	Lifetime      time.Duration `yaml:"lifetime" env:"SESSION_LIFETIME"`
	RenewBefore   time.Duration `yaml:"renew_before" env:"SESSION_RENEW_BEFORE"`
	RotationGrace time.Duration `yaml:"rotation_grace" env:"SESSION_ROTATION_GRACE" env-default:"1m"`
	JanitorPeriod time.Duration `yaml:"janitor_period" env:"SESSION_JANITOR_PERIOD" env-default:"30m"`
}

// AuthConfig — допуск пользователей.
//   - AuthorizedDomains: allow-list доменов e-mail; пустой — пускаем всех;
//   - AdminEmails: кому выдать admin при первом входе;
//   - StateSecret: ключ подписи OAuth state-куки.
type AuthConfig struct {
	AuthorizedDomains []string `yaml:"authorized_domains" env:"AUTHORIZED_DOMAINS" env-separator:","`
	AdminEmails       []string `yaml:"admin_emails" env:"ADMIN_EMAILS" env-separator:","`
	StateSecret       string   `yaml:"state_secret" env:"OAUTH_STATE_SECRET" env-required:"true"`
}

// GoogleConfig — OAuth-клиент провайдера идентичности.
type GoogleConfig struct {
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID" env-required:"true"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET" env-required:"true"`
}

// DriveConfig — сервис документов.
// Без ключа сервисного аккаунта создание RFD недоступно, а шаблоны читаются токеном пользователя.
type DriveConfig struct {
	ServiceAccountKey string        `yaml:"service_account_key" env:"GOOGLE_SERVICE_ACCOUNT_KEY"`
	FolderID          string        `yaml:"folder_id" env:"GOOGLE_DRIVE_RFD_FOLDER_ID"`
	TeamEmails        []string      `yaml:"team_emails" env:"GOOGLE_RFD_TEAM_EMAILS" env-separator:","`
	Timeout           time.Duration `yaml:"timeout" env:"DRIVE_TIMEOUT" env-default:"20s"`
}

// S3Config — хранилище аватаров (MinIO/S3). Пустой Endpoint отключает кэширование аватаров.
type S3Config struct {
	Endpoint      string `yaml:"endpoint" env:"S3_ENDPOINT"`
	RootUser      string `yaml:"root_user" env:"S3_ROOT_USER"`
	RootPassword  string `yaml:"root_password" env:"S3_ROOT_PASSWORD"`
	Bucket        string `yaml:"bucket" env:"S3_BUCKET" env-default:"avatars"`
	PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
}

// AvatarConfig — ограничения загрузки аватаров от провайдера.
type AvatarConfig struct {
	MaxSizeBytes int64         `yaml:"max_size_bytes" env:"AVATAR_MAX_SIZE_BYTES"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"AVATAR_FETCH_TIMEOUT" env-default:"10s"`
	ResyncAfter  time.Duration `yaml:"resync_after" env:"AVATAR_RESYNC_AFTER" env-default:"168h"`
}

// RFDConfig — правила видимости.
// AdminDraftAccess открывает админам чужие черновики; по умолчанию выключено.
type RFDConfig struct {
	AdminDraftAccess bool `yaml:"admin_draft_access" env:"RFD_ADMIN_DRAFT_ACCESS"`
}

// RateConfig — лимит мутирующих запросов на пользователя.
type RateConfig struct {
	RPS   float64 `yaml:"rps" env:"RATE_RPS" env-default:"5"`
	Burst int     `yaml:"burst" env:"RATE_BURST" env-default:"10"`
}

// Значения, у которых явный ноль должен доходить до validate.
// env-default cleanenv подставляется для любого нулевого поля, поэтому
// такие дефолты проставляются до чтения источников.
const (
	defaultSessionLifetime    = 720 * time.Hour
	defaultSessionRenewBefore = 360 * time.Hour
	defaultAvatarMaxSize      = 5 << 20
)

func defaults() Config {
	return Config{
		Session: SessionConfig{
			Lifetime:    defaultSessionLifetime,
			RenewBefore: defaultSessionRenewBefore,
		},
		Avatar: AvatarConfig{MaxSizeBytes: defaultAvatarMaxSize},
	}
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load читает конфигурацию по приоритету источников.
func Load(path string) (*Config, error) {
	cfg := defaults()

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		return validate(&cfg)
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		return validate(&cfg)
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return validate(&cfg)
}

// validate проверяет связки значений, которые cleanenv не выражает тегами.
func validate(cfg *Config) (*Config, error) {
	if cfg.Session.Lifetime <= 0 {
		return nil, fmt.Errorf("session.lifetime must be positive")
	}

	if cfg.Session.RenewBefore <= 0 || cfg.Session.RenewBefore >= cfg.Session.Lifetime {
		return nil, fmt.Errorf("session.renew_before must be in (0, lifetime)")
	}

	if cfg.Avatar.MaxSizeBytes <= 0 {
		return nil, fmt.Errorf("avatar.max_size_bytes must be positive")
	}

	return cfg, nil
}
