package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile — утилита записи временного файла конфигурации.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

// chdir — смена текущего рабочего каталога с авто-возвратом.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// Полный корректный YAML под текущую структуру config.go.
const sampleYAML = `
env: "prod"
http:
  host: "0.0.0.0"
  port: "9000"
  base_url: "https://rfd.example.com"
timeouts:
  service: "3s"
db:
  db_url: "postgres://u:p@db:5432/rfd?sslmode=disable"
redis:
  redis_url: "redis://redis:6379/0"
session:
  cookie_name: "sid"
  lifetime: "240h"
  renew_before: "120h"
auth:
  authorized_domains: ["example.com", "corp.example.com"]
  admin_emails: ["boss@example.com"]
  state_secret: "state-secret"
google:
  client_id: "cid"
  client_secret: "csecret"
drive:
  folder_id: "folder-1"
  team_emails: ["a@example.com"]
s3:
  endpoint: "http://minio:9000"
  bucket: "rfd-avatars"
rfd:
  admin_draft_access: false
rate:
  rps: 2
  burst: 4
`

// Минимальный YAML: только обязательные поля, остальное — через дефолты/ENV.
const minimalYAML = `
env: "stage"
db:
  db_url: "postgres://localhost/rfd"
auth:
  state_secret: "s"
google:
  client_id: "id"
  client_secret: "secret"
`

// Некорректный YAML для проверки сообщений об ошибке.
const brokenYAML = `
env: [unclosed
`

func TestHTTPConfig_Addr(t *testing.T) {
	t.Parallel()
	cfg := HTTPConfig{Host: "0.0.0.0", Port: "8080"}
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "0.0.0.0:9000", cfg.HTTP.Addr())
	require.Equal(t, "https://rfd.example.com", cfg.HTTP.BaseURL)
	require.Equal(t, 3*time.Second, cfg.Timeouts.Service)
	require.Equal(t, "redis://redis:6379/0", cfg.Redis.RedisURL)
	require.Equal(t, "sid", cfg.Session.CookieName)
	require.Equal(t, 240*time.Hour, cfg.Session.Lifetime)
	require.Equal(t, []string{"example.com", "corp.example.com"}, cfg.Auth.AuthorizedDomains)
	require.Equal(t, []string{"boss@example.com"}, cfg.Auth.AdminEmails)
	require.Equal(t, "folder-1", cfg.Drive.FolderID)
	require.Equal(t, "rfd-avatars", cfg.S3.Bucket)
	require.False(t, cfg.RFD.AdminDraftAccess)
	require.Equal(t, 2.0, cfg.Rate.RPS)
	require.Equal(t, 4, cfg.Rate.Burst)
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := Load(writeFile(t, dir, "min.yaml", minimalYAML))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.HTTP.Port)
	require.Equal(t, 15*time.Second, cfg.Timeouts.Service)
	require.Equal(t, "auth_session", cfg.Session.CookieName)
	require.Equal(t, 720*time.Hour, cfg.Session.Lifetime)
	require.Equal(t, 360*time.Hour, cfg.Session.RenewBefore)
	require.Equal(t, time.Minute, cfg.Session.RotationGrace)
	require.Equal(t, 30*time.Minute, cfg.Session.JanitorPeriod)
	require.Equal(t, int64(5*1024*1024), cfg.Avatar.MaxSizeBytes)
	require.Equal(t, 10*time.Second, cfg.Avatar.FetchTimeout)
	require.Equal(t, 168*time.Hour, cfg.Avatar.ResyncAfter)
	require.False(t, cfg.RFD.AdminDraftAccess)
	require.Empty(t, cfg.Auth.AuthorizedDomains)
	require.Empty(t, cfg.Redis.RedisURL)
}

func TestLoad_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "broken yaml", yaml: brokenYAML, wantErr: "failed to read config"},
		{name: "zero lifetime", yaml: minimalYAML + `
session:
  lifetime: "0s"
`, wantErr: "session.lifetime"},
		{name: "renewal window longer than lifetime", yaml: minimalYAML + `
session:
  lifetime: "24h"
  renew_before: "48h"
`, wantErr: "renew_before"},
		{name: "zero renewal window", yaml: minimalYAML + `
session:
  renew_before: "0s"
`, wantErr: "renew_before"},
		{name: "negative avatar limit", yaml: minimalYAML + `
avatar:
  max_size_bytes: -1
`, wantErr: "avatar.max_size_bytes"},
		{name: "zero avatar limit", yaml: minimalYAML + `
avatar:
  max_size_bytes: 0
`, wantErr: "avatar.max_size_bytes"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeFile(t, t.TempDir(), "cfg.yaml", tc.yaml))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

// Явное значение из YAML не должно подменяться дефолтом.
func TestLoad_AdminDraftAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		want bool
	}{
		{name: "absent", yaml: minimalYAML, want: false},
		{name: "explicit false", yaml: minimalYAML + "rfd:\n  admin_draft_access: false\n", want: false},
		{name: "explicit true", yaml: minimalYAML + "rfd:\n  admin_draft_access: true\n", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Load(writeFile(t, t.TempDir(), "cfg.yaml", tc.yaml))
			require.NoError(t, err)
			require.Equal(t, tc.want, cfg.RFD.AdminDraftAccess)
		})
	}
}

// Источники по убыванию приоритета: --config, CONFIG_PATH, ./local.yaml.
func TestLoad_SourcePriority(t *testing.T) {
	tests := []struct {
		name       string
		explicit   bool
		configPath string // "sample", "minimal", "broken" или ""
		localYAML  string
		wantEnv    string
	}{
		{name: "explicit wins over env and local", explicit: true, configPath: "broken", localYAML: minimalYAML, wantEnv: "prod"},
		{name: "CONFIG_PATH wins over local", configPath: "minimal", localYAML: sampleYAML, wantEnv: "stage"},
		{name: "local.yaml", localYAML: sampleYAML, wantEnv: "prod"},
	}

	files := map[string]string{"sample": sampleYAML, "minimal": minimalYAML, "broken": brokenYAML}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			chdir(t, dir)

			envPath := ""
			if tc.configPath != "" {
				envPath = writeFile(t, dir, tc.configPath+".yaml", files[tc.configPath])
			}
			t.Setenv("CONFIG_PATH", envPath)

			if tc.localYAML != "" {
				writeFile(t, ".", "local.yaml", tc.localYAML)
			}

			path := ""
			if tc.explicit {
				path = writeFile(t, dir, "explicit.yaml", sampleYAML)
			}

			cfg, err := Load(path)
			require.NoError(t, err)
			require.Equal(t, tc.wantEnv, cfg.Env)
		})
	}
}

func TestLoad_EnvOverlay_OverridesValuesFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	t.Setenv("HTTP_PORT", "18080")
	t.Setenv("AUTHORIZED_DOMAINS", "a.io,b.io")
	t.Setenv("SERVICE_TIMEOUT", "5s")
	t.Setenv("RFD_ADMIN_DRAFT_ACCESS", "true")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "18080", cfg.HTTP.Port)
	require.Equal(t, []string{"a.io", "b.io"}, cfg.Auth.AuthorizedDomains)
	require.Equal(t, 5*time.Second, cfg.Timeouts.Service)
	require.True(t, cfg.RFD.AdminDraftAccess)
}

// «Только ENV» без файлов.
func TestLoad_EnvOnly_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")

	t.Setenv("ENV", "dev")
	t.Setenv("DATABASE_URL", "postgres://env/rfd")
	t.Setenv("OAUTH_STATE_SECRET", "s")
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("SESSION_LIFETIME", "48h")
	t.Setenv("SESSION_RENEW_BEFORE", "24h")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "postgres://env/rfd", cfg.DB.DatabaseURL)
	require.Equal(t, 48*time.Hour, cfg.Session.Lifetime)
}

func TestLoad_EnvOnly_MissingRequired(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")
	for _, k := range []string{"DATABASE_URL", "OAUTH_STATE_SECRET", "GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET"} {
		t.Setenv(k, "") // регистрирует восстановление исходного значения
		require.NoError(t, os.Unsetenv(k))
	}

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "config not found")
}

func TestMustLoad_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := MustLoad(writeFile(t, dir, "ok.yaml", minimalYAML))
	require.NotNil(t, cfg)
	require.Equal(t, "stage", cfg.Env)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_ = MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
