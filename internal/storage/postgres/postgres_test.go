package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты пакета postgres:
// - поднимают реальный PostgreSQL через testcontainers-go (postgres:16-alpine);
// - применяют все миграции из ./migrations по порядку.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

var migrations = []string{
	"1_init_users.up.sql",
	"2_init_sessions.up.sql",
	"3_init_rfds.up.sql",
	"4_init_endorsements.up.sql",
}

// repoRootFromThisFile — корень репозитория относительно файла тестов.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

// readMigration — читает SQL-миграцию из ./migrations.
func readMigration(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(repoRootFromThisFile(), "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres — поднимает PostgreSQL, применяет миграции и возвращает хранилище.
// Без GO_TEST_INTEGRATION тест пропускается.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	for _, m := range migrations {
		_, err = pool.Exec(ctx, readMigration(t, m))
		require.NoError(t, err, m)
	}

	st, err := New(ctx, dsn)
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

// seedUser — сохраняет пользователя с заданной ролью.
func seedUser(t *testing.T, st *Storage, role models.Role) *models.User {
	t.Helper()

	now := time.Now().UTC()
	id := uuid.New()
	u := &models.User{
		ID:         id,
		ExternalID: "google-" + id.String(),
		Email:      id.String()[:8] + "@example.com",
		Name:       "User " + id.String()[:4],
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, st.SaveUser(context.Background(), u))

	return u
}

// seedRFD — создаёт RFD автора в заданном статусе.
func seedRFD(t *testing.T, st *Storage, author *models.User, status models.Status, tags ...string) *models.RFD {
	t.Helper()

	id := uuid.New()
	r, err := st.CreateRFD(context.Background(), &models.RFD{
		ID:        id,
		Title:     "RFD " + id.String()[:6],
		Status:    status,
		AuthorID:  author.ID,
		Doc:       models.DocRef{ID: "doc-" + id.String(), URL: "https://docs.example.com/" + id.String()},
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	return r
}
