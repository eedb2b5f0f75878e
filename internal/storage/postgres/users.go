package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/storage"
)

// userColumns — единый порядок колонок users для SELECT/RETURNING.
const userColumns = `
id, external_id, email, name, role, avatar, avatar_synced_at,
access_token, refresh_token, token_expires_at, created_at, updated_at
`

// scanUser сканирует строку users; неизвестная роль — ошибка, а не молчаливый member.
func scanUser(row pgx.Row) (*models.User, error) {
	var (
		user                         models.User
		role                         string
		avatar, access, refreshToken *string
	)

	if err := row.Scan(
		&user.ID,
		&user.ExternalID,
		&user.Email,
		&user.Name,
		&role,
		&avatar,
		&user.AvatarSyncedAt,
		&access,
		&refreshToken,
		&user.TokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r, err := models.ParseRole(role)
	if err != nil {
		return nil, err
	}

	user.Role = r
	user.Avatar = deref(avatar)
	user.AccessToken = deref(access)
	user.RefreshToken = deref(refreshToken)

	return &user, nil
}

// SaveUser создает нового пользователя в БД.
func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage.postgres.SaveUser"

	query := `
		INSERT INTO users(id, external_id, email, name, role, avatar, avatar_synced_at,
			access_token, refresh_token, token_expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := s.db.Exec(ctx, query,
		user.ID,
		user.ExternalID,
		user.Email,
		user.Name,
		string(user.Role),
		nullString(user.Avatar),
		user.AvatarSyncedAt,
		nullString(user.AccessToken),
		nullString(user.RefreshToken),
		user.TokenExpiresAt,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserByID находит пользователя по ID.
func (s *Storage) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage.postgres.UserByID"

	user, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// UserByExternalID находит пользователя по идентификатору провайдера.
func (s *Storage) UserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	const op = "storage.postgres.UserByExternalID"

	user, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// UpdateUserLogin обновляет e-mail, имя и токены при повторном входе.
// Пустой refresh-токен не затирает сохранённый.
func (s *Storage) UpdateUserLogin(ctx context.Context, id uuid.UUID, upd storage.LoginUpdate) error {
	const op = "storage.postgres.UpdateUserLogin"

	query := `
		UPDATE users
		SET email = $2, name = $3, access_token = $4,
			refresh_token = COALESCE($5, refresh_token),
			token_expires_at = $6, updated_at = now()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query,
		id,
		upd.Email,
		upd.Name,
		nullString(upd.Tokens.AccessToken),
		nullString(upd.Tokens.RefreshToken),
		expiryOrNil(upd.Tokens.Expiry),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// UpdateUserTokens сохраняет обновлённые токены провайдера.
func (s *Storage) UpdateUserTokens(ctx context.Context, id uuid.UUID, tokens models.ProviderTokens) error {
	const op = "storage.postgres.UpdateUserTokens"

	query := `
		UPDATE users
		SET access_token = $2,
			refresh_token = COALESCE($3, refresh_token),
			token_expires_at = $4, updated_at = now()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query,
		id,
		nullString(tokens.AccessToken),
		nullString(tokens.RefreshToken),
		expiryOrNil(tokens.Expiry),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// UpdateUserAvatar сохраняет ссылку на аватар и момент синхронизации.
func (s *Storage) UpdateUserAvatar(ctx context.Context, id uuid.UUID, avatar string, syncedAt time.Time) error {
	const op = "storage.postgres.UpdateUserAvatar"

	tag, err := s.db.Exec(ctx,
		`UPDATE users SET avatar = $2, avatar_synced_at = $3, updated_at = now() WHERE id = $1`,
		id, nullString(avatar), syncedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func expiryOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
