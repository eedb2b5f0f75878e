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

// SaveSession сохраняет новую сессию.
func (s *Storage) SaveSession(ctx context.Context, session *models.Session) error {
	const op = "storage.postgres.SaveSession"

	_, err := s.db.Exec(ctx,
		`INSERT INTO sessions(id, user_id, expires_at) VALUES ($1, $2, $3)`,
		session.ID, session.UserID, session.ExpiresAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		case isForeignKeyViolation(err):
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SessionByID находит сессию по хэшу токена. Истёкшие записи тоже возвращаются:
// решение об истечении принимает сервис.
func (s *Storage) SessionByID(ctx context.Context, id string) (*models.Session, error) {
	const op = "storage.postgres.SessionByID"

	var session models.Session
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, expires_at, rotated_at FROM sessions WHERE id = $1`, id,
	).Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.RotatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &session, nil
}

// RotateSession помечает old ротированной и сохраняет next в одной транзакции.
// Срок старой сессии сокращается до graceUntil, чтобы параллельные запросы
// со старой кукой успели завершиться.
func (s *Storage) RotateSession(ctx context.Context, oldID string, next *models.Session, graceUntil time.Time) error {
	const op = "storage.postgres.RotateSession"

	err := s.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE sessions
			SET rotated_at = now(), expires_at = LEAST(expires_at, $2)
			WHERE id = $1 AND rotated_at IS NULL
		`, oldID, graceUntil)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return storage.ErrNotFound
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO sessions(id, user_id, expires_at) VALUES ($1, $2, $3)`,
			next.ID, next.UserID, next.ExpiresAt,
		)
		if err != nil && isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}

		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteSession удаляет сессию; отсутствие записи не ошибка.
func (s *Storage) DeleteSession(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteSession"

	if _, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteUserSessions удаляет все сессии пользователя.
func (s *Storage) DeleteUserSessions(ctx context.Context, userID uuid.UUID) error {
	const op = "storage.postgres.DeleteUserSessions"

	if _, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteExpiredSessions удаляет сессии, истёкшие к now, и возвращает их количество.
func (s *Storage) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage.postgres.DeleteExpiredSessions"

	tag, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return tag.RowsAffected(), nil
}
