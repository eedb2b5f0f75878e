package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/storage"
)

// SaveEndorsement вставляет одобрение. UNIQUE(rfd_id, user_id) гарантирует
// не более одного одобрения на пару даже при гонке двух запросов.
func (s *Storage) SaveEndorsement(ctx context.Context, e *models.Endorsement) error {
	const op = "storage.postgres.SaveEndorsement"

	_, err := s.db.Exec(ctx, `
		INSERT INTO rfd_endorsements(id, rfd_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, e.ID, e.RFDID, e.UserID, e.CreatedAt)
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

// HasEndorsed сообщает, одобрил ли пользователь RFD.
func (s *Storage) HasEndorsed(ctx context.Context, rfdID, userID uuid.UUID) (bool, error) {
	const op = "storage.postgres.HasEndorsed"

	var ok bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM rfd_endorsements WHERE rfd_id = $1 AND user_id = $2)`,
		rfdID, userID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return ok, nil
}

// DeleteEndorsement удаляет одобрение пары; storage.ErrNotFound если его не было.
func (s *Storage) DeleteEndorsement(ctx context.Context, rfdID, userID uuid.UUID) error {
	const op = "storage.postgres.DeleteEndorsement"

	tag, err := s.db.Exec(ctx,
		`DELETE FROM rfd_endorsements WHERE rfd_id = $1 AND user_id = $2`, rfdID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
