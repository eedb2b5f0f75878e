package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/pkg/log"
	"github.com/pribylovaa/rfd-tracker/internal/storage"
)

// Endorse одобряет RFD от имени actor.
//
// HasEndorsed — только быстрый путь: при параллельных запросах решает
// UNIQUE (rfd_id, user_id), и его нарушение — тоже ErrAlreadyEndorsed.
func (s *Service) Endorse(ctx context.Context, actor *models.User, rfdID uuid.UUID) (*models.RFDView, error) {
	const op = "service.ledger.Endorse"

	if _, err := s.storage.RFDByID(ctx, rfdID, s.viewer(actor)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	endorsed, err := s.storage.HasEndorsed(ctx, rfdID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if endorsed {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyEndorsed)
	}

	now := s.clock()
	err = s.storage.SaveEndorsement(ctx, &models.Endorsement{
		ID:        ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		RFDID:     rfdID,
		UserID:    actor.ID,
		CreatedAt: now,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyEndorsed)
		}

		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	s.metrics.Endorsement("endorse")
	log.From(ctx).Info("rfd_endorsed",
		slog.String("rfd_id", rfdID.String()),
		slog.String("user_id", actor.ID.String()),
	)

	return s.Get(ctx, actor, rfdID)
}

// Unendorse отзывает одобрение actor; ErrNotEndorsed, если его не было.
func (s *Service) Unendorse(ctx context.Context, actor *models.User, rfdID uuid.UUID) (*models.RFDView, error) {
	const op = "service.ledger.Unendorse"

	if _, err := s.storage.RFDByID(ctx, rfdID, s.viewer(actor)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	if err := s.storage.DeleteEndorsement(ctx, rfdID, actor.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotEndorsed)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.Endorsement("unendorse")
	log.From(ctx).Info("rfd_unendorsed",
		slog.String("rfd_id", rfdID.String()),
		slog.String("user_id", actor.ID.String()),
	)

	return s.Get(ctx, actor, rfdID)
}

// Endorsers — одобрившие (от ранних к поздним) и их число.
func (s *Service) Endorsers(ctx context.Context, actor *models.User, rfdID uuid.UUID) ([]models.Endorser, int, error) {
	const op = "service.ledger.Endorsers"

	view, err := s.storage.RFDByID(ctx, rfdID, s.viewer(actor))
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return view.Endorsers, view.EndorsementCount, nil
}
