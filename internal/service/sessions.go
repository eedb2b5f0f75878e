package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/pkg/log"
	"github.com/pribylovaa/rfd-tracker/internal/storage"
)

const tokenAttempts = 5

// hashToken — ID сессии в хранилище: sha256 токена в base64url.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// newSession генерирует токен и сессию, ещё не сохранённую.
func (s *Service) newSession(userID uuid.UUID, now time.Time) (*models.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	return &models.Session{
		ID:        hashToken(token),
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.cfg.Session.Lifetime),
		Fresh:     true,
	}, nil
}

// CreateSession создаёт сессию пользователя. Токен в открытом виде есть только в результате.
func (s *Service) CreateSession(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	const op = "service.sessions.CreateSession"

	lg := log.From(ctx)

	for attempt := 0; attempt < tokenAttempts; attempt++ {
		sess, err := s.newSession(userID, s.clock())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if err := s.storage.SaveSession(ctx, sess); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				continue
			}

			lg.Error("session_save_failed", slog.String("op", op), slog.String("err", err.Error()))
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return sess, nil
	}

	return nil, fmt.Errorf("%s: token collision", op)
}

// ValidateSession разрешает токен в (сессию, пользователя).
//
// Истёкшая сессия удаляется и даёт ErrUnauthenticated. Сессия в окне продления
// ротируется: новая сессия получает полный срок, старая живёт ещё RotationGrace,
// чтобы параллельные запросы со старой кукой не разлогинились. Результат с Fresh=true
// несёт новый токен. Пользователь всегда читается из БД (роль и e-mail не кэшируются).
func (s *Service) ValidateSession(ctx context.Context, token string) (*models.Session, *models.User, error) {
	const op = "service.sessions.ValidateSession"

	if token == "" {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	now := s.clock()
	lg := log.From(ctx)

	sess, err := s.lookupSession(ctx, hashToken(token), now)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if sess.IsExpired(now) {
		s.dropSession(ctx, sess.ID)
		return nil, nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	user, err := s.storage.UserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.dropSession(ctx, sess.ID)
			return nil, nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if !sess.NeedsRenewal(now, s.cfg.Session.RenewBefore) {
		return sess, user, nil
	}

	next, err := s.newSession(user.ID, now)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.RotateSession(ctx, sess.ID, next, now.Add(s.cfg.Session.RotationGrace)); err != nil {
		// Старую сессию уже ротировал параллельный запрос: она ещё действительна до конца grace.
		if !errors.Is(err, storage.ErrNotFound) {
			lg.Warn("session_rotate_failed", slog.String("op", op), slog.String("err", err.Error()))
		}

		return sess, user, nil
	}

	next.Replaces = sess.ID
	s.forgetSessions(ctx, sess.ID)
	lg.Debug("session_rotated", slog.String("user_id", user.ID.String()))

	return next, user, nil
}

// lookupSession — сначала кэш, затем БД с заполнением кэша.
func (s *Service) lookupSession(ctx context.Context, id string, now time.Time) (*models.Session, error) {
	lg := log.From(ctx)

	if s.sessions != nil {
		cached, ok, err := s.sessions.Get(ctx, id)
		if err != nil {
			lg.Warn("session_cache_get_failed", slog.String("err", err.Error()))
		} else if ok {
			return cached, nil
		}
	}

	sess, err := s.storage.SessionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.sessions != nil {
		ttl := min(s.cfg.Redis.SessionTTL, sess.ExpiresAt.Sub(now))
		if err := s.sessions.Set(ctx, sess, ttl); err != nil {
			lg.Warn("session_cache_set_failed", slog.String("err", err.Error()))
		}
	}

	return sess, nil
}

// InvalidateSession удаляет сессию на сервере. Повторный вызов не ошибка.
func (s *Service) InvalidateSession(ctx context.Context, sessionID string) error {
	const op = "service.sessions.InvalidateSession"

	s.forgetSessions(ctx, sessionID)

	if err := s.storage.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// InvalidateUserSessions удаляет все сессии пользователя, включая ротированные
// в grace-периоде и закэшированные с других устройств.
func (s *Service) InvalidateUserSessions(ctx context.Context, userID uuid.UUID) error {
	const op = "service.sessions.InvalidateUserSessions"

	if err := s.storage.DeleteUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if s.sessions != nil {
		if err := s.sessions.DeleteUser(ctx, userID); err != nil {
			log.From(ctx).Warn("session_cache_delete_failed", slog.String("err", err.Error()))
		}
	}

	return nil
}

// DeleteExpiredSessions — работа фонового janitor.
func (s *Service) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	const op = "service.sessions.DeleteExpiredSessions"

	n, err := s.storage.DeleteExpiredSessions(ctx, s.clock())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// dropSession — best-effort удаление недействительной сессии.
func (s *Service) dropSession(ctx context.Context, id string) {
	if err := s.InvalidateSession(ctx, id); err != nil {
		log.From(ctx).Warn("session_drop_failed", slog.String("err", err.Error()))
	}
}

func (s *Service) forgetSessions(ctx context.Context, ids ...string) {
	if s.sessions == nil || len(ids) == 0 {
		return
	}

	if err := s.sessions.Delete(ctx, ids...); err != nil {
		log.From(ctx).Warn("session_cache_delete_failed", slog.String("err", err.Error()))
	}
}
