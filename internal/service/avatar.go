package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/pkg/log"
)

var errAvatarRejected = errors.New("avatar rejected")

// syncAvatar обновляет кэшированный аватар, если его нет или он старше ResyncAfter.
// Любая ошибка логируется и не мешает входу.
func (s *Service) syncAvatar(ctx context.Context, user *models.User, sourceURL string) {
	now := s.clock()
	if user.AvatarSyncedAt != nil && now.Sub(*user.AvatarSyncedAt) < s.cfg.Avatar.ResyncAfter {
		return
	}

	lg := log.From(ctx)

	link := sourceURL
	if s.avatars != nil && strings.HasPrefix(sourceURL, "http") {
		stored, err := s.storeAvatar(ctx, user, sourceURL)
		if err != nil {
			lg.Warn("avatar_sync_failed",
				slog.String("user_id", user.ID.String()),
				slog.String("err", err.Error()),
			)
			return
		}
		link = stored
	}

	if link == "" {
		return
	}

	if err := s.storage.UpdateUserAvatar(ctx, user.ID, link, now); err != nil {
		lg.Warn("avatar_save_failed", slog.String("user_id", user.ID.String()), slog.String("err", err.Error()))
		return
	}

	old := user.Avatar
	user.Avatar = link
	user.AvatarSyncedAt = &now

	if s.avatars != nil && old != "" && old != link {
		// Старая ссылка может указывать на провайдера, а не на наше хранилище.
		if err := s.avatars.RemoveAvatar(ctx, old); err != nil {
			lg.Debug("avatar_remove_skipped", slog.String("err", err.Error()))
		}
	}
}

// storeAvatar скачивает изображение с ограничением времени и размера и кладёт в хранилище.
func (s *Service) storeAvatar(ctx context.Context, user *models.User, sourceURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Avatar.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "rfd-service-avatar-sync/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", errAvatarRejected, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%w: content type %q", errAvatarRejected, contentType)
	}

	limit := s.cfg.Avatar.MaxSizeBytes
	if resp.ContentLength > limit {
		return "", fmt.Errorf("%w: content length %d", errAvatarRejected, resp.ContentLength)
	}

	// Заголовку длины не доверяем: читаем не больше limit+1 байт.
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", err
	}

	if int64(len(body)) > limit {
		return "", fmt.Errorf("%w: body exceeds %d bytes", errAvatarRejected, limit)
	}

	if len(body) == 0 {
		return "", fmt.Errorf("%w: empty body", errAvatarRejected)
	}

	return s.avatars.PutAvatar(ctx, user.ID, mediaType, int64(len(body)), bytes.NewReader(body))
}
