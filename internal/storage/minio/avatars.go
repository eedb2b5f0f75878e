package minio

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/rfd-tracker/internal/storage"
)

// PutAvatar загружает изображение под ключом "avatars/<userID>/<uuid>.<ext>"
// и возвращает публичную ссылку. Принимаются только image/* не больше лимита.
func (s *AvatarsStorage) PutAvatar(ctx context.Context, userID uuid.UUID, contentType string, size int64, body io.Reader) (string, error) {
	const op = "storage.minio.PutAvatar"

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%s: content type %q: %w", op, contentType, storage.ErrInvalidArgument)
	}

	if size <= 0 || size > s.maxSize {
		return "", fmt.Errorf("%s: size %d: %w", op, size, storage.ErrInvalidArgument)
	}

	key := path.Join("avatars", userID.String(), uuid.NewString()+extFor(mediaType))

	_, err = s.client.PutObject(ctx, s.s3.Bucket, key, body, size, mclient.PutObjectOptions{
		ContentType:  mediaType,
		CacheControl: "public, max-age=604800",
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s.baseURL + "/" + key, nil
}

// RemoveAvatar удаляет объект по публичной ссылке. Отсутствующий объект не ошибка.
func (s *AvatarsStorage) RemoveAvatar(ctx context.Context, link string) error {
	const op = "storage.minio.RemoveAvatar"

	key, ok := strings.CutPrefix(link, s.baseURL+"/")
	if !ok || !strings.HasPrefix(key, "avatars/") {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	err := s.client.RemoveObject(ctx, s.s3.Bucket, key, mclient.RemoveObjectOptions{})
	if err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func extFor(mediaType string) string {
	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
