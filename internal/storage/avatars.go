package storage

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

// ErrInvalidArgument — объект нарушает ограничения (тип/размер).
var ErrInvalidArgument = errors.New("invalid argument")

//go:generate mockgen -source=avatars.go -destination=../../mocks/avatars.go -package=mocks

// Avatars — объектное хранилище кэшированных аватаров.
type Avatars interface {
	// PutAvatar сохраняет изображение пользователя и возвращает публичную ссылку на него.
	// ErrInvalidArgument — не изображение или размер вне лимита.
	PutAvatar(ctx context.Context, userID uuid.UUID, contentType string, size int64, body io.Reader) (string, error)
	// RemoveAvatar удаляет ранее сохранённый аватар по ссылке.
	// ErrInvalidArgument — ссылка не указывает на объект этого хранилища.
	RemoveAvatar(ctx context.Context, link string) error
}
