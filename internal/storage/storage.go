// storage — контракты хранилища rfd-service и общие ошибки.
// Реализация на PostgreSQL — в подпакете postgres, объектное хранилище аватаров — в minio.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/rfd-tracker/internal/models"
)

var (
	// ErrNotFound — запись не найдена (или скрыта правилами видимости).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNumberTaken — номер RFD уже занят параллельной вставкой.
	ErrNumberTaken = errors.New("rfd number taken")
)

// Viewer — кто читает данные. Правило видимости черновиков применяется в запросе:
// черновик виден автору, а при SeeDrafts — любому (админ с доступом к черновикам).
type Viewer struct {
	UserID    uuid.UUID
	SeeDrafts bool
}

// RFDFilter — фильтры листинга. Пустые поля не фильтруют.
type RFDFilter struct {
	Status   *models.Status
	AuthorID *uuid.UUID
	Tag      string
}

// RFDChange — частичное обновление RFD: меняются только ненулевые поля.
// History заполняется при смене статуса и пишется в той же транзакции.
type RFDChange struct {
	Title   *string
	Summary *string
	Tags    *[]string
	Status  *models.Status
	History *models.StatusHistoryEntry
}

// Empty — нет ни одного изменяемого поля.
func (c *RFDChange) Empty() bool {
	return c == nil || (c.Title == nil && c.Summary == nil && c.Tags == nil && c.Status == nil)
}

// MutateFunc получает текущую (заблокированную) версию RFD и решает, что менять.
// Ошибка откатывает транзакцию и возвращается вызывающему как есть.
type MutateFunc func(current *models.RFD) (*RFDChange, error)

// LoginUpdate — данные, обновляемые у существующего пользователя при входе.
type LoginUpdate struct {
	Email  string
	Name   string
	Tokens models.ProviderTokens
}

// UserStorage — пользователи.
type UserStorage interface {
	// SaveUser создаёт пользователя; ErrAlreadyExists при дубле external_id.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UserByExternalID находит пользователя по идентификатору провайдера.
	UserByExternalID(ctx context.Context, externalID string) (*models.User, error)
	// UpdateUserLogin обновляет e-mail, имя и токены провайдера.
	UpdateUserLogin(ctx context.Context, id uuid.UUID, upd LoginUpdate) error
	// UpdateUserTokens сохраняет обновлённые токены провайдера.
	UpdateUserTokens(ctx context.Context, id uuid.UUID, tokens models.ProviderTokens) error
	// UpdateUserAvatar сохраняет ссылку на аватар и момент синхронизации.
	UpdateUserAvatar(ctx context.Context, id uuid.UUID, avatar string, syncedAt time.Time) error
}

// SessionStorage — серверные сессии.
type SessionStorage interface {
	// SaveSession сохраняет новую сессию.
	SaveSession(ctx context.Context, session *models.Session) error
	// SessionByID находит сессию по хэшу токена.
	SessionByID(ctx context.Context, id string) (*models.Session, error)
	// RotateSession атомарно сохраняет next и помечает old ротированной со сроком graceUntil.
	// ErrNotFound — old отсутствует или уже ротирована (её ротировал параллельный запрос).
	RotateSession(ctx context.Context, oldID string, next *models.Session, graceUntil time.Time) error
	// DeleteSession удаляет сессию; отсутствие записи не ошибка.
	DeleteSession(ctx context.Context, id string) error
	// DeleteUserSessions удаляет все сессии пользователя.
	DeleteUserSessions(ctx context.Context, userID uuid.UUID) error
	// DeleteExpiredSessions удаляет все сессии, истёкшие к now.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// RFDStorage — RFD и журнал статусов.
type RFDStorage interface {
	// CreateRFD назначает следующий номер и сохраняет RFD в одной транзакции.
	CreateRFD(ctx context.Context, rfd *models.RFD) (*models.RFD, error)
	// RFDByID возвращает RFD с агрегатами одобрений; скрытый черновик — ErrNotFound.
	RFDByID(ctx context.Context, id uuid.UUID, viewer Viewer) (*models.RFDView, error)
	// RFDByNumber — то же по номеру.
	RFDByNumber(ctx context.Context, number int64, viewer Viewer) (*models.RFDView, error)
	// ListRFDs возвращает активные видимые RFD (без списка одобривших).
	ListRFDs(ctx context.Context, viewer Viewer, filter RFDFilter) ([]models.RFDView, error)
	// UpdateRFD блокирует строку, вызывает mutate и применяет изменение вместе с записью журнала.
	UpdateRFD(ctx context.Context, id uuid.UUID, mutate MutateFunc) (*models.RFD, error)
	// StatusHistory возвращает журнал статусов от старых к новым.
	StatusHistory(ctx context.Context, rfdID uuid.UUID) ([]models.StatusHistoryEntry, error)
	// Tags возвращает отсортированные уникальные теги видимых активных RFD.
	Tags(ctx context.Context, viewer Viewer) ([]string, error)
}

// EndorsementStorage — реестр одобрений.
type EndorsementStorage interface {
	// SaveEndorsement вставляет одобрение; ErrAlreadyExists при нарушении (rfd_id, user_id),
	// ErrNotFound если RFD или пользователя нет.
	SaveEndorsement(ctx context.Context, e *models.Endorsement) error
	// HasEndorsed — есть ли одобрение пары.
	HasEndorsed(ctx context.Context, rfdID, userID uuid.UUID) (bool, error)
	// DeleteEndorsement удаляет одобрение пары; ErrNotFound если его не было.
	DeleteEndorsement(ctx context.Context, rfdID, userID uuid.UUID) error
}

//go:generate mockgen -destination=../../mocks/storage.go -package=mocks github.com/pribylovaa/rfd-tracker/internal/storage Storage

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	SessionStorage
	RFDStorage
	EndorsementStorage
	Close()
}
