package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/rfd-tracker/internal/http/middleware"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/service"
)

//go:generate mockgen -destination=mocks/service.go -package=mocks github.com/pribylovaa/rfd-tracker/internal/http/handlers Service

// Service — то, что хендлерам нужно от service.Service.
type Service interface {
	AuthCodeURL(state, verifier string) string
	Login(ctx context.Context, code, verifier string) (*models.User, *models.Session, error)
	InvalidateSession(ctx context.Context, sessionID string) error

	CreateRFD(ctx context.Context, actor *models.User, in service.CreateRFDInput) (*models.RFDView, error)
	UpdateRFD(ctx context.Context, actor *models.User, id uuid.UUID, in service.UpdateRFDInput) (*models.RFDView, error)
	UpdateStatusAdminOnly(ctx context.Context, actor *models.User, id uuid.UUID, status, comment string) (*models.RFDView, error)
	Get(ctx context.Context, actor *models.User, id uuid.UUID) (*models.RFDView, error)
	GetByNumber(ctx context.Context, actor *models.User, number int64) (*models.RFDView, error)
	List(ctx context.Context, actor *models.User, f service.ListFilter) ([]models.RFDView, error)
	History(ctx context.Context, actor *models.User, id uuid.UUID) ([]models.StatusHistoryEntry, error)
	Tags(ctx context.Context, actor *models.User) ([]string, error)
	Templates(ctx context.Context, actor *models.User) ([]models.Template, error)

	Endorse(ctx context.Context, actor *models.User, rfdID uuid.UUID) (*models.RFDView, error)
	Unendorse(ctx context.Context, actor *models.User, rfdID uuid.UUID) (*models.RFDView, error)
	Endorsers(ctx context.Context, actor *models.User, rfdID uuid.UUID) ([]models.Endorser, int, error)
}

// Config — параметры хендлеров входа.
type Config struct {
	Cookie      middleware.CookieConfig
	StateSecret []byte
	StateTTL    time.Duration
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	svc Service
	cfg Config
	now func() time.Time
}

func New(svc Service, cfg Config) *Handlers {
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = 10 * time.Minute
	}

	return &Handlers{svc: svc, cfg: cfg, now: time.Now}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return invalidArgument(err)
	}
	return nil
}

// invalidArgument — локальная ошибка разбора запроса -> service.ErrInvalidArgument.
func invalidArgument(err error) error {
	return fmt.Errorf("%w: %v", service.ErrInvalidArgument, err)
}
