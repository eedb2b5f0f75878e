package service

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/rfd-tracker/internal/config"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/mocks"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testDeps struct {
	st   *mocks.MockStorage
	idp  *mocks.MockIdentityProvider
	docs *mocks.MockDocumentService
}

func testCfg() *config.Config {
	return &config.Config{
		Env: "local",
		Redis: config.RedisConfig{
			SessionTTL: 5 * time.Minute,
		},
		Session: config.SessionConfig{
			CookieName:    "auth_session",
			Lifetime:      30 * 24 * time.Hour,
			RenewBefore:   15 * 24 * time.Hour,
			RotationGrace: time.Minute,
		},
		Avatar: config.AvatarConfig{
			MaxSizeBytes: 1024,
			FetchTimeout: 2 * time.Second,
			ResyncAfter:  7 * 24 * time.Hour,
		},
		RFD: config.RFDConfig{AdminDraftAccess: true},
	}
}

func newSvc(t *testing.T, cfg *config.Config, opts ...Option) (*Service, *testDeps, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := &testDeps{
		st:   mocks.NewMockStorage(ctrl),
		idp:  mocks.NewMockIdentityProvider(ctrl),
		docs: mocks.NewMockDocumentService(ctrl),
	}

	if cfg == nil {
		cfg = testCfg()
	}

	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	svc := New(d.st, d.idp, d.docs, cfg, opts...)

	return svc, d, ctrl
}

func member(email string) *models.User {
	return &models.User{ID: uuid.New(), Email: email, Name: "Member", Role: models.RoleMember}
}

func admin(email string) *models.User {
	return &models.User{ID: uuid.New(), Email: email, Name: "Admin", Role: models.RoleAdmin}
}

func rfdOf(author *models.User, status models.Status) *models.RFD {
	return &models.RFD{
		ID:       uuid.New(),
		Number:   7,
		Title:    "Storage layout",
		Summary:  "How we store things",
		Status:   status,
		AuthorID: author.ID,
		Tags:     []string{"storage"},
		IsActive: true,
	}
}
