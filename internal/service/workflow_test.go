package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/rfd-tracker/internal/metrics"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/pkg/log"
	"github.com/pribylovaa/rfd-tracker/internal/policy"
	"github.com/pribylovaa/rfd-tracker/internal/storage"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// expectMutate прогоняет MutateFunc над current, как это делает хранилище,
// и сохраняет принятое изменение в *got.
func expectMutate(d *testDeps, current *models.RFD, got **storage.RFDChange) {
	d.st.EXPECT().UpdateRFD(gomock.Any(), current.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, mutate storage.MutateFunc) (*models.RFD, error) {
			snapshot := *current
			change, err := mutate(&snapshot)
			if err != nil {
				return nil, err
			}
			*got = change
			return &snapshot, nil
		})
}

func TestCreateRFD_Validation(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t, nil)
	defer ctrl.Finish()

	actor := member("a@example.com")

	_, err := svc.CreateRFD(context.Background(), actor, CreateRFDInput{Title: "  ", TemplateID: "tpl"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.CreateRFD(context.Background(), actor, CreateRFDInput{Title: "Title"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	tooMany := make([]string, models.MaxTags+1)
	for i := range tooMany {
		tooMany[i] = uuid.NewString()
	}
	_, err = svc.CreateRFD(context.Background(), actor, CreateRFDInput{Title: "T", TemplateID: "tpl", Tags: tooMany})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateRFD_NoServiceAccount(t *testing.T) {
	t.Parallel()

	svc, d, ctrl := newSvc(t, nil)
	defer ctrl.Finish()

	d.docs.EXPECT().HasServiceAccount().Return(false)

	_, err := svc.CreateRFD(context.Background(), member("a@example.com"), CreateRFDInput{Title: "T", TemplateID: "tpl"})
	require.ErrorIs(t, err, ErrDocumentsUnavailable)
}

func TestCreateRFD_DocumentFailureWritesNothing(t *testing.T) {
	t.Parallel()

	svc, d, ctrl := newSvc(t, nil)
	defer ctrl.Finish()

	d.docs.EXPECT().HasServiceAccount().Return(true)
	d.docs.EXPECT().CreateFromTemplate(gomock.Any(), "tpl", gomock.Any()).
		Return(models.DocRef{}, errors.New("googleapi: Error 500: backendError"))

	_, err := svc.CreateRFD(context.Background(), member("a@example.com"), CreateRFDInput{Title: "T", TemplateID: "tpl"})
	require.ErrorIs(t, err, ErrUpstream)
	require.NotContains(t, err.Error(), "backendError")
}

func TestCreateRFD_OK(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	svc, d, ctrl := newSvc(t, nil, WithMetrics(m))
	defer ctrl.Finish()

	actor := member("a@example.com")
	doc := models.DocRef{ID: "doc-1", URL: "https://docs.example.com/doc-1"}

	d.docs.EXPECT().HasServiceAccount().Return(true)
	d.docs.EXPECT().CreateFromTemplate(gomock.Any(), "tpl", models.TemplateData{
		Title:        "New storage",
		Author:       actor.Name,
		Description:  "summary",
		Tags:         []string{"db", "infra"},
		CreatorEmail: actor.Email,
	}).Return(doc, nil)
	d.st.EXPECT().CreateRFD(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *models.RFD) (*models.RFD, error) {
			require.Equal(t, models.StatusDraft, r.Status)
			require.Equal(t, actor.ID, r.AuthorID)
			require.Equal(t, doc, r.Doc)
			require.NotNil(t, r.LastSyncedAt)
			require.Equal(t, testNow, *r.LastSyncedAt)

			out := *r
			out.Number = 42
			return &out, nil
		})

	view, err := svc.CreateRFD(context.Background(), actor, CreateRFDInput{
		Title:      " New storage ",
		Summary:    "summary",
		TemplateID: "tpl",
		Tags:       []string{"db", " infra", "db"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), view.Number)
	require.Zero(t, view.EndorsementCount)
	require.Equal(t, 1.0, counterValue(t, m.Registry(), "rfd_created_total"))
}

func TestCreateRFD_NumberConflict(t *testing.T) {
	t.Parallel()

	svc, d, ctrl := newSvc(t, nil)
	defer ctrl.Finish()

	d.docs.EXPECT().HasServiceAccount().Return(true)
	d.docs.EXPECT().CreateFromTemplate(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.DocRef{ID: "d", URL: "u"}, nil)
	d.st.EXPECT().CreateRFD(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNumberTaken)

	_, err := svc.CreateRFD(context.Background(), member("a@example.com"), CreateRFDInput{Title: "T", TemplateID: "tpl"})
	require.ErrorIs(t, err, ErrNumberConflict)
}

func TestUpdateRFD_StatusTransitions(t *testing.T) {
	t.Parallel()

	owner := member("owner@example.com")
	other := member("other@example.com")
	root := admin("root@example.com")

	tests := []struct {
		name       string
		actor      *models.User
		from       models.Status
		to         models.Status
		wantReason string
	}{
		{name: "owner publishes draft", actor: owner, from: models.StatusDraft, to: models.StatusOpenForReview},
		{name: "owner withdraws review", actor: owner, from: models.StatusOpenForReview, to: models.StatusDraft},
		{name: "owner cannot accept draft", actor: owner, from: models.StatusDraft, to: models.StatusAccepted,
			wantReason: policy.ReasonDraftToReviewOnly},
		{name: "owner cannot accept review", actor: owner, from: models.StatusOpenForReview, to: models.StatusAccepted,
			wantReason: policy.ReasonReviewToDraftOnly},
		{name: "owner cannot touch verdict", actor: owner, from: models.StatusAccepted, to: models.StatusRetracted,
			wantReason: policy.ReasonAdminOnlyStatus},
		{name: "admin enforces", actor: root, from: models.StatusAccepted, to: models.StatusEnforced},
		{name: "admin rejects review", actor: root, from: models.StatusOpenForReview, to: models.StatusRejected},
		{name: "non-owner denied", actor: other, from: models.StatusOpenForReview, to: models.StatusDraft,
			wantReason: policy.ReasonNotOwnerStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, d, ctrl := newSvc(t, nil)
			defer ctrl.Finish()

			current := rfdOf(owner, tc.from)
			var change *storage.RFDChange
			expectMutate(d, current, &change)

			if tc.wantReason == "" {
				d.st.EXPECT().RFDByID(gomock.Any(), current.ID, gomock.Any()).
					Return(&models.RFDView{RFD: *current}, nil)
			}

			_, err := svc.UpdateRFD(context.Background(), tc.actor, current.ID, UpdateRFDInput{
				Status:  ptr(string(tc.to)),
				Comment: " looks good ",
			})

			if tc.wantReason != "" {
				require.ErrorIs(t, err, policy.ErrDenied)
				reason, ok := policy.ReasonOf(err)
				require.True(t, ok)
				require.Equal(t, tc.wantReason, reason)
				require.Nil(t, change)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, change)
			require.Equal(t, tc.to, *change.Status)
			require.NotNil(t, change.History)
			require.Equal(t, tc.from, change.History.FromStatus)
			require.Equal(t, tc.to, change.History.ToStatus)
			require.Equal(t, tc.actor.ID, change.History.ChangedBy)
			require.Equal(t, "looks good", change.History.Comment)
			require.NotEmpty(t, change.History.ID)
		})
	}
}

func TestUpdateRFD_IdenticalPayloadIsNoChange(t *testing.T) {
	t.Parallel()

	svc, d, ctrl := newSvc(t, nil)
	defer ctrl.Finish()

	owner := member("owner@example.com")
	current := rfdOf(owner, models.StatusOpenForReview)

	var change *storage.RFDChange
	expectMutate(d, current, &change)

	_, err := svc.UpdateRFD(context.Background(), owner, current.ID, UpdateRFDInput{
		Title:   ptr(current.Title),
		Summary: ptr(current.Summary),
		Status:  ptr(string(current.Status)),
		Tags:    ptr([]string{"storage", " storage "}),
	})
	require.ErrorIs(t, err, ErrNoChanges)
	require.Nil(t, change)
}

func TestUpdateRFD_DetailsOnly(t *testing.T) {
	t.Parallel()

	svc, d, ctrl := newSvc(t, nil)
	defer ctrl.Finish()

	owner := member("owner@example.com")
	current := rfdOf(owner, models.StatusAccepted)

	var change *storage.RFDChange
	expectMutate(d, current, &change)
	d.st.EXPECT().RFDByID(gomock.Any(), current.ID, gomock.Any()).Return(&models.RFDView{RFD: *current}, nil)

	_, err := svc.UpdateRFD(context.Background(), owner, current.ID, UpdateRFDInput{
		Title: ptr(" Renamed "),
		Tags:  ptr([]string{}),
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", *change.Title)
	require.Equal(t, []string{}, *change.Tags)
	require.Nil(t, change.Summary)
	require.Nil(t, change.Status)
	require.Nil(t, change.History)
}

func TestUpdateRFD_NonOwnerCannotEditDetails(t *testing.T) {
	t.Parallel()

	svc, d, ctrl := newSvc(t, nil)
	defer ctrl.Finish()

	current := rfdOf(member("owner@example.com"), models.StatusOpenForReview)
	var change *storage.RFDChange
	expectMutate(d, current, &change)

	_, err := svc.UpdateRFD(context.Background(), member("x@example.com"), current.ID, UpdateRFDInput{Summary: ptr("mine now")})
	reason, ok := policy.ReasonOf(err)
	require.True(t, ok)
	require.Equal(t, policy.ReasonEditDetails, reason)
}

func TestUpdateRFD_HiddenDraftIsNotFound(t *testing.T) {
	t.Parallel()

	svc, d, ctrl := newSvc(t, nil)
	defer ctrl.Finish()

	current := rfdOf(member("owner@example.com"), models.StatusDraft)
	var change *storage.RFDChange
	expectMutate(d, current, &change)

	_, err := svc.UpdateRFD(context.Background(), member("x@example.com"), current.ID, UpdateRFDInput{Title: ptr("x")})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRFD_InputValidationBeforeStorage(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t, nil)
	defer ctrl.Finish()

	actor := member("a@example.com")
	id := uuid.New()

	_, err := svc.UpdateRFD(context.Background(), actor, id, UpdateRFDInput{Status: ptr("review")})
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateRFD(context.Background(), actor, id, UpdateRFDInput{Status: ptr("published")})
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateRFD(context.Background(), actor, id, UpdateRFDInput{Title: ptr("   ")})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateRFD_Missing(t *testing.T) {
	t.Parallel()

	svc, d, ctrl := newSvc(t, nil)
	defer ctrl.Finish()

	d.st.EXPECT().UpdateRFD(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)

	_, err := svc.UpdateRFD(context.Background(), member("a@example.com"), uuid.New(), UpdateRFDInput{Title: ptr("x")})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusAdminOnly(t *testing.T) {
	t.Parallel()

	owner := member("owner@example.com")

	t.Run("member denied", func(t *testing.T) {
		t.Parallel()

		svc, d, ctrl := newSvc(t, nil)
		defer ctrl.Finish()

		current := rfdOf(owner, models.StatusDraft)
		var change *storage.RFDChange
		expectMutate(d, current, &change)

		_, err := svc.UpdateStatusAdminOnly(context.Background(), owner, current.ID, "open_for_review", "")
		reason, ok := policy.ReasonOf(err)
		require.True(t, ok)
		require.Equal(t, policy.ReasonAdminOnlyAnyStatus, reason)
	})

	t.Run("admin any transition", func(t *testing.T) {
		t.Parallel()

		svc, d, ctrl := newSvc(t, nil)
		defer ctrl.Finish()

		current := rfdOf(owner, models.StatusRetracted)
		var change *storage.RFDChange
		expectMutate(d, current, &change)
		d.st.EXPECT().RFDByID(gomock.Any(), current.ID, gomock.Any()).Return(&models.RFDView{RFD: *current}, nil)

		_, err := svc.UpdateStatusAdminOnly(context.Background(), admin("r@example.com"), current.ID, "draft", "reopen")
		require.NoError(t, err)
		require.Equal(t, models.StatusDraft, *change.Status)
		require.Equal(t, models.StatusRetracted, change.History.FromStatus)
	})

	t.Run("same status", func(t *testing.T) {
		t.Parallel()

		svc, d, ctrl := newSvc(t, nil)
		defer ctrl.Finish()

		current := rfdOf(owner, models.StatusAccepted)
		var change *storage.RFDChange
		expectMutate(d, current, &change)

		_, err := svc.UpdateStatusAdminOnly(context.Background(), admin("r@example.com"), current.ID, "accepted", "")
		require.ErrorIs(t, err, ErrNoChanges)
	})
}

// Обе ручки смены статуса пишут одинаковое аудит-событие и метрику.
func TestStatusChange_AuditEvent(t *testing.T) {
	t.Parallel()

	owner := member("owner@example.com")
	root := admin("root@example.com")

	tests := []struct {
		name   string
		change func(ctx context.Context, svc *Service, id uuid.UUID) error
	}{
		{name: "update", change: func(ctx context.Context, svc *Service, id uuid.UUID) error {
			_, err := svc.UpdateRFD(ctx, root, id, UpdateRFDInput{Status: ptr("accepted")})
			return err
		}},
		{name: "admin only", change: func(ctx context.Context, svc *Service, id uuid.UUID) error {
			_, err := svc.UpdateStatusAdminOnly(ctx, root, id, "accepted", "")
			return err
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := metrics.New()
			svc, d, ctrl := newSvc(t, nil, WithMetrics(m))
			defer ctrl.Finish()

			current := rfdOf(owner, models.StatusOpenForReview)
			var change *storage.RFDChange
			expectMutate(d, current, &change)
			d.st.EXPECT().RFDByID(gomock.Any(), current.ID, gomock.Any()).Return(&models.RFDView{RFD: *current}, nil)

			var buf bytes.Buffer
			ctx := log.Into(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

			require.NoError(t, tc.change(ctx, svc, current.ID))

			var event map[string]any
			dec := json.NewDecoder(&buf)
			for dec.More() {
				var rec map[string]any
				require.NoError(t, dec.Decode(&rec))
				if rec["msg"] == "rfd_status_changed" {
					event = rec
				}
			}

			require.NotNil(t, event)
			require.Equal(t, current.ID.String(), event["rfd_id"])
			require.Equal(t, string(models.StatusOpenForReview), event["from"])
			require.Equal(t, string(models.StatusAccepted), event["to"])
			require.Equal(t, root.ID.String(), event["user_id"])
			require.Equal(t, 1.0, counterValue(t, m.Registry(), "rfd_status_transitions_total"))
		})
	}
}

func TestReads_UseViewerVisibility(t *testing.T) {
	t.Parallel()

	cfg := testCfg()
	cfg.RFD.AdminDraftAccess = false
	svc, d, ctrl := newSvc(t, cfg)
	defer ctrl.Finish()

	root := admin("r@example.com")
	viewer := storage.Viewer{UserID: root.ID, SeeDrafts: false}
	id := uuid.New()

	d.st.EXPECT().RFDByID(gomock.Any(), id, viewer).Return(nil, storage.ErrNotFound)
	_, err := svc.Get(context.Background(), root, id)
	require.ErrorIs(t, err, ErrNotFound)

	d.st.EXPECT().RFDByNumber(gomock.Any(), int64(3), viewer).Return(&models.RFDView{}, nil)
	_, err = svc.GetByNumber(context.Background(), root, 3)
	require.NoError(t, err)

	_, err = svc.GetByNumber(context.Background(), root, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)

	d.st.EXPECT().Tags(gomock.Any(), viewer).Return([]string{"a"}, nil)
	tags, err := svc.Tags(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, tags)
}

func TestList_Filters(t *testing.T) {
	t.Parallel()

	svc, d, ctrl := newSvc(t, nil)
	defer ctrl.Finish()

	root := admin("r@example.com")
	author := uuid.New()

	d.st.EXPECT().ListRFDs(gomock.Any(), storage.Viewer{UserID: root.ID, SeeDrafts: true}, storage.RFDFilter{
		Status:   ptr(models.StatusOpenForReview),
		AuthorID: &author,
		Tag:      "db",
	}).Return([]models.RFDView{{}}, nil)

	got, err := svc.List(context.Background(), root, ListFilter{Status: "open_for_review", AuthorID: &author, Tag: " db "})
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = svc.List(context.Background(), root, ListFilter{Status: "bogus"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestHistory_HiddenDraft(t *testing.T) {
	t.Parallel()

	svc, d, ctrl := newSvc(t, nil)
	defer ctrl.Finish()

	id := uuid.New()
	d.st.EXPECT().RFDByID(gomock.Any(), id, gomock.Any()).Return(nil, storage.ErrNotFound)

	_, err := svc.History(context.Background(), member("a@example.com"), id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTemplates(t *testing.T) {
	t.Parallel()

	t.Run("service account", func(t *testing.T) {
		t.Parallel()

		svc, d, ctrl := newSvc(t, nil)
		defer ctrl.Finish()

		d.docs.EXPECT().HasServiceAccount().Return(true)
		d.docs.EXPECT().ListTemplates(gomock.Any(), "").Return([]models.Template{{ID: "t1"}}, nil)

		got, err := svc.Templates(context.Background(), member("a@example.com"))
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("user token", func(t *testing.T) {
		t.Parallel()

		svc, d, ctrl := newSvc(t, nil)
		defer ctrl.Finish()

		u := member("a@example.com")
		u.AccessToken = "user-access"

		d.docs.EXPECT().HasServiceAccount().Return(false)
		d.docs.EXPECT().ListTemplates(gomock.Any(), "user-access").Return(nil, errors.New("403"))

		_, err := svc.Templates(context.Background(), u)
		require.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("no drive access", func(t *testing.T) {
		t.Parallel()

		svc, d, ctrl := newSvc(t, nil)
		defer ctrl.Finish()

		d.docs.EXPECT().HasServiceAccount().Return(false)

		_, err := svc.Templates(context.Background(), member("a@example.com"))
		require.ErrorIs(t, err, ErrDriveAccessRequired)
	})
}
