package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/pribylovaa/rfd-tracker/internal/models"
	"github.com/pribylovaa/rfd-tracker/internal/pkg/log"
	"github.com/pribylovaa/rfd-tracker/internal/policy"
	"github.com/pribylovaa/rfd-tracker/internal/storage"
)

// CreateRFDInput — данные нового RFD.
type CreateRFDInput struct {
	Title      string
	Summary    string
	TemplateID string
	Tags       []string
}

// UpdateRFDInput — частичное обновление: nil-поля не меняются.
// Status — строка с границы API, разбирается строго.
type UpdateRFDInput struct {
	Title   *string
	Summary *string
	Status  *string
	Tags    *[]string
	Comment string
}

// ListFilter — фильтры листинга с границы API.
type ListFilter struct {
	Status   string
	AuthorID *uuid.UUID
	Tag      string
}

// CreateRFD создаёт документ из шаблона и сохраняет RFD в статусе draft.
//
// Документ создаётся первым: при отказе сервиса документов строка не пишется.
// Если не удалась запись строки, документ остаётся без RFD; это событие
// логируется как rfd_orphaned_document для ручной сверки.
func (s *Service) CreateRFD(ctx context.Context, actor *models.User, in CreateRFDInput) (*models.RFDView, error) {
	const op = "service.workflow.CreateRFD"

	title := strings.TrimSpace(in.Title)
	templateID := strings.TrimSpace(in.TemplateID)
	if title == "" || templateID == "" {
		return nil, fmt.Errorf("%s: %w: title and template are required", op, ErrInvalidArgument)
	}

	tags, err := models.NormalizeTags(in.Tags)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
	}

	if !s.docs.HasServiceAccount() {
		return nil, fmt.Errorf("%s: %w", op, ErrDocumentsUnavailable)
	}

	lg := log.From(ctx)
	summary := strings.TrimSpace(in.Summary)

	doc, err := s.docs.CreateFromTemplate(ctx, templateID, models.TemplateData{
		Title:        title,
		Author:       actor.Name,
		Description:  summary,
		Tags:         tags,
		CreatorEmail: actor.Email,
	})
	if err != nil {
		lg.Error("document_create_failed",
			slog.String("op", op),
			slog.String("template_id", templateID),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrUpstream)
	}

	now := s.clock()
	created, err := s.storage.CreateRFD(ctx, &models.RFD{
		ID:           uuid.New(),
		Title:        title,
		Summary:      summary,
		Status:       models.StatusDraft,
		AuthorID:     actor.ID,
		Doc:          doc,
		Tags:         tags,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastSyncedAt: &now,
	})
	if err != nil {
		lg.Error("rfd_orphaned_document",
			slog.String("op", op),
			slog.String("doc_id", doc.ID),
			slog.String("doc_url", doc.URL),
			slog.String("err", err.Error()),
		)

		if errors.Is(err, storage.ErrNumberTaken) {
			return nil, fmt.Errorf("%s: %w", op, ErrNumberConflict)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.RFDCreated()
	lg.Info("rfd_created",
		slog.String("rfd_id", created.ID.String()),
		slog.Int64("number", created.Number),
	)

	return &models.RFDView{RFD: *created, Endorsers: []models.Endorser{}}, nil
}

// UpdateRFD применяет частичное обновление.
//
// Ввод проверяется до транзакции. Внутри транзакции над заблокированной строкой
// проверяются видимость, права на смену статуса (CheckStatusChange) и на правку
// деталей (CheckEditDetails, если передано любое из title/summary/tags), затем
// считается разница. Пустая разница — ErrNoChanges без единой записи.
func (s *Service) UpdateRFD(ctx context.Context, actor *models.User, id uuid.UUID, in UpdateRFDInput) (*models.RFDView, error) {
	const op = "service.workflow.UpdateRFD"

	var target *models.Status
	if in.Status != nil {
		st, err := models.ParseStatus(*in.Status)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidStatus)
		}
		target = &st
	}

	var title *string
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, fmt.Errorf("%s: %w: title must not be empty", op, ErrInvalidArgument)
		}
		title = &t
	}

	var summary *string
	if in.Summary != nil {
		sm := strings.TrimSpace(*in.Summary)
		summary = &sm
	}

	var tags *[]string
	if in.Tags != nil {
		normalized, err := models.NormalizeTags(*in.Tags)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
		}
		tags = &normalized
	}

	detailsProvided := title != nil || summary != nil || tags != nil
	comment := strings.TrimSpace(in.Comment)

	var transition *models.StatusHistoryEntry

	_, err := s.storage.UpdateRFD(ctx, id, func(current *models.RFD) (*storage.RFDChange, error) {
		if !s.canView(actor, current) {
			return nil, ErrNotFound
		}

		change := &storage.RFDChange{}

		if target != nil && *target != current.Status {
			if err := policy.CheckStatusChange(actor, current, *target); err != nil {
				return nil, err
			}
		}

		if detailsProvided {
			if err := policy.CheckEditDetails(actor, current); err != nil {
				return nil, err
			}
		}

		if title != nil && *title != current.Title {
			change.Title = title
		}
		if summary != nil && *summary != current.Summary {
			change.Summary = summary
		}
		if tags != nil && !models.EqualTags(*tags, current.Tags) {
			change.Tags = tags
		}
		if target != nil && *target != current.Status {
			change.Status = target
			change.History = s.historyEntry(actor, current, *target, comment)
		}

		if change.Empty() {
			return nil, ErrNoChanges
		}

		transition = change.History
		return change, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	if transition != nil {
		s.recordTransition(ctx, actor, id, transition)
	}

	return s.Get(ctx, actor, id)
}

// recordTransition — метрика и аудит-событие смены статуса, общие для обоих путей.
func (s *Service) recordTransition(ctx context.Context, actor *models.User, id uuid.UUID, h *models.StatusHistoryEntry) {
	s.metrics.StatusTransition(string(h.FromStatus), string(h.ToStatus))
	log.From(ctx).Info("rfd_status_changed",
		slog.String("rfd_id", id.String()),
		slog.String("from", string(h.FromStatus)),
		slog.String("to", string(h.ToStatus)),
		slog.String("user_id", actor.ID.String()),
	)
}

// UpdateStatusAdminOnly — упрощённая смена статуса: любой переход, но только админом.
func (s *Service) UpdateStatusAdminOnly(ctx context.Context, actor *models.User, id uuid.UUID, status, comment string) (*models.RFDView, error) {
	const op = "service.workflow.UpdateStatusAdminOnly"

	target, err := models.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidStatus)
	}

	var transition *models.StatusHistoryEntry

	_, err = s.storage.UpdateRFD(ctx, id, func(current *models.RFD) (*storage.RFDChange, error) {
		if !s.canView(actor, current) {
			return nil, ErrNotFound
		}

		if err := policy.CheckStatusChangeAdminOnly(actor); err != nil {
			return nil, err
		}

		if current.Status == target {
			return nil, ErrNoChanges
		}

		transition = s.historyEntry(actor, current, target, strings.TrimSpace(comment))
		return &storage.RFDChange{Status: &target, History: transition}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	s.recordTransition(ctx, actor, id, transition)

	return s.Get(ctx, actor, id)
}

// Get — RFD с агрегатами одобрений; скрытый черновик — ErrNotFound.
func (s *Service) Get(ctx context.Context, actor *models.User, id uuid.UUID) (*models.RFDView, error) {
	const op = "service.workflow.Get"

	view, err := s.storage.RFDByID(ctx, id, s.viewer(actor))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return view, nil
}

// GetByNumber — то же по номеру RFD.
func (s *Service) GetByNumber(ctx context.Context, actor *models.User, number int64) (*models.RFDView, error) {
	const op = "service.workflow.GetByNumber"

	if number <= 0 {
		return nil, fmt.Errorf("%s: %w: rfd number must be positive", op, ErrInvalidArgument)
	}

	view, err := s.storage.RFDByNumber(ctx, number, s.viewer(actor))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return view, nil
}

// List — активные RFD, видимые actor.
func (s *Service) List(ctx context.Context, actor *models.User, f ListFilter) ([]models.RFDView, error) {
	const op = "service.workflow.List"

	filter := storage.RFDFilter{
		AuthorID: f.AuthorID,
		Tag:      strings.TrimSpace(f.Tag),
	}

	if f.Status != "" {
		st, err := models.ParseStatus(f.Status)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidStatus)
		}
		filter.Status = &st
	}

	views, err := s.storage.ListRFDs(ctx, s.viewer(actor), filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return views, nil
}

// History — журнал статусов RFD, если RFD виден actor.
func (s *Service) History(ctx context.Context, actor *models.User, id uuid.UUID) ([]models.StatusHistoryEntry, error) {
	const op = "service.workflow.History"

	if _, err := s.storage.RFDByID(ctx, id, s.viewer(actor)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	entries, err := s.storage.StatusHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}

// Tags — уникальные теги видимых RFD.
func (s *Service) Tags(ctx context.Context, actor *models.User) ([]string, error) {
	const op = "service.workflow.Tags"

	tags, err := s.storage.Tags(ctx, s.viewer(actor))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tags, nil
}

// Templates — шаблоны документов: через сервисный аккаунт, а без него — токеном actor.
func (s *Service) Templates(ctx context.Context, actor *models.User) ([]models.Template, error) {
	const op = "service.workflow.Templates"

	var token string
	if !s.docs.HasServiceAccount() {
		t, err := s.AccessToken(ctx, actor)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		token = t
	}

	templates, err := s.docs.ListTemplates(ctx, token)
	if err != nil {
		log.From(ctx).Error("templates_list_failed", slog.String("op", op), slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrUpstream)
	}

	return templates, nil
}

func (s *Service) canView(actor *models.User, rfd *models.RFD) bool {
	return rfd.IsActive && policy.CanView(actor, rfd, s.cfg.RFD.AdminDraftAccess)
}

func (s *Service) historyEntry(actor *models.User, current *models.RFD, to models.Status, comment string) *models.StatusHistoryEntry {
	now := s.clock()

	return &models.StatusHistoryEntry{
		ID:         ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		RFDID:      current.ID,
		FromStatus: current.Status,
		ToStatus:   to,
		ChangedBy:  actor.ID,
		Comment:    comment,
		CreatedAt:  now,
	}
}

// mapStorageErr переводит ошибки хранилища в ошибки сервиса; прочие — как есть.
func mapStorageErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	default:
		return err
	}
}
