// policy — чистые функции авторизации: кто и что может делать с RFD.
// Пакет не выполняет I/O и не зависит от хранилища; все решения принимаются
// по уже загруженным пользователю и RFD.
//
// Отказ описывается типом *Denial: его Reason — это сообщение для пользователя,
// оно различает причины (свой черновик, своё RFD на ревью, чужое RFD, финальный статус).
package policy

import (
	"errors"

	"github.com/pribylovaa/rfd-tracker/internal/models"
)

// ErrDenied — базовая ошибка отказа; *Denial матчится с ней через errors.Is.
var ErrDenied = errors.New("permission denied")

// Сообщения об отказе — часть пользовательского контракта.
const (
	ReasonDraftToReviewOnly  = `You can only change draft RFDs to "Open for Review"`
	ReasonReviewToDraftOnly  = `You can only change this RFD back to "Draft"`
	ReasonAdminOnlyStatus    = "Only administrators can change this RFD status"
	ReasonNotOwnerStatus     = "Only the creator or administrators can change RFD status"
	ReasonEditDetails        = "Only the RFD owner or administrator can edit RFD details"
	ReasonAdminOnlyAnyStatus = "Only administrators can change RFD status"
)

// Denial — отказ с конкретной причиной.
type Denial struct {
	Reason string
}

func (d *Denial) Error() string { return d.Reason }

// Is позволяет errors.Is(err, ErrDenied).
func (d *Denial) Is(target error) bool { return target == ErrDenied }

func deny(reason string) error { return &Denial{Reason: reason} }

// ReasonOf возвращает причину отказа, если err — *Denial.
func ReasonOf(err error) (string, bool) {
	var d *Denial
	if errors.As(err, &d) {
		return d.Reason, true
	}

	return "", false
}

func isOwner(actor *models.User, rfd *models.RFD) bool {
	return actor.ID == rfd.AuthorID
}

// CanEditDetails — можно ли менять title/summary/tags: админ или автор.
func CanEditDetails(actor *models.User, rfd *models.RFD) bool {
	return actor.Role.IsAdmin() || isOwner(actor, rfd)
}

// CanChangeStatusAdminOnly — упрощённая политика: статус меняет только админ.
func CanChangeStatusAdminOnly(actor *models.User) bool {
	return actor.Role.IsAdmin()
}

// CanPublishDraft — переходы статуса: автор переключает своё RFD между draft
// и open_for_review, всё остальное (вердикты) — только админ.
func CanPublishDraft(actor *models.User, rfd *models.RFD, target models.Status) bool {
	if actor.Role.IsAdmin() {
		return true
	}

	if !isOwner(actor, rfd) {
		return false
	}

	switch rfd.Status {
	case models.StatusDraft:
		return target == models.StatusOpenForReview
	case models.StatusOpenForReview:
		return target == models.StatusDraft
	default:
		return false
	}
}

// CheckStatusChange — то же, что CanPublishDraft, но с причиной отказа.
func CheckStatusChange(actor *models.User, rfd *models.RFD, target models.Status) error {
	if CanPublishDraft(actor, rfd, target) {
		return nil
	}

	if !isOwner(actor, rfd) {
		return deny(ReasonNotOwnerStatus)
	}

	switch rfd.Status {
	case models.StatusDraft:
		return deny(ReasonDraftToReviewOnly)
	case models.StatusOpenForReview:
		return deny(ReasonReviewToDraftOnly)
	default:
		return deny(ReasonAdminOnlyStatus)
	}
}

// CheckStatusChangeAdminOnly — вариант CanChangeStatusAdminOnly с причиной отказа.
func CheckStatusChangeAdminOnly(actor *models.User) error {
	if CanChangeStatusAdminOnly(actor) {
		return nil
	}

	return deny(ReasonAdminOnlyAnyStatus)
}

// CheckEditDetails — то же, что CanEditDetails, но с причиной отказа.
func CheckEditDetails(actor *models.User, rfd *models.RFD) error {
	if CanEditDetails(actor, rfd) {
		return nil
	}

	return deny(ReasonEditDetails)
}

// CanView — видимость RFD: черновик виден автору и (если разрешено) админам,
// остальные статусы — всем аутентифицированным.
func CanView(actor *models.User, rfd *models.RFD, adminDraftAccess bool) bool {
	if rfd.Status != models.StatusDraft {
		return true
	}

	if isOwner(actor, rfd) {
		return true
	}

	return adminDraftAccess && actor.Role.IsAdmin()
}
