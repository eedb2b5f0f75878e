package models

import (
	"errors"
	"fmt"
)

// ErrInvalidStatus — строка не является допустимым статусом RFD.
var ErrInvalidStatus = errors.New("invalid status")

// Status — статус жизненного цикла RFD.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusOpenForReview Status = "open_for_review"
	StatusAccepted      Status = "accepted"
	StatusEnforced      Status = "enforced"
	StatusRejected      Status = "rejected"
	StatusRetracted     Status = "retracted"
)

// Statuses — полный закрытый набор статусов в порядке жизненного цикла.
var Statuses = []Status{
	StatusDraft,
	StatusOpenForReview,
	StatusAccepted,
	StatusEnforced,
	StatusRejected,
	StatusRetracted,
}

// legacyStatuses — устаревшие синонимы, которые встречаются в старых данных.
var legacyStatuses = map[string]Status{
	"review":   StatusOpenForReview,
	"approved": StatusAccepted,
	"archived": StatusRetracted,
}

// ParseStatus — строгий разбор входящего статуса на границе API.
// Устаревшие синонимы здесь не принимаются.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if st.Valid() {
		return st, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// NormalizeStatus приводит сохранённое значение к каноническому статусу.
// Используется на пути чтения из хранилища.
func NormalizeStatus(s string) (Status, error) {
	if st, ok := legacyStatuses[s]; ok {
		return st, nil
	}

	return ParseStatus(s)
}

// StoredAliases возвращает все строки, под которыми статус может лежать в БД
// (канонический + устаревшие синонимы). Нужна для фильтров по статусу.
func (s Status) StoredAliases() []string {
	out := []string{string(s)}
	for legacy, canonical := range legacyStatuses {
		if canonical == s {
			out = append(out, legacy)
		}
	}

	return out
}

// Valid сообщает, входит ли статус в закрытый набор.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusOpenForReview, StatusAccepted,
		StatusEnforced, StatusRejected, StatusRetracted:
		return true
	default:
		return false
	}
}

// Label — человекочитаемое название статуса.
func (s Status) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusOpenForReview:
		return "Open for Review"
	case StatusAccepted:
		return "Accepted"
	case StatusEnforced:
		return "Enforced"
	case StatusRejected:
		return "Rejected"
	case StatusRetracted:
		return "Retracted"
	default:
		return string(s)
	}
}
