package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxTags — максимум тегов у одного RFD.
	MaxTags = 20
	// MaxTagLen — максимальная длина тега в рунах.
	MaxTagLen = 64
)

// ErrInvalidTags — набор тегов нарушает ограничения.
var ErrInvalidTags = errors.New("invalid tags")

// DocRef — ссылка на внешний документ.
type DocRef struct {
	ID  string
	URL string
}

// RFD — документ для обсуждения.
type RFD struct {
	ID           uuid.UUID
	Number       int64
	Title        string
	Summary      string
	Status       Status
	AuthorID     uuid.UUID
	AuthorName   string
	AuthorEmail  string
	Doc          DocRef
	Tags         []string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSyncedAt *time.Time
}

// RFDView — RFD вместе с агрегатами одобрений для конкретного читателя.
type RFDView struct {
	RFD
	EndorsementCount int
	UserHasEndorsed  bool
	Endorsers        []Endorser
}

// NormalizeTags обрезает пробелы, выбрасывает пустые и дубликаты (порядок сохраняется)
// и проверяет ограничения на количество и длину.
func NormalizeTags(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))

	for _, raw := range in {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}

		if utf8.RuneCountInString(tag) > MaxTagLen {
			return nil, fmt.Errorf("%w: tag longer than %d characters", ErrInvalidTags, MaxTagLen)
		}

		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	if len(out) > MaxTags {
		return nil, fmt.Errorf("%w: more than %d tags", ErrInvalidTags, MaxTags)
	}

	return out, nil
}

// EqualTags сравнивает наборы тегов с учётом порядка.
func EqualTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
