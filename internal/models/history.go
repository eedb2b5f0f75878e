package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusHistoryEntry — неизменяемая запись журнала смены статуса.
type StatusHistoryEntry struct {
	ID         string
	RFDID      uuid.UUID
	FromStatus Status
	ToStatus   Status
	ChangedBy  uuid.UUID
	Comment    string
	CreatedAt  time.Time
}
