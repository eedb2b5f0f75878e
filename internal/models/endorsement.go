package models

import (
	"time"

	"github.com/google/uuid"
)

// Endorsement — одобрение RFD пользователем. Не более одного на пару (RFD, пользователь).
type Endorsement struct {
	ID        string
	RFDID     uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

// Endorser — публичные данные одобрившего пользователя.
type Endorser struct {
	UserID    uuid.UUID
	Name      string
	Avatar    string
	CreatedAt time.Time
}
