package entity

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id           uuid.UUID
	ProfileId    uuid.UUID
	Status       string
	Tags         []string
	ClosedAt     *time.Time
	ClosedBy     string
	ClosedReason string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
