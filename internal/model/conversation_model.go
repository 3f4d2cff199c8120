package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Conversation struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProfileId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status       string         `gorm:"type:varchar(32);not null;default:'open';index"`
	Tags         datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	ClosedAt     *time.Time
	ClosedBy     string    `gorm:"type:varchar(32)"`
	ClosedReason string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}
