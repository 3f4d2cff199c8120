package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProfileId         uuid.UUID `gorm:"type:uuid;not null;index"`
	Role              string    `gorm:"type:varchar(16);not null"`
	MessageType       string    `gorm:"type:varchar(32);not null;default:'text'"`
	Content           string    `gorm:"type:text;not null"`
	ProviderMessageId string    `gorm:"type:varchar(128)"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}
