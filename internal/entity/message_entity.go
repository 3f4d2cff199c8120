package entity

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id                uuid.UUID
	ConversationId    uuid.UUID
	ProfileId         uuid.UUID
	Role              string
	MessageType       string
	Content           string
	ProviderMessageId string
	CreatedAt         time.Time
}
