package dto

import (
	"time"

	"agentic-sales-be/internal/entity"
)

type ClientResponse struct {
	ProfileId      string    `json:"profile_id"`
	WhatsappNumber string    `json:"whatsapp_number"`
	DisplayName    string    `json:"display_name"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Tags           []string  `json:"tags"`
	ConversationId string    `json:"conversation_id"`
	Status         string    `json:"status"`
	LastMessage    string    `json:"last_message"`
	LastMessageAt  time.Time `json:"last_message_at"`
}

type MessageResponse struct {
	Id             string    `json:"id"`
	ConversationId string    `json:"conversation_id"`
	Role           string    `json:"role"`
	MessageType    string    `json:"message_type"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewMessageResponse(message *entity.Message) *MessageResponse {
	return &MessageResponse{
		Id:             message.Id.String(),
		ConversationId: message.ConversationId.String(),
		Role:           message.Role,
		MessageType:    message.MessageType,
		Content:        message.Content,
		CreatedAt:      message.CreatedAt,
	}
}

type SendMessageRequest struct {
	ProfileId string `json:"profile_id" validate:"required,uuid"`
	Content   string `json:"content" validate:"required"`
}

type CloseConversationRequest struct {
	Reason string `json:"reason"`
}
