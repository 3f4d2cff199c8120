package service

import (
	"context"
	"fmt"

	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/entity"
	"agentic-sales-be/internal/pkg/logger"
	"agentic-sales-be/internal/repository/specification"
	"agentic-sales-be/internal/repository/unitofwork"
	"agentic-sales-be/pkg/whatsapp"

	"github.com/google/uuid"
)

type IMessageService interface {
	// SendHumanMessage delivers a consultant's reply in a conversation that
	// is under human control.
	SendHumanMessage(ctx context.Context, profileId uuid.UUID, content string) (*entity.Message, error)
}

type messageService struct {
	uowFactory unitofwork.RepositoryFactory
	sender     whatsapp.ISender
	events     IEventService
	logger     logger.ILogger
}

func NewMessageService(uowFactory unitofwork.RepositoryFactory, sender whatsapp.ISender, events IEventService, log logger.ILogger) IMessageService {
	return &messageService{
		uowFactory: uowFactory,
		sender:     sender,
		events:     events,
		logger:     log,
	}
}

func (s *messageService) SendHumanMessage(ctx context.Context, profileId uuid.UUID, content string) (*entity.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: profileId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile not found")
	}

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByProfileId{ProfileId: profileId},
		specification.ActiveConversation{},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("no active conversation for this profile")
	}
	if conversation.Status != constant.ConversationStatusHuman {
		return nil, fmt.Errorf("conversation is not under human control")
	}

	message := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		ProfileId:      profileId,
		Role:           constant.MessageRoleAdmin,
		MessageType:    "text",
		Content:        content,
	}
	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return nil, err
	}

	// Delivery is best effort after persistence: the dashboard keeps the
	// record even when the Graph API hiccups.
	if err := s.sender.SendText(ctx, profile.WhatsappNumber, content); err != nil {
		s.logger.Error("MessageService", "Failed to deliver human message", map[string]interface{}{
			"profile_id": profileId.String(),
			"error":      err.Error(),
		})
	}

	s.events.Emit(constant.EventNewMessage, map[string]interface{}{
		"conversation_id": conversation.Id.String(),
		"profile_id":      profileId.String(),
		"role":            constant.MessageRoleAdmin,
		"content":         content,
	})

	return message, nil
}
