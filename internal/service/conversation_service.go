package service

import (
	"context"
	"fmt"

	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/entity"
	"agentic-sales-be/internal/pkg/logger"
	"agentic-sales-be/internal/repository/specification"
	"agentic-sales-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// ClientSummary is one row of the dashboard client list: the WhatsApp
// profile, its active (or latest) conversation, and the last message.
type ClientSummary struct {
	Profile      *entity.Profile
	Conversation *entity.Conversation
	LastMessage  *entity.Message
}

type IConversationService interface {
	GetOrCreateActive(ctx context.Context, profileId uuid.UUID) (*entity.Conversation, error)
	ListClients(ctx context.Context) ([]*ClientSummary, error)
	GetMessages(ctx context.Context, conversationId uuid.UUID, limit, offset int) ([]*entity.Message, error)
	Takeover(ctx context.Context, conversationId uuid.UUID) (*entity.Conversation, error)
	Close(ctx context.Context, conversationId uuid.UUID, closedBy, reason string) (*entity.Conversation, error)
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
	events     IEventService
	logger     logger.ILogger
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory, events IEventService, log logger.ILogger) IConversationService {
	return &conversationService{
		uowFactory: uowFactory,
		events:     events,
		logger:     log,
	}
}

// GetOrCreateActive returns the profile's open or human conversation,
// creating a fresh open one when everything is closed. A profile never has
// more than one active conversation.
func (s *conversationService) GetOrCreateActive(ctx context.Context, profileId uuid.UUID) (*entity.Conversation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByProfileId{ProfileId: profileId},
		specification.ActiveConversation{},
	)
	if err != nil {
		return nil, err
	}
	if conversation != nil {
		return conversation, nil
	}

	conversation = &entity.Conversation{
		Id:        uuid.New(),
		ProfileId: profileId,
		Status:    constant.ConversationStatusOpen,
		Tags:      []string{},
	}
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

func (s *conversationService) ListClients(ctx context.Context) ([]*ClientSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	// Keep only the newest conversation per profile.
	seen := make(map[uuid.UUID]bool)
	var summaries []*ClientSummary
	for _, conversation := range conversations {
		if seen[conversation.ProfileId] {
			continue
		}
		seen[conversation.ProfileId] = true

		profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: conversation.ProfileId})
		if err != nil {
			return nil, err
		}
		if profile == nil {
			continue
		}

		lastMessages, err := uow.MessageRepository().FindLastByConversation(ctx, conversation.Id, 1)
		if err != nil {
			return nil, err
		}
		var last *entity.Message
		if len(lastMessages) > 0 {
			last = lastMessages[0]
		}

		summaries = append(summaries, &ClientSummary{
			Profile:      profile,
			Conversation: conversation,
			LastMessage:  last,
		})
	}

	return summaries, nil
}

func (s *conversationService) GetMessages(ctx context.Context, conversationId uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 {
		limit = 50
	}

	return uow.MessageRepository().FindAll(ctx,
		specification.ByConversationId{ConversationId: conversationId},
		specification.OrderBy{Field: "created_at", Desc: false},
		specification.Pagination{Limit: limit, Offset: offset},
	)
}

// Takeover hands the conversation to a human consultant. The agent stops
// responding until the conversation is closed again.
func (s *conversationService) Takeover(ctx context.Context, conversationId uuid.UUID) (*entity.Conversation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation not found")
	}
	if conversation.Status != constant.ConversationStatusOpen {
		return nil, fmt.Errorf("conversation is not open (status: %s)", conversation.Status)
	}

	conversation.Status = constant.ConversationStatusHuman
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}

	s.events.Emit(constant.EventHumanTakeover, map[string]interface{}{
		"conversation_id": conversation.Id.String(),
		"profile_id":      conversation.ProfileId.String(),
		"source":          "dashboard",
	})

	return conversation, nil
}

func (s *conversationService) Close(ctx context.Context, conversationId uuid.UUID, closedBy, reason string) (*entity.Conversation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation not found")
	}
	if conversation.Status == constant.ConversationStatusClosed {
		return nil, fmt.Errorf("conversation is already closed")
	}

	now := timeNow()
	conversation.Status = constant.ConversationStatusClosed
	conversation.ClosedAt = &now
	conversation.ClosedBy = closedBy
	conversation.ClosedReason = reason
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}

	s.logger.Info("ConversationService", "Conversation closed", map[string]interface{}{
		"conversation_id": conversation.Id.String(),
		"closed_by":       closedBy,
	})

	return conversation, nil
}
