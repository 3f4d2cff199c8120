package service

import (
	"context"
	"encoding/json"
	"fmt"

	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/entity"
	"agentic-sales-be/internal/pkg/logger"
	"agentic-sales-be/internal/repository/specification"
	"agentic-sales-be/internal/repository/unitofwork"
	"agentic-sales-be/pkg/agent/scoring"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const rescoreTopic = "lead.rescore"

// ScoringJob asks the worker to (re)score a lead from its conversation.
type ScoringJob struct {
	LeadId         uuid.UUID `json:"lead_id"`
	ConversationId uuid.UUID `json:"conversation_id"`
}

// IScoringJobService decouples scoring from the request path: the webhook
// flow enqueues, a background consumer runs the LLM scoring and persists the
// result.
type IScoringJobService interface {
	Enqueue(job ScoringJob)
	Start(ctx context.Context) error
}

type scoringJobService struct {
	pubsub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	engine     *scoring.Engine
	events     IEventService
	logger     logger.ILogger
}

func NewScoringJobService(
	uowFactory unitofwork.RepositoryFactory,
	engine *scoring.Engine,
	events IEventService,
	log logger.ILogger,
) IScoringJobService {
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NopLogger{})

	return &scoringJobService{
		pubsub:     pubsub,
		uowFactory: uowFactory,
		engine:     engine,
		events:     events,
		logger:     log,
	}
}

func (s *scoringJobService) Enqueue(job ScoringJob) {
	payload, err := json.Marshal(job)
	if err != nil {
		s.logger.Error("ScoringJobs", "Failed to marshal scoring job", map[string]interface{}{
			"lead_id": job.LeadId.String(),
			"error":   err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubsub.Publish(rescoreTopic, msg); err != nil {
		s.logger.Error("ScoringJobs", "Failed to enqueue scoring job", map[string]interface{}{
			"lead_id": job.LeadId.String(),
			"error":   err.Error(),
		})
	}
}

// Start launches the consumer loop. It returns after the subscription is
// set up; processing happens on a background goroutine until ctx is done.
func (s *scoringJobService) Start(ctx context.Context) error {
	messages, err := s.pubsub.Subscribe(ctx, rescoreTopic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", rescoreTopic, err)
	}

	go func() {
		for msg := range messages {
			s.handle(ctx, msg)
			msg.Ack()
		}
	}()

	return nil
}

func (s *scoringJobService) handle(ctx context.Context, msg *message.Message) {
	var job ScoringJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		s.logger.Error("ScoringJobs", "Invalid scoring job payload", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	lead, err := uow.LeadRepository().FindOne(ctx, specification.ByID{ID: job.LeadId})
	if err != nil || lead == nil {
		s.logger.Warn("ScoringJobs", "Lead not found for scoring job", map[string]interface{}{
			"lead_id": job.LeadId.String(),
		})
		return
	}

	history, err := uow.MessageRepository().FindLastByConversation(ctx, job.ConversationId, 50)
	if err != nil {
		s.logger.Error("ScoringJobs", "Failed to load history for scoring", map[string]interface{}{
			"lead_id": job.LeadId.String(),
			"error":   err.Error(),
		})
		return
	}

	result := s.engine.ScoreConversation(ctx, history, lead)

	score := result.Score
	lead.Score = &score
	lead.Status = entity.Temperature(score)
	lead.Notes = appendNote(lead.Notes, fmt.Sprintf("[Scoring negociacao]: %s", result.Justificativa))

	if err := uow.LeadRepository().Update(ctx, lead); err != nil {
		s.logger.Error("ScoringJobs", "Failed to persist score", map[string]interface{}{
			"lead_id": lead.Id.String(),
			"error":   err.Error(),
		})
		return
	}

	s.events.Emit(constant.EventLeadUpdated, map[string]interface{}{
		"lead_id":       lead.Id.String(),
		"score":         score,
		"status":        lead.Status,
		"nome_cliente":  lead.NomeCliente,
		"nome_empresa":  lead.NomeEmpresa,
		"justificativa": result.Justificativa,
	})

	s.logger.Info("ScoringJobs", "Lead rescored", map[string]interface{}{
		"lead_id": lead.Id.String(),
		"score":   score,
		"status":  lead.Status,
	})
}

func appendNote(notes, line string) string {
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}
