package service

import (
	"context"

	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/pkg/logger"
	"agentic-sales-be/internal/pkg/mailer"
	"agentic-sales-be/pkg/events"
	"agentic-sales-be/pkg/nats"
)

// ILeadNotifierService consumes lead update events off the bus and emails
// the sales team when a lead crosses the hot threshold.
type ILeadNotifierService interface {
	Start() error
}

type leadNotifierService struct {
	subscriber *nats.Subscriber
	email      mailer.IEmailService
	notifyTo   string
	logger     logger.ILogger
}

func NewLeadNotifierService(subscriber *nats.Subscriber, email mailer.IEmailService, notifyTo string, log logger.ILogger) ILeadNotifierService {
	return &leadNotifierService{
		subscriber: subscriber,
		email:      email,
		notifyTo:   notifyTo,
		logger:     log,
	}
}

func (s *leadNotifierService) Start() error {
	if s.subscriber == nil || s.email == nil || s.notifyTo == "" {
		s.logger.Info("LeadNotifier", "Hot lead notifications disabled", nil)
		return nil
	}
	return s.subscriber.Subscribe("events."+constant.EventLeadUpdated, "lead-notifier", s.handle)
}

func (s *leadNotifierService) handle(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	score, ok := payload["score"].(float64)
	if !ok || int(score) < constant.ScoreHotThreshold {
		return nil
	}

	name, _ := payload["nome_cliente"].(string)
	company, _ := payload["nome_empresa"].(string)
	justification, _ := payload["justificativa"].(string)
	if name == "" {
		// Dashboard-driven updates carry no lead facts; skip those.
		return nil
	}

	if err := s.email.SendHotLeadAlert(s.notifyTo, name, company, int(score), justification); err != nil {
		s.logger.Warn("LeadNotifier", "Hot lead email failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return nil
}
