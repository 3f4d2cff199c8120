package service

import (
	"context"
	"time"

	"agentic-sales-be/internal/pkg/logger"
	"agentic-sales-be/internal/websocket"
	"agentic-sales-be/pkg/events"
	"agentic-sales-be/pkg/nats"
)

// IEventService fans CRM events out to the dashboard websocket hub and to
// the NATS bus for external consumers. Delivery is best effort, events never
// fail the operation that produced them.
type IEventService interface {
	Emit(eventType string, payload map[string]interface{})
}

type eventService struct {
	hub       *websocket.Hub
	publisher *nats.Publisher
	logger    logger.ILogger
}

func NewEventService(hub *websocket.Hub, publisher *nats.Publisher, log logger.ILogger) IEventService {
	return &eventService{
		hub:       hub,
		publisher: publisher,
		logger:    log,
	}
}

func (s *eventService) Emit(eventType string, payload map[string]interface{}) {
	event := events.BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(event)
	}

	if s.publisher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("EventService", "Failed to publish event to NATS", map[string]interface{}{
				"event": eventType,
				"error": err.Error(),
			})
		}
	}
}
