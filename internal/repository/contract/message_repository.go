package contract

import (
	"context"

	"agentic-sales-be/internal/entity"
	"agentic-sales-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindLastByConversation returns the newest `limit` messages of a
	// conversation re-ordered oldest-first, ready to feed the model.
	FindLastByConversation(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.Message, error)
}
