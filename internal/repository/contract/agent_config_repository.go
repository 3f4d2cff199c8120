package contract

import (
	"context"

	"agentic-sales-be/internal/entity"
)

type AgentConfigRepository interface {
	// GetOrCreate returns the singleton config row, inserting defaults when
	// the table is empty.
	GetOrCreate(ctx context.Context) (*entity.AgentConfig, error)
	Update(ctx context.Context, config *entity.AgentConfig) error
}
