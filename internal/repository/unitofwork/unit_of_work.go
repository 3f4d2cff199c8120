package unitofwork

import (
	"context"

	"agentic-sales-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProfileRepository() contract.ProfileRepository
	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	LeadRepository() contract.LeadRepository
	AgentConfigRepository() contract.AgentConfigRepository
	UserRepository() contract.UserRepository
}
