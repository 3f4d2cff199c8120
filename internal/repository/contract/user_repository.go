package contract

import (
	"context"

	"agentic-sales-be/internal/entity"
	"agentic-sales-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
}
