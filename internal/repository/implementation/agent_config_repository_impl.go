package implementation

import (
	"context"
	"errors"

	"agentic-sales-be/internal/entity"
	"agentic-sales-be/internal/mapper"
	"agentic-sales-be/internal/model"
	"agentic-sales-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgentConfigRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CrmMapper
}

func NewAgentConfigRepository(db *gorm.DB) contract.AgentConfigRepository {
	return &AgentConfigRepositoryImpl{
		db:     db,
		mapper: mapper.NewCrmMapper(),
	}
}

func (r *AgentConfigRepositoryImpl) GetOrCreate(ctx context.Context) (*entity.AgentConfig, error) {
	var m model.AgentConfig
	err := r.db.WithContext(ctx).First(&m).Error
	if err == nil {
		return r.mapper.AgentConfigToEntity(&m), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m = model.AgentConfig{
		Id:               uuid.New(),
		Tone:             "profissional",
		UseEmojis:        "moderado",
		ResponseStyle:    "conversacional",
		GreetingStyle:    "caloroso",
		MaxMessageLength: 300,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return r.mapper.AgentConfigToEntity(&m), nil
}

func (r *AgentConfigRepositoryImpl) Update(ctx context.Context, config *entity.AgentConfig) error {
	m := r.mapper.AgentConfigToModel(config)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*config = *r.mapper.AgentConfigToEntity(m)
	return nil
}
