package service

import (
	"context"

	"agentic-sales-be/internal/dto"
	"agentic-sales-be/internal/entity"
	"agentic-sales-be/internal/pkg/logger"
	"agentic-sales-be/internal/repository/unitofwork"
)

type IAgentConfigService interface {
	Get(ctx context.Context) (*entity.AgentConfig, error)
	Update(ctx context.Context, req *dto.UpdateAgentConfigRequest) (*entity.AgentConfig, error)
}

type agentConfigService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAgentConfigService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAgentConfigService {
	return &agentConfigService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *agentConfigService) Get(ctx context.Context) (*entity.AgentConfig, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AgentConfigRepository().GetOrCreate(ctx)
}

func (s *agentConfigService) Update(ctx context.Context, req *dto.UpdateAgentConfigRequest) (*entity.AgentConfig, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	config, err := uow.AgentConfigRepository().GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	if req.Tone != nil {
		config.Tone = *req.Tone
	}
	if req.UseEmojis != nil {
		config.UseEmojis = *req.UseEmojis
	}
	if req.ResponseStyle != nil {
		config.ResponseStyle = *req.ResponseStyle
	}
	if req.GreetingStyle != nil {
		config.GreetingStyle = *req.GreetingStyle
	}
	if req.MaxMessageLength != nil {
		config.MaxMessageLength = *req.MaxMessageLength
	}

	if err := uow.AgentConfigRepository().Update(ctx, config); err != nil {
		return nil, err
	}

	s.logger.Info("AgentConfigService", "Agent config updated", map[string]interface{}{
		"tone":  config.Tone,
		"style": config.ResponseStyle,
	})

	return config, nil
}
