package service

import (
	"context"
	"fmt"

	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/dto"
	"agentic-sales-be/internal/entity"
	"agentic-sales-be/internal/pkg/logger"
	"agentic-sales-be/internal/repository/specification"
	"agentic-sales-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// stepColumns whitelists the step filter names accepted by the list
// endpoint; the mapped value is the column interpolated into the query.
var stepColumns = map[string]string{
	"novo_lead":           "step_novo_lead",
	"primeiro_contato":    "step_primeiro_contato",
	"negociacao":          "step_negociacao",
	"orcamento_realizado": "step_orcamento_realizado",
	"orcamento_aceito":    "step_orcamento_aceito",
	"orcamento_recusado":  "step_orcamento_recusado",
	"venda_convertida":    "step_venda_convertida",
	"venda_perdida":       "step_venda_perdida",
}

type LeadFilters struct {
	Temperature string
	Step        string
	Limit       int
	Offset      int
}

type ILeadService interface {
	List(ctx context.Context, filters LeadFilters) ([]*entity.Lead, int64, error)
	Metrics(ctx context.Context) (*dto.LeadMetricsResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateLeadRequest) (*entity.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type leadService struct {
	uowFactory unitofwork.RepositoryFactory
	events     IEventService
	logger     logger.ILogger
}

func NewLeadService(uowFactory unitofwork.RepositoryFactory, events IEventService, log logger.ILogger) ILeadService {
	return &leadService{
		uowFactory: uowFactory,
		events:     events,
		logger:     log,
	}
}

func (s *leadService) List(ctx context.Context, filters LeadFilters) ([]*entity.Lead, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification

	if filters.Temperature != "" {
		switch filters.Temperature {
		case constant.LeadTemperatureHot, constant.LeadTemperatureWarm, constant.LeadTemperatureCold:
			specs = append(specs, specification.ByStatus{Status: filters.Temperature})
		default:
			return nil, 0, fmt.Errorf("invalid temperature filter: %s", filters.Temperature)
		}
	}

	if filters.Step != "" {
		column, ok := stepColumns[filters.Step]
		if !ok {
			return nil, 0, fmt.Errorf("invalid step filter: %s", filters.Step)
		}
		specs = append(specs, specification.ByStepFlag{Field: column})
	}

	total, err := uow.LeadRepository().Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	if filters.Limit <= 0 {
		filters.Limit = 50
	}
	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: filters.Limit, Offset: filters.Offset},
	)

	leads, err := uow.LeadRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

func (s *leadService) Metrics(ctx context.Context) (*dto.LeadMetricsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.LeadRepository()

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	hot, err := repo.Count(ctx, specification.ByStatus{Status: constant.LeadTemperatureHot})
	if err != nil {
		return nil, err
	}
	warm, err := repo.Count(ctx, specification.ByStatus{Status: constant.LeadTemperatureWarm})
	if err != nil {
		return nil, err
	}
	cold, err := repo.Count(ctx, specification.ByStatus{Status: constant.LeadTemperatureCold})
	if err != nil {
		return nil, err
	}

	return &dto.LeadMetricsResponse{
		Total:  total,
		Quente: hot,
		Morno:  warm,
		Frio:   cold,
	}, nil
}

func (s *leadService) Get(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	lead, err := uow.LeadRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, fmt.Errorf("lead not found")
	}
	return lead, nil
}

func (s *leadService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateLeadRequest) (*entity.Lead, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	lead, err := uow.LeadRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, fmt.Errorf("lead not found")
	}

	if req.NomeCliente != nil {
		lead.NomeCliente = *req.NomeCliente
	}
	if req.NomeEmpresa != nil {
		lead.NomeEmpresa = *req.NomeEmpresa
	}
	if req.Cargo != nil {
		lead.Cargo = *req.Cargo
	}
	if req.Tags != nil {
		tags := *req.Tags
		if len(tags) > constant.LeadTagLimit {
			tags = tags[:constant.LeadTagLimit]
		}
		lead.Tags = tags
	}
	if req.Score != nil {
		score := *req.Score
		lead.Score = &score
		// Manual score edits re-derive the temperature.
		lead.Status = entity.Temperature(score)
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}
	if req.Stage != nil {
		lead.Stage = *req.Stage
	}

	applyStep(&lead.StepNovoLead, req.StepNovoLead)
	applyStep(&lead.StepPrimeiroContato, req.StepPrimeiroContato)
	applyStep(&lead.StepNegociacao, req.StepNegociacao)
	applyStep(&lead.StepOrcamentoRealizado, req.StepOrcamentoRealizado)
	applyStep(&lead.StepOrcamentoAceito, req.StepOrcamentoAceito)
	applyStep(&lead.StepOrcamentoRecusado, req.StepOrcamentoRecusado)
	applyStep(&lead.StepVendaConvertida, req.StepVendaConvertida)
	applyStep(&lead.StepVendaPerdida, req.StepVendaPerdida)

	if err := uow.LeadRepository().Update(ctx, lead); err != nil {
		return nil, err
	}

	s.events.Emit(constant.EventLeadUpdated, map[string]interface{}{
		"lead_id": lead.Id.String(),
		"status":  lead.Status,
		"stage":   lead.Stage,
	})

	return lead, nil
}

func (s *leadService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	lead, err := uow.LeadRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if lead == nil {
		return fmt.Errorf("lead not found")
	}

	if err := uow.LeadRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("LeadService", "Lead soft deleted", map[string]interface{}{
		"lead_id": id.String(),
	})
	return nil
}

func applyStep(field *bool, value *bool) {
	if value != nil {
		*field = *value
	}
}
