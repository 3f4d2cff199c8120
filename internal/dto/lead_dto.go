package dto

import (
	"time"

	"agentic-sales-be/internal/entity"
)

type LeadResponse struct {
	Id             string     `json:"id"`
	ConversationId string     `json:"conversation_id"`
	ProfileId      string     `json:"profile_id"`
	NomeCliente    string     `json:"nome_cliente"`
	NomeEmpresa    string     `json:"nome_empresa"`
	Cargo          string     `json:"cargo"`
	Telefone       string     `json:"telefone"`
	Tags           []string   `json:"tags"`
	Score          *int       `json:"score"`
	Notes          string     `json:"notes"`
	Status         string     `json:"status"`
	Stage          string     `json:"stage"`
	Steps          LeadSteps  `json:"steps"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

type LeadSteps struct {
	NovoLead           bool `json:"novo_lead"`
	PrimeiroContato    bool `json:"primeiro_contato"`
	Negociacao         bool `json:"negociacao"`
	OrcamentoRealizado bool `json:"orcamento_realizado"`
	OrcamentoAceito    bool `json:"orcamento_aceito"`
	OrcamentoRecusado  bool `json:"orcamento_recusado"`
	VendaConvertida    bool `json:"venda_convertida"`
	VendaPerdida       bool `json:"venda_perdida"`
}

func NewLeadResponse(lead *entity.Lead) *LeadResponse {
	tags := lead.Tags
	if tags == nil {
		tags = []string{}
	}
	return &LeadResponse{
		Id:             lead.Id.String(),
		ConversationId: lead.ConversationId.String(),
		ProfileId:      lead.ProfileId.String(),
		NomeCliente:    lead.NomeCliente,
		NomeEmpresa:    lead.NomeEmpresa,
		Cargo:          lead.Cargo,
		Telefone:       lead.Telefone,
		Tags:           tags,
		Score:          lead.Score,
		Notes:          lead.Notes,
		Status:         lead.Status,
		Stage:          lead.Stage,
		Steps: LeadSteps{
			NovoLead:           lead.StepNovoLead,
			PrimeiroContato:    lead.StepPrimeiroContato,
			Negociacao:         lead.StepNegociacao,
			OrcamentoRealizado: lead.StepOrcamentoRealizado,
			OrcamentoAceito:    lead.StepOrcamentoAceito,
			OrcamentoRecusado:  lead.StepOrcamentoRecusado,
			VendaConvertida:    lead.StepVendaConvertida,
			VendaPerdida:       lead.StepVendaPerdida,
		},
		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
	}
}

type UpdateLeadRequest struct {
	NomeCliente *string   `json:"nome_cliente"`
	NomeEmpresa *string   `json:"nome_empresa"`
	Cargo       *string   `json:"cargo"`
	Tags        *[]string `json:"tags"`
	Score       *int      `json:"score" validate:"omitempty,min=0,max=100"`
	Notes       *string   `json:"notes"`
	Stage       *string   `json:"stage" validate:"omitempty,oneof=first_contact negotiation"`

	StepNovoLead           *bool `json:"step_novo_lead"`
	StepPrimeiroContato    *bool `json:"step_primeiro_contato"`
	StepNegociacao         *bool `json:"step_negociacao"`
	StepOrcamentoRealizado *bool `json:"step_orcamento_realizado"`
	StepOrcamentoAceito    *bool `json:"step_orcamento_aceito"`
	StepOrcamentoRecusado  *bool `json:"step_orcamento_recusado"`
	StepVendaConvertida    *bool `json:"step_venda_convertida"`
	StepVendaPerdida       *bool `json:"step_venda_perdida"`
}

type LeadListResponse struct {
	Leads []*LeadResponse `json:"leads"`
	Total int64           `json:"total"`
}

type LeadMetricsResponse struct {
	Total  int64 `json:"total"`
	Quente int64 `json:"quente"`
	Morno  int64 `json:"morno"`
	Frio   int64 `json:"frio"`
}
