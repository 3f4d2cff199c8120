package entity

import (
	"time"

	"github.com/google/uuid"
)

// Lead is the CRM record created when a conversation is qualified.
// Score is nil while scoring is still pending (pipeline-driven creation
// defers it to the negotiation pass).
type Lead struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	ProfileId      uuid.UUID

	NomeCliente string
	NomeEmpresa string
	Cargo       string
	Telefone    string

	Tags   []string
	Score  *int
	Notes  string
	Status string // temperature: quente / morno / frio
	Stage  string // pipeline stage: first_contact / negotiation

	StepNovoLead           bool
	StepPrimeiroContato    bool
	StepNegociacao         bool
	StepOrcamentoRealizado bool
	StepOrcamentoAceito    bool
	StepOrcamentoRecusado  bool
	StepVendaConvertida    bool
	StepVendaPerdida       bool

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// Temperature derives the classification for a given score.
func Temperature(score int) string {
	switch {
	case score >= 70:
		return "quente"
	case score >= 40:
		return "morno"
	default:
		return "frio"
	}
}
