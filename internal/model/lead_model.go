package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Lead struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ProfileId      uuid.UUID `gorm:"type:uuid;not null;index"`

	NomeCliente string `gorm:"type:varchar(255)"`
	NomeEmpresa string `gorm:"type:varchar(255)"`
	Cargo       string `gorm:"type:varchar(128)"`
	Telefone    string `gorm:"type:varchar(32)"`

	Tags   datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	Score  *int
	Notes  string `gorm:"type:text"`
	Status string `gorm:"type:varchar(32);not null;default:'morno';index"`
	Stage  string `gorm:"type:varchar(32);not null;default:'first_contact'"`

	StepNovoLead           bool `gorm:"not null;default:true"`
	StepPrimeiroContato    bool `gorm:"not null;default:false"`
	StepNegociacao         bool `gorm:"not null;default:false"`
	StepOrcamentoRealizado bool `gorm:"not null;default:false"`
	StepOrcamentoAceito    bool `gorm:"not null;default:false"`
	StepOrcamentoRecusado  bool `gorm:"not null;default:false"`
	StepVendaConvertida    bool `gorm:"not null;default:false"`
	StepVendaPerdida       bool `gorm:"not null;default:false"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Lead) TableName() string {
	return "leads"
}
