package mapper

import (
	"encoding/json"
	"time"

	"agentic-sales-be/internal/entity"
	"agentic-sales-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CrmMapper converts between GORM models and domain entities.
type CrmMapper struct{}

func NewCrmMapper() *CrmMapper {
	return &CrmMapper{}
}

func tagsToEntity(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return []string{}
	}
	return tags
}

func tagsToModel(tags []string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}
	raw, _ := json.Marshal(tags)
	return datatypes.JSON(raw)
}

func updatedAtToEntity(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Profile

func (m *CrmMapper) ProfileToEntity(p *model.Profile) *entity.Profile {
	if p == nil {
		return nil
	}
	return &entity.Profile{
		Id:             p.Id,
		WhatsappNumber: p.WhatsappNumber,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		DisplayName:    p.DisplayName,
		Tags:           tagsToEntity(p.Tags),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAtToEntity(p.UpdatedAt),
	}
}

func (m *CrmMapper) ProfileToModel(p *entity.Profile) *model.Profile {
	if p == nil {
		return nil
	}
	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}
	return &model.Profile{
		Id:             p.Id,
		WhatsappNumber: p.WhatsappNumber,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		DisplayName:    p.DisplayName,
		Tags:           tagsToModel(p.Tags),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

// Conversation

func (m *CrmMapper) ConversationToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:           c.Id,
		ProfileId:    c.ProfileId,
		Status:       c.Status,
		Tags:         tagsToEntity(c.Tags),
		ClosedAt:     c.ClosedAt,
		ClosedBy:     c.ClosedBy,
		ClosedReason: c.ClosedReason,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAtToEntity(c.UpdatedAt),
	}
}

func (m *CrmMapper) ConversationToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}
	return &model.Conversation{
		Id:           c.Id,
		ProfileId:    c.ProfileId,
		Status:       c.Status,
		Tags:         tagsToModel(c.Tags),
		ClosedAt:     c.ClosedAt,
		ClosedBy:     c.ClosedBy,
		ClosedReason: c.ClosedReason,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

// Message

func (m *CrmMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:                msg.Id,
		ConversationId:    msg.ConversationId,
		ProfileId:         msg.ProfileId,
		Role:              msg.Role,
		MessageType:       msg.MessageType,
		Content:           msg.Content,
		ProviderMessageId: msg.ProviderMessageId,
		CreatedAt:         msg.CreatedAt,
	}
}

func (m *CrmMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:                msg.Id,
		ConversationId:    msg.ConversationId,
		ProfileId:         msg.ProfileId,
		Role:              msg.Role,
		MessageType:       msg.MessageType,
		Content:           msg.Content,
		ProviderMessageId: msg.ProviderMessageId,
		CreatedAt:         msg.CreatedAt,
	}
}

// Lead

func (m *CrmMapper) LeadToEntity(l *model.Lead) *entity.Lead {
	if l == nil {
		return nil
	}
	var deletedAt *time.Time
	if l.DeletedAt.Valid {
		t := l.DeletedAt.Time
		deletedAt = &t
	}
	return &entity.Lead{
		Id:             l.Id,
		ConversationId: l.ConversationId,
		ProfileId:      l.ProfileId,
		NomeCliente:    l.NomeCliente,
		NomeEmpresa:    l.NomeEmpresa,
		Cargo:          l.Cargo,
		Telefone:       l.Telefone,
		Tags:           tagsToEntity(l.Tags),
		Score:          l.Score,
		Notes:          l.Notes,
		Status:         l.Status,
		Stage:          l.Stage,

		StepNovoLead:           l.StepNovoLead,
		StepPrimeiroContato:    l.StepPrimeiroContato,
		StepNegociacao:         l.StepNegociacao,
		StepOrcamentoRealizado: l.StepOrcamentoRealizado,
		StepOrcamentoAceito:    l.StepOrcamentoAceito,
		StepOrcamentoRecusado:  l.StepOrcamentoRecusado,
		StepVendaConvertida:    l.StepVendaConvertida,
		StepVendaPerdida:       l.StepVendaPerdida,

		CreatedAt: l.CreatedAt,
		UpdatedAt: updatedAtToEntity(l.UpdatedAt),
		DeletedAt: deletedAt,
		IsDeleted: l.DeletedAt.Valid,
	}
}

func (m *CrmMapper) LeadToModel(l *entity.Lead) *model.Lead {
	if l == nil {
		return nil
	}
	var deletedAt gorm.DeletedAt
	if l.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *l.DeletedAt, Valid: true}
	} else if l.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	var updatedAt time.Time
	if l.UpdatedAt != nil {
		updatedAt = *l.UpdatedAt
	}
	return &model.Lead{
		Id:             l.Id,
		ConversationId: l.ConversationId,
		ProfileId:      l.ProfileId,
		NomeCliente:    l.NomeCliente,
		NomeEmpresa:    l.NomeEmpresa,
		Cargo:          l.Cargo,
		Telefone:       l.Telefone,
		Tags:           tagsToModel(l.Tags),
		Score:          l.Score,
		Notes:          l.Notes,
		Status:         l.Status,
		Stage:          l.Stage,

		StepNovoLead:           l.StepNovoLead,
		StepPrimeiroContato:    l.StepPrimeiroContato,
		StepNegociacao:         l.StepNegociacao,
		StepOrcamentoRealizado: l.StepOrcamentoRealizado,
		StepOrcamentoAceito:    l.StepOrcamentoAceito,
		StepOrcamentoRecusado:  l.StepOrcamentoRecusado,
		StepVendaConvertida:    l.StepVendaConvertida,
		StepVendaPerdida:       l.StepVendaPerdida,

		CreatedAt: l.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

// AgentConfig

func (m *CrmMapper) AgentConfigToEntity(c *model.AgentConfig) *entity.AgentConfig {
	if c == nil {
		return nil
	}
	return &entity.AgentConfig{
		Id:               c.Id,
		Tone:             c.Tone,
		UseEmojis:        c.UseEmojis,
		ResponseStyle:    c.ResponseStyle,
		GreetingStyle:    c.GreetingStyle,
		MaxMessageLength: c.MaxMessageLength,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        updatedAtToEntity(c.UpdatedAt),
	}
}

func (m *CrmMapper) AgentConfigToModel(c *entity.AgentConfig) *model.AgentConfig {
	if c == nil {
		return nil
	}
	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}
	return &model.AgentConfig{
		Id:               c.Id,
		Tone:             c.Tone,
		UseEmojis:        c.UseEmojis,
		ResponseStyle:    c.ResponseStyle,
		GreetingStyle:    c.GreetingStyle,
		MaxMessageLength: c.MaxMessageLength,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

// User

func (m *CrmMapper) UserToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    updatedAtToEntity(u.UpdatedAt),
	}
}

func (m *CrmMapper) UserToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	var updatedAt time.Time
	if u.UpdatedAt != nil {
		updatedAt = *u.UpdatedAt
	}
	return &model.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}
