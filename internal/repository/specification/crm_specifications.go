package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByProfileId filters by owning profile
type ByProfileId struct {
	ProfileId uuid.UUID
}

func (s ByProfileId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("profile_id = ?", s.ProfileId)
}

// ByConversationId filters by owning conversation
type ByConversationId struct {
	ConversationId uuid.UUID
}

func (s ByConversationId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationId)
}

// ByStatus filters by lifecycle status / temperature column
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ActiveConversation keeps conversations still owned by the agent or a human
// consultant (i.e. not closed). A profile has at most one of these.
type ActiveConversation struct{}

func (s ActiveConversation) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", []string{"open", "human"})
}

// ByWhatsappNumber filters profiles by their wa_id
type ByWhatsappNumber struct {
	Number string
}

func (s ByWhatsappNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("whatsapp_number = ?", s.Number)
}

// ByStepFlag filters leads on one of the pipeline step checkboxes.
// The field name is validated by the caller against a known set; it is never
// raw user input.
type ByStepFlag struct {
	Field string
}

func (s ByStepFlag) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(s.Field+" = ?", true)
}
