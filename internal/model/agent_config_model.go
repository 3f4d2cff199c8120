package model

import (
	"time"

	"github.com/google/uuid"
)

type AgentConfig struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tone             string    `gorm:"type:varchar(32);not null;default:'profissional'"`
	UseEmojis        string    `gorm:"type:varchar(32);not null;default:'moderado'"`
	ResponseStyle    string    `gorm:"type:varchar(32);not null;default:'conversacional'"`
	GreetingStyle    string    `gorm:"type:varchar(32);not null;default:'caloroso'"`
	MaxMessageLength int       `gorm:"not null;default:300"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (AgentConfig) TableName() string {
	return "agent_config"
}
