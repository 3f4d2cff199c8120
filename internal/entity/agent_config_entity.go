package entity

import (
	"time"

	"github.com/google/uuid"
)

// AgentConfig holds the operator-tunable personality of the agent.
// There is exactly one row; GetConfig creates the defaults when missing.
type AgentConfig struct {
	Id               uuid.UUID
	Tone             string // profissional / descontraido / tecnico / amigavel
	UseEmojis        string // sempre / moderado / nunca
	ResponseStyle    string // formal / conversacional / consultivo / direto
	GreetingStyle    string // caloroso / neutro / objetivo
	MaxMessageLength int
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
