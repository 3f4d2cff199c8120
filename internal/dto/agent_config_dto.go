package dto

import "agentic-sales-be/internal/entity"

type AgentConfigResponse struct {
	Tone             string `json:"tone"`
	UseEmojis        string `json:"use_emojis"`
	ResponseStyle    string `json:"response_style"`
	GreetingStyle    string `json:"greeting_style"`
	MaxMessageLength int    `json:"max_message_length"`
}

func NewAgentConfigResponse(config *entity.AgentConfig) *AgentConfigResponse {
	return &AgentConfigResponse{
		Tone:             config.Tone,
		UseEmojis:        config.UseEmojis,
		ResponseStyle:    config.ResponseStyle,
		GreetingStyle:    config.GreetingStyle,
		MaxMessageLength: config.MaxMessageLength,
	}
}

type UpdateAgentConfigRequest struct {
	Tone             *string `json:"tone" validate:"omitempty,oneof=profissional descontraido tecnico amigavel"`
	UseEmojis        *string `json:"use_emojis" validate:"omitempty,oneof=sempre moderado nunca"`
	ResponseStyle    *string `json:"response_style" validate:"omitempty,oneof=formal conversacional consultivo direto"`
	GreetingStyle    *string `json:"greeting_style" validate:"omitempty,oneof=caloroso neutro objetivo"`
	MaxMessageLength *int    `json:"max_message_length" validate:"omitempty,min=100,max=2000"`
}
