package factory

import (
	"fmt"

	"agentic-sales-be/internal/config"
	"agentic-sales-be/pkg/llm"
	"agentic-sales-be/pkg/llm/gemini"
	"agentic-sales-be/pkg/llm/openai"
)

// NewProvider builds the configured LLM backend.
func NewProvider(cfg config.AIConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiApiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
		return gemini.NewProvider(cfg.GeminiApiKey, cfg.GeminiModel), nil
	case "openai":
		if cfg.OpenAIApiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return openai.NewProvider(cfg.OpenAIApiKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
