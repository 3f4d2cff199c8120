package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	WhatsApp WhatsAppConfig
	Ai       AIConfig
	Agent    AgentConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host            string
	Port            int
	Email           string
	Password        string
	SenderName      string
	HotLeadNotifyTo string
}

type WhatsAppConfig struct {
	Token         string
	PhoneNumberId string
	VerifyToken   string
}

type AIConfig struct {
	Provider      string // "gemini" or "openai"
	GeminiApiKey  string
	GeminiModel   string
	OpenAIApiKey  string
	OpenAIBaseURL string
	OpenAIModel   string
}

type AgentConfig struct {
	HistoryLimit         int
	ConsolidationTimeout int // seconds
	MinResponseDelay     int // seconds
	MaxResponseDelay     int // seconds
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:            getEnv("SMTP_HOST", ""),
			Port:            getEnvAsInt("SMTP_PORT", 587),
			Email:           getEnv("SMTP_EMAIL", ""),
			Password:        getEnv("SMTP_PASSWORD", ""),
			SenderName:      getEnv("SMTP_SENDER_NAME", "Agentic Sales"),
			HotLeadNotifyTo: getEnv("HOT_LEAD_NOTIFY_EMAIL", ""),
		},
		WhatsApp: WhatsAppConfig{
			Token:         getEnv("META_WHATSAPP_TOKEN", ""),
			PhoneNumberId: getEnv("META_PHONE_NUMBER_ID", ""),
			VerifyToken:   getEnv("META_VERIFY_TOKEN", ""),
		},
		Ai: AIConfig{
			Provider:      getEnv("LLM_PROVIDER", "gemini"),
			GeminiApiKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			OpenAIApiKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Agent: AgentConfig{
			HistoryLimit:         getEnvAsInt("MESSAGE_HISTORY_LIMIT", 20),
			ConsolidationTimeout: getEnvAsInt("MESSAGE_CONSOLIDATION_TIMEOUT", 60),
			MinResponseDelay:     getEnvAsInt("MIN_RESPONSE_DELAY", 3),
			MaxResponseDelay:     getEnvAsInt("MAX_RESPONSE_DELAY", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
