package bootstrap

import (
	"context"
	"log"

	"agentic-sales-be/internal/config"
	"agentic-sales-be/internal/controller"
	"agentic-sales-be/internal/pkg/logger"
	"agentic-sales-be/internal/pkg/mailer"
	"agentic-sales-be/internal/repository/unitofwork"
	"agentic-sales-be/internal/service"
	"agentic-sales-be/internal/websocket"
	"agentic-sales-be/pkg/agent/pipeline"
	"agentic-sales-be/pkg/agent/scoring"
	"agentic-sales-be/pkg/llm/factory"
	"agentic-sales-be/pkg/whatsapp"

	pktNats "agentic-sales-be/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WebhookController     controller.IWebhookController
	AuthController        controller.IAuthController
	ClientController      controller.IClientController
	MessageController     controller.IMessageController
	LeadController        controller.ILeadController
	AgentConfigController controller.IAgentConfigController

	// Background Services (Exposed for main.go to run)
	ScoringJobService   service.IScoringJobService
	LeadNotifierService service.ILeadNotifierService

	// WebSockets
	WebSocketHub *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
	)

	// 2. LLM Provider
	llmProvider, err := factory.NewProvider(cfg.Ai)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.Provider)

	// 3. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// WhatsApp Graph API client
	waClient := whatsapp.NewClient(cfg.WhatsApp.Token, cfg.WhatsApp.PhoneNumberId, sysLogger)

	// 4. Agent Core
	eventService := service.NewEventService(wsHub, natsPub, sysLogger)
	scoringEngine := scoring.NewEngine(llmProvider, sysLogger)
	salesPipeline := pipeline.NewPipeline(llmProvider, sysLogger)

	scoringJobs := service.NewScoringJobService(uowFactory, scoringEngine, eventService, sysLogger)
	leadNotifier := service.NewLeadNotifierService(natsSub, emailService, cfg.SMTP.HotLeadNotifyTo, sysLogger)

	// 5. Services
	conversationService := service.NewConversationService(uowFactory, eventService, sysLogger)
	messageService := service.NewMessageService(uowFactory, waClient, eventService, sysLogger)
	leadService := service.NewLeadService(uowFactory, eventService, sysLogger)
	agentConfigService := service.NewAgentConfigService(uowFactory, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.App.JwtSecret, sysLogger)

	webhookService := service.NewWebhookService(
		uowFactory,
		conversationService,
		salesPipeline,
		scoringEngine,
		llmProvider,
		waClient,
		eventService,
		scoringJobs,
		cfg.Agent,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		WebhookController:     controller.NewWebhookController(webhookService, cfg.WhatsApp.VerifyToken, sysLogger),
		AuthController:        controller.NewAuthController(authService),
		ClientController:      controller.NewClientController(conversationService),
		MessageController:     controller.NewMessageController(messageService),
		LeadController:        controller.NewLeadController(leadService),
		AgentConfigController: controller.NewAgentConfigController(agentConfigService),

		ScoringJobService:   scoringJobs,
		LeadNotifierService: leadNotifier,

		WebSocketHub: wsHub,
		Logger:       sysLogger,
	}
}
