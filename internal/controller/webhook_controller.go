package controller

import (
	"agentic-sales-be/internal/dto"
	"agentic-sales-be/internal/pkg/logger"
	"agentic-sales-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(router fiber.Router)
}

type WebhookController struct {
	webhookService service.IWebhookService
	verifyToken    string
	logger         logger.ILogger
}

func NewWebhookController(webhookService service.IWebhookService, verifyToken string, log logger.ILogger) IWebhookController {
	return &WebhookController{
		webhookService: webhookService,
		verifyToken:    verifyToken,
		logger:         log,
	}
}

func (c *WebhookController) RegisterRoutes(router fiber.Router) {
	router.Get("/webhook", c.Verify)
	router.Post("/webhook", c.Receive)
}

// Verify answers Meta's subscription handshake.
func (c *WebhookController) Verify(ctx *fiber.Ctx) error {
	mode := ctx.Query("hub.mode")
	token := ctx.Query("hub.verify_token")
	challenge := ctx.Query("hub.challenge")

	if mode == "subscribe" && token == c.verifyToken {
		return ctx.Status(fiber.StatusOK).SendString(challenge)
	}
	return ctx.SendStatus(fiber.StatusForbidden)
}

// Receive ingests a webhook notification. It always answers 200 quickly;
// Meta retries deliveries that take too long, which would double messages.
func (c *WebhookController) Receive(ctx *fiber.Ctx) error {
	var payload dto.WebhookPayload
	if err := ctx.BodyParser(&payload); err != nil {
		c.logger.Warn("WebhookController", "Unparseable webhook payload", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.SendStatus(fiber.StatusOK)
	}

	inbound, ok := payload.FirstMessage()
	if !ok || inbound.WaId == "" {
		return ctx.SendStatus(fiber.StatusOK)
	}

	reqCtx := ctx.Context()
	var err error
	if inbound.Type == "text" && inbound.Text != "" {
		err = c.webhookService.HandleTextMessage(reqCtx, inbound)
	} else {
		err = c.webhookService.HandleUnsupportedMessage(reqCtx, inbound)
	}
	if err != nil {
		c.logger.Error("WebhookController", "Webhook handling failed", map[string]interface{}{
			"wa_id": inbound.WaId,
			"error": err.Error(),
		})
	}

	return ctx.SendStatus(fiber.StatusOK)
}
