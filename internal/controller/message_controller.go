package controller

import (
	"agentic-sales-be/internal/dto"
	"agentic-sales-be/internal/pkg/serverutils"
	"agentic-sales-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMessageController interface {
	RegisterRoutes(router fiber.Router)
}

type MessageController struct {
	messageService service.IMessageService
}

func NewMessageController(messageService service.IMessageService) IMessageController {
	return &MessageController{messageService: messageService}
}

func (c *MessageController) RegisterRoutes(router fiber.Router) {
	router.Post("/messages", serverutils.JwtMiddleware, c.Send)
}

// Send delivers a consultant message into a conversation under human
// control.
func (c *MessageController) Send(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	profileId, err := uuid.Parse(req.ProfileId)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid profile id")
	}

	message, err := c.messageService.SendHumanMessage(ctx.Context(), profileId, req.Content)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "Message sent", dto.NewMessageResponse(message))
}
