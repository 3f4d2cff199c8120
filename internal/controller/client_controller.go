package controller

import (
	"agentic-sales-be/internal/constant"
	"agentic-sales-be/internal/dto"
	"agentic-sales-be/internal/pkg/serverutils"
	"agentic-sales-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IClientController interface {
	RegisterRoutes(router fiber.Router)
}

type ClientController struct {
	conversationService service.IConversationService
}

func NewClientController(conversationService service.IConversationService) IClientController {
	return &ClientController{conversationService: conversationService}
}

func (c *ClientController) RegisterRoutes(router fiber.Router) {
	router.Get("/clients", serverutils.JwtMiddleware, c.ListClients)
	conversations := router.Group("/conversations", serverutils.JwtMiddleware)
	conversations.Get("/:id/messages", c.GetMessages)
	conversations.Post("/:id/takeover", c.Takeover)
	conversations.Post("/:id/close", c.Close)
}

func (c *ClientController) ListClients(ctx *fiber.Ctx) error {
	summaries, err := c.conversationService.ListClients(ctx.Context())
	if err != nil {
		return err
	}

	responses := make([]*dto.ClientResponse, 0, len(summaries))
	for _, summary := range summaries {
		resp := &dto.ClientResponse{
			ProfileId:      summary.Profile.Id.String(),
			WhatsappNumber: summary.Profile.WhatsappNumber,
			DisplayName:    summary.Profile.DisplayName,
			FirstName:      summary.Profile.FirstName,
			LastName:       summary.Profile.LastName,
			Tags:           summary.Profile.Tags,
			ConversationId: summary.Conversation.Id.String(),
			Status:         summary.Conversation.Status,
		}
		if resp.Tags == nil {
			resp.Tags = []string{}
		}
		if summary.LastMessage != nil {
			resp.LastMessage = summary.LastMessage.Content
			resp.LastMessageAt = summary.LastMessage.CreatedAt
		}
		responses = append(responses, resp)
	}

	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Clients retrieved", responses)
}

func (c *ClientController) GetMessages(ctx *fiber.Ctx) error {
	conversationId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation id")
	}

	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	messages, err := c.conversationService.GetMessages(ctx.Context(), conversationId, limit, offset)
	if err != nil {
		return err
	}

	responses := make([]*dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, dto.NewMessageResponse(message))
	}

	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Messages retrieved", responses)
}

func (c *ClientController) Takeover(ctx *fiber.Ctx) error {
	conversationId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation id")
	}

	conversation, err := c.conversationService.Takeover(ctx.Context(), conversationId)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Conversation taken over", fiber.Map{
		"conversation_id": conversation.Id.String(),
		"status":          conversation.Status,
	})
}

func (c *ClientController) Close(ctx *fiber.Ctx) error {
	conversationId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid conversation id")
	}

	var req dto.CloseConversationRequest
	_ = ctx.BodyParser(&req)

	conversation, err := c.conversationService.Close(ctx.Context(), conversationId, constant.ClosedByAdmin, req.Reason)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Conversation closed", fiber.Map{
		"conversation_id": conversation.Id.String(),
		"status":          conversation.Status,
	})
}
