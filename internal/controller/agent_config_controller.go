package controller

import (
	"agentic-sales-be/internal/dto"
	"agentic-sales-be/internal/pkg/serverutils"
	"agentic-sales-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAgentConfigController interface {
	RegisterRoutes(router fiber.Router)
}

type AgentConfigController struct {
	configService service.IAgentConfigService
}

func NewAgentConfigController(configService service.IAgentConfigService) IAgentConfigController {
	return &AgentConfigController{configService: configService}
}

func (c *AgentConfigController) RegisterRoutes(router fiber.Router) {
	config := router.Group("/agent-config", serverutils.JwtMiddleware)
	config.Get("/", c.Get)
	config.Put("/", c.Update)
}

func (c *AgentConfigController) Get(ctx *fiber.Ctx) error {
	config, err := c.configService.Get(ctx.Context())
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Agent config retrieved", dto.NewAgentConfigResponse(config))
}

func (c *AgentConfigController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateAgentConfigRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	config, err := c.configService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Agent config updated", dto.NewAgentConfigResponse(config))
}
