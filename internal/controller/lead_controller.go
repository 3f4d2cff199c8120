package controller

import (
	"agentic-sales-be/internal/dto"
	"agentic-sales-be/internal/pkg/serverutils"
	"agentic-sales-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILeadController interface {
	RegisterRoutes(router fiber.Router)
}

type LeadController struct {
	leadService service.ILeadService
}

func NewLeadController(leadService service.ILeadService) ILeadController {
	return &LeadController{leadService: leadService}
}

func (c *LeadController) RegisterRoutes(router fiber.Router) {
	leads := router.Group("/leads", serverutils.JwtMiddleware)
	leads.Get("/", c.List)
	leads.Get("/metrics", c.Metrics)
	leads.Get("/:id", c.Get)
	leads.Put("/:id", c.Update)
	leads.Delete("/:id", c.Delete)
}

func (c *LeadController) List(ctx *fiber.Ctx) error {
	filters := service.LeadFilters{
		Temperature: ctx.Query("temperature"),
		Step:        ctx.Query("step"),
		Limit:       ctx.QueryInt("limit", 50),
		Offset:      ctx.QueryInt("offset", 0),
	}

	leads, total, err := c.leadService.List(ctx.Context(), filters)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	responses := make([]*dto.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		responses = append(responses, dto.NewLeadResponse(lead))
	}

	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Leads retrieved", dto.LeadListResponse{
		Leads: responses,
		Total: total,
	})
}

func (c *LeadController) Metrics(ctx *fiber.Ctx) error {
	metrics, err := c.leadService.Metrics(ctx.Context())
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Metrics retrieved", metrics)
}

func (c *LeadController) Get(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lead id")
	}

	lead, err := c.leadService.Get(ctx.Context(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Lead retrieved", dto.NewLeadResponse(lead))
}

func (c *LeadController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lead id")
	}

	var req dto.UpdateLeadRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	lead, err := c.leadService.Update(ctx.Context(), id, &req)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Lead updated", dto.NewLeadResponse(lead))
}

func (c *LeadController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lead id")
	}

	if err := c.leadService.Delete(ctx.Context(), id); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Lead deleted", nil)
}
