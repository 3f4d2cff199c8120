package controller

import (
	"agentic-sales-be/internal/dto"
	"agentic-sales-be/internal/pkg/serverutils"
	"agentic-sales-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(router fiber.Router)
}

type AuthController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) RegisterRoutes(router fiber.Router) {
	auth := router.Group("/auth")
	auth.Post("/login", c.Login)
	auth.Post("/register", c.Register)
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	resp, err := c.authService.Login(ctx.Context(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Login successful", resp)
}

func (c *AuthController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	user, err := c.authService.Register(ctx.Context(), &req)
	if err != nil {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "User registered", fiber.Map{
		"id":    user.Id.String(),
		"email": user.Email,
		"name":  user.Name,
	})
}
