package controller

import (
	"fantasy-hoops-be/internal/dto"
	"fantasy-hoops-be/internal/pkg/serverutils"
	"fantasy-hoops-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
	guard   *serverutils.JwtGuard
}

func NewAuthController(service service.IAuthService, guard *serverutils.JwtGuard) IAuthController {
	return &authController{service: service, guard: guard}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Post("/logout", c.guard.Required(), c.Logout)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Account created", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Login success", res))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	claims, _ := serverutils.CurrentClaims(ctx)
	if err := c.service.Logout(ctx.UserContext(), claims); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Logout success", nil))
}
