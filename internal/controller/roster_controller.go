package controller

import (
	"fantasy-hoops-be/internal/dto"
	"fantasy-hoops-be/internal/pkg/serverutils"
	"fantasy-hoops-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRosterController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
	RemoveByForm(ctx *fiber.Ctx) error
}

type rosterController struct {
	service service.IRosterService
	guard   *serverutils.JwtGuard
}

func NewRosterController(service service.IRosterService, guard *serverutils.JwtGuard) IRosterController {
	return &rosterController{service: service, guard: guard}
}

func (c *rosterController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/roster")
	h.Use(c.guard.Required())
	h.Get("", c.List)
	h.Post("", c.Add)
	h.Post("/remove", c.RemoveByForm)
	h.Delete("/:id", c.Remove)
}

func (c *rosterController) List(ctx *fiber.Ctx) error {
	userId, _ := serverutils.UserID(ctx)

	res, err := c.service.List(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get roster", res))
}

func (c *rosterController) Add(ctx *fiber.Ctx) error {
	userId, _ := serverutils.UserID(ctx)

	var req dto.AddRosterPlayerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Add(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(res.Player.PlayerName+" added to your roster.", res))
}

func (c *rosterController) Remove(ctx *fiber.Ctx) error {
	return c.remove(ctx, &dto.RemoveRosterPlayerRequest{PlayerId: ctx.Params("id")})
}

func (c *rosterController) RemoveByForm(ctx *fiber.Ctx) error {
	var req dto.RemoveRosterPlayerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	return c.remove(ctx, &req)
}

func (c *rosterController) remove(ctx *fiber.Ctx, req *dto.RemoveRosterPlayerRequest) error {
	userId, _ := serverutils.UserID(ctx)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Remove(ctx.UserContext(), userId, req)
	if err != nil {
		return err
	}

	message := "Player removed from your roster."
	if !res.Removed {
		message = "Player not found on your roster."
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}
