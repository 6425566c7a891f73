package controller

import (
	"fantasy-hoops-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPlayerController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type playerController struct {
	service service.IPlayerService
}

func NewPlayerController(service service.IPlayerService) IPlayerController {
	return &playerController{service: service}
}

func (c *playerController) RegisterRoutes(r fiber.Router) {
	r.Get("/players", c.Search)
}

func (c *playerController) Search(ctx *fiber.Ctx) error {
	res, err := c.service.Search(ctx.UserContext(), ctx.Query("search"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
