package controller

import (
	"fantasy-hoops-be/internal/dto"
	"fantasy-hoops-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IScheduleController interface {
	RegisterRoutes(r fiber.Router)
	GameCounts(ctx *fiber.Ctx) error
}

type scheduleController struct {
	service service.IScheduleService
}

func NewScheduleController(service service.IScheduleService) IScheduleController {
	return &scheduleController{service: service}
}

func (c *scheduleController) RegisterRoutes(r fiber.Router) {
	r.Get("/games", c.GameCounts)
}

// GameCounts responds with the bare counts object, which is what the
// schedule page reads.
func (c *scheduleController) GameCounts(ctx *fiber.Ctx) error {
	req := dto.GameCountsQuery{
		Start: ctx.Query("start"),
		End:   ctx.Query("end"),
		Teams: ctx.Query("teams"),
	}

	res, err := c.service.GameCounts(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
