package controller

import (
	"memoscribe-be/internal/dto"
	"memoscribe-be/internal/pkg/serverutils"
	"memoscribe-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILogController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	ShowByDate(ctx *fiber.Ctx) error
	GetDigest(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type logController struct {
	logService service.ILogService
}

func NewLogController(logService service.ILogService) ILogController {
	return &logController{
		logService: logService,
	}
}

func (c *logController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/logs/v1")
	h.Use(serverutils.UserMiddleware)
	h.Post("", c.Save)
	h.Get("date/:date", c.ShowByDate)
	h.Get(":id/digest", c.GetDigest)
	h.Delete(":id", c.Delete)
}

func (c *logController) Save(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.SaveLogRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.logService.Save(ctx.Context(), userId, &req)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save log", res))
}

func (c *logController) ShowByDate(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	res, err := c.logService.ShowByDate(ctx.Context(), userId, ctx.Params("date"))
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show log", res))
}

func (c *logController) GetDigest(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid log id")
	}

	res, err := c.logService.GetDigest(ctx.Context(), userId, id)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show digest", res))
}

func (c *logController) Delete(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid log id")
	}

	if err := c.logService.Delete(ctx.Context(), userId, id); err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete log", nil))
}
