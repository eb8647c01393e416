package controller

import (
	"memoscribe-be/internal/dto"
	"memoscribe-be/internal/pkg/serverutils"
	"memoscribe-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPreferenceController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetSettings(ctx *fiber.Ctx) error
	UpdateSettings(ctx *fiber.Ctx) error
}

type preferenceController struct {
	preferenceService service.IPreferenceService
}

func NewPreferenceController(preferenceService service.IPreferenceService) IPreferenceController {
	return &preferenceController{
		preferenceService: preferenceService,
	}
}

func (c *preferenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/preferences/v1")
	h.Use(serverutils.UserMiddleware)
	h.Post("", c.Save)
	h.Get("", c.List)
	h.Delete(":id", c.Delete)
	h.Get("settings", c.GetSettings)
	h.Put("settings", c.UpdateSettings)
}

func (c *preferenceController) Save(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.SavePreferenceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.preferenceService.Save(ctx.Context(), userId, &req)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save preference", res))
}

func (c *preferenceController) List(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	res, err := c.preferenceService.List(ctx.Context(), userId)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list preferences", res))
}

func (c *preferenceController) Delete(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid preference id")
	}

	if err := c.preferenceService.Delete(ctx.Context(), userId, id); err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete preference", nil))
}

func (c *preferenceController) GetSettings(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	res, err := c.preferenceService.GetSettings(ctx.Context(), userId)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show settings", res))
}

func (c *preferenceController) UpdateSettings(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.UpdateSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.preferenceService.UpdateSettings(ctx.Context(), userId, &req)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update settings", res))
}
