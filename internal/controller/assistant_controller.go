package controller

import (
	"memoscribe-be/internal/dto"
	"memoscribe-be/internal/pkg/serverutils"
	"memoscribe-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Write(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(serverutils.UserMiddleware)
	h.Post("ask", c.Ask)
	h.Post("write", c.Write)
	h.Post("search", c.Search)
	h.Get("sessions", c.ListSessions)
	h.Get("sessions/:id/messages", c.GetMessages)
	h.Delete("sessions/:id", c.DeleteSession)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.assistantService.Ask(ctx.Context(), userId, &req)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *assistantController) Write(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.WriteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.assistantService.Write(ctx.Context(), userId, &req)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *assistantController) Search(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.assistantService.Search(ctx.Context(), userId, &req)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *assistantController) ListSessions(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	res, err := c.assistantService.ListSessions(ctx.Context(), userId)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *assistantController) GetMessages(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.assistantService.GetMessages(ctx.Context(), userId, id)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list messages", res))
}

func (c *assistantController) DeleteSession(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	if err := c.assistantService.DeleteSession(ctx.Context(), userId, id); err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}
