package controller

import (
	"path/filepath"
	"strings"

	"memoscribe-be/internal/pkg/serverutils"
	"memoscribe-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	uploadDir       string
}

func NewDocumentController(documentService service.IDocumentService, uploadDir string) IDocumentController {
	return &documentController{
		documentService: documentService,
		uploadDir:       uploadDir,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/documents/v1")
	h.Use(serverutils.UserMiddleware)
	h.Post("", c.Upload)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File is required")
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	title := ctx.FormValue("title")
	if title == "" {
		title = strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
	}

	storedPath := filepath.Join(c.uploadDir, uuid.NewString()+"."+ext)
	if err := ctx.SaveFile(file, storedPath); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store file")
	}

	res, err := c.documentService.Upload(ctx.Context(), userId, title, storedPath, ext)
	if err != nil {
		return serviceError(err)
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued for processing", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document id")
	}

	res, err := c.documentService.Show(ctx.Context(), userId, id)
	if err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document id")
	}

	if err := c.documentService.Delete(ctx.Context(), userId, id); err != nil {
		return serviceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}
