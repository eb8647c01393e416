package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserMiddleware resolves the calling user from the X-User-Id header.
// Authentication is handled upstream; this service only needs a stable
// identity to scope data by.
func UserMiddleware(ctx *fiber.Ctx) error {
	raw := ctx.Get("X-User-Id")
	if raw == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing X-User-Id header"))
	}

	userId, err := uuid.Parse(raw)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid X-User-Id header"))
	}

	ctx.Locals("user_id", userId)
	return ctx.Next()
}

// UserId reads the identity stored by UserMiddleware.
func UserId(ctx *fiber.Ctx) uuid.UUID {
	if id, ok := ctx.Locals("user_id").(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
