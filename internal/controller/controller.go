package controller

import (
	"errors"

	"memoscribe-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// serviceError maps service sentinel errors onto HTTP statuses; anything
// unrecognized bubbles up as a 500 through the error middleware.
func serviceError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
