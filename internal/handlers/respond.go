package handlers

import (
	"log/slog"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// respondError translates service failures to the conventional HTTP mapping.
// Anything outside the taxonomy is an internal error: logged, hidden.
func respondError(c *fiber.Ctx, err error) error {
	if e, ok := apperr.As(err); ok {
		return c.Status(e.Code.HTTPStatus()).JSON(dto.ErrorResponse{
			Error:   true,
			Code:    string(e.Code),
			Message: e.Message,
		})
	}

	slog.Error("unhandled service error",
		"method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Internal server error",
	})
}

func respondUnauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Code:    "UNAUTHORIZED",
		Message: "Unauthorized",
	})
}

func errBadID(what string) error {
	return apperr.BadRequest("invalid " + what + " id")
}

func respondBadBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   true,
		Code:    "BAD_REQUEST",
		Message: "Invalid request body",
	})
}
