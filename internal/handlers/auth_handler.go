package handlers

import (
	"log/slog"

	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/coffeechat/coffeechat-api/internal/middleware"
	"github.com/coffeechat/coffeechat-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignIn handles the mock OAuth callback for any provider name.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	provider := c.Params("provider")

	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	resp, err := h.authService.SignIn(provider, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	if err := h.authService.Logout(&req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// RequestPhoneCode issues a verification code over the mock SMS channel,
// which here means the server log.
func (h *AuthHandler) RequestPhoneCode(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	code, err := h.authService.RequestPhoneCode(userID)
	if err != nil {
		return respondError(c, err)
	}

	slog.Info("mock SMS verification code issued", "user_id", userID.String(), "code", code)
	return c.JSON(fiber.Map{"sent": true})
}

func (h *AuthHandler) VerifyPhone(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.PhoneVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	user, err := h.authService.VerifyPhone(userID, req.Code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
