package handlers

import (
	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/coffeechat/coffeechat-api/internal/middleware"
	"github.com/coffeechat/coffeechat-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	user, err := h.profileService.Get(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	user, err := h.profileService.UpdateProfile(userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *ProfileHandler) UpdateInterests(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.UpdateInterestsRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	interests, err := h.profileService.ReplaceInterests(userID, req.Interests)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(interests)
}

func (h *ProfileHandler) ListAvailability(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	slots, err := h.profileService.ListSlots(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(slots)
}

func (h *ProfileHandler) AddAvailability(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.AddSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	slot, err := h.profileService.AddSlot(userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(slot)
}

func (h *ProfileHandler) DeleteAvailability(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	slotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, errBadID("slot"))
	}

	if err := h.profileService.DeleteSlot(userID, slotID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
