package handlers

import (
	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/coffeechat/coffeechat-api/internal/middleware"
	"github.com/coffeechat/coffeechat-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	appointmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, errBadID("appointment"))
	}

	appointment, err := h.appointmentService.Get(appointmentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointment)
}

func (h *AppointmentHandler) Checkin(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	appointmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, errBadID("appointment"))
	}

	var req dto.CheckinRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	appointment, err := h.appointmentService.Checkin(appointmentID, userID, req.Code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(appointment)
}

func (h *AppointmentHandler) ReportNoShow(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	appointmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, errBadID("appointment"))
	}

	var req dto.NoShowRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	resp, err := h.appointmentService.ReportNoShow(appointmentID, userID, req.TargetUserID, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *AppointmentHandler) Review(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	appointmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, errBadID("appointment"))
	}

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	review, err := h.appointmentService.Review(appointmentID, userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *AppointmentHandler) Report(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	appointmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, errBadID("appointment"))
	}

	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	report, err := h.appointmentService.Report(appointmentID, userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}
