package handlers

import (
	"strconv"

	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/coffeechat/coffeechat-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	sanctionService *services.SanctionService
}

func NewAdminHandler(sanctionService *services.SanctionService) *AdminHandler {
	return &AdminHandler{sanctionService: sanctionService}
}

func (h *AdminHandler) ListReports(c *fiber.Ctx) error {
	status := c.Query("status", "")
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	if limit > 100 {
		limit = 100
	}

	reports, total, err := h.sanctionService.ListReports(status, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"reports": reports,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *AdminHandler) ResolveReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, errBadID("report"))
	}

	var req dto.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	report, err := h.sanctionService.ResolveReport(reportID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func (h *AdminHandler) Sanction(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, errBadID("user"))
	}

	var req dto.ManualSanctionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	sanction, err := h.sanctionService.ManualSanction(userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sanction)
}
