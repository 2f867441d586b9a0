package handlers

import (
	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/coffeechat/coffeechat-api/internal/middleware"
	"github.com/coffeechat/coffeechat-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MatchHandler struct {
	suggestionService *services.SuggestionService
	proposalService   *services.ProposalService
}

func NewMatchHandler(suggestionService *services.SuggestionService, proposalService *services.ProposalService) *MatchHandler {
	return &MatchHandler{
		suggestionService: suggestionService,
		proposalService:   proposalService,
	}
}

func (h *MatchHandler) Suggestions(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	suggestions, err := h.suggestionService.Suggest(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(suggestions)
}

func (h *MatchHandler) ListProposals(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	proposals, err := h.proposalService.ListForUser(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(proposals)
}

func (h *MatchHandler) CreateProposal(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.CreateProposalRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	proposal, err := h.proposalService.Create(userID, req.PartnerID, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(proposal)
}

func (h *MatchHandler) AcceptProposal(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	proposalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, errBadID("proposal"))
	}

	var req dto.AcceptProposalRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	resp, err := h.proposalService.Accept(proposalID, userID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *MatchHandler) RejectProposal(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	proposalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, errBadID("proposal"))
	}

	proposal, err := h.proposalService.Reject(proposalID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(proposal)
}
