package dto

import (
	"strings"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
	"github.com/coffeechat/coffeechat-api/internal/models"
	"github.com/google/uuid"
)

type CreateProposalRequest struct {
	PartnerID uuid.UUID `json:"partner_id"`
	Message   string    `json:"message"`
}

func (r *CreateProposalRequest) Validate() error {
	if r.PartnerID == uuid.Nil {
		return apperr.BadRequest("partner_id is required")
	}
	return nil
}

type AcceptProposalRequest struct {
	Place    string `json:"place"`
	StartsAt string `json:"starts_at"`
}

func (r *AcceptProposalRequest) Validate() error {
	if strings.TrimSpace(r.Place) == "" {
		return apperr.BadRequest("place is required")
	}
	if strings.TrimSpace(r.StartsAt) == "" {
		return apperr.BadRequest("starts_at is required")
	}
	return nil
}

type AcceptProposalResponse struct {
	Proposal    models.MatchProposal `json:"proposal"`
	Appointment models.Appointment   `json:"appointment"`
}

// ScoreBreakdown carries the per-signal components behind a suggestion score
// so clients can explain why a candidate ranked where it did.
type ScoreBreakdown struct {
	InterestOverlapRatio     float64 `json:"interest_overlap_ratio"`
	RegionMatch              float64 `json:"region_match"`
	AvailabilityOverlapRatio float64 `json:"availability_overlap_ratio"`
	TrustNormalized          float64 `json:"trust_normalized"`
}

type Suggestion struct {
	User      models.User    `json:"user"`
	Score     float64        `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}
