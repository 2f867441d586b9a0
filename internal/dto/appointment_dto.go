package dto

import (
	"encoding/json"
	"strings"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
	"github.com/coffeechat/coffeechat-api/internal/models"
	"github.com/google/uuid"
)

type CheckinRequest struct {
	Code string `json:"code"`
}

func (r *CheckinRequest) Validate() error {
	if len(r.Code) != 4 {
		return apperr.BadRequest("code must be 4 digits")
	}
	return nil
}

type NoShowRequest struct {
	TargetUserID uuid.UUID `json:"target_user_id"`
	Reason       string    `json:"reason"`
}

func (r *NoShowRequest) Validate() error {
	if r.TargetUserID == uuid.Nil {
		return apperr.BadRequest("target_user_id is required")
	}
	if strings.TrimSpace(r.Reason) == "" {
		r.Reason = "no-show"
	}
	return nil
}

type NoShowResponse struct {
	Appointment  models.Appointment `json:"appointment"`
	Sanction     models.Sanction    `json:"sanction"`
	StrikesIn90d int                `json:"strikes_in_90d"`
}

type ReviewRequest struct {
	RevieweeID uuid.UUID `json:"reviewee_id"`
	Comment    string    `json:"comment"`
	ScoreDelta int       `json:"score_delta"`
}

func (r *ReviewRequest) Validate() error {
	if r.RevieweeID == uuid.Nil {
		return apperr.BadRequest("reviewee_id is required")
	}
	if strings.TrimSpace(r.Comment) == "" {
		return apperr.BadRequest("comment is required")
	}
	if r.ScoreDelta < -5 || r.ScoreDelta > 5 {
		return apperr.BadRequest("score_delta must be between -5 and 5")
	}
	return nil
}

type ReportRequest struct {
	TargetUserID uuid.UUID       `json:"target_user_id"`
	Reason       string          `json:"reason"`
	Evidence     json.RawMessage `json:"evidence"`
}

func (r *ReportRequest) Validate() error {
	if r.TargetUserID == uuid.Nil {
		return apperr.BadRequest("target_user_id is required")
	}
	if strings.TrimSpace(r.Reason) == "" {
		return apperr.BadRequest("reason is required")
	}
	return nil
}
