package dto

import (
	"strings"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
	"github.com/coffeechat/coffeechat-api/internal/models"
)

func validSanctionLevel(level string) bool {
	switch level {
	case models.SanctionWarning, models.SanctionSuspend7D, models.SanctionSuspend30, models.SanctionBan:
		return true
	}
	return false
}

type ResolveReportRequest struct {
	Sanction   string `json:"sanction"`    // optional; empty means no sanction
	TrustDelta *int   `json:"trust_delta"` // optional; defaults to -5
}

func (r *ResolveReportRequest) Validate() error {
	if r.Sanction != "" && !validSanctionLevel(r.Sanction) {
		return apperr.BadRequest("sanction must be one of WARNING, SUSPEND_7D, SUSPEND_30D, BAN")
	}
	if r.TrustDelta != nil && (*r.TrustDelta < -30 || *r.TrustDelta > 5) {
		return apperr.BadRequest("trust_delta must be between -30 and 5")
	}
	return nil
}

type ManualSanctionRequest struct {
	Level  string `json:"level"`
	Reason string `json:"reason"`
}

func (r *ManualSanctionRequest) Validate() error {
	if !validSanctionLevel(r.Level) {
		return apperr.BadRequest("level must be one of WARNING, SUSPEND_7D, SUSPEND_30D, BAN")
	}
	if strings.TrimSpace(r.Reason) == "" {
		return apperr.BadRequest("reason is required")
	}
	return nil
}
