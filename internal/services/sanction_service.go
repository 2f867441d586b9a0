package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/coffeechat/coffeechat-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	strikeWindow      = 90 * 24 * time.Hour
	suspend7Duration  = 7 * 24 * time.Hour
	suspend30Duration = 30 * 24 * time.Hour
	defaultTrustDelta = -5
)

// SanctionService evaluates restrictions and escalates sanctions. Expiry is
// evaluated lazily against the sanction history on every call, so a lapsed
// suspension lifts without any background job.
type SanctionService struct {
	db *gorm.DB
}

func NewSanctionService(db *gorm.DB) *SanctionService {
	return &SanctionService{db: db}
}

type RestrictionStatus struct {
	Restricted bool   `json:"restricted"`
	Reason     string `json:"reason,omitempty"`
}

// IsRestricted reports whether the user is currently barred from initiating
// actions: blocked outright, or their most recent SUSPEND/BAN sanction has
// not expired. WARNING-level sanctions never restrict.
func (s *SanctionService) IsRestricted(userID uuid.UUID) (*RestrictionStatus, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	if user.Blocked {
		return &RestrictionStatus{Restricted: true, Reason: "account is blocked"}, nil
	}

	var sanction models.Sanction
	err := s.db.
		Where("user_id = ? AND level IN ?", userID,
			[]string{models.SanctionSuspend7D, models.SanctionSuspend30, models.SanctionBan}).
		Order("created_at DESC").
		First(&sanction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &RestrictionStatus{}, nil
		}
		return nil, err
	}

	if sanction.Restricts(time.Now()) {
		return &RestrictionStatus{
			Restricted: true,
			Reason:     fmt.Sprintf("active %s sanction", sanction.Level),
		}, nil
	}
	return &RestrictionStatus{}, nil
}

// requireUnrestricted is the gate applied to initiating actions.
func (s *SanctionService) requireUnrestricted(userID uuid.UUID, who string) error {
	status, err := s.IsRestricted(userID)
	if err != nil {
		return err
	}
	if status.Restricted {
		return apperr.Restricted(who + " is restricted: " + status.Reason)
	}
	return nil
}

// EscalateNoShow counts the target's no-show strikes inside the trailing
// 90-day window and creates the next sanction on the ladder: first strike
// SUSPEND_7D, second SUSPEND_30D, third and beyond BAN (permanent, sets
// blocked). Returns the sanction and the rolling strike count including this
// event.
func (s *SanctionService) EscalateNoShow(tx *gorm.DB, targetUserID, appointmentID uuid.UUID, reason string) (*models.Sanction, int, error) {
	now := time.Now()

	var priorStrikes int64
	if err := tx.Model(&models.Sanction{}).
		Where("user_id = ? AND reason LIKE ? AND created_at >= ?",
			targetUserID, models.NoShowReasonPrefix+"%", now.Add(-strikeWindow)).
		Count(&priorStrikes).Error; err != nil {
		return nil, 0, err
	}

	level := models.SanctionSuspend7D
	switch {
	case priorStrikes == 1:
		level = models.SanctionSuspend30
	case priorStrikes >= 2:
		level = models.SanctionBan
	}

	tagged := fmt.Sprintf("%s:%s:appointment=%s", models.NoShowReasonPrefix, reason, appointmentID)
	sanction, err := s.apply(tx, targetUserID, level, tagged)
	if err != nil {
		return nil, 0, err
	}
	return sanction, int(priorStrikes) + 1, nil
}

// apply creates a sanction with the shared duration mapping. BAN has no end
// and additionally sets the user's blocked flag.
func (s *SanctionService) apply(tx *gorm.DB, userID uuid.UUID, level, reason string) (*models.Sanction, error) {
	now := time.Now()

	var endAt *time.Time
	switch level {
	case models.SanctionSuspend7D:
		t := now.Add(suspend7Duration)
		endAt = &t
	case models.SanctionSuspend30:
		t := now.Add(suspend30Duration)
		endAt = &t
	}

	sanction := models.Sanction{
		ID:     uuid.New(),
		UserID: userID,
		Level:  level,
		Reason: reason,
		EndAt:  endAt,
	}
	if err := tx.Create(&sanction).Error; err != nil {
		return nil, fmt.Errorf("failed to create sanction: %w", err)
	}

	if level == models.SanctionBan {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("blocked", true).Error; err != nil {
			return nil, fmt.Errorf("failed to block user: %w", err)
		}
	}
	return &sanction, nil
}

// ResolveReport marks an OPEN report RESOLVED, applies the trust delta
// (default -5) to the target and, when a level is supplied, creates a
// sanction with the shared duration mapping. A report resolves exactly once.
func (s *SanctionService) ResolveReport(reportID uuid.UUID, req *dto.ResolveReportRequest) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("report not found")
		}
		return nil, err
	}

	trustDelta := defaultTrustDelta
	if req.TrustDelta != nil {
		trustDelta = *req.TrustDelta
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Conditional update keeps the OPEN check and the transition atomic;
		// a concurrent resolver loses with zero rows affected.
		result := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", reportID, models.ReportOpen).
			Update("status", models.ReportResolved)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.Conflict("report is already resolved")
		}

		if err := tx.Model(&models.User{}).Where("id = ?", report.TargetUserID).
			Update("trust_score", gorm.Expr("trust_score + ?", trustDelta)).Error; err != nil {
			return err
		}

		if req.Sanction != "" {
			reason := fmt.Sprintf("report %s resolved", report.ID)
			if _, err := s.apply(tx, report.TargetUserID, req.Sanction, reason); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report.Status = models.ReportResolved
	return &report, nil
}

// ManualSanction creates a sanction at an explicit level, without any strike
// counting.
func (s *SanctionService) ManualSanction(userID uuid.UUID, req *dto.ManualSanctionRequest) (*models.Sanction, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	var sanction *models.Sanction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		sanction, txErr = s.apply(tx, userID, req.Level, req.Reason)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return sanction, nil
}

// ListReports returns reports for the admin console, newest first. An empty
// status defaults to OPEN.
func (s *SanctionService) ListReports(status string, limit, offset int) ([]models.Report, int64, error) {
	if status == "" {
		status = models.ReportOpen
	}

	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{}).Where("status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
