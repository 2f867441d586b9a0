package services

import (
	"errors"
	"fmt"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/coffeechat/coffeechat-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppointmentService drives the appointment lifecycle: dual check-in to
// COMPLETED, no-show reporting (which escalates sanctions), reviews, and
// incident reports.
type AppointmentService struct {
	db        *gorm.DB
	sanctions *SanctionService
}

func NewAppointmentService(db *gorm.DB, sanctions *SanctionService) *AppointmentService {
	return &AppointmentService{db: db, sanctions: sanctions}
}

func (s *AppointmentService) Get(appointmentID uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.Preload("Checks").First(&appointment, "id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("appointment not found")
		}
		return nil, err
	}
	return &appointment, nil
}

// Checkin records the caller's attendance. It is idempotent per user: a
// repeat check-in updates the method on the same row. Once both participants
// have checked in the appointment moves to COMPLETED — exactly once, and
// never out of NO_SHOW.
func (s *AppointmentService) Checkin(appointmentID, userID uuid.UUID, code string) (*models.Appointment, error) {
	appointment, err := s.Get(appointmentID)
	if err != nil {
		return nil, err
	}

	if !isParticipant(appointment, userID) {
		return nil, apperr.Forbidden("only a participant can check in")
	}
	if appointment.CheckinCode != code {
		return nil, apperr.BadRequest("invalid checkin code")
	}
	if err := s.sanctions.requireUnrestricted(userID, "user"); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		check := models.AttendanceCheck{
			ID:            uuid.New(),
			AppointmentID: appointment.ID,
			UserID:        userID,
			Method:        "code",
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "appointment_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"method"}),
		}).Create(&check).Error; err != nil {
			return fmt.Errorf("failed to record check: %w", err)
		}

		var checks int64
		if err := tx.Model(&models.AttendanceCheck{}).
			Where("appointment_id = ?", appointment.ID).
			Count(&checks).Error; err != nil {
			return err
		}

		if checks >= 2 {
			// Guarded transition: flips SCHEDULED exactly once and cannot
			// resurrect a NO_SHOW appointment.
			return tx.Model(&models.Appointment{}).
				Where("id = ? AND status = ?", appointment.ID, models.AppointmentScheduled).
				Update("status", models.AppointmentCompleted).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(appointmentID)
}

// ReportNoShow marks the appointment NO_SHOW, escalates the target's strike
// ladder, and docks their trust score by 10. The status overwrite is
// unconditional (last writer wins, even from COMPLETED). Restricted users may
// file or be the target — restriction blocks new engagements, not resolving
// existing ones.
func (s *AppointmentService) ReportNoShow(appointmentID, reporterID, targetUserID uuid.UUID, reason string) (*dto.NoShowResponse, error) {
	if reporterID == targetUserID {
		return nil, apperr.BadRequest("cannot report yourself as a no-show")
	}

	appointment, err := s.Get(appointmentID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(appointment, reporterID) || !isParticipant(appointment, targetUserID) {
		return nil, apperr.Forbidden("both users must be participants of the appointment")
	}

	var sanction *models.Sanction
	var strikes int
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).
			Where("id = ?", appointment.ID).
			Update("status", models.AppointmentNoShow).Error; err != nil {
			return err
		}

		var txErr error
		sanction, strikes, txErr = s.sanctions.EscalateNoShow(tx, targetUserID, appointment.ID, reason)
		if txErr != nil {
			return txErr
		}

		return tx.Model(&models.User{}).Where("id = ?", targetUserID).
			Update("trust_score", gorm.Expr("trust_score - ?", 10)).Error
	})
	if err != nil {
		return nil, err
	}

	appointment.Status = models.AppointmentNoShow
	return &dto.NoShowResponse{
		Appointment:  *appointment,
		Sanction:     *sanction,
		StrikesIn90d: strikes,
	}, nil
}

// Review records a review between participants of a COMPLETED appointment and
// applies the score delta to the reviewee's trust score.
func (s *AppointmentService) Review(appointmentID, reviewerID uuid.UUID, req *dto.ReviewRequest) (*models.Review, error) {
	if reviewerID == req.RevieweeID {
		return nil, apperr.BadRequest("cannot review yourself")
	}
	if err := s.sanctions.requireUnrestricted(reviewerID, "reviewer"); err != nil {
		return nil, err
	}

	appointment, err := s.Get(appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.Status != models.AppointmentCompleted {
		return nil, apperr.Conflict("appointment is not completed")
	}
	if !isParticipant(appointment, reviewerID) || !isParticipant(appointment, req.RevieweeID) {
		return nil, apperr.Forbidden("both users must be participants of the appointment")
	}

	review := models.Review{
		ID:            uuid.New(),
		AppointmentID: appointment.ID,
		ReviewerID:    reviewerID,
		RevieweeID:    req.RevieweeID,
		Comment:       req.Comment,
		ScoreDelta:    req.ScoreDelta,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return tx.Model(&models.User{}).Where("id = ?", req.RevieweeID).
			Update("trust_score", gorm.Expr("trust_score + ?", req.ScoreDelta)).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Report files an OPEN incident report against a participant. No sanction is
// applied here; that happens at admin resolution.
func (s *AppointmentService) Report(appointmentID, reporterID uuid.UUID, req *dto.ReportRequest) (*models.Report, error) {
	if reporterID == req.TargetUserID {
		return nil, apperr.BadRequest("cannot report yourself")
	}
	if err := s.sanctions.requireUnrestricted(reporterID, "reporter"); err != nil {
		return nil, err
	}

	appointment, err := s.Get(appointmentID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(appointment, reporterID) || !isParticipant(appointment, req.TargetUserID) {
		return nil, apperr.Forbidden("both users must be participants of the appointment")
	}

	report := models.Report{
		ID:            uuid.New(),
		AppointmentID: appointment.ID,
		ReporterID:    reporterID,
		TargetUserID:  req.TargetUserID,
		Reason:        req.Reason,
		Status:        models.ReportOpen,
	}
	if len(req.Evidence) > 0 {
		report.Evidence = datatypes.JSON(req.Evidence)
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func isParticipant(appointment *models.Appointment, userID uuid.UUID) bool {
	return appointment.UserAID == userID || appointment.UserBID == userID
}
