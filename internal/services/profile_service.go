package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/coffeechat/coffeechat-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileService covers the profile, interest, and availability surface.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Get(userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Interests").Preload("Availability").
		First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *ProfileService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"nickname": req.Nickname,
		"bio":      req.Bio,
		"region":   req.Region,
	}).Error; err != nil {
		return nil, err
	}

	user.Nickname = req.Nickname
	user.Bio = req.Bio
	user.Region = req.Region
	return &user, nil
}

// ReplaceInterests applies full-replace semantics: the old set is discarded
// and the new one written, lowercased and deduplicated.
func (s *ProfileService) ReplaceInterests(userID uuid.UUID, names []string) ([]models.UserInterest, error) {
	if _, err := s.Get(userID); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(names))
	interests := make([]models.UserInterest, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		interests = append(interests, models.UserInterest{
			ID:     uuid.New(),
			UserID: userID,
			Name:   name,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&models.UserInterest{}).Error; err != nil {
			return err
		}
		if len(interests) == 0 {
			return nil
		}
		return tx.Create(&interests).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace interests: %w", err)
	}
	return interests, nil
}

func (s *ProfileService) ListSlots(userID uuid.UUID) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := s.db.Where("user_id = ?", userID).
		Order("weekday, start_time").
		Find(&slots).Error
	return slots, err
}

// AddSlot creates an availability window. Start must precede end, and the new
// window must not overlap an existing one on the same weekday.
func (s *ProfileService) AddSlot(userID uuid.UUID, req *dto.AddSlotRequest) (*models.AvailabilitySlot, error) {
	if _, err := s.Get(userID); err != nil {
		return nil, err
	}

	start, err := clockMinutes(req.StartTime)
	if err != nil {
		return nil, apperr.BadRequest("start_time must be HH:MM")
	}
	end, err := clockMinutes(req.EndTime)
	if err != nil {
		return nil, apperr.BadRequest("end_time must be HH:MM")
	}
	if start >= end {
		return nil, apperr.BadRequest("start_time must be before end_time")
	}

	var existing []models.AvailabilitySlot
	if err := s.db.Where("user_id = ? AND weekday = ?", userID, req.Weekday).
		Find(&existing).Error; err != nil {
		return nil, err
	}
	for _, slot := range existing {
		otherStart, _ := clockMinutes(slot.StartTime)
		otherEnd, _ := clockMinutes(slot.EndTime)
		if start < otherEnd && otherStart < end {
			return nil, apperr.Conflict("slot overlaps an existing slot on the same weekday")
		}
	}

	slot := models.AvailabilitySlot{
		ID:        uuid.New(),
		UserID:    userID,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Area:      req.Area,
	}
	if err := s.db.Create(&slot).Error; err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}
	return &slot, nil
}

// DeleteSlot removes a slot; only its owner may.
func (s *ProfileService) DeleteSlot(userID, slotID uuid.UUID) error {
	var slot models.AvailabilitySlot
	if err := s.db.First(&slot, "id = ?", slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("slot not found")
		}
		return err
	}
	if slot.UserID != userID {
		return apperr.Forbidden("only the owner can delete a slot")
	}
	return s.db.Delete(&slot).Error
}

func clockMinutes(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
