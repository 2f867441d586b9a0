package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/coffeechat/coffeechat-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProposalService governs the proposal lifecycle: PENDING on creation, then
// exactly one transition to ACCEPTED (spawning the appointment) or REJECTED.
type ProposalService struct {
	db        *gorm.DB
	sanctions *SanctionService
}

func NewProposalService(db *gorm.DB, sanctions *SanctionService) *ProposalService {
	return &ProposalService{db: db, sanctions: sanctions}
}

// Create opens a PENDING proposal. Both users must exist and be unrestricted,
// and no other PENDING proposal may exist between the pair in either
// direction.
func (s *ProposalService) Create(proposerID, partnerID uuid.UUID, message string) (*models.MatchProposal, error) {
	if proposerID == partnerID {
		return nil, apperr.BadRequest("cannot propose to yourself")
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("id IN ?", []uuid.UUID{proposerID, partnerID}).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count != 2 {
		return nil, apperr.NotFound("proposer or partner not found")
	}

	if err := s.sanctions.requireUnrestricted(proposerID, "proposer"); err != nil {
		return nil, err
	}
	if err := s.sanctions.requireUnrestricted(partnerID, "partner"); err != nil {
		return nil, err
	}

	key := pairKey(proposerID, partnerID)

	var existing int64
	if err := s.db.Model(&models.MatchProposal{}).
		Where("pair_key = ? AND status = ?", key, models.ProposalPending).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperr.Conflict("a pending proposal already exists between these users")
	}

	proposal := models.MatchProposal{
		ID:         uuid.New(),
		ProposerID: proposerID,
		PartnerID:  partnerID,
		PairKey:    key,
		Message:    message,
		Status:     models.ProposalPending,
	}
	if err := s.db.Create(&proposal).Error; err != nil {
		// The partial unique index catches the race the count check cannot.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a pending proposal already exists between these users")
		}
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}
	return &proposal, nil
}

// Accept transitions a PENDING proposal to ACCEPTED and atomically creates
// its appointment. Only the partner may accept; an accepted proposal never
// exists without an appointment.
func (s *ProposalService) Accept(proposalID, accepterID uuid.UUID, req *dto.AcceptProposalRequest) (*dto.AcceptProposalResponse, error) {
	var proposal models.MatchProposal
	if err := s.db.First(&proposal, "id = ?", proposalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("proposal not found")
		}
		return nil, err
	}

	if proposal.Status != models.ProposalPending {
		return nil, apperr.Conflict("proposal is no longer pending")
	}
	if proposal.PartnerID != accepterID {
		return nil, apperr.Forbidden("only the partner can accept")
	}
	if err := s.sanctions.requireUnrestricted(accepterID, "accepter"); err != nil {
		return nil, err
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, apperr.BadRequest("starts_at must be a RFC 3339 timestamp")
	}

	code, err := generateCheckinCode()
	if err != nil {
		return nil, err
	}

	appointment := models.Appointment{
		ID:          uuid.New(),
		ProposalID:  proposal.ID,
		UserAID:     proposal.ProposerID,
		UserBID:     proposal.PartnerID,
		Place:       req.Place,
		StartsAt:    startsAt,
		CheckinCode: code,
		Status:      models.AppointmentScheduled,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Only the writer that still observes PENDING wins the transition.
		result := tx.Model(&models.MatchProposal{}).
			Where("id = ? AND status = ?", proposal.ID, models.ProposalPending).
			Update("status", models.ProposalAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.Conflict("proposal is no longer pending")
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		return nil, err
	}

	proposal.Status = models.ProposalAccepted
	return &dto.AcceptProposalResponse{Proposal: proposal, Appointment: appointment}, nil
}

// Reject transitions a PENDING proposal to REJECTED. Partner only, no side
// effects.
func (s *ProposalService) Reject(proposalID, rejecterID uuid.UUID) (*models.MatchProposal, error) {
	var proposal models.MatchProposal
	if err := s.db.First(&proposal, "id = ?", proposalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("proposal not found")
		}
		return nil, err
	}

	if proposal.Status != models.ProposalPending {
		return nil, apperr.Conflict("proposal is no longer pending")
	}
	if proposal.PartnerID != rejecterID {
		return nil, apperr.Forbidden("only the partner can reject")
	}

	result := s.db.Model(&models.MatchProposal{}).
		Where("id = ? AND status = ?", proposal.ID, models.ProposalPending).
		Update("status", models.ProposalRejected)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperr.Conflict("proposal is no longer pending")
	}

	proposal.Status = models.ProposalRejected
	return &proposal, nil
}

// ListForUser returns proposals the user is a party to, newest first.
func (s *ProposalService) ListForUser(userID uuid.UUID) ([]models.MatchProposal, error) {
	var proposals []models.MatchProposal
	err := s.db.
		Where("proposer_id = ? OR partner_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, err
}

// pairKey is the unordered pair identity: the two ids sorted lexically.
func pairKey(a, b uuid.UUID) string {
	as, bs := a.String(), b.String()
	if as > bs {
		as, bs = bs, as
	}
	return as + ":" + bs
}

// generateCheckinCode draws a uniform 4-digit code in [1000, 9999].
func generateCheckinCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("failed to generate checkin code: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
