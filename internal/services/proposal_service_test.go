package services_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
	"github.com/coffeechat/coffeechat-api/internal/dto"
	"github.com/coffeechat/coffeechat-api/internal/models"
	"github.com/coffeechat/coffeechat-api/internal/services"
)

func newProposalService(db *gorm.DB) *services.ProposalService {
	return services.NewProposalService(db, services.NewSanctionService(db))
}

func TestCreateProposal(t *testing.T) {
	db := setupDB(t)
	svc := newProposalService(db)

	alice := seedUser(t, db, "alice", "seoul")
	bob := seedUser(t, db, "bob", "seoul")

	proposal, err := svc.Create(alice.ID, bob.ID, "coffee this week?")
	require.NoError(t, err)

	assert.Equal(t, models.ProposalPending, proposal.Status)
	assert.Equal(t, alice.ID, proposal.ProposerID)
	assert.Equal(t, bob.ID, proposal.PartnerID)
	assert.Equal(t, "coffee this week?", proposal.Message)
}

func TestCreateProposalToSelf(t *testing.T) {
	db := setupDB(t)
	svc := newProposalService(db)

	alice := seedUser(t, db, "alice", "seoul")

	_, err := svc.Create(alice.ID, alice.ID, "")
	requireCode(t, err, apperr.CodeBadRequest)
}

func TestCreateProposalUnknownPartner(t *testing.T) {
	db := setupDB(t)
	svc := newProposalService(db)

	alice := seedUser(t, db, "alice", "seoul")

	_, err := svc.Create(alice.ID, uuid.New(), "")
	requireCode(t, err, apperr.CodeNotFound)
}

func TestCreateProposalDuplicatePending(t *testing.T) {
	db := setupDB(t)
	svc := newProposalService(db)

	alice := seedUser(t, db, "alice", "seoul")
	bob := seedUser(t, db, "bob", "seoul")

	proposal, err := svc.Create(alice.ID, bob.ID, "")
	require.NoError(t, err)

	_, err = svc.Create(alice.ID, bob.ID, "")
	requireCode(t, err, apperr.CodeConflict)

	// The pair is unordered: the reverse direction collides too.
	_, err = svc.Create(bob.ID, alice.ID, "")
	requireCode(t, err, apperr.CodeConflict)

	// Once the pending proposal is settled the pair can try again.
	_, err = svc.Reject(proposal.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.Create(bob.ID, alice.ID, "second try")
	require.NoError(t, err)
}

func TestCreateProposalRestrictedParty(t *testing.T) {
	db := setupDB(t)
	svc := newProposalService(db)

	alice := seedUser(t, db, "alice", "seoul")
	bob := seedUser(t, db, "bob", "seoul")
	seedSanction(t, db, bob.ID, models.SanctionSuspend7D, "manual",
		timePtr(time.Now().Add(24*time.Hour)), time.Now())

	_, err := svc.Create(alice.ID, bob.ID, "")
	requireCode(t, err, apperr.CodeUserRestricted)

	_, err = svc.Create(bob.ID, alice.ID, "")
	requireCode(t, err, apperr.CodeUserRestricted)
}

func TestAcceptProposalCreatesAppointment(t *testing.T) {
	db := setupDB(t)
	svc := newProposalService(db)

	alice := seedUser(t, db, "alice", "seoul")
	bob := seedUser(t, db, "bob", "seoul")

	proposal, err := svc.Create(alice.ID, bob.ID, "")
	require.NoError(t, err)

	startsAt := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	resp, err := svc.Accept(proposal.ID, bob.ID, &dto.AcceptProposalRequest{
		Place:    "Blue Bottle Gangnam",
		StartsAt: startsAt.Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.Equal(t, models.ProposalAccepted, resp.Proposal.Status)
	assert.Equal(t, models.AppointmentScheduled, resp.Appointment.Status)
	assert.Equal(t, proposal.ID, resp.Appointment.ProposalID)
	assert.Equal(t, alice.ID, resp.Appointment.UserAID)
	assert.Equal(t, bob.ID, resp.Appointment.UserBID)
	assert.True(t, startsAt.Equal(resp.Appointment.StartsAt))
	assert.Regexp(t, regexp.MustCompile(`^\d{4}$`), resp.Appointment.CheckinCode)
}

func TestAcceptProposalOnlyPartner(t *testing.T) {
	db := setupDB(t)
	svc := newProposalService(db)

	alice := seedUser(t, db, "alice", "seoul")
	bob := seedUser(t, db, "bob", "seoul")

	proposal, err := svc.Create(alice.ID, bob.ID, "")
	require.NoError(t, err)

	req := &dto.AcceptProposalRequest{
		Place:    "somewhere",
		StartsAt: time.Now().Add(time.Hour).Format(time.RFC3339),
	}

	_, err = svc.Accept(proposal.ID, alice.ID, req)
	requireCode(t, err, apperr.CodeForbidden)

	stranger := seedUser(t, db, "carol", "seoul")
	_, err = svc.Accept(proposal.ID, stranger.ID, req)
	requireCode(t, err, apperr.CodeForbidden)
}

func TestAcceptProposalNotPendingTwice(t *testing.T) {
	db := setupDB(t)
	svc := newProposalService(db)

	alice := seedUser(t, db, "alice", "seoul")
	bob := seedUser(t, db, "bob", "seoul")

	proposal, err := svc.Create(alice.ID, bob.ID, "")
	require.NoError(t, err)

	req := &dto.AcceptProposalRequest{
		Place:    "somewhere",
		StartsAt: time.Now().Add(time.Hour).Format(time.RFC3339),
	}
	_, err = svc.Accept(proposal.ID, bob.ID, req)
	require.NoError(t, err)

	_, err = svc.Accept(proposal.ID, bob.ID, req)
	requireCode(t, err, apperr.CodeConflict)

	_, err = svc.Reject(proposal.ID, bob.ID)
	requireCode(t, err, apperr.CodeConflict)
}

func TestAcceptProposalBadStartsAt(t *testing.T) {
	db := setupDB(t)
	svc := newProposalService(db)

	alice := seedUser(t, db, "alice", "seoul")
	bob := seedUser(t, db, "bob", "seoul")

	proposal, err := svc.Create(alice.ID, bob.ID, "")
	require.NoError(t, err)

	_, err = svc.Accept(proposal.ID, bob.ID, &dto.AcceptProposalRequest{
		Place:    "somewhere",
		StartsAt: "tomorrow at 7",
	})
	requireCode(t, err, apperr.CodeBadRequest)

	// The failed parse must not have consumed the proposal.
	var got models.MatchProposal
	require.NoError(t, db.First(&got, "id = ?", proposal.ID).Error)
	assert.Equal(t, models.ProposalPending, got.Status)
}

func TestRejectProposal(t *testing.T) {
	db := setupDB(t)
	svc := newProposalService(db)

	alice := seedUser(t, db, "alice", "seoul")
	bob := seedUser(t, db, "bob", "seoul")

	proposal, err := svc.Create(alice.ID, bob.ID, "")
	require.NoError(t, err)

	_, err = svc.Reject(proposal.ID, alice.ID)
	requireCode(t, err, apperr.CodeForbidden)

	rejected, err := svc.Reject(proposal.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalRejected, rejected.Status)

	// No appointment may exist for a rejected proposal.
	var appointments int64
	require.NoError(t, db.Model(&models.Appointment{}).
		Where("proposal_id = ?", proposal.ID).Count(&appointments).Error)
	assert.Zero(t, appointments)
}

func TestListForUser(t *testing.T) {
	db := setupDB(t)
	svc := newProposalService(db)

	alice := seedUser(t, db, "alice", "seoul")
	bob := seedUser(t, db, "bob", "seoul")
	carol := seedUser(t, db, "carol", "seoul")

	_, err := svc.Create(alice.ID, bob.ID, "")
	require.NoError(t, err)
	_, err = svc.Create(carol.ID, alice.ID, "")
	require.NoError(t, err)
	_, err = svc.Create(bob.ID, carol.ID, "")
	require.NoError(t, err)

	proposals, err := svc.ListForUser(alice.ID)
	require.NoError(t, err)
	assert.Len(t, proposals, 2)
}
