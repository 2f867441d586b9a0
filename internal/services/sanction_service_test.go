package services_test

import (
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

func seedReport(t *testing.T, db *gorm.DB, reporter, target uuid.UUID) *models.Report {
	t.Helper()
	report := models.Report{
		ID:            uuid.New(),
		AppointmentID: uuid.New(),
		ReporterID:    reporter,
		TargetUserID:  target,
		Reason:        "rude behavior",
		Status:        models.ReportOpen,
	}
	require.NoError(t, db.Create(&report).Error)
	return &report
}

func TestIsRestricted(t *testing.T) {
	db := setupDB(t)
	svc := services.NewSanctionService(db)

	user := seedUser(t, db, "alice", "seoul")

	status, err := svc.IsRestricted(user.ID)
	require.NoError(t, err)
	assert.False(t, status.Restricted)

	// WARNING never restricts.
	seedSanction(t, db, user.ID, models.SanctionWarning, "be nice", nil,
		time.Now().Add(-time.Hour))
	status, err = svc.IsRestricted(user.ID)
	require.NoError(t, err)
	assert.False(t, status.Restricted)

	seedSanction(t, db, user.ID, models.SanctionSuspend7D, "manual",
		timePtr(time.Now().Add(24*time.Hour)), time.Now())
	status, err = svc.IsRestricted(user.ID)
	require.NoError(t, err)
	assert.True(t, status.Restricted)
	assert.Contains(t, status.Reason, models.SanctionSuspend7D)
}

func TestIsRestrictedLatestSanctionWins(t *testing.T) {
	db := setupDB(t)
	svc := services.NewSanctionService(db)

	user := seedUser(t, db, "alice", "seoul")

	// An older 30-day suspension still within its window, followed by a
	// newer 7-day one that has lapsed. Only the most recent row counts.
	seedSanction(t, db, user.ID, models.SanctionSuspend30, "older",
		timePtr(time.Now().Add(20*24*time.Hour)), time.Now().Add(-10*24*time.Hour))
	seedSanction(t, db, user.ID, models.SanctionSuspend7D, "newer",
		timePtr(time.Now().Add(-2*24*time.Hour)), time.Now().Add(-9*24*time.Hour))

	status, err := svc.IsRestricted(user.ID)
	require.NoError(t, err)
	assert.False(t, status.Restricted)
}

func TestIsRestrictedBlockedUser(t *testing.T) {
	db := setupDB(t)
	svc := services.NewSanctionService(db)

	user := seedUser(t, db, "alice", "seoul")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("blocked", true).Error)

	status, err := svc.IsRestricted(user.ID)
	require.NoError(t, err)
	assert.True(t, status.Restricted)

	_, err = svc.IsRestricted(uuid.New())
	requireCode(t, err, apperr.CodeNotFound)
}

func TestResolveReportOnce(t *testing.T) {
	db := setupDB(t)
	svc := services.NewSanctionService(db)

	alice := seedUser(t, db, "alice", "seoul")
	bob := seedUser(t, db, "bob", "seoul")
	report := seedReport(t, db, alice.ID, bob.ID)

	delta := -10
	resolved, err := svc.ResolveReport(report.ID, &dto.ResolveReportRequest{
		Sanction:   models.SanctionSuspend7D,
		TrustDelta: &delta,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportResolved, resolved.Status)
	assert.Equal(t, 40, trustScore(t, db, bob.ID))

	var sanction models.Sanction
	require.NoError(t, db.First(&sanction, "user_id = ?", bob.ID).Error)
	assert.Equal(t, models.SanctionSuspend7D, sanction.Level)
	require.NotNil(t, sanction.EndAt)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), *sanction.EndAt, time.Minute)

	// Second resolution of the same report loses.
	_, err = svc.ResolveReport(report.ID, &dto.ResolveReportRequest{})
	requireCode(t, err, apperr.CodeConflict)
	assert.Equal(t, 40, trustScore(t, db, bob.ID))

	_, err = svc.ResolveReport(uuid.New(), &dto.ResolveReportRequest{})
	requireCode(t, err, apperr.CodeNotFound)
}

func TestResolveReportDefaults(t *testing.T) {
	db := setupDB(t)
	svc := services.NewSanctionService(db)

	alice := seedUser(t, db, "alice", "seoul")
	bob := seedUser(t, db, "bob", "seoul")
	report := seedReport(t, db, alice.ID, bob.ID)

	// No sanction, default trust delta of -5.
	resolved, err := svc.ResolveReport(report.ID, &dto.ResolveReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.ReportResolved, resolved.Status)
	assert.Equal(t, 45, trustScore(t, db, bob.ID))

	var sanctions int64
	require.NoError(t, db.Model(&models.Sanction{}).
		Where("user_id = ?", bob.ID).Count(&sanctions).Error)
	assert.Zero(t, sanctions)
}

func TestResolveReportBanBlocksTarget(t *testing.T) {
	db := setupDB(t)
	svc := services.NewSanctionService(db)

	alice := seedUser(t, db, "alice", "seoul")
	bob := seedUser(t, db, "bob", "seoul")
	report := seedReport(t, db, alice.ID, bob.ID)

	_, err := svc.ResolveReport(report.ID, &dto.ResolveReportRequest{
		Sanction: models.SanctionBan,
	})
	require.NoError(t, err)

	var banned models.User
	require.NoError(t, db.First(&banned, "id = ?", bob.ID).Error)
	assert.True(t, banned.Blocked)
}

func TestManualSanction(t *testing.T) {
	db := setupDB(t)
	svc := services.NewSanctionService(db)

	user := seedUser(t, db, "alice", "seoul")

	sanction, err := svc.ManualSanction(user.ID, &dto.ManualSanctionRequest{
		Level:  models.SanctionSuspend30,
		Reason: "repeated complaints",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SanctionSuspend30, sanction.Level)
	require.NotNil(t, sanction.EndAt)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), *sanction.EndAt, time.Minute)

	status, err := svc.IsRestricted(user.ID)
	require.NoError(t, err)
	assert.True(t, status.Restricted)

	_, err = svc.ManualSanction(uuid.New(), &dto.ManualSanctionRequest{
		Level: models.SanctionWarning, Reason: "x",
	})
	requireCode(t, err, apperr.CodeNotFound)
}

func TestManualWarningDoesNotRestrict(t *testing.T) {
	db := setupDB(t)
	svc := services.NewSanctionService(db)

	user := seedUser(t, db, "alice", "seoul")

	sanction, err := svc.ManualSanction(user.ID, &dto.ManualSanctionRequest{
		Level:  models.SanctionWarning,
		Reason: "first complaint",
	})
	require.NoError(t, err)
	assert.Nil(t, sanction.EndAt)

	status, err := svc.IsRestricted(user.ID)
	require.NoError(t, err)
	assert.False(t, status.Restricted)
}

func TestListReports(t *testing.T) {
	db := setupDB(t)
	svc := services.NewSanctionService(db)

	alice := seedUser(t, db, "alice", "seoul")
	bob := seedUser(t, db, "bob", "seoul")

	seedReport(t, db, alice.ID, bob.ID)
	seedReport(t, db, bob.ID, alice.ID)
	resolved := seedReport(t, db, alice.ID, bob.ID)
	_, err := svc.ResolveReport(resolved.ID, &dto.ResolveReportRequest{})
	require.NoError(t, err)

	reports, total, err := svc.ListReports("", 50, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, reports, 2)
	for _, r := range reports {
		assert.Equal(t, models.ReportOpen, r.Status)
	}

	reports, total, err = svc.ListReports(models.ReportResolved, 50, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, reports, 1)
	assert.Equal(t, resolved.ID, reports[0].ID)
}
