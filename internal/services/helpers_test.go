package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/coffeechat/coffeechat-api/internal/apperr"
	"github.com/coffeechat/coffeechat-api/internal/database"
	"github.com/coffeechat/coffeechat-api/internal/models"
)

// setupDB spins up an isolated in-memory SQLite database with the full schema
// migrated. Each test gets its own database.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, nickname, region string, interests ...string) *models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Email:    nickname + "@test.dev",
		Nickname: nickname,
		Provider: "google",
		Region:   region,
	}
	require.NoError(t, db.Create(&user).Error)

	for _, name := range interests {
		require.NoError(t, db.Create(&models.UserInterest{
			ID:     uuid.New(),
			UserID: user.ID,
			Name:   name,
		}).Error)
	}
	return &user
}

func seedSlot(t *testing.T, db *gorm.DB, userID uuid.UUID, weekday int, start, end string) {
	t.Helper()
	require.NoError(t, db.Create(&models.AvailabilitySlot{
		ID:        uuid.New(),
		UserID:    userID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
		Area:      "Gangnam",
	}).Error)
}

// seedSanction inserts a sanction row directly, bypassing the engine, so
// tests can shape history (expired rows, old timestamps) at will.
func seedSanction(t *testing.T, db *gorm.DB, userID uuid.UUID, level, reason string, endAt *time.Time, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Sanction{
		ID:        uuid.New(),
		UserID:    userID,
		Level:     level,
		Reason:    reason,
		EndAt:     endAt,
		CreatedAt: createdAt,
	}).Error)
}

func seedAppointment(t *testing.T, db *gorm.DB, userA, userB uuid.UUID, status string) *models.Appointment {
	t.Helper()
	appointment := models.Appointment{
		ID:          uuid.New(),
		ProposalID:  uuid.New(),
		UserAID:     userA,
		UserBID:     userB,
		Place:       "Blue Bottle Gangnam",
		StartsAt:    time.Now().Add(48 * time.Hour),
		CheckinCode: "1234",
		Status:      status,
	}
	require.NoError(t, db.Create(&appointment).Error)
	return &appointment
}

func timePtr(tm time.Time) *time.Time { return &tm }

// requireCode asserts that err is an apperr with the expected taxonomy code.
func requireCode(t *testing.T, err error, code apperr.Code) {
	t.Helper()
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok, "expected apperr, got %v", err)
	assert.Equal(t, code, e.Code)
}

func trustScore(t *testing.T, db *gorm.DB, userID uuid.UUID) int {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	return user.TrustScore
}
