package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/coffeechat/coffeechat-api/internal/config"
	"github.com/coffeechat/coffeechat-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true, // surface unique violations as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for all models plus the partial unique index that
// enforces at most one PENDING proposal per unordered user pair. The partial
// index syntax is shared by Postgres and the SQLite test databases.
func Migrate(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		return err
	}
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_proposals_pending_pair
		 ON match_proposals (pair_key) WHERE status = 'PENDING'`,
	).Error
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserInterest{},
		&models.AvailabilitySlot{},
		&models.MatchProposal{},
		&models.Appointment{},
		&models.AttendanceCheck{},
		&models.Review{},
		&models.Report{},
		&models.Sanction{},
		&models.RefreshToken{},
		&models.PhoneVerification{},
		&models.SystemLog{},
	)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
