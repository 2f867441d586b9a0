package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/coffeechat/coffeechat-api/internal/config"
	"github.com/coffeechat/coffeechat-api/internal/database"
	"github.com/coffeechat/coffeechat-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeds the demo dataset: alice and bob, phone-verified, with interests and
// overlapping Tuesday-evening availability in Gangnam.
func main() {
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	alice := upsertUser("alice@coffeechat.dev", "alice", "google")
	bob := upsertUser("bob@coffeechat.dev", "bob", "kakao")

	seedInterests(alice, "frontend", "startup")
	seedInterests(bob, "backend", "ai")

	seedSlot(alice, 2, "19:00", "21:00", "Gangnam")
	seedSlot(bob, 2, "19:00", "22:00", "Gangnam")

	slog.Info("seed complete", "alice", alice.String(), "bob", bob.String())
}

func upsertUser(email, nickname, provider string) uuid.UUID {
	var user models.User
	err := database.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:            uuid.New(),
			Email:         email,
			Nickname:      nickname,
			Provider:      provider,
			PhoneVerified: true,
			Region:        "seoul",
		}
		if err := database.DB.Create(&user).Error; err != nil {
			slog.Error("failed to seed user", "email", email, "error", err)
			os.Exit(1)
		}
	} else if err != nil {
		slog.Error("failed to look up user", "email", email, "error", err)
		os.Exit(1)
	}
	return user.ID
}

func seedInterests(userID uuid.UUID, names ...string) {
	for _, name := range names {
		interest := models.UserInterest{ID: uuid.New(), UserID: userID, Name: name}
		if err := database.DB.Where("user_id = ? AND name = ?", userID, name).
			FirstOrCreate(&interest).Error; err != nil {
			slog.Error("failed to seed interest", "name", name, "error", err)
			os.Exit(1)
		}
	}
}

func seedSlot(userID uuid.UUID, weekday int, start, end, area string) {
	slot := models.AvailabilitySlot{
		ID:        uuid.New(),
		UserID:    userID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
		Area:      area,
	}
	if err := database.DB.Where("user_id = ? AND weekday = ? AND start_time = ?",
		userID, weekday, start).FirstOrCreate(&slot).Error; err != nil {
		slog.Error("failed to seed slot", "error", err)
		os.Exit(1)
	}
}
