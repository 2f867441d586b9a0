package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SanctionWarning   = "WARNING"
	SanctionSuspend7D = "SUSPEND_7D"
	SanctionSuspend30 = "SUSPEND_30D"
	SanctionBan       = "BAN"
)

// NoShowReasonPrefix tags strike-sourced sanctions; the escalation engine
// counts rows with this prefix inside the trailing 90-day window.
const NoShowReasonPrefix = "no-show"

// Sanction restricts a user while unexpired. EndAt nil means permanent (BAN).
// WARNING never restricts. Expiry is evaluated lazily at read time; there is
// no background sweeper.
type Sanction struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Level     string     `gorm:"not null;size:20" json:"level"`
	Reason    string     `gorm:"not null;size:500" json:"reason"`
	EndAt     *time.Time `json:"end_at"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

// Restricts reports whether the sanction is at a restricting level and has
// not expired at the given instant.
func (s *Sanction) Restricts(now time.Time) bool {
	switch s.Level {
	case SanctionSuspend7D, SanctionSuspend30, SanctionBan:
		return s.EndAt == nil || s.EndAt.After(now)
	default:
		return false
	}
}
