package models

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a weekly recurring window. Start and end are "HH:MM"
// wall-clock strings; slots for the same user and weekday must not overlap.
type AvailabilitySlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Weekday   int       `gorm:"not null" json:"weekday"` // 0 = Sunday .. 6 = Saturday
	StartTime string    `gorm:"not null;size:5" json:"start_time"`
	EndTime   string    `gorm:"not null;size:5" json:"end_time"`
	Area      string    `gorm:"not null;size:100" json:"area"`
	CreatedAt time.Time `json:"created_at"`
}
