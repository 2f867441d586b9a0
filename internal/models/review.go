package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is permitted only on COMPLETED appointments; ScoreDelta is applied
// to the reviewee's trust score.
type Review struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	ReviewerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"reviewer_id"`
	RevieweeID    uuid.UUID `gorm:"type:uuid;not null;index" json:"reviewee_id"`
	Comment       string    `gorm:"not null;size:1000" json:"comment"`
	ScoreDelta    int       `gorm:"not null" json:"score_delta"`
	CreatedAt     time.Time `json:"created_at"`
}
