package models

import (
	"time"

	"github.com/google/uuid"
)

// PhoneVerification stores the bcrypt hash of a one-time code delivered by
// the (mock) SMS channel. Verifying consumes the row.
type PhoneVerification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CodeHash  string    `gorm:"not null;size:60" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
