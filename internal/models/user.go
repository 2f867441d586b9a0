package models

import (
	"time"

	"github.com/google/uuid"
)

// User is created on first mock-OAuth sign-in and never deleted. TrustScore
// moves with reviews and sanction resolutions; Blocked is set only by a
// BAN-level sanction.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Nickname      string    `gorm:"not null;size:100" json:"nickname"`
	Provider      string    `gorm:"size:50" json:"provider"`
	PhoneVerified bool      `gorm:"default:false" json:"phone_verified"`
	Bio           string    `gorm:"size:1000" json:"bio"`
	Region        string    `gorm:"size:100" json:"region"`
	TrustScore    int       `gorm:"default:50" json:"trust_score"`
	Blocked       bool      `gorm:"default:false;index" json:"blocked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Interests    []UserInterest     `gorm:"foreignKey:UserID" json:"interests,omitempty"`
	Availability []AvailabilitySlot `gorm:"foreignKey:UserID" json:"availability,omitempty"`
}
