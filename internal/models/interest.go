package models

import (
	"time"

	"github.com/google/uuid"
)

// UserInterest rows are full-replaced on update: the old set is discarded and
// the new set written. Names are stored lowercased, at most 10 per user.
type UserInterest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_interests_user_name" json:"user_id"`
	Name      string    `gorm:"not null;size:100;uniqueIndex:idx_interests_user_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
