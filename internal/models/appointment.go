package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AppointmentScheduled = "SCHEDULED"
	AppointmentCompleted = "COMPLETED"
	AppointmentNoShow    = "NO_SHOW"
)

// Appointment is created atomically with proposal acceptance (1:1). It moves
// to COMPLETED once both participants have checked in; NO_SHOW is set by a
// no-show report and is not reversible by check-in.
type Appointment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProposalID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"proposal_id"`
	UserAID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_a_id"`
	UserBID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_b_id"`
	Place       string    `gorm:"not null;size:200" json:"place"`
	StartsAt    time.Time `gorm:"not null" json:"starts_at"`
	CheckinCode string    `gorm:"not null;size:4" json:"checkin_code"`
	Status      string    `gorm:"not null;default:'SCHEDULED';size:20;index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Checks []AttendanceCheck `gorm:"foreignKey:AppointmentID" json:"checks,omitempty"`
}

// AttendanceCheck records a participant's check-in. The unique index gives the
// upsert its overwrite guarantee: re-check-in updates method, never duplicates.
type AttendanceCheck struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_checks_appointment_user" json:"appointment_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_checks_appointment_user" json:"user_id"`
	Method        string    `gorm:"not null;size:20" json:"method"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
