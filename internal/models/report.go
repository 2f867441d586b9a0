package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ReportOpen     = "OPEN"
	ReportResolved = "RESOLVED"
)

// Report is an incident filed against a participant of an appointment. The
// evidence payload is opaque to the engine and stored as-is; resolution is an
// admin operation and happens exactly once.
type Report struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"appointment_id"`
	ReporterID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"reporter_id"`
	TargetUserID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"target_user_id"`
	Reason        string         `gorm:"not null;size:500" json:"reason"`
	Evidence      datatypes.JSON `json:"evidence,omitempty"`
	Status        string         `gorm:"not null;default:'OPEN';size:20;index" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
