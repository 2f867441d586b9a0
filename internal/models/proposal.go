package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProposalPending  = "PENDING"
	ProposalAccepted = "ACCEPTED"
	ProposalRejected = "REJECTED"
)

// MatchProposal is terminal once ACCEPTED or REJECTED. At most one PENDING
// proposal may exist between any unordered pair of users; PairKey is the
// sorted id pair and carries a partial unique index (WHERE status = 'PENDING')
// that upholds the invariant under concurrent writers.
type MatchProposal struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProposerID uuid.UUID `gorm:"type:uuid;not null;index" json:"proposer_id"`
	PartnerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"partner_id"`
	PairKey    string    `gorm:"not null;size:73;index" json:"-"`
	Message    string    `gorm:"size:500" json:"message,omitempty"`
	Status     string    `gorm:"not null;default:'PENDING';size:20;index" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
