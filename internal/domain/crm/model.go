package crm

import (
	"time"

	"highlaunchpad/internal/domain/users"

	"gorm.io/datatypes"
)

// Pipeline stages. Moves between stages have no forward-only constraint;
// any stage can transition to any other.
const (
	StageNewLeads     = "newLeads"
	StageContacted    = "contacted"
	StageProposalSent = "proposalSent"
	StageWon          = "won"
)

func KnownStage(s string) bool {
	switch s {
	case StageNewLeads, StageContacted, StageProposalSent, StageWon:
		return true
	}
	return false
}

type Lead struct {
	ID      uint       `gorm:"primaryKey" json:"id"`
	UserID  uint       `gorm:"not null;index" json:"-"`
	User    users.User `json:"-"`
	Name    string     `gorm:"not null" json:"name"`
	Company string     `gorm:"not null" json:"company"`
	Value   float64    `gorm:"not null" json:"value"`

	Tags  datatypes.JSON `gorm:"not null;default:'[]'" json:"tags"`
	Score int            `gorm:"not null;default:0" json:"score"`
	Stage string         `gorm:"not null;default:'newLeads';index" json:"stage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
