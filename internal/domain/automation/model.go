package automation

import (
	"time"

	"highlaunchpad/internal/domain/users"

	"gorm.io/datatypes"
)

// Flow is a saved automation graph (nodes + edges as drawn in the flow
// builder). Flows are persisted and listed only; there is no execution
// engine consuming them.
type Flow struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	UserID uint       `gorm:"not null;index" json:"-"`
	User   users.User `json:"-"`
	Name   string     `gorm:"not null" json:"name"`

	Graph datatypes.JSON `gorm:"not null;default:'{}'" json:"graph"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
