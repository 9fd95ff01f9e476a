package social

import (
	"time"

	"highlaunchpad/internal/domain/users"

	"gorm.io/datatypes"
)

// Post statuses. The machine is descriptive only: nothing in this
// codebase consumes "scheduled" posts and drives them forward, so a post
// stays where the UI put it.
const (
	StatusDraft      = "draft"
	StatusScheduled  = "scheduled"
	StatusProcessing = "processing"
	StatusPublished  = "published"
	StatusError      = "error"
)

func KnownStatus(s string) bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusProcessing, StatusPublished, StatusError:
		return true
	}
	return false
}

// Profile is a connected social account (OAuth tokens included).
type Profile struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	UserID   uint       `gorm:"not null;index" json:"-"`
	User     users.User `json:"-"`
	Provider string     `gorm:"not null;index" json:"provider"`
	Handle   string     `gorm:"not null" json:"handle"`

	AccessToken  string     `gorm:"not null" json:"-"`
	RefreshToken string     `json:"-"`
	TokenExpiry  *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Post struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	UserID uint       `gorm:"not null;index" json:"-"`
	User   users.User `json:"-"`

	ProfileIDs datatypes.JSON `gorm:"not null;default:'[]'" json:"profile_ids"`
	Caption    string         `gorm:"not null" json:"caption"`
	Media      datatypes.JSON `gorm:"not null;default:'[]'" json:"media"`

	Status        string     `gorm:"not null;default:'draft';index" json:"status"`
	ScheduledTime *time.Time `gorm:"index" json:"scheduled_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
