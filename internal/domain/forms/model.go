package forms

import (
	"time"

	"gorm.io/datatypes"
)

// Submission is one public form submission, keyed to the page owner who
// published the form. OwnerID is the submitting tenant, not a viewer, so
// there is no FK to a session.
type Submission struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	OwnerID  uint           `gorm:"not null;index" json:"owner_id"`
	FormName string         `gorm:"not null;index" json:"form_name"`
	FormData datatypes.JSON `gorm:"not null;default:'{}'" json:"form_data"`

	CreatedAt time.Time `json:"created_at"`
}
