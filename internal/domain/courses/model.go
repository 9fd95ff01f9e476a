package courses

import (
	"time"

	"highlaunchpad/internal/domain/users"

	"gorm.io/datatypes"
)

// Course → CourseModule → Lesson. Each parent keeps an explicit ordering
// array of child ids; creation and deletion of a child and the update of
// the parent's ordering array always commit in one transaction.
type Course struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"-"`
	User        users.User `json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`

	ModuleOrder datatypes.JSON `gorm:"not null;default:'[]'" json:"module_order"`

	Modules []CourseModule `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"modules,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CourseModule struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	CourseID uint   `gorm:"not null;index" json:"course_id"`
	Title    string `gorm:"not null" json:"title"`

	LessonOrder datatypes.JSON `gorm:"not null;default:'[]'" json:"lesson_order"`

	Lessons []Lesson `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE;" json:"lessons,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Lesson struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ModuleID uint   `gorm:"not null;index" json:"module_id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `json:"content"`
	VideoURL string `json:"video_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
