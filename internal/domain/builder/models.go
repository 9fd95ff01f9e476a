package builder

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OwnerUser   = "user"
	OwnerSystem = "system"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Builder types a template or page can belong to.
const (
	BuilderWebsite        = "website"
	BuilderFunnel         = "funnel"
	BuilderNewsletter     = "newsletter"
	BuilderBlog           = "blog"
	BuilderAutomation     = "automation"
	BuilderDigitalProduct = "digitalProduct"
)

func KnownBuilderType(t string) bool {
	switch t {
	case BuilderWebsite, BuilderFunnel, BuilderNewsletter, BuilderBlog,
		BuilderAutomation, BuilderDigitalProduct:
		return true
	}
	return false
}

type Template struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string `gorm:"not null;uniqueIndex" json:"slug"`
	Name        string `gorm:"not null" json:"name"`
	BuilderType string `gorm:"not null;index" json:"builder_type"`
	Active      bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type Page struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	OwnerType string `gorm:"not null;index" json:"owner_type"`
	UserID    *uint  `gorm:"index" json:"-"`

	TemplateID *string `gorm:"type:uuid;index" json:"template_id,omitempty"`

	BuilderType string `gorm:"not null;index" json:"builder_type"`
	Slug        string `gorm:"not null;index" json:"slug"`
	Name        string `gorm:"not null;default:''" json:"name"`
	Status      string `gorm:"not null;default:'draft'" json:"status"`

	Components []PageComponent `gorm:"foreignKey:PageID;references:ID;constraint:OnDelete:CASCADE;" json:"components,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Page) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type PageComponent struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	PageID    string `gorm:"type:uuid;not null;index" json:"page_id"`
	SortIndex int    `gorm:"not null;default:0;index" json:"sort_index"`

	Type  string         `gorm:"not null;index" json:"type"`
	Props datatypes.JSON `gorm:"not null;default:'{}'" json:"props"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *PageComponent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
