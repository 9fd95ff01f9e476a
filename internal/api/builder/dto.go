package builderapi

import "encoding/json"

type TemplateDTO struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	BuilderType string `json:"builder_type"`
}

type ComponentDTO struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	SortIndex int             `json:"sortIndex"`
	Props     json.RawMessage `json:"props"`
}

type PageDTO struct {
	ID          string         `json:"id,omitempty"`
	BuilderType string         `json:"builder_type"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Status      string         `json:"status"`
	Components  []ComponentDTO `json:"components"`
}

type GetTemplatesResponse struct {
	Templates []TemplateDTO `json:"templates"`
}

type GetTemplateResponse struct {
	Template TemplateDTO `json:"template"`
	Pages    []PageDTO   `json:"pages"`
}

type GetPagesResponse struct {
	Pages []PageDTO `json:"pages"`
}

type CreatePageRequest struct {
	BuilderType string `json:"builder_type" binding:"required"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
}

type AddComponentRequest struct {
	Type string `json:"type" binding:"required"`
}

type ReorderComponentsRequest struct {
	ComponentIDs []string `json:"component_ids"`
}

// UpdateComponentRequest carries either a full props replacement or a
// single targeted field patch. Exactly one of Props / Field is expected.
type UpdateComponentRequest struct {
	Props json.RawMessage `json:"props,omitempty"`

	Field       string          `json:"field,omitempty"`
	Value       json.RawMessage `json:"value,omitempty"`
	ParentField string          `json:"parentField,omitempty"`
	Index       *int            `json:"index,omitempty"`
}
