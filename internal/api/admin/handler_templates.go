package admin

import (
	"encoding/json"
	"net/http"
	"strings"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/builder"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ------------------------------
// POST /api/admin/templates
//
// Authors a system template: one catalog entry plus its published
// "index" page. Components with no props get the kind's defaults.
// ------------------------------
func CreateTemplate(c *gin.Context) {
	var req struct {
		Slug        string `json:"slug" binding:"required"`
		Name        string `json:"name" binding:"required"`
		BuilderType string `json:"builder_type" binding:"required"`
		Components  []struct {
			Type  string          `json:"type"`
			Props json.RawMessage `json:"props"`
		} `json:"components"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !builder.KnownBuilderType(req.BuilderType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown builder_type"})
		return
	}
	for _, comp := range req.Components {
		if !builder.KnownKind(comp.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown component type: " + comp.Type})
			return
		}
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var tpl builder.Template
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		tpl = builder.Template{
			Slug:        slug,
			Name:        req.Name,
			BuilderType: req.BuilderType,
			Active:      true,
		}
		if err := tx.Create(&tpl).Error; err != nil {
			return err
		}

		page := builder.Page{
			OwnerType:   builder.OwnerSystem,
			TemplateID:  &tpl.ID,
			BuilderType: req.BuilderType,
			Slug:        "index",
			Name:        req.Name,
			Status:      builder.StatusPublished,
		}
		if err := tx.Create(&page).Error; err != nil {
			return err
		}

		for i, comp := range req.Components {
			props := datatypes.JSON(comp.Props)
			if len(comp.Props) == 0 {
				if def, ok := builder.DefaultProps(comp.Type); ok {
					props = def
				}
			}
			pc := builder.PageComponent{
				PageID:    page.ID,
				SortIndex: i,
				Type:      comp.Type,
				Props:     props,
			}
			if err := tx.Create(&pc).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tpl)
}

// ------------------------------
// PUT /api/admin/templates/:slug
// ------------------------------
func UpdateTemplate(c *gin.Context) {
	var tpl builder.Template
	if err := database.DB.First(&tpl, "slug = ?", c.Param("slug")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	var req struct {
		Name   *string `json:"name"`
		Active *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&tpl).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template"})
			return
		}
	}

	c.JSON(http.StatusOK, tpl)
}
