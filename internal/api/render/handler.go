package render

import (
	"net/http"
	"strings"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/builder"
	"highlaunchpad/internal/domain/tenant"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /render/:subdomain/*slug
//
// Resolves the tenant by subdomain slug and serves their published page.
// Draft pages are invisible here.
func PublicPage(c *gin.Context) {
	subdomain := c.Param("subdomain")

	slug := strings.Trim(c.Param("slug"), "/")
	if slug == "" {
		slug = "index"
	}

	owner, err := tenant.ResolveBySubdomain(database.DB, subdomain)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve site"})
		return
	}

	var page builder.Page
	err = database.DB.
		Preload("Components", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
		First(&page,
			"owner_type = ? AND user_id = ? AND slug = ? AND status = ?",
			builder.OwnerUser, owner.ID, slug, builder.StatusPublished).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return
	}

	html, err := builder.RenderPage(&page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render page", "details": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
