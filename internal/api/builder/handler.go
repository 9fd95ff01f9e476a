package builderapi

import (
	"encoding/json"
	"net/http"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/builder"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func mustUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	uid, ok := v.(uint)
	if !ok || uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return uid, true
}

func toPageDTO(p builder.Page) PageDTO {
	dto := PageDTO{
		ID:          p.ID,
		BuilderType: p.BuilderType,
		Slug:        p.Slug,
		Name:        p.Name,
		Status:      p.Status,
		Components:  make([]ComponentDTO, 0, len(p.Components)),
	}
	for _, comp := range p.Components {
		dto.Components = append(dto.Components, ComponentDTO{
			ID:        comp.ID,
			Type:      comp.Type,
			SortIndex: comp.SortIndex,
			Props:     json.RawMessage(comp.Props),
		})
	}
	return dto
}

// ------------------------------
// GET /templates?builder_type=funnel
// ------------------------------
func ListTemplates(c *gin.Context) {
	q := database.DB.Where("active = true")
	if bt := c.Query("builder_type"); bt != "" {
		q = q.Where("builder_type = ?", bt)
	}

	var templates []builder.Template
	if err := q.Order("name ASC").Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load templates"})
		return
	}

	out := GetTemplatesResponse{Templates: make([]TemplateDTO, 0, len(templates))}
	for _, t := range templates {
		out.Templates = append(out.Templates, TemplateDTO{ID: t.ID, Slug: t.Slug, Name: t.Name, BuilderType: t.BuilderType})
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /templates/:slug
//
// Unknown slugs resolve to the designated blank template for the
// requested builder type instead of a 404.
// ------------------------------
func GetTemplate(c *gin.Context) {
	slug := c.Param("slug")
	builderType := c.DefaultQuery("builder_type", builder.BuilderWebsite)
	if !builder.KnownBuilderType(builderType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown builder type"})
		return
	}

	tmpl, err := builder.TemplateBySlug(database.DB, builderType, slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load template"})
		return
	}

	var pages []builder.Page
	if err := templatePagesQuery(database.DB, tmpl.ID).
		Preload("Components", orderedComponents).
		Order("slug ASC").
		Find(&pages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load template pages"})
		return
	}

	resp := GetTemplateResponse{
		Template: TemplateDTO{ID: tmpl.ID, Slug: tmpl.Slug, Name: tmpl.Name, BuilderType: tmpl.BuilderType},
		Pages:    make([]PageDTO, 0, len(pages)),
	}
	for _, p := range pages {
		resp.Pages = append(resp.Pages, toPageDTO(p))
	}

	c.JSON(http.StatusOK, resp)
}

// ------------------------------
// POST /api/pages/from-template/:slug
// ------------------------------
func CreatePageFromTemplate(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !builder.KnownBuilderType(req.BuilderType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown builder type"})
		return
	}

	tmpl, err := builder.TemplateBySlug(database.DB, req.BuilderType, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load template"})
		return
	}

	var created builder.Page
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var tPages []builder.Page
		if err := templatePagesQuery(tx, tmpl.ID).
			Preload("Components", orderedComponents).
			Find(&tPages).Error; err != nil {
			return err
		}

		uid := userID
		slug := req.Slug
		if slug == "" {
			slug = "index"
		}
		name := req.Name
		if name == "" {
			name = tmpl.Name
		}

		created = builder.Page{
			OwnerType:   builder.OwnerUser,
			UserID:      &uid,
			TemplateID:  &tmpl.ID,
			BuilderType: req.BuilderType,
			Slug:        slug,
			Name:        name,
			Status:      builder.StatusDraft,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		// the template holds one source page per document
		for _, tp := range tPages {
			for _, tc := range tp.Components {
				comp := builder.PageComponent{
					PageID:    created.ID,
					SortIndex: tc.SortIndex,
					Type:      tc.Type,
					Props:     tc.Props,
				}
				if err := tx.Create(&comp).Error; err != nil {
					return err
				}
				created.Components = append(created.Components, comp)
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create page", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toPageDTO(created))
}

// ------------------------------
// GET /api/pages?builder_type=
// ------------------------------
func ListPages(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	q := userPagesQuery(database.DB, userID)
	if bt := c.Query("builder_type"); bt != "" {
		q = q.Where("builder_type = ?", bt)
	}

	var pages []builder.Page
	if err := q.
		Preload("Components", orderedComponents).
		Order("created_at DESC").
		Find(&pages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
		return
	}

	out := GetPagesResponse{Pages: make([]PageDTO, 0, len(pages))}
	for _, p := range pages {
		out.Pages = append(out.Pages, toPageDTO(p))
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /api/pages/:id
// ------------------------------
func GetPage(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	page, ok := loadUserPage(c, userID, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toPageDTO(*page))
}

// ------------------------------
// DELETE /api/pages/:id
// ------------------------------
func DeletePage(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var page builder.Page
		if err := tx.First(&page, "id = ? AND owner_type = ? AND user_id = ?", id, builder.OwnerUser, userID).Error; err != nil {
			return err
		}
		if err := tx.Where("page_id = ?", page.ID).Delete(&builder.PageComponent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&page).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete page", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// POST /api/pages/:id/components
// ------------------------------
func AddComponent(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req AddComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	props, known := builder.DefaultProps(req.Type)
	if !known {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown component type"})
		return
	}

	var created builder.PageComponent
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var page builder.Page
		if err := tx.First(&page, "id = ? AND owner_type = ? AND user_id = ?", c.Param("id"), builder.OwnerUser, userID).Error; err != nil {
			return err
		}

		var maxIndex *int
		row := tx.Model(&builder.PageComponent{}).
			Where("page_id = ?", page.ID).
			Select("MAX(sort_index)").
			Row()
		if err := row.Scan(&maxIndex); err != nil {
			return err
		}
		next := 0
		if maxIndex != nil {
			next = *maxIndex + 1
		}

		created = builder.PageComponent{
			PageID:    page.ID,
			SortIndex: next,
			Type:      req.Type,
			Props:     props,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add component", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ComponentDTO{
		ID:        created.ID,
		Type:      created.Type,
		SortIndex: created.SortIndex,
		Props:     json.RawMessage(created.Props),
	})
}

// ------------------------------
// DELETE /api/pages/:id/components/:componentID
// ------------------------------
func RemoveComponent(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var page builder.Page
		if err := tx.First(&page, "id = ? AND owner_type = ? AND user_id = ?", c.Param("id"), builder.OwnerUser, userID).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND page_id = ?", c.Param("componentID"), page.ID).
			Delete(&builder.PageComponent{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Component not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove component", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// PUT /api/pages/:id/components/reorder
// ------------------------------
func ReorderComponents(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req ReorderComponentsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.ComponentIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "component_ids required"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var page builder.Page
		if err := tx.First(&page, "id = ? AND owner_type = ? AND user_id = ?", c.Param("id"), builder.OwnerUser, userID).Error; err != nil {
			return err
		}

		for i, componentID := range req.ComponentIDs {
			if err := tx.Model(&builder.PageComponent{}).
				Where("id = ? AND page_id = ?", componentID, page.ID).
				Update("sort_index", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder components", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// PUT /api/pages/:id/components/:componentID
//
// Full props replacement or a single targeted field patch
// (field/value, optionally parentField+index for one array element).
// ------------------------------
func UpdateComponent(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req UpdateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Props == nil && req.Field == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "props or field required"})
		return
	}

	var updated builder.PageComponent
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var page builder.Page
		if err := tx.First(&page, "id = ? AND owner_type = ? AND user_id = ?", c.Param("id"), builder.OwnerUser, userID).Error; err != nil {
			return err
		}

		var comp builder.PageComponent
		if err := tx.First(&comp, "id = ? AND page_id = ?", c.Param("componentID"), page.ID).Error; err != nil {
			return err
		}

		newProps := []byte(req.Props)
		if req.Props == nil {
			patched, err := applyContentPatch(comp.Props, req.Field, req.Value, req.ParentField, req.Index)
			if err != nil {
				return err
			}
			newProps = patched
		}

		if err := tx.Model(&comp).Update("props", datatypes.JSON(newProps)).Error; err != nil {
			return err
		}
		comp.Props = datatypes.JSON(newProps)
		updated = comp
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Component not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update component", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ComponentDTO{
		ID:        updated.ID,
		Type:      updated.Type,
		SortIndex: updated.SortIndex,
		Props:     json.RawMessage(updated.Props),
	})
}

// ------------------------------
// POST /api/pages/:id/publish | /unpublish
// ------------------------------
func PublishPage(c *gin.Context) {
	setPageStatus(c, builder.StatusPublished)
}

func UnpublishPage(c *gin.Context) {
	setPageStatus(c, builder.StatusDraft)
}

func setPageStatus(c *gin.Context, status string) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res := userPagesQuery(database.DB, userID).
		Where("id = ?", c.Param("id")).
		Update("status", status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update page status"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// ------------------------------
// GET /api/pages/:id/preview
//
// Renders the draft document with the same renderer the public route
// uses, so editor preview and published output cannot diverge.
// ------------------------------
func PreviewPage(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	page, ok := loadUserPage(c, userID, c.Param("id"))
	if !ok {
		return
	}

	html, err := builder.RenderPage(page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render page", "details": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func loadUserPage(c *gin.Context, userID uint, id string) (*builder.Page, bool) {
	var page builder.Page
	err := database.DB.
		Preload("Components", orderedComponents).
		First(&page, "id = ? AND owner_type = ? AND user_id = ?", id, builder.OwnerUser, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return nil, false
	}
	return &page, true
}
