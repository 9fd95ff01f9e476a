package builderapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/builder"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, builder.SeedTemplates(db))
	database.DB = db

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Next()
	})

	r.GET("/templates", ListTemplates)
	r.GET("/templates/:slug", GetTemplate)
	r.GET("/api/pages", ListPages)
	r.POST("/api/pages/from-template/:slug", CreatePageFromTemplate)
	r.GET("/api/pages/:id", GetPage)
	r.DELETE("/api/pages/:id", DeletePage)
	r.POST("/api/pages/:id/publish", PublishPage)
	r.POST("/api/pages/:id/unpublish", UnpublishPage)
	r.GET("/api/pages/:id/preview", PreviewPage)
	r.POST("/api/pages/:id/components", AddComponent)
	r.PUT("/api/pages/:id/components/reorder", ReorderComponents)
	r.PUT("/api/pages/:id/components/:componentID", UpdateComponent)
	r.DELETE("/api/pages/:id/components/:componentID", RemoveComponent)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createPage(t *testing.T, r *gin.Engine, templateSlug, builderType string) PageDTO {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/pages/from-template/"+templateSlug,
		gin.H{"builder_type": builderType})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var page PageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func getPage(t *testing.T, r *gin.Engine, id string) PageDTO {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/api/pages/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page PageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func TestCreatePageFromTemplateCopiesComponents(t *testing.T) {
	r := setupRouter(t)

	page := createPage(t, r, "saas-landing", builder.BuilderWebsite)

	assert.Equal(t, builder.StatusDraft, page.Status)
	assert.Equal(t, "index", page.Slug)
	assert.Len(t, page.Components, 8)
	assert.Equal(t, builder.KindHeader, page.Components[0].Type)
}

func TestCreatePageFromUnknownTemplateUsesBlank(t *testing.T) {
	r := setupRouter(t)

	page := createPage(t, r, "no-such-template", builder.BuilderFunnel)
	assert.Empty(t, page.Components)
	assert.Equal(t, builder.BuilderFunnel, page.BuilderType)
}

func TestAddThenRemoveComponentRestoresDocument(t *testing.T) {
	r := setupRouter(t)
	page := createPage(t, r, "saas-landing", builder.BuilderWebsite)

	before := getPage(t, r, page.ID)

	w := doJSON(t, r, http.MethodPost, "/api/pages/"+page.ID+"/components",
		gin.H{"type": builder.KindCTA})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var added ComponentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))
	assert.Equal(t, len(before.Components), added.SortIndex)

	mid := getPage(t, r, page.ID)
	require.Len(t, mid.Components, len(before.Components)+1)

	w = doJSON(t, r, http.MethodDelete, "/api/pages/"+page.ID+"/components/"+added.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	after := getPage(t, r, page.ID)
	require.Len(t, after.Components, len(before.Components))
	for i := range before.Components {
		assert.Equal(t, before.Components[i].ID, after.Components[i].ID)
		assert.Equal(t, before.Components[i].SortIndex, after.Components[i].SortIndex)
	}
}

func TestAddComponentUnknownType(t *testing.T) {
	r := setupRouter(t)
	page := createPage(t, r, "saas-landing", builder.BuilderWebsite)

	w := doJSON(t, r, http.MethodPost, "/api/pages/"+page.ID+"/components",
		gin.H{"type": "carousel"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReorderComponents(t *testing.T) {
	r := setupRouter(t)
	page := createPage(t, r, "webinar-funnel", builder.BuilderFunnel)
	require.Len(t, page.Components, 4)

	ids := make([]string, 0, len(page.Components))
	for i := len(page.Components) - 1; i >= 0; i-- {
		ids = append(ids, page.Components[i].ID)
	}

	w := doJSON(t, r, http.MethodPut, "/api/pages/"+page.ID+"/components/reorder",
		gin.H{"component_ids": ids})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	after := getPage(t, r, page.ID)
	for i, id := range ids {
		assert.Equal(t, id, after.Components[i].ID)
		assert.Equal(t, i, after.Components[i].SortIndex)
	}
}

func TestUpdateComponentFieldPatch(t *testing.T) {
	r := setupRouter(t)
	page := createPage(t, r, "saas-landing", builder.BuilderWebsite)

	var pricing *ComponentDTO
	for i := range page.Components {
		if page.Components[i].Type == builder.KindPricing {
			pricing = &page.Components[i]
		}
	}
	require.NotNil(t, pricing)

	w := doJSON(t, r, http.MethodPut, "/api/pages/"+page.ID+"/components/"+pricing.ID,
		gin.H{"field": "price", "value": "$197", "parentField": "tiers", "index": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated ComponentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))

	content, ok := builder.DecodeContent(builder.KindPricing, updated.Props)
	require.True(t, ok)
	pc := content.(builder.PricingContent)
	assert.Equal(t, "$197", pc.Tiers[1].Price)
	assert.Equal(t, "$29", pc.Tiers[0].Price)
}

func TestPublishedPageRendersViaPreview(t *testing.T) {
	r := setupRouter(t)
	page := createPage(t, r, "saas-landing", builder.BuilderWebsite)

	w := doJSON(t, r, http.MethodPost, "/api/pages/"+page.ID+"/publish", nil)
	require.Equal(t, http.StatusOK, w.Code)

	after := getPage(t, r, page.ID)
	assert.Equal(t, builder.StatusPublished, after.Status)

	w = doJSON(t, r, http.MethodGet, "/api/pages/"+page.ID+"/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "lp-hero")
}

func TestDeletePageRemovesComponents(t *testing.T) {
	r := setupRouter(t)
	page := createPage(t, r, "saas-landing", builder.BuilderWebsite)

	w := doJSON(t, r, http.MethodDelete, "/api/pages/"+page.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	database.DB.Model(&builder.PageComponent{}).Where("page_id = ?", page.ID).Count(&count)
	assert.Zero(t, count)

	w = doJSON(t, r, http.MethodGet, "/api/pages/"+page.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
