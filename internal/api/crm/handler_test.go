package crmapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/crm"

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
	database.DB = db

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Next()
	})

	r.GET("/api/crm/leads", ListLeads)
	r.POST("/api/crm/leads", CreateLead)
	r.PUT("/api/crm/leads/:id/stage", UpdateLeadStage)
	r.DELETE("/api/crm/leads/:id", DeleteLead)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateLeadStartsInNewLeads(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/crm/leads",
		gin.H{"name": "Dana", "company": "Acme", "value": 1200.50, "tags": []string{"hot"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var lead crm.Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lead))
	assert.Equal(t, crm.StageNewLeads, lead.Stage)
	assert.Equal(t, 1200.50, lead.Value)
}

func TestCreateLeadRequiresNameCompanyValue(t *testing.T) {
	r := setupRouter(t)

	for _, body := range []gin.H{
		{"company": "Acme", "value": 1.0},
		{"name": "Dana", "value": 1.0},
		{"name": "Dana", "company": "Acme"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/crm/leads", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "name, company and value are required")
	}

	// zero is a legitimate deal value
	w := doJSON(t, r, http.MethodPost, "/api/crm/leads",
		gin.H{"name": "Dana", "company": "Acme", "value": 0})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestUpdateLeadStagePersists(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/crm/leads",
		gin.H{"name": "Dana", "company": "Acme", "value": 500.0})
	require.Equal(t, http.StatusCreated, w.Code)

	var lead crm.Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lead))

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/crm/leads/%d/stage", lead.ID),
		gin.H{"stage": crm.StageProposalSent})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored crm.Lead
	require.NoError(t, database.DB.First(&stored, lead.ID).Error)
	assert.Equal(t, crm.StageProposalSent, stored.Stage)
}

func TestUpdateLeadStageSameStageIsNoOp(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/crm/leads",
		gin.H{"name": "Dana", "company": "Acme", "value": 500.0})
	require.Equal(t, http.StatusCreated, w.Code)

	var lead crm.Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lead))

	var before crm.Lead
	require.NoError(t, database.DB.First(&before, lead.ID).Error)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/crm/leads/%d/stage", lead.ID),
		gin.H{"stage": crm.StageNewLeads})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Dropping a card back onto its own column writes nothing.
	var after crm.Lead
	require.NoError(t, database.DB.First(&after, lead.ID).Error)
	assert.Equal(t, crm.StageNewLeads, after.Stage)
	assert.True(t, after.UpdatedAt.Equal(before.UpdatedAt))
}

func TestUpdateLeadStageRejectsUnknownStage(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/crm/leads",
		gin.H{"name": "Dana", "company": "Acme", "value": 500.0})
	require.Equal(t, http.StatusCreated, w.Code)

	var lead crm.Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lead))

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/crm/leads/%d/stage", lead.ID),
		gin.H{"stage": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var stored crm.Lead
	require.NoError(t, database.DB.First(&stored, lead.ID).Error)
	assert.Equal(t, crm.StageNewLeads, stored.Stage)
}

func TestLeadsAreScopedToUser(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/crm/leads",
		gin.H{"name": "Dana", "company": "Acme", "value": 500.0})
	require.Equal(t, http.StatusCreated, w.Code)

	// another user's lead
	require.NoError(t, database.DB.Create(&crm.Lead{
		UserID: 2, Name: "Kim", Company: "Globex", Stage: crm.StageWon,
	}).Error)

	w = doJSON(t, r, http.MethodGet, "/api/crm/leads", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Leads []crm.Lead `json:"leads"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, "Dana", resp.Leads[0].Name)
}

func TestDeleteLead(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/crm/leads",
		gin.H{"name": "Dana", "company": "Acme", "value": 500.0})
	require.Equal(t, http.StatusCreated, w.Code)

	var lead crm.Lead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lead))

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/crm/leads/%d", lead.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/crm/leads/%d", lead.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
