package crmapi

import (
	"encoding/json"
	"net/http"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/crm"

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

// ------------------------------
// GET /api/crm/leads  (newest first)
// ------------------------------
func ListLeads(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var leads []crm.Lead
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&leads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

// ------------------------------
// POST /api/crm/leads
// ------------------------------
func CreateLead(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Name    string   `json:"name" binding:"required"`
		Company string   `json:"company" binding:"required"`
		Value   *float64 `json:"value" binding:"required"`
		Tags    []string `json:"tags"`
		Score   int      `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, company and value are required"})
		return
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	rawTags, _ := json.Marshal(tags)

	lead := crm.Lead{
		UserID:  userID,
		Name:    req.Name,
		Company: req.Company,
		Value:   *req.Value,
		Tags:    datatypes.JSON(rawTags),
		Score:   req.Score,
		Stage:   crm.StageNewLeads,
	}

	if err := database.DB.Create(&lead).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lead", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// ------------------------------
// PUT /api/crm/leads/:id/stage
//
// Every drag between pipeline columns lands here, so the stored pipeline
// survives a reload.
// ------------------------------
func UpdateLeadStage(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Stage string `json:"stage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stage required"})
		return
	}
	if !crm.KnownStage(req.Stage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown stage"})
		return
	}

	var lead crm.Lead
	if err := database.DB.First(&lead, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lead"})
		return
	}

	if lead.Stage != req.Stage {
		if err := database.DB.Model(&lead).Update("stage", req.Stage).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stage"})
			return
		}
		lead.Stage = req.Stage
	}

	c.JSON(http.StatusOK, lead)
}

// ------------------------------
// DELETE /api/crm/leads/:id
// ------------------------------
func DeleteLead(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&crm.Lead{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lead"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
