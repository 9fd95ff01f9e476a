package automationapi

import (
	"encoding/json"
	"net/http"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/automation"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
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
// GET /api/automation/flows
// ------------------------------
func ListFlows(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var flows []automation.Flow
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&flows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load flows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"flows": flows})
}

// ------------------------------
// GET /api/automation/flows/:id
// ------------------------------
func GetFlow(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var flow automation.Flow
	if err := database.DB.First(&flow, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Flow not found"})
		return
	}

	c.JSON(http.StatusOK, flow)
}

// ------------------------------
// POST /api/automation/flows
// ------------------------------
func CreateFlow(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Name  string          `json:"name" binding:"required"`
		Graph json.RawMessage `json:"graph"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	graph := datatypes.JSON([]byte("{}"))
	if len(req.Graph) > 0 {
		if !json.Valid(req.Graph) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "graph must be valid JSON"})
			return
		}
		graph = datatypes.JSON(req.Graph)
	}

	flow := automation.Flow{
		UserID: userID,
		Name:   req.Name,
		Graph:  graph,
	}
	if err := database.DB.Create(&flow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create flow", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, flow)
}

// ------------------------------
// PUT /api/automation/flows/:id
//
// Graph replaces wholesale. Flows are saved documents; nothing in the
// backend interprets or executes them.
// ------------------------------
func UpdateFlow(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var flow automation.Flow
	if err := database.DB.First(&flow, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Flow not found"})
		return
	}

	var req struct {
		Name  *string         `json:"name"`
		Graph json.RawMessage `json:"graph"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		updates["name"] = *req.Name
	}
	if len(req.Graph) > 0 {
		if !json.Valid(req.Graph) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "graph must be valid JSON"})
			return
		}
		updates["graph"] = datatypes.JSON(req.Graph)
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, flow)
		return
	}

	if err := database.DB.Model(&flow).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update flow", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, flow)
}

// ------------------------------
// DELETE /api/automation/flows/:id
// ------------------------------
func DeleteFlow(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&automation.Flow{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete flow"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Flow not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
