package formsapi

import (
	"encoding/json"
	"net/http"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/forms"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// POST /api/forms/submit (public)
//
// Called by the embedded form renderer on published pages, so the only
// auth is the owner id baked into the form.
// ------------------------------
func Submit(c *gin.Context) {
	var req struct {
		FormData map[string]any `json:"formData" binding:"required"`
		FormName string         `json:"formName" binding:"required"`
		OwnerID  uint           `json:"ownerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formData, formName and ownerId are required"})
		return
	}

	raw, err := json.Marshal(req.FormData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}

	submission := forms.Submission{
		OwnerID:  req.OwnerID,
		FormName: req.FormName,
		FormData: raw,
	}
	if err := database.DB.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store submission", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": submission.ID})
}

// ------------------------------
// GET /api/forms/submissions (auth)
// ------------------------------
func ListSubmissions(c *gin.Context) {
	v, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, ok := v.(uint)
	if !ok || userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	q := database.DB.Where("owner_id = ?", userID)
	if name := c.Query("form_name"); name != "" {
		q = q.Where("form_name = ?", name)
	}

	var submissions []forms.Submission
	if err := q.Order("created_at DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}
