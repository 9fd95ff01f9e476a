package socialapi

import (
	"encoding/json"
	"net/http"
	"time"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/social"

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
// GET /api/social/profiles
// ------------------------------
func ListProfiles(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var profiles []social.Profile
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profiles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

// ------------------------------
// GET /api/social/posts?from=RFC3339&to=RFC3339
//
// The calendar asks for one month window at a time; without a window all
// of the user's posts come back.
// ------------------------------
func ListPosts(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	q := database.DB.Where("user_id = ?", userID)

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from timestamp"})
			return
		}
		q = q.Where("scheduled_time >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to timestamp"})
			return
		}
		q = q.Where("scheduled_time < ?", t)
	}

	var posts []social.Post
	if err := q.Order("scheduled_time ASC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

type postRequest struct {
	ProfileIDs    []uint     `json:"profile_ids"`
	Caption       string     `json:"caption" binding:"required"`
	Media         []string   `json:"media"`
	Status        string     `json:"status"`
	ScheduledTime *time.Time `json:"scheduled_time"`
}

func (r *postRequest) normalize() (string, datatypes.JSON, datatypes.JSON, bool) {
	status := r.Status
	if status == "" {
		status = social.StatusDraft
	}
	if !social.KnownStatus(status) {
		return "", nil, nil, false
	}

	profileIDs := r.ProfileIDs
	if profileIDs == nil {
		profileIDs = []uint{}
	}
	media := r.Media
	if media == nil {
		media = []string{}
	}
	rawProfiles, _ := json.Marshal(profileIDs)
	rawMedia, _ := json.Marshal(media)
	return status, datatypes.JSON(rawProfiles), datatypes.JSON(rawMedia), true
}

// ------------------------------
// POST /api/social/posts
// ------------------------------
func CreatePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, profiles, media, valid := req.normalize()
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}
	if status == social.StatusScheduled && req.ScheduledTime == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_time required for scheduled posts"})
		return
	}

	post := social.Post{
		UserID:        userID,
		ProfileIDs:    profiles,
		Caption:       req.Caption,
		Media:         media,
		Status:        status,
		ScheduledTime: req.ScheduledTime,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ------------------------------
// PUT /api/social/posts/:id
// ------------------------------
func UpdatePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, profiles, media, valid := req.normalize()
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}
	if status == social.StatusScheduled && req.ScheduledTime == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_time required for scheduled posts"})
		return
	}

	var post social.Post
	if err := database.DB.First(&post, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load post"})
		return
	}

	updates := map[string]any{
		"profile_ids":    profiles,
		"caption":        req.Caption,
		"media":          media,
		"status":         status,
		"scheduled_time": req.ScheduledTime,
	}
	if err := database.DB.Model(&post).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// ------------------------------
// DELETE /api/social/posts/:id
// ------------------------------
func DeletePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&social.Post{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
