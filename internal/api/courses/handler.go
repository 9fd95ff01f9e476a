package coursesapi

import (
	"encoding/json"
	"net/http"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/courses"

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

func appendID(order datatypes.JSON, id uint) (datatypes.JSON, error) {
	var ids []uint
	if len(order) > 0 {
		if err := json.Unmarshal(order, &ids); err != nil {
			return nil, err
		}
	}
	ids = append(ids, id)
	raw, err := json.Marshal(ids)
	return datatypes.JSON(raw), err
}

func removeID(order datatypes.JSON, id uint) (datatypes.JSON, error) {
	var ids []uint
	if len(order) > 0 {
		if err := json.Unmarshal(order, &ids); err != nil {
			return nil, err
		}
	}
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	raw, err := json.Marshal(out)
	return datatypes.JSON(raw), err
}

// ------------------------------
// GET /api/courses
// ------------------------------
func ListCourses(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var list []courses.Course
	if err := database.DB.
		Where("user_id = ?", userID).
		Preload("Modules.Lessons").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load courses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": list})
}

// ------------------------------
// POST /api/courses
// ------------------------------
func CreateCourse(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course := courses.Course{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ModuleOrder: datatypes.JSON([]byte("[]")),
	}
	if err := database.DB.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, course)
}

// ------------------------------
// POST /api/courses/:id/modules
//
// The module row and the course's module_order array commit atomically,
// so a crash can never leave an orphaned or unlisted module.
// ------------------------------
func CreateModule(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var created courses.CourseModule
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var course courses.Course
		if err := tx.First(&course, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
			return err
		}

		created = courses.CourseModule{
			CourseID:    course.ID,
			Title:       req.Title,
			LessonOrder: datatypes.JSON([]byte("[]")),
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		order, err := appendID(course.ModuleOrder, created.ID)
		if err != nil {
			return err
		}
		return tx.Model(&course).Update("module_order", order).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create module", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ------------------------------
// DELETE /api/courses/:id/modules/:moduleID
// ------------------------------
func DeleteModule(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var course courses.Course
		if err := tx.First(&course, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
			return err
		}

		var module courses.CourseModule
		if err := tx.First(&module, "id = ? AND course_id = ?", c.Param("moduleID"), course.ID).Error; err != nil {
			return err
		}

		if err := tx.Where("module_id = ?", module.ID).Delete(&courses.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&module).Error; err != nil {
			return err
		}

		order, err := removeID(course.ModuleOrder, module.ID)
		if err != nil {
			return err
		}
		return tx.Model(&course).Update("module_order", order).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete module", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// POST /api/courses/:id/modules/:moduleID/lessons
// ------------------------------
func CreateLesson(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content"`
		VideoURL string `json:"video_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var created courses.Lesson
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var course courses.Course
		if err := tx.First(&course, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
			return err
		}

		var module courses.CourseModule
		if err := tx.First(&module, "id = ? AND course_id = ?", c.Param("moduleID"), course.ID).Error; err != nil {
			return err
		}

		created = courses.Lesson{
			ModuleID: module.ID,
			Title:    req.Title,
			Content:  req.Content,
			VideoURL: req.VideoURL,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		order, err := appendID(module.LessonOrder, created.ID)
		if err != nil {
			return err
		}
		return tx.Model(&module).Update("lesson_order", order).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lesson", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ------------------------------
// DELETE /api/courses/:id/modules/:moduleID/lessons/:lessonID
// ------------------------------
func DeleteLesson(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var course courses.Course
		if err := tx.First(&course, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
			return err
		}

		var module courses.CourseModule
		if err := tx.First(&module, "id = ? AND course_id = ?", c.Param("moduleID"), course.ID).Error; err != nil {
			return err
		}

		var lesson courses.Lesson
		if err := tx.First(&lesson, "id = ? AND module_id = ?", c.Param("lessonID"), module.ID).Error; err != nil {
			return err
		}

		if err := tx.Delete(&lesson).Error; err != nil {
			return err
		}

		order, err := removeID(module.LessonOrder, lesson.ID)
		if err != nil {
			return err
		}
		return tx.Model(&module).Update("lesson_order", order).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lesson", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /api/courses/:id
// ------------------------------
func DeleteCourse(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var course courses.Course
		if err := tx.First(&course, "id = ? AND user_id = ?", c.Param("id"), userID).Error; err != nil {
			return err
		}

		var modules []courses.CourseModule
		if err := tx.Where("course_id = ?", course.ID).Find(&modules).Error; err != nil {
			return err
		}
		for _, m := range modules {
			if err := tx.Where("module_id = ?", m.ID).Delete(&courses.Lesson{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&courses.CourseModule{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
