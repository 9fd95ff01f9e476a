package formsapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"highlaunchpad/database"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFormsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	r := gin.New()
	r.POST("/api/forms/submit", Submit)

	authed := r.Group("/")
	authed.Use(func(c *gin.Context) {
		c.Set("user_id", uint(7))
		c.Next()
	})
	authed.GET("/api/forms/submissions", ListSubmissions)

	return r
}

func postForm(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/forms/submit", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitStoresPayload(t *testing.T) {
	r := setupFormsRouter(t)

	w := postForm(t, r, `{"formName":"contact","ownerId":7,"formData":{"email":"a@b.com","message":"hi"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		ID      uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotZero(t, resp.ID)
}

func TestSubmitRequiresAllFields(t *testing.T) {
	r := setupFormsRouter(t)

	for _, body := range []string{
		`{}`,
		`{"formName":"contact","ownerId":7}`,
		`{"formName":"contact","formData":{"a":1}}`,
		`{"ownerId":7,"formData":{"a":1}}`,
	} {
		w := postForm(t, r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s accepted", body)
	}
}

func TestListSubmissionsScopedAndFiltered(t *testing.T) {
	r := setupFormsRouter(t)

	require.Equal(t, http.StatusCreated, postForm(t, r, `{"formName":"contact","ownerId":7,"formData":{"n":1}}`).Code)
	require.Equal(t, http.StatusCreated, postForm(t, r, `{"formName":"newsletter","ownerId":7,"formData":{"n":2}}`).Code)
	require.Equal(t, http.StatusCreated, postForm(t, r, `{"formName":"contact","ownerId":9,"formData":{"n":3}}`).Code)

	get := func(path string) (int, []json.RawMessage) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		var resp struct {
			Submissions []json.RawMessage `json:"submissions"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return w.Code, resp.Submissions
	}

	code, all := get("/api/forms/submissions")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, all, 2)

	code, contact := get("/api/forms/submissions?form_name=contact")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, contact, 1)
}
