package auth

import (
	"encoding/json"
	"net/http"
	"testing"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	r := gin.New()
	r.POST("/api/auth/register", Register)
	r.POST("/api/auth/login", Login)
	r.POST("/api/auth/request-password-reset", RequestPasswordReset)
	r.POST("/api/auth/reset-password", ResetPassword)
	return r
}

func TestRegisterCreatesUserWithTrialAndSlug(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/register",
		`{"name":"Dana","email":"dana@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user users.User
	require.NoError(t, database.DB.First(&user, "email = ?", "dana@example.com").Error)
	assert.False(t, user.IsVerified)
	assert.NotNil(t, user.TrialStartAt)
	assert.NotNil(t, user.TrialEndAt)
	require.NotNil(t, user.SiteSlug)
	assert.NotEmpty(t, *user.SiteSlug)

	var token users.VerificationToken
	assert.NoError(t, database.DB.First(&token, "user_id = ?", user.ID).Error)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/register",
		`{"name":"Dana","email":"dana@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/auth/register",
		`{"name":"Other","email":"dana@example.com","password":"secret456"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "This email address is already in use.")
}

func TestRegisterWeakPassword(t *testing.T) {
	r := setupAuthRouter(t)

	for _, pw := range []string{"short1", "nodigitshere", "12345678"} {
		w := postJSON(t, r, "/api/auth/register",
			`{"name":"Dana","email":"dana@example.com","password":"`+pw+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, "password %q accepted", pw)
	}
}

func TestLoginRequiresVerifiedEmail(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/register",
		`{"name":"Dana","email":"dana@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/auth/login",
		`{"email":"dana@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.NoError(t, database.DB.Model(&users.User{}).
		Where("email = ?", "dana@example.com").
		Update("is_verified", true).Error)

	w = postJSON(t, r, "/api/auth/login",
		`{"email":"dana@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		IDToken string `json:"idToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.IDToken)
}

func TestPasswordResetWorksForUnverifiedUser(t *testing.T) {
	r := setupAuthRouter(t)

	// Registration leaves a verification token behind; with one token row
	// per user, the reset request must still land a usable reset token.
	w := postJSON(t, r, "/api/auth/register",
		`{"name":"Dana","email":"dana@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var user users.User
	require.NoError(t, database.DB.First(&user, "email = ?", "dana@example.com").Error)
	var pending users.VerificationToken
	require.NoError(t, database.DB.First(&pending, "user_id = ?", user.ID).Error)

	w = postJSON(t, r, "/api/auth/request-password-reset",
		`{"email":"dana@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reset users.VerificationToken
	require.NoError(t, database.DB.First(&reset,
		"user_id = ? AND type = ?", user.ID, "password_reset").Error)
	assert.NotEqual(t, pending.Token, reset.Token)

	w = postJSON(t, r, "/api/auth/reset-password",
		`{"token":"`+reset.Token+`","new_password":"newsecret1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, database.DB.First(&user, user.ID).Error)
	require.NotNil(t, user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte("newsecret1")))
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupAuthRouter(t)

	w := postJSON(t, r, "/api/auth/register",
		`{"name":"Dana","email":"dana@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, database.DB.Model(&users.User{}).
		Where("email = ?", "dana@example.com").
		Update("is_verified", true).Error)

	w = postJSON(t, r, "/api/auth/login",
		`{"email":"dana@example.com","password":"wrong-pass1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
