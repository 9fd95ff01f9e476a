package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"highlaunchpad/database"
	"highlaunchpad/internal/app/http/middleware"
	"highlaunchpad/internal/domain/users"
	"highlaunchpad/internal/infra/identity"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

func setupSessionRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	Setup(identity.New("", testJWTSecret))

	r := gin.New()
	r.POST("/api/auth/session-login", SessionLogin)
	r.POST("/api/auth/session-logout", SessionLogout)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(res *http.Response) *http.Cookie {
	for _, ck := range res.Cookies() {
		if ck.Name == middleware.SessionCookieName {
			return ck
		}
	}
	return nil
}

func TestSessionLoginMalformedBody(t *testing.T) {
	r := setupSessionRouter(t)

	for _, body := range []string{``, `{}`, `{"idToken":""}`, `not-json`} {
		w := postJSON(t, r, "/api/auth/session-login", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing or invalid idToken")
		assert.Nil(t, sessionCookie(w.Result()), "no cookie may be set on a rejected login")
	}
}

func TestSessionLoginInvalidToken(t *testing.T) {
	r := setupSessionRouter(t)

	w := postJSON(t, r, "/api/auth/session-login", `{"idToken":"garbage"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w.Result()))
}

func TestSessionLoginLocalTokenSetsCookie(t *testing.T) {
	r := setupSessionRouter(t)

	user := users.User{Name: "Dana", Email: "dana@example.com", Role: "user", IsVerified: true}
	require.NoError(t, database.DB.Create(&user).Error)

	idToken, err := identity.MintLocalIDToken(testJWTSecret, fmt.Sprint(user.ID), user.Email, time.Hour)
	require.NoError(t, err)

	w := postJSON(t, r, "/api/auth/session-login", fmt.Sprintf(`{"idToken":%q}`, idToken))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		User    struct {
			UID   string `json:"uid"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "dana@example.com", resp.User.Email)

	ck := sessionCookie(w.Result())
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, int(users.SessionTTL.Seconds()), ck.MaxAge)
	assert.NotEmpty(t, ck.Value)

	// a session row backs the cookie
	var session users.Session
	require.NoError(t, database.DB.First(&session, "token = ?", ck.Value).Error)
	assert.Equal(t, user.ID, session.UserID)
	assert.True(t, session.Active(time.Now()))
}

func TestSessionLoginExpiredLocalToken(t *testing.T) {
	r := setupSessionRouter(t)

	user := users.User{Name: "Dana", Email: "dana@example.com", Role: "user"}
	require.NoError(t, database.DB.Create(&user).Error)

	idToken, err := identity.MintLocalIDToken(testJWTSecret, fmt.Sprint(user.ID), user.Email, -time.Minute)
	require.NoError(t, err)

	w := postJSON(t, r, "/api/auth/session-login", fmt.Sprintf(`{"idToken":%q}`, idToken))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionLogoutRevokesSession(t *testing.T) {
	r := setupSessionRouter(t)

	user := users.User{Name: "Dana", Email: "dana@example.com", Role: "user"}
	require.NoError(t, database.DB.Create(&user).Error)

	session, err := identity.CreateSession(database.DB, user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/session-logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: session.Token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	ck := sessionCookie(w.Result())
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.Less(t, ck.MaxAge, 0)

	var stored users.Session
	require.NoError(t, database.DB.First(&stored, "token = ?", session.Token).Error)
	assert.NotNil(t, stored.RevokedAt)
	assert.False(t, stored.Active(time.Now()))
}
