package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"highlaunchpad/config"
	"highlaunchpad/database"
	"highlaunchpad/internal/app/http/middleware"
	"highlaunchpad/internal/domain/tenant"
	"highlaunchpad/internal/domain/users"
	"highlaunchpad/internal/infra/identity"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var verifier *identity.Verifier

// Setup injects the token verifier. Called once from main; tests inject
// their own.
func Setup(v *identity.Verifier) {
	verifier = v
}

// POST /api/auth/session-login
//
// Exchanges a client-obtained ID token for the opaque __session cookie.
func SessionLogin(c *gin.Context) {
	var body struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid idToken"})
		return
	}

	if config.AUTH_DEV_BYPASS {
		setSessionCookie(c, middleware.DevSessionValue)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    gin.H{"uid": "dev", "email": "dev@localhost"},
		})
		return
	}

	if verifier == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Identity verifier not configured"})
		return
	}

	ident, err := verifier.Verify(c.Request.Context(), body.IDToken)
	if err != nil {
		if errors.Is(err, identity.ErrVerifyTimeout) {
			c.JSON(http.StatusRequestTimeout, gin.H{"error": "Token verification timed out", "details": err.Error()})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid ID token", "details": err.Error()})
		return
	}

	user, err := findOrCreateSessionUser(ident)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user", "details": err.Error()})
		return
	}

	session, err := identity.CreateSession(database.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session", "details": err.Error()})
		return
	}

	setSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    gin.H{"uid": ident.UID, "email": user.Email},
	})
}

// POST /api/auth/session-logout
func SessionLogout(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && token != "" && token != middleware.DevSessionValue {
		if err := identity.RevokeSession(database.DB, token); err != nil {
			fmt.Println("❌ Session revoke failed:", err)
		}
	}

	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func setSessionCookie(c *gin.Context, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookieName,
		value,
		int(users.SessionTTL.Seconds()), // 5 days
		"/",
		"",                          // domain (set in prod)
		config.APP_ENV != "development", // secure outside dev
		true,                        // httpOnly
	)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", config.APP_ENV != "development", true)
}

// findOrCreateSessionUser maps a verified identity to a local user row.
// Provider-authenticated users are created on first sight; local tokens
// must reference an existing row.
func findOrCreateSessionUser(ident *identity.Identity) (*users.User, error) {
	var user users.User

	if ident.Provider == "local" {
		id, err := strconv.ParseUint(ident.UID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed local uid %q", ident.UID)
		}
		if err := database.DB.First(&user, uint(id)).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}

	err := database.DB.Where("provider_uid = ?", ident.UID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	// link by email if the account pre-exists
	if ident.Email != "" {
		if err := database.DB.Where("email = ?", ident.Email).First(&user).Error; err == nil {
			uid := ident.UID
			if err := database.DB.Model(&user).Update("provider_uid", uid).Error; err != nil {
				return nil, err
			}
			user.ProviderUID = &uid
			return &user, nil
		}
	}

	uid := ident.UID
	user = users.User{
		Name:         ident.Email,
		Email:        ident.Email,
		AuthProvider: ident.Provider,
		ProviderUID:  &uid,
		Role:         "user",
		IsVerified:   true, // the provider verified the email
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	if _, err := tenant.EnsureSiteSlug(database.DB, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
