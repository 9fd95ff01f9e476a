package oauthapi

import (
	"net/http"

	"highlaunchpad/config"
	"highlaunchpad/database"
	"highlaunchpad/internal/domain/social"

	"github.com/dghubble/oauth1"
	twitterauth "github.com/dghubble/oauth1/twitter"
	"github.com/gin-gonic/gin"
)

// Legacy OAuth 1.0a pair, kept for the v1.1 media-upload integration
// path; new connections go through the PKCE flow above.

func legacyOAuthConfig() *oauth1.Config {
	return &oauth1.Config{
		ConsumerKey:    config.TWITTER_CONSUMER_KEY,
		ConsumerSecret: config.TWITTER_CONSUMER_SECRET,
		CallbackURL:    config.TWITTER_REDIRECT_URL,
		Endpoint:       twitterauth.AuthorizeEndpoint,
	}
}

// POST /api/oauth/twitter/request-token (auth)
func TwitterRequestToken(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	requestToken, requestSecret, err := legacyOAuthConfig().RequestToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to obtain request token", "details": err.Error()})
		return
	}

	secure := config.APP_ENV != "development"
	c.SetCookie("tw_request_secret", requestSecret, 300, "/", "", secure, true)

	authURL, err := legacyOAuthConfig().AuthorizationURL(requestToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build authorization URL", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": authURL.String()})
}

// GET /api/oauth/twitter/access-token (auth)
func TwitterAccessToken(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	requestToken := c.Query("oauth_token")
	verifier := c.Query("oauth_verifier")
	if requestToken == "" || verifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing oauth_token/oauth_verifier"})
		return
	}

	requestSecret, err := c.Cookie("tw_request_secret")
	if err != nil || requestSecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing request secret"})
		return
	}

	accessToken, accessSecret, err := legacyOAuthConfig().AccessToken(requestToken, requestSecret, verifier)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange access token", "details": err.Error()})
		return
	}

	profile := social.Profile{
		UserID:       userID,
		Provider:     "twitter-v1",
		Handle:       "twitter-user",
		AccessToken:  accessToken,
		RefreshToken: accessSecret, // OAuth1 token secret stored alongside
	}
	if err := database.DB.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store connected profile", "details": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, config.APP_URL+"/social?connected=twitter")
}
