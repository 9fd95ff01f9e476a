package oauthapi

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"highlaunchpad/config"
	"highlaunchpad/database"
	"highlaunchpad/internal/domain/social"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const (
	stateCookie    = "tw_oauth_state"
	verifierCookie = "tw_oauth_verifier"
)

var twitterEndpoint = oauth2.Endpoint{
	AuthURL:  "https://twitter.com/i/oauth2/authorize",
	TokenURL: "https://api.twitter.com/2/oauth2/token",
}

func twitterOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.TWITTER_CLIENT_ID,
		ClientSecret: config.TWITTER_CLIENT_SECRET,
		RedirectURL:  config.TWITTER_REDIRECT_URL,
		Scopes:       []string{"tweet.read", "tweet.write", "users.read", "offline.access"},
		Endpoint:     twitterEndpoint,
	}
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func pkceChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// POST /api/oauth/twitter/connect (auth)
//
// Issues PKCE state + verifier and hands the provider auth URL back to
// the client. State and verifier travel in short-lived HttpOnly cookies.
func TwitterConnect(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	state, err := randomToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}
	verifier, err := randomToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate verifier"})
		return
	}

	secure := config.APP_ENV != "development"
	c.SetCookie(stateCookie, state, 300, "/", "", secure, true)
	c.SetCookie(verifierCookie, verifier, 300, "/", "", secure, true)

	url := twitterOAuthConfig().AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", pkceChallenge(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GET /api/oauth/twitter/callback (auth)
//
// The connected profile is owned by the session user resolved from the
// __session cookie; there is no fallback owner.
func TwitterCallback(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code/state"})
		return
	}

	cookieState, err := c.Cookie(stateCookie)
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}
	verifier, err := c.Cookie(verifierCookie)
	if err != nil || verifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing pkce verifier"})
		return
	}

	tok, err := twitterOAuthConfig().Exchange(c.Request.Context(), code,
		oauth2.SetAuthURLParam("code_verifier", verifier),
	)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	handle := fetchTwitterHandle(c, tok)

	profile := social.Profile{
		UserID:       userID,
		Provider:     "twitter",
		Handle:       handle,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry
		profile.TokenExpiry = &expiry
	}

	if err := database.DB.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store connected profile", "details": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, config.APP_URL+"/social?connected=twitter")
}

// fetchTwitterHandle asks the provider who the token belongs to. A
// lookup failure keeps the connection but with a placeholder handle.
func fetchTwitterHandle(c *gin.Context, tok *oauth2.Token) string {
	client := twitterOAuthConfig().Client(c.Request.Context(), tok)
	resp, err := client.Get("https://api.twitter.com/2/users/me")
	if err != nil {
		return "twitter-user"
	}
	defer resp.Body.Close()

	var out struct {
		Data struct {
			Username string `json:"username"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Data.Username == "" {
		return "twitter-user"
	}
	return out.Data.Username
}

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
