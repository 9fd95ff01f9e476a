package render

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/builder"
	"highlaunchpad/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	r := gin.New()
	r.GET("/render/:subdomain/*slug", PublicPage)
	return r
}

func seedSite(t *testing.T, slug, pageSlug, status string) users.User {
	t.Helper()

	user := users.User{Name: "Jane", Email: slug + "@example.com", SiteSlug: &slug}
	require.NoError(t, database.DB.Create(&user).Error)

	props, ok := builder.DefaultProps(builder.KindHero)
	require.True(t, ok)

	page := builder.Page{
		OwnerType:   builder.OwnerUser,
		UserID:      &user.ID,
		BuilderType: "landing-page",
		Slug:        pageSlug,
		Name:        "Home",
		Status:      status,
		Components: []builder.PageComponent{
			{SortIndex: 0, Type: builder.KindHero, Props: props},
		},
	}
	require.NoError(t, database.DB.Create(&page).Error)
	return user
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPublicPageServesPublishedPage(t *testing.T) {
	r := setupRouter(t)
	seedSite(t, "janes-studio-1", "index", builder.StatusPublished)

	w := get(r, "/render/janes-studio-1/index")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "lp-hero")
}

func TestPublicPageEmptySlugFallsBackToIndex(t *testing.T) {
	r := setupRouter(t)
	seedSite(t, "janes-studio-1", "index", builder.StatusPublished)

	w := get(r, "/render/janes-studio-1/")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "lp-hero")
}

func TestPublicPageHidesDrafts(t *testing.T) {
	r := setupRouter(t)
	seedSite(t, "janes-studio-1", "index", builder.StatusDraft)

	w := get(r, "/render/janes-studio-1/index")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestPublicPageUnknownSubdomain(t *testing.T) {
	r := setupRouter(t)

	w := get(r, "/render/nobody-here/index")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Site not found")
}

func TestPublicPageDoesNotLeakAcrossTenants(t *testing.T) {
	r := setupRouter(t)
	seedSite(t, "janes-studio-1", "index", builder.StatusPublished)
	seedSite(t, "bobs-garage-2", "pricing", builder.StatusPublished)

	// Jane never published a pricing page; Bob's must not answer for her.
	w := get(r, "/render/janes-studio-1/pricing")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}
