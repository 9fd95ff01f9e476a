package tenant

import (
	"testing"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/users"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMakeSlug(t *testing.T) {
	cases := map[string]string{
		"Jane's Studio":     "janes-studio",
		"  Bob   Garage  ":  "bob-garage",
		"ACME!!! Corp":      "acme-corp",
		"---":               "user",
		"":                  "user",
		"Ünïcode Náme":      "ncode-nme",
		"already-good-slug": "already-good-slug",
	}
	for in, want := range cases {
		assert.Equal(t, want, MakeSlug(in), "input %q", in)
	}
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestEnsureSiteSlugPersists(t *testing.T) {
	db := openDB(t)

	user := users.User{Name: "Jane's Studio", Email: "jane@example.com"}
	require.NoError(t, db.Create(&user).Error)

	slug, err := EnsureSiteSlug(db, &user)
	require.NoError(t, err)
	assert.Equal(t, "janes-studio-1", slug)

	var stored users.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.NotNil(t, stored.SiteSlug)
	assert.Equal(t, slug, *stored.SiteSlug)
}

func TestEnsureSiteSlugIsStable(t *testing.T) {
	db := openDB(t)

	existing := "custom-slug"
	user := users.User{Name: "Jane", Email: "jane@example.com", SiteSlug: &existing}
	require.NoError(t, db.Create(&user).Error)

	slug, err := EnsureSiteSlug(db, &user)
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", slug)
}

func TestEnsureSiteSlugRequiresSavedUser(t *testing.T) {
	db := openDB(t)

	_, err := EnsureSiteSlug(db, &users.User{Name: "Jane"})
	assert.Error(t, err)

	_, err = EnsureSiteSlug(db, nil)
	assert.Error(t, err)
}

func TestResolveBySubdomain(t *testing.T) {
	db := openDB(t)

	slug := "janes-studio-1"
	user := users.User{Name: "Jane", Email: "jane@example.com", SiteSlug: &slug}
	require.NoError(t, db.Create(&user).Error)

	found, err := ResolveBySubdomain(db, " janes-studio-1 ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = ResolveBySubdomain(db, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBuildPublicURL(t *testing.T) {
	assert.Equal(t, "https://janes-studio-1.highlaunchpad.com", BuildPublicURL("janes-studio-1"))
}
