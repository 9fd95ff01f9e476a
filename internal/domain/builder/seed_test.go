package builder

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Template{}, &Page{}, &PageComponent{}))
	return db
}

func TestSeedTemplatesIsIdempotent(t *testing.T) {
	db := openSeedDB(t)

	require.NoError(t, SeedTemplates(db))

	var first int64
	db.Model(&Template{}).Count(&first)
	assert.Greater(t, first, int64(0))

	require.NoError(t, SeedTemplates(db))

	var second int64
	db.Model(&Template{}).Count(&second)
	assert.Equal(t, first, second)
}

func TestSeedCreatesBlankTemplatePerBuilderType(t *testing.T) {
	db := openSeedDB(t)
	require.NoError(t, SeedTemplates(db))

	for _, bt := range []string{
		BuilderWebsite, BuilderFunnel, BuilderNewsletter,
		BuilderBlog, BuilderAutomation, BuilderDigitalProduct,
	} {
		var tmpl Template
		err := db.First(&tmpl, "slug = ?", BlankTemplateSlug(bt)).Error
		require.NoError(t, err, "missing blank template for %s", bt)
		assert.Equal(t, bt, tmpl.BuilderType)
	}
}

func TestSeedTemplatePagesArePublishedSystemPages(t *testing.T) {
	db := openSeedDB(t)
	require.NoError(t, SeedTemplates(db))

	var tmpl Template
	require.NoError(t, db.First(&tmpl, "slug = ?", "saas-landing").Error)

	var page Page
	require.NoError(t, db.Preload("Components").First(&page, "template_id = ?", tmpl.ID).Error)

	assert.Equal(t, OwnerSystem, page.OwnerType)
	assert.Equal(t, StatusPublished, page.Status)
	assert.Equal(t, "index", page.Slug)
	assert.NotEmpty(t, page.Components)
	for _, comp := range page.Components {
		assert.True(t, KnownKind(comp.Type), "seeded component kind %s is unknown", comp.Type)
	}
}

func TestTemplateBySlugFallsBackToBlank(t *testing.T) {
	db := openSeedDB(t)
	require.NoError(t, SeedTemplates(db))

	// unknown slug
	tmpl, err := TemplateBySlug(db, BuilderFunnel, "does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, BlankTemplateSlug(BuilderFunnel), tmpl.Slug)

	// empty slug
	tmpl, err = TemplateBySlug(db, BuilderBlog, "")
	require.NoError(t, err)
	assert.Equal(t, BlankTemplateSlug(BuilderBlog), tmpl.Slug)

	// known slug resolves directly
	tmpl, err = TemplateBySlug(db, BuilderWebsite, "saas-landing")
	require.NoError(t, err)
	assert.Equal(t, "saas-landing", tmpl.Slug)

	// slug of the wrong builder type also falls back
	tmpl, err = TemplateBySlug(db, BuilderFunnel, "saas-landing")
	require.NoError(t, err)
	assert.Equal(t, BlankTemplateSlug(BuilderFunnel), tmpl.Slug)
}
