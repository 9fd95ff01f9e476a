package builder

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Blank template slugs, one per builder type. Lookups for unknown or
// missing slugs fall back to these instead of failing.
func BlankTemplateSlug(builderType string) string {
	return "blank-" + builderType
}

type seedComponent struct {
	kind string
}

type seedTemplate struct {
	slug        string
	name        string
	builderType string
	components  []seedComponent
}

var seedTemplates = []seedTemplate{
	{
		slug: "saas-landing", name: "SaaS Landing", builderType: BuilderWebsite,
		components: []seedComponent{
			{KindHeader}, {KindHero}, {KindFeatures}, {KindTestimonials},
			{KindPricing}, {KindFAQ}, {KindCTA}, {KindFooter},
		},
	},
	{
		slug: "local-business", name: "Local Business", builderType: BuilderWebsite,
		components: []seedComponent{
			{KindHeader}, {KindHero}, {KindFeatures}, {KindContact}, {KindFooter},
		},
	},
	{
		slug: "lead-magnet-funnel", name: "Lead Magnet Funnel", builderType: BuilderFunnel,
		components: []seedComponent{
			{KindHero}, {KindFeatures}, {KindTestimonials}, {KindCTA},
		},
	},
	{
		slug: "webinar-funnel", name: "Webinar Funnel", builderType: BuilderFunnel,
		components: []seedComponent{
			{KindHero}, {KindVideo}, {KindFAQ}, {KindCTA},
		},
	},
	{
		slug: "weekly-digest", name: "Weekly Digest", builderType: BuilderNewsletter,
		components: []seedComponent{
			{KindHeader}, {KindText}, {KindImage}, {KindButton}, {KindFooter},
		},
	},
	{
		slug: "product-announcement", name: "Product Announcement", builderType: BuilderNewsletter,
		components: []seedComponent{
			{KindHero}, {KindText}, {KindCTA}, {KindFooter},
		},
	},
	{
		slug: "standard-post", name: "Standard Post", builderType: BuilderBlog,
		components: []seedComponent{
			{KindHeader}, {KindText}, {KindImage}, {KindText}, {KindAuthorBox}, {KindFooter},
		},
	},
	{
		slug: "welcome-sequence", name: "Welcome Sequence", builderType: BuilderAutomation,
		components: []seedComponent{
			{KindText},
		},
	},
	{
		slug: "ebook-launch", name: "Ebook Launch", builderType: BuilderDigitalProduct,
		components: []seedComponent{
			{KindHero}, {KindFeatures}, {KindPricing}, {KindFAQ}, {KindCTA},
		},
	},
}

// SeedTemplates inserts the system template library, including one blank
// template per builder type. Idempotent: existing slugs are left alone.
func SeedTemplates(db *gorm.DB) error {
	all := make([]seedTemplate, 0, len(seedTemplates)+6)
	for _, bt := range []string{
		BuilderWebsite, BuilderFunnel, BuilderNewsletter,
		BuilderBlog, BuilderAutomation, BuilderDigitalProduct,
	} {
		all = append(all, seedTemplate{
			slug:        BlankTemplateSlug(bt),
			name:        "Blank " + capitalize(bt),
			builderType: bt,
		})
	}
	all = append(all, seedTemplates...)

	return db.Transaction(func(tx *gorm.DB) error {
		for _, st := range all {
			var count int64
			if err := tx.Model(&Template{}).Where("slug = ?", st.slug).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			tmpl := Template{
				Slug:        st.slug,
				Name:        st.name,
				BuilderType: st.builderType,
				Active:      true,
			}
			if err := tx.Create(&tmpl).Error; err != nil {
				return err
			}

			page := Page{
				OwnerType:   OwnerSystem,
				TemplateID:  &tmpl.ID,
				BuilderType: st.builderType,
				Slug:        "index",
				Name:        st.name,
				Status:      StatusPublished,
			}
			if err := tx.Create(&page).Error; err != nil {
				return err
			}

			for i, sc := range st.components {
				props, ok := DefaultProps(sc.kind)
				if !ok {
					return fmt.Errorf("seed template %s references unknown kind %q", st.slug, sc.kind)
				}
				comp := PageComponent{
					PageID:    page.ID,
					SortIndex: i,
					Type:      sc.kind,
					Props:     props,
				}
				if err := tx.Create(&comp).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TemplateBySlug resolves slug to an active template of the given builder
// type, falling back to the blank template when slug is empty or unknown.
func TemplateBySlug(db *gorm.DB, builderType, slug string) (*Template, error) {
	if slug != "" {
		var tmpl Template
		err := db.First(&tmpl, "slug = ? AND builder_type = ? AND active = true", slug, builderType).Error
		if err == nil {
			return &tmpl, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	var blank Template
	if err := db.First(&blank, "slug = ?", BlankTemplateSlug(builderType)).Error; err != nil {
		return nil, err
	}
	return &blank, nil
}
