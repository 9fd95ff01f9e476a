package tenant

import (
	"fmt"
	"regexp"
	"strings"

	"highlaunchpad/internal/domain/users"

	"gorm.io/gorm"
)

/*
	Tenant / slug helpers
	---------------------
	- Responsible ONLY for:
	  • generating subdomain slugs
	  • persisting them
	  • building public URLs
	- No access logic, no billing logic here
*/

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug from a display name.
// Example: "Jane's Studio" -> "janes-studio"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "user"
	}
	return base
}

// EnsureSiteSlug ensures user.SiteSlug exists and is persisted.
// Must be called AFTER the user has an ID (after Create).
//
// Pass db in; do NOT import highlaunchpad/database here (avoids import cycle).
func EnsureSiteSlug(db *gorm.DB, user *users.User) (string, error) {
	if user == nil {
		return "", fmt.Errorf("user is nil")
	}
	if db == nil {
		return "", fmt.Errorf("db is nil")
	}

	if user.SiteSlug != nil && strings.TrimSpace(*user.SiteSlug) != "" {
		return strings.TrimSpace(*user.SiteSlug), nil
	}

	if user.ID == 0 {
		return "", fmt.Errorf("user ID missing (call EnsureSiteSlug after Create)")
	}

	base := MakeSlug(user.Name)
	slug := fmt.Sprintf("%s-%d", base, user.ID)

	user.SiteSlug = &slug

	if err := db.
		Model(&users.User{}).
		Where("id = ?", user.ID).
		Update("site_slug", slug).Error; err != nil {
		return "", err
	}

	return slug, nil
}

// BuildPublicURL builds the public site URL from a slug.
// Example: "janes-studio-32" -> "https://janes-studio-32.highlaunchpad.com"
func BuildPublicURL(slug string) string {
	return "https://" + slug + ".highlaunchpad.com"
}

// ResolveBySubdomain finds the tenant owning a subdomain slug.
func ResolveBySubdomain(db *gorm.DB, subdomain string) (*users.User, error) {
	var user users.User
	if err := db.First(&user, "site_slug = ?", strings.TrimSpace(subdomain)).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
