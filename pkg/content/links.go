package content

import "strings"

// PagePath returns the localized URL path for a page slug. The home page is
// served at the locale root.
func PagePath(locale, slug string) string {
	locale = strings.Trim(strings.TrimSpace(locale), "/")
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" || slug == HomeSlug {
		return "/" + locale + "/"
	}
	return "/" + locale + "/" + slug
}

// NewsPath returns the localized URL path for a news post.
func NewsPath(locale, slug string) string {
	locale = strings.Trim(strings.TrimSpace(locale), "/")
	return "/" + locale + "/news/" + strings.Trim(strings.TrimSpace(slug), "/")
}
