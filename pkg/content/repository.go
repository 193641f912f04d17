package content

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrLocaleNotFound is returned when no bundle exists for a locale.
	ErrLocaleNotFound = errors.New("content: locale not found")
	// ErrPageNotFound is returned when a slug is not published for a locale.
	ErrPageNotFound = errors.New("content: page not found")
	// ErrNewsPostNotFound is returned when a news slug is unknown.
	ErrNewsPostNotFound = errors.New("content: news post not found")
)

type indexedSite struct {
	site  Site
	pages map[string]int
	news  map[string]int
}

// Repository indexes locale bundles for lookups by slug. It is safe for
// concurrent use; Replace swaps every bundle at once.
type Repository struct {
	mu      sync.RWMutex
	sites   map[string]*indexedSite
	locales []string
}

// NewRepository builds a repository from the provided bundles.
func NewRepository(sites ...Site) (*Repository, error) {
	repo := &Repository{}
	if err := repo.Replace(sites...); err != nil {
		return nil, err
	}
	return repo, nil
}

// Replace validates and atomically swaps the indexed bundles.
func (r *Repository) Replace(sites ...Site) error {
	indexed := make(map[string]*indexedSite, len(sites))
	locales := make([]string, 0, len(sites))

	for _, site := range sites {
		locale := strings.TrimSpace(site.Locale)
		if locale == "" {
			return errors.New("content: site locale is required")
		}
		if _, exists := indexed[locale]; exists {
			return fmt.Errorf("content: duplicate site for locale %q", locale)
		}
		entry, err := indexSite(locale, site)
		if err != nil {
			return err
		}
		indexed[locale] = entry
		locales = append(locales, locale)
	}

	r.mu.Lock()
	r.sites = indexed
	r.locales = locales
	r.mu.Unlock()
	return nil
}

func indexSite(locale string, site Site) (*indexedSite, error) {
	site.Locale = locale
	site.Pages = slices.Clone(site.Pages)
	site.NewsPosts = slices.Clone(site.NewsPosts)

	entry := &indexedSite{
		pages: make(map[string]int, len(site.Pages)),
		news:  make(map[string]int, len(site.NewsPosts)),
	}
	titleCaser := cases.Title(language.Make(locale))

	for i := range site.Pages {
		page := &site.Pages[i]
		page.Slug = strings.Trim(strings.TrimSpace(page.Slug), "/")
		if page.Slug == "" {
			return nil, fmt.Errorf("content: page %d in locale %q has no slug", i, locale)
		}
		if _, exists := entry.pages[page.Slug]; exists {
			return nil, fmt.Errorf("content: duplicate page slug %q in locale %q", page.Slug, locale)
		}
		if strings.TrimSpace(page.Title) == "" {
			page.Title = titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(page.Slug))
		}
		page.Locale = locale
		entry.pages[page.Slug] = i
	}

	sort.SliceStable(site.NewsPosts, func(i, j int) bool {
		return site.NewsPosts[i].Date.After(site.NewsPosts[j].Date)
	})
	for i := range site.NewsPosts {
		post := &site.NewsPosts[i]
		post.Locale = locale
		if post.Slug == "" {
			continue
		}
		entry.news[post.Slug] = i
	}

	entry.site = site
	return entry, nil
}

// Locales returns the configured locales in bundle order.
func (r *Repository) Locales() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.locales)
}

// HasLocale reports whether a bundle exists for the locale.
func (r *Repository) HasLocale(locale string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sites[locale]
	return ok
}

// Page returns a page by slug. An empty slug resolves to the home page.
func (r *Repository) Page(locale, slug string) (Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.sites[locale]
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", ErrLocaleNotFound, locale)
	}
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		slug = HomeSlug
	}
	idx, ok := entry.pages[slug]
	if !ok {
		return Page{}, fmt.Errorf("%w: %s/%s", ErrPageNotFound, locale, slug)
	}
	return entry.site.Pages[idx], nil
}

// Pages lists every page published for the locale.
func (r *Repository) Pages(locale string) []Page {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.sites[locale]
	if !ok {
		return nil
	}
	return slices.Clone(entry.site.Pages)
}

// Menu returns a named menu; missing menus are empty.
func (r *Repository) Menu(locale, name string) Menu {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.sites[locale]
	if !ok || entry.site.Menus == nil {
		return Menu{}
	}
	menu := entry.site.Menus[name]
	return Menu{Pages: slices.Clone(menu.Pages)}
}

// News returns posts newest first. limit <= 0 returns all of them.
func (r *Repository) News(locale string, limit int) []NewsPost {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.sites[locale]
	if !ok {
		return nil
	}
	posts := entry.site.NewsPosts
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return slices.Clone(posts)
}

// NewsPost returns a single post by slug.
func (r *Repository) NewsPost(locale, slug string) (NewsPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.sites[locale]
	if !ok {
		return NewsPost{}, fmt.Errorf("%w: %s", ErrLocaleNotFound, locale)
	}
	idx, ok := entry.news[slug]
	if !ok {
		return NewsPost{}, fmt.Errorf("%w: %s/%s", ErrNewsPostNotFound, locale, slug)
	}
	return entry.site.NewsPosts[idx], nil
}
