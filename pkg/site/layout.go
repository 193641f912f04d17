package site

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-cmsfront/pkg/components"
	"github.com/goliatone/go-cmsfront/pkg/content"
	"github.com/goliatone/go-cmsfront/pkg/render"
)

// ThemeStylesheetKey is the theme asset key of an extra stylesheet.
const ThemeStylesheetKey = "site.stylesheet"

type layoutInput struct {
	locale      string
	slug        string
	title       string
	description string
	body        string
	result      components.Result
	opts        render.RenderOptions
}

type linkView struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active,omitempty"`
	Icon   string `json:"icon,omitempty"`
}

type scriptView struct {
	Src    string `json:"src,omitempty"`
	Inline string `json:"inline,omitempty"`
	Defer  bool   `json:"defer,omitempty"`
	Module bool   `json:"module,omitempty"`
}

type footerView struct {
	SiteMapLabel  string     `json:"siteMapLabel"`
	SiteMapLeft   []linkView `json:"siteMapLeft"`
	SiteMapRight  []linkView `json:"siteMapRight"`
	LanguageLabel string     `json:"languageLabel"`
	Languages     []linkView `json:"languages"`
	SocialLabel   string     `json:"socialLabel"`
	Socials       []linkView `json:"socials"`
	CookieLabel   string     `json:"cookieLabel"`
	Links         []linkView `json:"links"`
	Credit        string     `json:"credit"`
	CreditURL     string     `json:"creditUrl"`
}

type layoutView struct {
	Lang        string       `json:"lang"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Brand       string       `json:"brand"`
	HomeHref    string       `json:"homeHref"`
	Header      []linkView   `json:"header"`
	Footer      footerView   `json:"footer"`
	Stylesheets []string     `json:"stylesheets"`
	Scripts     []scriptView `json:"scripts"`
	ThemeCSS    string       `json:"themeCss,omitempty"`
	ThemeName   string       `json:"themeName,omitempty"`
	Body        string       `json:"body"`
}

// SEO is the document metadata of a rendered page.
type SEO struct {
	Title       string
	Description string
	Lang        string
}

// PageSEO builds the title as "<page> | <brand>"; pages without a title, and
// the home page, use the brand alone.
func PageSEO(brand, locale, slug, title, description string) SEO {
	full := brand
	if title = strings.TrimSpace(title); title != "" && slug != content.HomeSlug {
		full = title + " | " + brand
	}
	return SEO{Title: full, Description: strings.TrimSpace(description), Lang: locale}
}

// SplitSiteMap splits the site map into two columns. The left one holds the
// first ceil(n/2) pages.
func SplitSiteMap(pages []content.MenuPage) (left, right []content.MenuPage) {
	mid := (len(pages) + 1) / 2
	return pages[:mid], pages[mid:]
}

func (s *Site) layout(in layoutInput) ([]byte, error) {
	brand := in.opts.T("site.brand")
	seo := PageSEO(brand, in.locale, in.slug, in.title, in.description)

	view := layoutView{
		Lang:        seo.Lang,
		Title:       seo.Title,
		Description: seo.Description,
		Brand:       brand,
		HomeHref:    content.PagePath(in.locale, content.HomeSlug),
		Header:      s.menuLinks(in.locale, content.MenuHeader, in.slug),
		Footer:      s.footer(in.locale, in.slug, in.opts),
		Body:        in.body,
	}

	styles, scripts := s.composer.Assets(in.result)
	if len(styles) == 0 {
		styles = []string{components.StylesheetName}
	}
	for _, href := range styles {
		view.Stylesheets = append(view.Stylesheets, s.assetURL(href))
	}
	for _, script := range scripts {
		src := script.Src
		if src != "" {
			src = s.assetURL(src)
		}
		view.Scripts = append(view.Scripts, scriptView{
			Src:    src,
			Inline: script.Inline,
			Defer:  script.Defer,
			Module: script.Module,
		})
	}
	if s.theme != nil {
		view.ThemeName = s.theme.Theme
		view.ThemeCSS = CSSVarsStyle(s.theme)
		if s.theme.AssetURL != nil {
			if href := s.theme.AssetURL(ThemeStylesheetKey); href != "" {
				view.Stylesheets = append(view.Stylesheets, href)
			}
		}
	}

	html, err := s.engine.RenderTemplate(templatePrefix+"layout.tpl", map[string]any{"view": view})
	if err != nil {
		return nil, fmt.Errorf("site: render layout: %w", err)
	}
	return []byte(html), nil
}

func (s *Site) assetURL(name string) string {
	if strings.HasPrefix(name, "/") || strings.Contains(name, "://") {
		return name
	}
	return s.assetPrefix + "/" + name
}

func (s *Site) menuLinks(locale, menu, current string) []linkView {
	return pageLinks(locale, s.repo.Menu(locale, menu).Pages, current)
}

func pageLinks(locale string, pages []content.MenuPage, current string) []linkView {
	links := make([]linkView, 0, len(pages))
	for _, page := range pages {
		links = append(links, linkView{
			Label:  page.Title,
			Href:   content.PagePath(locale, page.Slug),
			Active: current != "" && page.Slug == current,
		})
	}
	return links
}

func (s *Site) footer(locale, current string, opts render.RenderOptions) footerView {
	left, right := SplitSiteMap(s.repo.Menu(locale, content.MenuSiteMap).Pages)

	footer := footerView{
		SiteMapLabel:  opts.T("footer.siteMap"),
		SiteMapLeft:   pageLinks(locale, left, current),
		SiteMapRight:  pageLinks(locale, right, current),
		LanguageLabel: opts.T("footer.language"),
		Languages:     s.languageLinks(locale, current),
		SocialLabel:   opts.T("footer.social"),
		CookieLabel:   opts.T("footer.cookieSettings"),
		Links:         s.menuLinks(locale, content.MenuFooter, current),
		Credit:        opts.T("site.credit"),
		CreditURL:     s.creditURL,
	}
	for _, social := range s.socials {
		footer.Socials = append(footer.Socials, linkView{
			Label: social.Name,
			Href:  social.URL,
			Icon:  s.socialIcon(social.Name),
		})
	}
	return footer
}

// languageLinks points every locale at the same page when it exists there,
// and at that locale's home page otherwise.
func (s *Site) languageLinks(locale, current string) []linkView {
	locales := s.repo.Locales()
	links := make([]linkView, 0, len(locales))
	for _, other := range locales {
		slug := content.HomeSlug
		if current != "" {
			if _, err := s.repo.Page(other, current); err == nil {
				slug = current
			}
		}
		links = append(links, linkView{
			Label:  strings.ToUpper(other),
			Href:   content.PagePath(other, slug),
			Active: other == locale,
		})
	}
	return links
}

func (s *Site) socialIcon(name string) string {
	switch name {
	case "facebook", "instagram", "youtube":
		return s.assetURL(name + ".svg")
	}
	return ""
}
