package content

import (
	"time"

	"github.com/goliatone/go-cmsfront/pkg/richtext"
)

// Appearance selects the renderer used for a content container.
type Appearance string

const (
	AppearanceDefault        Appearance = ""
	AppearanceCarousel       Appearance = "carousel"
	AppearanceFAQContainer   Appearance = "faqContainer"
	AppearancePetitions      Appearance = "petitions"
	AppearanceQuotesCarousel Appearance = "quotesCarousel"
)

// BlockType discriminates content blocks inside a container.
type BlockType string

const (
	BlockText           BlockType = "textBlock"
	BlockSpecialContent BlockType = "specialContent"
	BlockFAQItem        BlockType = "faqItem"
	BlockPetition       BlockType = "petition"
	BlockQuote          BlockType = "quote"
)

// Special content slugs map a block onto a built-in component.
const (
	SlugContactForm      = "contactForm"
	SlugRecentNews       = "recentNews"
	SlugNewsPostOverview = "newsPostOverview"
)

// Well-known menu names.
const (
	MenuHeader  = "header"
	MenuFooter  = "footer"
	MenuSiteMap = "siteMap"
)

// HomeSlug is the slug served at the locale root.
const HomeSlug = "home"

// Site bundles every record published for a single locale.
type Site struct {
	Locale    string          `json:"locale" yaml:"locale"`
	Pages     []Page          `json:"pages" yaml:"pages"`
	Menus     map[string]Menu `json:"menus,omitempty" yaml:"menus,omitempty"`
	NewsPosts []NewsPost      `json:"newsPosts,omitempty" yaml:"newsPosts,omitempty"`
}

// Page is a routable CMS page.
type Page struct {
	Slug           string      `json:"slug" yaml:"slug"`
	Title          string      `json:"title" yaml:"title"`
	SEODescription string      `json:"seoDescription,omitempty" yaml:"seoDescription,omitempty"`
	Locale         string      `json:"locale,omitempty" yaml:"locale,omitempty"`
	Template       string      `json:"template,omitempty" yaml:"template,omitempty"`
	Content        []Container `json:"content,omitempty" yaml:"content,omitempty"`
}

// Container groups blocks and chooses how they are laid out.
type Container struct {
	Title           string     `json:"title,omitempty" yaml:"title,omitempty"`
	Appearance      Appearance `json:"appearance,omitempty" yaml:"appearance,omitempty"`
	BackgroundColor string     `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	Blocks          []Block    `json:"contentModules,omitempty" yaml:"contentModules,omitempty"`
}

// Block is a single content module.
type Block struct {
	Type            BlockType          `json:"type" yaml:"type"`
	Title           string             `json:"title,omitempty" yaml:"title,omitempty"`
	Slug            string             `json:"slug,omitempty" yaml:"slug,omitempty"`
	RichText        *richtext.Document `json:"richText,omitempty" yaml:"richText,omitempty"`
	Markdown        string             `json:"markdown,omitempty" yaml:"markdown,omitempty"`
	BackgroundColor string             `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	Picture         *Picture           `json:"picture,omitempty" yaml:"picture,omitempty"`
	Link            string             `json:"link,omitempty" yaml:"link,omitempty"`
}

// Picture references an image asset.
type Picture struct {
	URL    string `json:"url" yaml:"url"`
	Alt    string `json:"alt,omitempty" yaml:"alt,omitempty"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
}

// Menu lists the pages linked from a navigation area.
type Menu struct {
	Pages []MenuPage `json:"pages" yaml:"pages"`
}

// MenuPage is a menu entry.
type MenuPage struct {
	Slug  string `json:"slug" yaml:"slug"`
	Title string `json:"title" yaml:"title"`
}

// NewsPost is a dated article with a markdown body.
type NewsPost struct {
	Slug    string    `json:"slug" yaml:"slug"`
	Title   string    `json:"title" yaml:"title"`
	Date    time.Time `json:"date" yaml:"date"`
	Summary string    `json:"summary,omitempty" yaml:"summary,omitempty"`
	Body    string    `json:"body,omitempty" yaml:"body,omitempty"`
	Locale  string    `json:"locale,omitempty" yaml:"locale,omitempty"`
}
