package site

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cmsfront/pkg/components"
	"github.com/goliatone/go-cmsfront/pkg/content"
	"github.com/goliatone/go-cmsfront/pkg/render"
	"github.com/goliatone/go-cmsfront/pkg/render/template"
)

// Page template names.
const (
	TemplateHome     = "home"
	TemplateFAQ      = "faq"
	TemplatePage     = "page"
	TemplateNewsPost = "newsPost"
	TemplateNotFound = "notFound"
)

const templatePrefix = "templates/site/"

// DefaultCreditURL is where the footer credit links to.
const DefaultCreditURL = "https://spiceprogram.org/"

// Social is a footer social media link.
type Social struct {
	Name string
	URL  string
}

// DefaultSocials lists the social links shown when none are configured.
var DefaultSocials = []Social{
	{Name: "facebook", URL: "https://www.facebook.com/"},
	{Name: "instagram", URL: "https://www.instagram.com/"},
	{Name: "youtube", URL: "https://www.youtube.com/"},
}

// Option configures a Site.
type Option func(*Site)

// WithTheme sets the theme whose tokens become CSS variables and whose
// stylesheet, if any, is linked from the layout.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Site) {
		s.theme = cfg
	}
}

// WithSocials replaces the footer social links.
func WithSocials(socials ...Social) Option {
	return func(s *Site) {
		s.socials = socials
	}
}

// WithCreditURL overrides the footer credit link.
func WithCreditURL(url string) Option {
	return func(s *Site) {
		if url = strings.TrimSpace(url); url != "" {
			s.creditURL = url
		}
	}
}

// WithAssetPrefix sets the URL prefix of the component stylesheet and scripts.
func WithAssetPrefix(prefix string) Option {
	return func(s *Site) {
		s.assetPrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// WithPageRenderer registers an additional page renderer. Pages select it
// through their Template field or a matching slug.
func WithPageRenderer(renderer render.Renderer) Option {
	return func(s *Site) {
		s.extra = append(s.extra, renderer)
	}
}

// Site renders the pages of a content repository.
type Site struct {
	repo        *content.Repository
	composer    *components.Composer
	engine      template.TemplateRenderer
	renderers   *render.Registry
	theme       *theme.RendererConfig
	socials     []Social
	creditURL   string
	assetPrefix string
	extra       []render.Renderer
}

// New wires a site. engine must be able to load both TemplatesFS and
// components.TemplatesFS.
func New(repo *content.Repository, composer *components.Composer, engine template.TemplateRenderer, opts ...Option) (*Site, error) {
	if repo == nil {
		return nil, errors.New("site: content repository is required")
	}
	if composer == nil {
		return nil, errors.New("site: component composer is required")
	}
	if engine == nil {
		return nil, errors.New("site: template renderer is required")
	}

	s := &Site{
		repo:        repo,
		composer:    composer,
		engine:      engine,
		socials:     DefaultSocials,
		creditURL:   DefaultCreditURL,
		assetPrefix: "/assets",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.renderers = render.NewRegistry(TemplatePage)
	for _, renderer := range []render.Renderer{
		&pageRenderer{site: s, name: TemplateHome, template: templatePrefix + "pages/home.tpl"},
		&pageRenderer{site: s, name: TemplateFAQ, template: templatePrefix + "pages/faq.tpl"},
		&pageRenderer{site: s, name: TemplatePage, template: templatePrefix + "pages/page.tpl"},
	} {
		s.renderers.MustRegister(renderer)
	}
	for _, renderer := range s.extra {
		if err := s.renderers.Register(renderer); err != nil {
			return nil, fmt.Errorf("site: %w", err)
		}
	}
	return s, nil
}

// Repository exposes the content repository.
func (s *Site) Repository() *content.Repository {
	return s.repo
}

// Renderers exposes the page renderer registry.
func (s *Site) Renderers() *render.Registry {
	return s.renderers
}

// RenderPage renders the page published under slug for locale. An empty slug
// is the home page. Missing pages return content.ErrPageNotFound or
// content.ErrLocaleNotFound.
func (s *Site) RenderPage(ctx context.Context, locale, slug string, opts render.RenderOptions) ([]byte, error) {
	page, err := s.repo.Page(locale, slug)
	if err != nil {
		return nil, err
	}
	renderer, err := s.renderers.Resolve(page)
	if err != nil {
		return nil, fmt.Errorf("site: %w", err)
	}
	opts.Locale = locale
	if opts.Path == "" {
		opts.Path = content.PagePath(locale, page.Slug)
	}
	return renderer.Render(ctx, page, opts)
}

// RenderNewsPost renders a single news post.
func (s *Site) RenderNewsPost(ctx context.Context, locale, slug string, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	post, err := s.repo.NewsPost(locale, slug)
	if err != nil {
		return nil, err
	}
	opts.Locale = locale
	if opts.Path == "" {
		opts.Path = content.NewsPath(locale, post.Slug)
	}

	date := ""
	if !post.Date.IsZero() {
		date = opts.T("news.published", post.Date.Format("2.1.2006"))
	}
	body, err := s.engine.RenderTemplate(templatePrefix+"pages/news_post.tpl", map[string]any{
		"view": newsPostView{
			Title:     post.Title,
			Published: date,
			Body:      post.Body,
			Back:      content.PagePath(locale, content.HomeSlug),
			BackLabel: opts.T("notFound.back"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("site: render news post %q: %w", slug, err)
	}
	return s.layout(layoutInput{
		locale:      locale,
		title:       post.Title,
		description: post.Summary,
		body:        body,
		opts:        opts,
	})
}

// RenderNotFound renders the localized not-found page. Unknown locales fall
// back to the first configured one.
func (s *Site) RenderNotFound(ctx context.Context, locale string, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.repo.HasLocale(locale) {
		if locales := s.repo.Locales(); len(locales) > 0 {
			locale = locales[0]
		}
	}
	opts.Locale = locale

	body, err := s.engine.RenderTemplate(templatePrefix+"pages/not_found.tpl", map[string]any{
		"view": notFoundView{
			Title:     opts.T("notFound.title"),
			Body:      opts.T("notFound.body"),
			Back:      content.PagePath(locale, content.HomeSlug),
			BackLabel: opts.T("notFound.back"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("site: render not found: %w", err)
	}
	return s.layout(layoutInput{
		locale: locale,
		title:  opts.T("notFound.title"),
		body:   body,
		opts:   opts,
	})
}

type newsPostView struct {
	Title     string `json:"title"`
	Published string `json:"published,omitempty"`
	Body      string `json:"body"`
	Back      string `json:"back"`
	BackLabel string `json:"backLabel"`
}

type notFoundView struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Back      string `json:"back"`
	BackLabel string `json:"backLabel"`
}

type pageView struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

// pageRenderer renders CMS pages through one page template.
type pageRenderer struct {
	site     *Site
	name     string
	template string
}

var _ render.Renderer = (*pageRenderer)(nil)

func (r *pageRenderer) Name() string {
	return r.name
}

func (r *pageRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *pageRenderer) Render(ctx context.Context, page content.Page, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Locale == "" {
		opts.Locale = page.Locale
	}

	result, err := r.site.composer.Page(page, opts)
	if err != nil {
		return nil, fmt.Errorf("site: compose %q: %w", page.Slug, err)
	}
	body, err := r.site.engine.RenderTemplate(r.template, map[string]any{
		"view": pageView{
			Title:   page.Title,
			Slug:    page.Slug,
			Content: result.HTML,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("site: render %s template: %w", r.name, err)
	}

	return r.site.layout(layoutInput{
		locale:      opts.Locale,
		slug:        page.Slug,
		title:       page.Title,
		description: page.SEODescription,
		body:        body,
		result:      result,
		opts:        opts,
	})
}
