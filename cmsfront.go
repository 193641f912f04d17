// Package cmsfront assembles a server-rendered CMS front end: it loads the
// content bundle, resolves the theme, and wires the template engine,
// component composer, and page site together.
package cmsfront

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-cmsfront/internal/content/loader"
	"github.com/goliatone/go-cmsfront/pkg/components"
	"github.com/goliatone/go-cmsfront/pkg/content"
	"github.com/goliatone/go-cmsfront/pkg/content/cache"
	"github.com/goliatone/go-cmsfront/pkg/render"
	"github.com/goliatone/go-cmsfront/pkg/render/template/gotemplate"
	"github.com/goliatone/go-cmsfront/pkg/site"
)

// RenderOptions describes per-request data renderers use to prefill forms or
// surface an outcome; alias exported via the root package for convenience.
type RenderOptions = render.RenderOptions

// Config describes how to assemble a site.
type Config struct {
	// Source is the content bundle (file, fs, or URL).
	Source content.Source
	// Loader overrides the default loader built from LoaderOptions.
	Loader        content.Loader
	LoaderOptions []content.LoaderOption
	// Cache, when set, memoizes loaded bundles for CacheTTL.
	Cache    cache.Cache
	CacheTTL time.Duration

	// NewsFS and NewsDir point at markdown news posts with front matter.
	NewsFS  fs.FS
	NewsDir string

	// ThemeFS and ThemeDir hold extra theme manifests; the embedded default
	// theme is always available.
	ThemeFS      fs.FS
	ThemeDir     string
	Theme        string
	ThemeVariant string

	// TemplateDir holds template overrides taking precedence over the
	// embedded templates.
	TemplateDir string

	ContactEndpoint string
	AssetPrefix     string
	CreditURL       string
	Socials         []site.Social

	Logger *zap.Logger
}

// LoadRepository fetches the bundle, merges news posts, and indexes it.
func LoadRepository(ctx context.Context, cfg Config) (*content.Repository, error) {
	loader, err := newLoader(cfg, true)
	if err != nil {
		return nil, err
	}
	sites, err := loadSites(ctx, cfg, loader)
	if err != nil {
		return nil, err
	}
	return content.NewRepository(sites...)
}

// ReloadRepository fetches the bundle again, bypassing the cache, and swaps
// it into repo. repo keeps serving the previous bundle when loading fails.
func ReloadRepository(ctx context.Context, repo *content.Repository, cfg Config) error {
	if repo == nil {
		return errors.New("cmsfront: repository is required")
	}
	loader, err := newLoader(cfg, false)
	if err != nil {
		return err
	}
	sites, err := loadSites(ctx, cfg, loader)
	if err != nil {
		return err
	}
	return repo.Replace(sites...)
}

func newLoader(cfg Config, cached bool) (content.Loader, error) {
	if cfg.Source == nil {
		return nil, errors.New("cmsfront: content source is required")
	}
	loader := cfg.Loader
	if loader == nil {
		loader = NewLoader(cfg.LoaderOptions...)
	}
	if cached && cfg.Cache != nil {
		loader = cache.NewLoader(loader, cfg.Cache, cfg.CacheTTL)
	}
	return loader, nil
}

func loadSites(ctx context.Context, cfg Config, loader content.Loader) ([]content.Site, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	started := time.Now()
	doc, err := loader.Load(ctx, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("cmsfront: load content: %w", err)
	}
	sites, err := content.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("cmsfront: decode content: %w", err)
	}

	if cfg.NewsDir != "" {
		newsFS, newsDir := cfg.NewsFS, cfg.NewsDir
		if newsFS == nil {
			newsFS, newsDir = os.DirFS(cfg.NewsDir), "."
		}
		posts, err := internalLoader.LoadNews(newsFS, newsDir)
		if err != nil {
			return nil, fmt.Errorf("cmsfront: load news: %w", err)
		}
		sites = internalLoader.MergeNews(sites, posts)
	}

	logger.Info("content loaded",
		zap.String("source", cfg.Source.Location()),
		zap.Int("locales", len(sites)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return sites, nil
}

// SelectTheme resolves the configured theme into renderer configuration.
func SelectTheme(cfg Config) (*theme.RendererConfig, error) {
	manifests := []*theme.Manifest{site.DefaultManifest()}
	if cfg.ThemeDir != "" {
		themeFS := cfg.ThemeFS
		dir := cfg.ThemeDir
		if themeFS == nil {
			themeFS = os.DirFS(cfg.ThemeDir)
			dir = "."
		}
		extra, err := site.LoadManifests(themeFS, dir)
		if err != nil {
			return nil, fmt.Errorf("cmsfront: load themes: %w", err)
		}
		manifests = append(manifests, extra...)
	}

	themes, err := site.NewThemes(site.DefaultTheme, "", manifests...)
	if err != nil {
		return nil, fmt.Errorf("cmsfront: %w", err)
	}
	selection, err := themes.Select(cfg.Theme, cfg.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("cmsfront: %w", err)
	}
	return site.RendererConfig(selection, nil), nil
}

// NewSiteFromRepository wires the engine, composer, and site around an
// already loaded repository.
func NewSiteFromRepository(repo *content.Repository, cfg Config) (*site.Site, error) {
	themeCfg, err := SelectTheme(cfg)
	if err != nil {
		return nil, err
	}

	var engineOpts []gotemplate.Option
	if cfg.TemplateDir != "" {
		engineOpts = append(engineOpts, gotemplate.WithBaseDir(cfg.TemplateDir))
	}
	engine, err := site.NewEngine(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("cmsfront: template engine: %w", err)
	}

	composer, err := components.NewComposer(engine,
		components.WithNews(repo),
		components.WithThemePartials(themeCfg.Partials),
		components.WithContactEndpoint(cfg.ContactEndpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("cmsfront: %w", err)
	}

	opts := []site.Option{site.WithTheme(themeCfg)}
	if cfg.AssetPrefix != "" {
		opts = append(opts, site.WithAssetPrefix(cfg.AssetPrefix))
	}
	if cfg.CreditURL != "" {
		opts = append(opts, site.WithCreditURL(cfg.CreditURL))
	}
	if len(cfg.Socials) > 0 {
		opts = append(opts, site.WithSocials(cfg.Socials...))
	}
	return site.New(repo, composer, engine, opts...)
}

// NewSite loads content and wires a site in one step.
func NewSite(ctx context.Context, cfg Config) (*site.Site, error) {
	repo, err := LoadRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewSiteFromRepository(repo, cfg)
}
