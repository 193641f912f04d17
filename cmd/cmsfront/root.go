package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cmsfront "github.com/goliatone/go-cmsfront"
	"github.com/goliatone/go-cmsfront/internal/config"
	"github.com/goliatone/go-cmsfront/internal/logger"
	"github.com/goliatone/go-cmsfront/pkg/content"
	"github.com/goliatone/go-cmsfront/pkg/content/cache"
	"github.com/goliatone/go-cmsfront/pkg/site"
)

type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
	closers []io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "cmsfront",
		Short:         "Render a CMS driven website",
		Long:          "cmsfront renders localized pages from a headless CMS bundle, serves them over HTTP, and exports them as static files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./cmsfront.yaml)")
	root.PersistentFlags().String("source", "", "content bundle path or URL (overrides content.source)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newServeCmd(a),
		newBuildCmd(a),
		newPagesCmd(a),
		newContactCmd(a),
		newInboxCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{File: a.cfgFile})
	if err != nil {
		return err
	}
	if source, _ := cmd.Flags().GetString("source"); source != "" {
		cfg.Content.Source = source
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = log
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && a.logger != nil {
			a.logger.Warn("close resource", zap.Error(err))
		}
	}
	a.closers = nil
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// siteConfig maps the application configuration onto the site wiring.
func (a *app) siteConfig(ctx context.Context) (cmsfront.Config, error) {
	cfg := a.cfg
	src, err := content.ParseSource(cfg.Content.Source)
	if err != nil {
		return cmsfront.Config{}, err
	}

	out := cmsfront.Config{
		Source:          src,
		LoaderOptions:   []content.LoaderOption{content.WithHTTPFallback(cfg.Content.Timeout)},
		CacheTTL:        cfg.Cache.TTL,
		NewsDir:         cfg.Content.NewsDir,
		ThemeDir:        cfg.Theme.Dir,
		Theme:           cfg.Theme.Name,
		ThemeVariant:    cfg.Theme.Variant,
		TemplateDir:     cfg.Content.Template,
		ContactEndpoint: cfg.Contact.Endpoint,
		AssetPrefix:     cfg.Site.AssetPrefix,
		CreditURL:       cfg.Site.CreditURL,
		Logger:          a.logger,
	}
	for _, social := range []site.Social{
		{Name: "facebook", URL: cfg.Site.Facebook},
		{Name: "instagram", URL: cfg.Site.Instagram},
		{Name: "youtube", URL: cfg.Site.YouTube},
	} {
		if social.URL != "" {
			out.Socials = append(out.Socials, social)
		}
	}

	switch cfg.Cache.Type {
	case "memory":
		out.Cache = cache.NewMemory()
	case "redis":
		redisCache, err := cache.NewRedis(ctx, cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return cmsfront.Config{}, err
		}
		a.closers = append(a.closers, redisCache)
		out.Cache = redisCache
	}
	return out, nil
}

func (a *app) newSite(ctx context.Context) (*site.Site, cmsfront.Config, error) {
	cfg, err := a.siteConfig(ctx)
	if err != nil {
		return nil, cmsfront.Config{}, err
	}
	s, err := cmsfront.NewSite(ctx, cfg)
	if err != nil {
		return nil, cmsfront.Config{}, err
	}
	return s, cfg, nil
}

var errNoLocale = errors.New("no locales configured")

func (a *app) locales(s *site.Site) ([]string, error) {
	locales := s.Repository().Locales()
	if len(a.cfg.Content.Locales) > 0 {
		allowed := make([]string, 0, len(a.cfg.Content.Locales))
		for _, locale := range a.cfg.Content.Locales {
			if s.Repository().HasLocale(locale) {
				allowed = append(allowed, locale)
			}
		}
		locales = allowed
	}
	if len(locales) == 0 {
		return nil, fmt.Errorf("cmsfront: %w", errNoLocale)
	}
	return locales, nil
}
