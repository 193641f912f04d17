package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cmsfront "github.com/goliatone/go-cmsfront"
	"github.com/goliatone/go-cmsfront/internal/reload"
	"github.com/goliatone/go-cmsfront/internal/server"
	"github.com/goliatone/go-cmsfront/pkg/contact"
	"github.com/goliatone/go-cmsfront/pkg/content"
	"github.com/goliatone/go-cmsfront/pkg/i18n"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		Long: `serve renders pages on request, accepts contact form posts, and hosts the
contact relay endpoint. With --watch a file based bundle and the news
directory are reloaded when they change.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			return a.serve(cmd.Context(), addr, watch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload content when files change")
	return cmd
}

func (a *app) serve(ctx context.Context, addr string, watch bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	s, siteCfg, err := a.newSite(ctx)
	if err != nil {
		return err
	}
	catalog, err := i18n.Default()
	if err != nil {
		return err
	}

	var relay *contact.Relay
	if a.cfg.Contact.RelayEnabled {
		relayOpts := []contact.RelayOption{contact.WithLogger(a.logger.Named("contact"))}
		if a.cfg.Contact.InboxDSN != "" {
			inbox, err := contact.OpenSQLiteInbox(ctx, a.cfg.Contact.InboxDSN)
			if err != nil {
				return err
			}
			a.closers = append(a.closers, inbox)
			relayOpts = append(relayOpts, contact.WithInbox(inbox))
		}
		relay, err = contact.NewRelay(ctx, relayOpts...)
		if err != nil {
			return err
		}
	}

	srv, err := server.New(server.Config{
		Site:           s,
		Translator:     catalog,
		Contact:        contact.NewClient(a.cfg.Contact.Endpoint, contact.WithTimeout(a.cfg.Contact.Timeout)),
		Relay:          relay,
		Logger:         a.logger,
		Assets:         cmsfront.AssetsFS(),
		AssetPrefix:    a.cfg.Site.AssetPrefix,
		RateLimiter:    server.NewRateLimiter(a.cfg.Contact.RateLimit, a.cfg.Contact.RateLimitEvery),
		MaxBodyBytes:   a.cfg.Server.MaxBodyBytes,
		TrustedProxies: a.cfg.Server.TrustedProxies,
		ReadTimeout:    a.cfg.Server.ReadTimeout,
		WriteTimeout:   a.cfg.Server.WriteTimeout,
	})
	if err != nil {
		return err
	}

	if watch {
		a.startWatch(ctx, s.Repository(), siteCfg)
	}
	return srv.Run(ctx, addr)
}

func (a *app) startWatch(ctx context.Context, repo *content.Repository, cfg cmsfront.Config) {
	var paths []string
	if cfg.Source.Kind() == content.SourceKindFile {
		paths = append(paths, cfg.Source.Location())
	}
	if cfg.NewsDir != "" {
		paths = append(paths, cfg.NewsDir)
	}
	if len(paths) == 0 {
		a.logger.Warn("--watch ignored: content is not file based")
		return
	}

	go func() {
		err := reload.Watch(ctx, paths, reload.Options{Logger: a.logger.Named("reload")}, func(ctx context.Context) error {
			return cmsfront.ReloadRepository(ctx, repo, cfg)
		})
		if err != nil {
			a.logger.Error("content watcher stopped", zap.Error(err))
		}
	}()
}
