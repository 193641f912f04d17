// Package server exposes the site over HTTP: localized pages, the browser
// contact form post, the JSON contact relay, and embedded assets.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goliatone/go-cmsfront/internal/logger"
	"github.com/goliatone/go-cmsfront/pkg/contact"
	"github.com/goliatone/go-cmsfront/pkg/i18n"
	"github.com/goliatone/go-cmsfront/pkg/site"
)

// Config wires the server dependencies. Site and Translator are required.
type Config struct {
	Site       *site.Site
	Translator i18n.Translator
	// Contact posts browser form submissions. When it targets the relay path
	// and Relay is set, submissions are handed to the relay in process.
	Contact *contact.Client
	// Relay serves POST contact.RelayPath; nil leaves the route unmounted.
	Relay          *contact.Relay
	Logger         *zap.Logger
	Assets         fs.FS
	AssetPrefix    string
	RateLimiter    *RateLimiter
	MaxBodyBytes   int64
	TrustedProxies []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Server is the HTTP front end.
type Server struct {
	site       *site.Site
	translator i18n.Translator
	contact    *contact.Client
	relay      *contact.Relay
	validator  *contact.Validator
	negotiator *i18n.Negotiator
	logger     *zap.Logger
	engine     *gin.Engine
	cfg        Config
}

// New builds the router.
func New(cfg Config) (*Server, error) {
	if cfg.Site == nil {
		return nil, errors.New("server: site is required")
	}
	if cfg.Translator == nil {
		return nil, errors.New("server: translator is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Contact == nil {
		cfg.Contact = contact.NewClient("")
	}
	if cfg.AssetPrefix == "" {
		cfg.AssetPrefix = "/assets"
	}

	s := &Server{
		site:       cfg.Site,
		translator: cfg.Translator,
		contact:    cfg.Contact,
		relay:      cfg.Relay,
		validator:  contact.NewValidator(),
		negotiator: i18n.NewNegotiator(cfg.Site.Repository().Locales()...),
		logger:     cfg.Logger,
		cfg:        cfg,
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("server: trusted proxies: %w", err)
	}
	engine.Use(
		logger.RequestIDMiddleware(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
	)
	s.engine = engine
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.engine
	limited := []gin.HandlerFunc{RateLimit(s.cfg.RateLimiter), BodyLimit(s.cfg.MaxBodyBytes)}

	r.GET("/healthz", s.health)
	r.GET("/", s.index)
	if s.cfg.Assets != nil {
		r.StaticFS(strings.TrimRight(s.cfg.AssetPrefix, "/"), http.FS(s.cfg.Assets))
	}
	if s.relay != nil {
		r.POST(contact.RelayPath, append(limited, s.relayContact)...)
	}

	r.GET("/:locale/", s.page)
	r.GET("/:locale/:slug", s.page)
	r.GET("/:locale/news/:slug", s.newsPost)
	r.POST("/:locale/contact", append(limited, s.postContact)...)
	r.NoRoute(s.noRoute)
}

// Handler returns the http.Handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
