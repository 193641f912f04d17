// Package export writes the rendered site to a directory of static files.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/goliatone/go-cmsfront/pkg/content"
	"github.com/goliatone/go-cmsfront/pkg/render"
	"github.com/goliatone/go-cmsfront/pkg/site"
)

// NotFoundFile is the error page most static hosts serve for unknown paths.
const NotFoundFile = "404.html"

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger used to report written files.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithAssets adds a filesystem copied below the asset directory.
func WithAssets(files fs.FS) Option {
	return func(e *Exporter) {
		if files != nil {
			e.assets = append(e.assets, files)
		}
	}
}

// WithAssetDir sets the output subdirectory for assets. It must match the
// asset URL prefix the site renders.
func WithAssetDir(dir string) Option {
	return func(e *Exporter) {
		e.assetDir = strings.Trim(strings.TrimSpace(dir), "/")
	}
}

// WithRenderOptions sets the base options every page is rendered with.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(e *Exporter) {
		e.options = opts
	}
}

// Exporter renders every page, news post, and the not-found page of a site.
type Exporter struct {
	site     *site.Site
	out      string
	assetDir string
	assets   []fs.FS
	options  render.RenderOptions
	logger   *zap.Logger
}

// Report lists the files written, relative to the output directory.
type Report struct {
	Pages  []string
	Assets []string
}

// New creates an exporter writing below out.
func New(s *site.Site, out string, opts ...Option) (*Exporter, error) {
	if s == nil {
		return nil, errors.New("export: site is required")
	}
	if strings.TrimSpace(out) == "" {
		return nil, errors.New("export: output directory is required")
	}
	e := &Exporter{
		site:     s,
		out:      out,
		assetDir: "assets",
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// PageFile is the output path of a page: the home page becomes
// <locale>/index.html, every other page <locale>/<slug>/index.html.
func PageFile(locale, slug string) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" || slug == content.HomeSlug {
		return path.Join(locale, "index.html")
	}
	return path.Join(locale, slug, "index.html")
}

// NewsFile is the output path of a news post.
func NewsFile(locale, slug string) string {
	return path.Join(locale, "news", strings.Trim(slug, "/"), "index.html")
}

// Export writes the site. Files are replaced atomically so a server reading
// the directory never sees a partial page.
func (e *Exporter) Export(ctx context.Context) (Report, error) {
	var report Report
	repo := e.site.Repository()

	for _, locale := range repo.Locales() {
		for _, page := range repo.Pages(locale) {
			body, err := e.site.RenderPage(ctx, locale, page.Slug, e.options)
			if err != nil {
				return report, fmt.Errorf("export: page %s/%s: %w", locale, page.Slug, err)
			}
			name := PageFile(locale, page.Slug)
			if err := e.write(name, body); err != nil {
				return report, err
			}
			report.Pages = append(report.Pages, name)
		}
		for _, post := range repo.News(locale, 0) {
			if post.Slug == "" {
				continue
			}
			body, err := e.site.RenderNewsPost(ctx, locale, post.Slug, e.options)
			if err != nil {
				return report, fmt.Errorf("export: news %s/%s: %w", locale, post.Slug, err)
			}
			name := NewsFile(locale, post.Slug)
			if err := e.write(name, body); err != nil {
				return report, err
			}
			report.Pages = append(report.Pages, name)
		}
	}

	if locales := repo.Locales(); len(locales) > 0 {
		body, err := e.site.RenderNotFound(ctx, locales[0], e.options)
		if err != nil {
			return report, fmt.Errorf("export: not found page: %w", err)
		}
		if err := e.write(NotFoundFile, body); err != nil {
			return report, err
		}
		report.Pages = append(report.Pages, NotFoundFile)
	}

	for _, files := range e.assets {
		copied, err := e.copyAssets(ctx, files)
		report.Assets = append(report.Assets, copied...)
		if err != nil {
			return report, err
		}
	}

	e.logger.Info("site exported",
		zap.String("out", e.out),
		zap.Int("pages", len(report.Pages)),
		zap.Int("assets", len(report.Assets)),
	)
	return report, nil
}

func (e *Exporter) copyAssets(ctx context.Context, files fs.FS) ([]string, error) {
	var copied []string
	err := fs.WalkDir(files, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(files, name)
		if err != nil {
			return err
		}
		target := path.Join(e.assetDir, name)
		if err := e.write(target, data); err != nil {
			return err
		}
		copied = append(copied, target)
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("export: copy assets: %w", err)
	}
	return copied, nil
}

func (e *Exporter) write(name string, data []byte) error {
	target := filepath.Join(e.out, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("export: create directory for %s: %w", name, err)
	}
	if err := atomic.WriteFile(target, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("export: write %s: %w", name, err)
	}
	e.logger.Debug("wrote file", zap.String("file", name), zap.Int("bytes", len(data)))
	return nil
}
