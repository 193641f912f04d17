package site_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cmsfront/pkg/components"
	"github.com/goliatone/go-cmsfront/pkg/content"
	"github.com/goliatone/go-cmsfront/pkg/i18n"
	"github.com/goliatone/go-cmsfront/pkg/render"
	"github.com/goliatone/go-cmsfront/pkg/site"
	"github.com/goliatone/go-cmsfront/pkg/testsupport"
)

func newSite(t *testing.T, opts ...site.Option) *site.Site {
	t.Helper()
	engine, err := site.NewEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	repo := testsupport.Repository(t)
	composer, err := components.NewComposer(engine, components.WithNews(repo))
	if err != nil {
		t.Fatalf("composer: %v", err)
	}
	s, err := site.New(repo, composer, engine, opts...)
	if err != nil {
		t.Fatalf("site: %v", err)
	}
	return s
}

func options(t *testing.T) render.RenderOptions {
	t.Helper()
	catalog, err := i18n.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return render.RenderOptions{Translator: catalog}
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected output to contain %q", fragment)
		}
	}
	if t.Failed() {
		t.Logf("output:\n%s", html)
	}
}

func TestSplitSiteMap(t *testing.T) {
	pages := func(n int) []content.MenuPage {
		out := make([]content.MenuPage, n)
		for i := range out {
			out[i] = content.MenuPage{Slug: string(rune('a' + i))}
		}
		return out
	}
	cases := []struct {
		n, left, right int
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2, 1, 1},
		{5, 3, 2},
		{6, 3, 3},
	}
	for _, tc := range cases {
		left, right := site.SplitSiteMap(pages(tc.n))
		if len(left) != tc.left || len(right) != tc.right {
			t.Errorf("n=%d: got %d/%d, want %d/%d", tc.n, len(left), len(right), tc.left, tc.right)
		}
	}
}

func TestPageSEO(t *testing.T) {
	got := site.PageSEO("12062020", "en", "faq", "FAQ", " Questions ")
	want := site.SEO{Title: "FAQ | 12062020", Description: "Questions", Lang: "en"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("seo mismatch (-want +got):\n%s", diff)
	}
	if home := site.PageSEO("12062020", "en", content.HomeSlug, "Home", ""); home.Title != "12062020" {
		t.Fatalf("home title should be the brand, got %q", home.Title)
	}
}

func TestRenderPage_Home(t *testing.T) {
	s := newSite(t)

	out, err := s.RenderPage(context.Background(), "en", "", options(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	assertContains(t, html,
		`<html lang="en">`,
		"<title>12062020</title>",
		`<meta name="description" content="Celebrating the games">`,
		`<a class="site-header__brand" href="/en/">12062020</a>`,
		`<li><a href="/en/faq">FAQ</a></li>`,
		`<main class="page page--home">`,
		`data-interval="5000"`,
		`<link rel="stylesheet" href="/assets/cmsfront.css">`,
		`<script src="/assets/carousel.js" defer></script>`,
		`href="https://spiceprogram.org/"`,
		"Built with love by Futurice",
		`data-cookie-settings>Cookie settings</button>`,
		`src="/assets/facebook.svg"`,
		`site-footer__social--instagram`,
		`site-footer__social--youtube`,
	)
	if strings.Contains(html, "<style data-theme") {
		t.Fatalf("no theme configured, expected no theme style")
	}
}

func TestRenderPage_FooterSiteMapAndLanguages(t *testing.T) {
	s := newSite(t)

	out, err := s.RenderPage(context.Background(), "en", "contact", options(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	leftStart := strings.Index(html, "site-footer__column--left")
	rightStart := strings.Index(html, "site-footer__column--right")
	if leftStart < 0 || rightStart < 0 {
		t.Fatalf("site map columns missing:\n%s", html)
	}
	left := html[leftStart:rightStart]
	right := html[rightStart:]
	right = right[:strings.Index(right, "</ul>")]

	if got := strings.Count(left, "<li>"); got != 3 {
		t.Fatalf("expected 3 links in the left column, got %d", got)
	}
	if got := strings.Count(right, "<li>"); got != 2 {
		t.Fatalf("expected 2 links in the right column, got %d", got)
	}
	assertContains(t, left, `href="/en/"`, `href="/en/contact"`)
	assertContains(t, right, `href="/en/petitions"`, `href="/en/news"`)

	assertContains(t, html,
		"<title>Contact | 12062020</title>",
		`<li><a href="/en/contact" aria-current="page">Contact</a></li>`,
		`<a href="/en/contact" hreflang="en" aria-current="true">EN</a>`,
		`<a href="/fi/contact" hreflang="fi">FI</a>`,
		`<script src="/assets/contact.js" defer></script>`,
	)
}

func TestRenderPage_LanguageLinkFallsBackToHome(t *testing.T) {
	s := newSite(t)

	out, err := s.RenderPage(context.Background(), "en", "faq", options(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out),
		`<a href="/fi/" hreflang="fi">FI</a>`,
		`<main class="page page--faq">`,
		`<h1 class="page__title">FAQ</h1>`,
	)
}

func TestRenderPage_Localized(t *testing.T) {
	s := newSite(t)

	out, err := s.RenderPage(context.Background(), "fi", "contact", options(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out),
		`<html lang="fi">`,
		"<title>Yhteystiedot | 12062020</title>",
		`action="/fi/contact"`,
		"Evästeasetukset",
	)
}

func TestRenderPage_NotFound(t *testing.T) {
	s := newSite(t)

	_, err := s.RenderPage(context.Background(), "en", "missing", options(t))
	if !errors.Is(err, content.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
	_, err = s.RenderPage(context.Background(), "de", "", options(t))
	if !errors.Is(err, content.ErrLocaleNotFound) {
		t.Fatalf("expected ErrLocaleNotFound, got %v", err)
	}
}

func TestRenderPage_CanceledContext(t *testing.T) {
	s := newSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.RenderPage(ctx, "en", "faq", options(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderNotFound(t *testing.T) {
	s := newSite(t)

	out, err := s.RenderNotFound(context.Background(), "xx", options(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out),
		`<html lang="en">`,
		"<title>Page not found | 12062020</title>",
		"The page you were looking for does not exist.",
		`<a class="button button--link" href="/en/">Back to the front page</a>`,
	)
}

func TestRenderNewsPost(t *testing.T) {
	s := newSite(t)

	out, err := s.RenderNewsPost(context.Background(), "en", "opening", options(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out),
		"<title>Opening ceremony | 12062020</title>",
		`<meta name="description" content="The games begin.">`,
		`<p class="news-post__date">Published 12.6.2020</p>`,
		"<strong>games</strong>",
	)

	if _, err := s.RenderNewsPost(context.Background(), "en", "missing", options(t)); !errors.Is(err, content.ErrNewsPostNotFound) {
		t.Fatalf("expected ErrNewsPostNotFound, got %v", err)
	}
}

func TestRenderPage_Theme(t *testing.T) {
	manifest := site.DefaultManifest()
	manifest.Assets.Prefix = "/assets/themes/default"
	manifest.Assets.Files = map[string]string{site.ThemeStylesheetKey: "theme.css"}

	themes, err := site.NewThemes(site.DefaultTheme, "", manifest)
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	selection, err := themes.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	s := newSite(t, site.WithTheme(site.RendererConfig(selection, nil)))

	out, err := s.RenderPage(context.Background(), "en", "", options(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out),
		`<style data-theme="default">`,
		"--content-freshDough: #f6ecd9;",
		`<link rel="stylesheet" href="/assets/themes/default/theme.css">`,
	)
}

type stubRenderer struct{}

func (stubRenderer) Name() string        { return "landing" }
func (stubRenderer) ContentType() string { return "text/plain" }
func (stubRenderer) Render(_ context.Context, page content.Page, _ render.RenderOptions) ([]byte, error) {
	return []byte("landing:" + page.Slug), nil
}

func TestRenderPage_CustomRendererByTemplate(t *testing.T) {
	repo, err := content.NewRepository(content.Site{
		Locale: "en",
		Pages:  []content.Page{{Slug: "launch", Title: "Launch", Template: "landing"}},
	})
	if err != nil {
		t.Fatalf("repository: %v", err)
	}
	engine, err := site.NewEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	composer, err := components.NewComposer(engine)
	if err != nil {
		t.Fatalf("composer: %v", err)
	}
	s, err := site.New(repo, composer, engine, site.WithPageRenderer(stubRenderer{}))
	if err != nil {
		t.Fatalf("site: %v", err)
	}

	out, err := s.RenderPage(context.Background(), "en", "launch", render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "landing:launch" {
		t.Fatalf("expected custom renderer output, got %q", out)
	}
	if diff := cmp.Diff([]string{"faq", "home", "landing", "page"}, s.Renderers().List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
}
