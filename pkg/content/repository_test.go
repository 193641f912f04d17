package content_test

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cmsfront/pkg/content"
)

func loadBundle(t *testing.T) *content.Repository {
	t.Helper()

	raw, err := os.ReadFile("testdata/bundle.yaml")
	if err != nil {
		t.Fatalf("read bundle: %v", err)
	}
	sites, err := content.Decode(content.MustNewDocument(content.SourceFromFile("testdata/bundle.yaml"), raw))
	if err != nil {
		t.Fatalf("decode bundle: %v", err)
	}
	repo, err := content.NewRepository(sites...)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	return repo
}

func TestRepository_PageLookup(t *testing.T) {
	repo := loadBundle(t)

	if diff := cmp.Diff([]string{"en", "fi"}, repo.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}

	home, err := repo.Page("en", "")
	if err != nil {
		t.Fatalf("home page: %v", err)
	}
	if home.Slug != content.HomeSlug || home.Locale != "en" {
		t.Fatalf("unexpected home page %+v", home)
	}

	faq, err := repo.Page("en", "/faq/")
	if err != nil {
		t.Fatalf("faq page: %v", err)
	}
	if faq.SEODescription != "Frequently asked questions" {
		t.Fatalf("unexpected faq page %+v", faq)
	}

	press, err := repo.Page("en", "press-room")
	if err != nil {
		t.Fatalf("press page: %v", err)
	}
	if press.Title != "Press Room" {
		t.Fatalf("expected title derived from slug, got %q", press.Title)
	}
}

func TestRepository_Errors(t *testing.T) {
	repo := loadBundle(t)

	if _, err := repo.Page("de", "home"); !errors.Is(err, content.ErrLocaleNotFound) {
		t.Fatalf("expected ErrLocaleNotFound, got %v", err)
	}
	if _, err := repo.Page("fi", "faq"); !errors.Is(err, content.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
	if _, err := repo.NewsPost("en", "missing"); !errors.Is(err, content.ErrNewsPostNotFound) {
		t.Fatalf("expected ErrNewsPostNotFound, got %v", err)
	}
}

func TestRepository_NewsNewestFirst(t *testing.T) {
	repo := loadBundle(t)

	posts := repo.News("en", 0)
	got := make([]string, 0, len(posts))
	for _, post := range posts {
		got = append(got, post.Slug)
	}
	if diff := cmp.Diff([]string{"newer", "older"}, got); diff != "" {
		t.Fatalf("news order mismatch (-want +got):\n%s", diff)
	}
	if limited := repo.News("en", 1); len(limited) != 1 || limited[0].Slug != "newer" {
		t.Fatalf("expected limited news to hold newest post, got %+v", limited)
	}
}

func TestRepository_MenuMissingIsEmpty(t *testing.T) {
	repo := loadBundle(t)

	if menu := repo.Menu("fi", content.MenuHeader); len(menu.Pages) != 0 {
		t.Fatalf("expected empty menu, got %+v", menu)
	}
	if menu := repo.Menu("en", content.MenuHeader); len(menu.Pages) != 1 {
		t.Fatalf("expected header menu, got %+v", menu)
	}
}

func TestNewRepository_RejectsDuplicates(t *testing.T) {
	_, err := content.NewRepository(content.Site{
		Locale: "en",
		Pages:  []content.Page{{Slug: "home"}, {Slug: "home"}},
	})
	if err == nil {
		t.Fatal("expected duplicate slug error")
	}

	_, err = content.NewRepository(content.Site{Locale: "en"}, content.Site{Locale: "en"})
	if err == nil {
		t.Fatal("expected duplicate locale error")
	}
}

func TestDecode_SingleSiteJSON(t *testing.T) {
	doc := content.MustNewDocument(content.SourceFromFS("site.json"), []byte(`{"locale":"sv","pages":[{"slug":"home","title":"Hem"}]}`))
	sites, err := content.Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sites) != 1 || sites[0].Locale != "sv" {
		t.Fatalf("unexpected sites %+v", sites)
	}
}

func TestDecode_RejectsEmptyBundle(t *testing.T) {
	doc := content.MustNewDocument(content.SourceFromFS("site.json"), []byte(`{"pages":[]}`))
	if _, err := content.Decode(doc); err == nil {
		t.Fatal("expected error for bundle without locale")
	}
}

func TestPaths(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{content.PagePath("en", "home"), "/en/"},
		{content.PagePath("en", ""), "/en/"},
		{content.PagePath("fi", "faq"), "/fi/faq"},
		{content.PagePath("/sv/", "/about/"), "/sv/about"},
		{content.NewsPath("en", "launch"), "/en/news/launch"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("path mismatch: want %q got %q", tc.want, tc.got)
		}
	}
}

func TestParseSource(t *testing.T) {
	src, err := content.ParseSource("https://cms.example.org/bundle.json")
	if err != nil || src.Kind() != content.SourceKindURL {
		t.Fatalf("expected url source, got %v, %v", src, err)
	}
	src, err = content.ParseSource("content/site.yaml")
	if err != nil || src.Kind() != content.SourceKindFile {
		t.Fatalf("expected file source, got %v, %v", src, err)
	}
	if _, err := content.ParseSource(""); err == nil {
		t.Fatal("expected error for empty source")
	}
}
