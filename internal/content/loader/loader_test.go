package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cmsfront/internal/content/loader"
	"github.com/goliatone/go-cmsfront/pkg/content"
)

const bundleJSON = `{"sites":[{"locale":"en","pages":[{"slug":"home","title":"Home"}]}]}`

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.json")
	if err := os.WriteFile(path, []byte(bundleJSON), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(content.NewLoaderOptions())
	doc, err := l.Load(context.Background(), content.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != bundleJSON {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{"content/bundle.json": {Data: []byte(bundleJSON)}}
	l := loader.New(content.NewLoaderOptions(content.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), content.SourceFromFS("content/bundle.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sites, err := content.Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sites) != 1 || sites[0].Locale != "en" {
		t.Fatalf("unexpected sites %+v", sites)
	}
}

func TestLoader_HTTP(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(bundleJSON))
	}))
	defer srv.Close()

	l := loader.New(content.NewLoaderOptions(
		content.WithHTTPFallback(time.Second),
		content.WithAccessToken("secret"),
	))
	if _, err := l.Load(context.Background(), content.SourceFromURL(srv.URL)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
}

func TestLoader_HTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	disabled := loader.New(content.NewLoaderOptions())
	if _, err := disabled.Load(context.Background(), content.SourceFromURL(srv.URL)); err == nil {
		t.Fatal("expected error when http is disabled")
	}

	enabled := loader.New(content.NewLoaderOptions(content.WithHTTPClient(srv.Client())))
	if _, err := enabled.Load(context.Background(), content.SourceFromURL(srv.URL)); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loader.New(content.NewLoaderOptions(content.WithFileSystem(fstest.MapFS{})))
	if _, err := l.Load(ctx, content.SourceFromFS("bundle.json")); err == nil {
		t.Fatal("expected context error")
	}
}

func TestLoadNews(t *testing.T) {
	files := fstest.MapFS{
		"news/en/launch.md": {Data: []byte("---\ntitle: Launch\ndate: \"2020-06-12\"\nsummary: We are live\n---\nHello **world**\n")},
		"news/fi/avaus.md":  {Data: []byte("---\ntitle: Avaus\nslug: avaus-2020\n---\nHei\n")},
		"news/readme.txt":   {Data: []byte("ignored")},
	}

	posts, err := loader.LoadNews(files, "news")
	if err != nil {
		t.Fatalf("load news: %v", err)
	}

	en := posts["en"]
	if len(en) != 1 {
		t.Fatalf("expected one english post, got %+v", en)
	}
	want := content.NewsPost{
		Slug:    "launch",
		Title:   "Launch",
		Summary: "We are live",
		Date:    time.Date(2020, 6, 12, 0, 0, 0, 0, time.UTC),
		Body:    "Hello **world**\n",
		Locale:  "en",
	}
	if diff := cmp.Diff(want, en[0]); diff != "" {
		t.Fatalf("post mismatch (-want +got):\n%s", diff)
	}
	if fi := posts["fi"]; len(fi) != 1 || fi[0].Slug != "avaus-2020" {
		t.Fatalf("unexpected finnish posts %+v", fi)
	}

	merged := loader.MergeNews([]content.Site{{Locale: "en"}, {Locale: "sv"}}, posts)
	if len(merged[0].NewsPosts) != 1 || len(merged[1].NewsPosts) != 0 {
		t.Fatalf("unexpected merge result %+v", merged)
	}
}

func TestLoadNews_BadDate(t *testing.T) {
	files := fstest.MapFS{
		"news/en/bad.md": {Data: []byte("---\ntitle: Bad\ndate: \"someday\"\n---\nbody\n")},
	}
	if _, err := loader.LoadNews(files, "news"); err == nil {
		t.Fatal("expected date parse error")
	}
}
