package site_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cmsfront/pkg/site"
)

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			"components.input": "themes/acme/input.tpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				site.ThemeStylesheetKey: "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"components.checkbox": "themes/acme/dark/checkbox.tpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"site.script": "dark.js",
					},
				},
			},
		},
	}
}

func TestThemes_Select(t *testing.T) {
	themes, err := site.NewThemes("acme", "dark", acmeManifest())
	if err != nil {
		t.Fatalf("themes: %v", err)
	}

	selection, err := themes.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != "acme" || selection.Variant != "dark" {
		t.Fatalf("unexpected defaults: %s/%s", selection.Theme, selection.Variant)
	}

	if _, err := themes.Select("missing", ""); !errors.Is(err, site.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := themes.Select("acme", "sepia"); !errors.Is(err, site.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound for variant, got %v", err)
	}
}

func TestRendererConfig_MergesVariant(t *testing.T) {
	themes, err := site.NewThemes("acme", "", acmeManifest())
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	selection, err := themes.Select("acme", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	cfg := site.RendererConfig(selection, map[string]string{
		"components.input":    "fallback/input.tpl",
		"components.textarea": "fallback/textarea.tpl",
	})

	wantPartials := map[string]string{
		"components.input":    "themes/acme/input.tpl",
		"components.checkbox": "themes/acme/dark/checkbox.tpl",
		"components.textarea": "fallback/textarea.tpl",
	}
	if diff := cmp.Diff(wantPartials, cfg.Partials); diff != "" {
		t.Fatalf("partials mismatch (-want +got):\n%s", diff)
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("variant token not applied: %s", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css var not derived: %s", cfg.CSSVars["--brand"])
	}
	if got := cfg.AssetURL(site.ThemeStylesheetKey); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("site.script"); got != "/assets/themes/acme/dark.js" {
		t.Fatalf("unexpected variant asset url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
}

func TestRendererConfig_NilSelection(t *testing.T) {
	if site.RendererConfig(nil, nil) != nil {
		t.Fatalf("expected nil config")
	}
}

func TestCSSVarsStyle(t *testing.T) {
	cfg := &theme.RendererConfig{CSSVars: map[string]string{
		"--b":    "2px",
		"--a":    "#fff",
		"--evil": "red;}</style><script>",
	}}
	want := ":root {\n  --a: #fff;\n  --b: 2px;\n}"
	if got := site.CSSVarsStyle(cfg); got != want {
		t.Fatalf("css vars mismatch\nwant: %q\n got: %q", want, got)
	}
	if site.CSSVarsStyle(nil) != "" {
		t.Fatalf("expected empty style for nil config")
	}
}

func TestLoadManifests(t *testing.T) {
	files := fstest.MapFS{
		"themes/b.yaml": {Data: []byte("name: beta\ntokens:\n  brand: blue\n")},
		"themes/a.yaml": {Data: []byte("name: alpha\nvariants:\n  dark:\n    tokens:\n      brand: black\n")},
		"themes/x.txt":  {Data: []byte("ignored")},
	}
	manifests, err := site.LoadManifests(files, "themes")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	names := make([]string, 0, len(manifests))
	for _, m := range manifests {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"alpha", "beta"}, names); diff != "" {
		t.Fatalf("manifests mismatch (-want +got):\n%s", diff)
	}
	if manifests[0].Variants["dark"].Tokens["brand"] != "black" {
		t.Fatalf("variant tokens not decoded")
	}

	bad := fstest.MapFS{"themes/bad.yaml": {Data: []byte("tokens: {}\n")}}
	if _, err := site.LoadManifests(bad, "themes"); err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Fatalf("expected missing name error, got %v", err)
	}
}

func TestDefaultManifest(t *testing.T) {
	manifest := site.DefaultManifest()
	if manifest.Name != site.DefaultTheme {
		t.Fatalf("unexpected default theme name %q", manifest.Name)
	}
	for _, token := range []string{"content-white", "content-freshDough"} {
		if manifest.Tokens[token] == "" {
			t.Errorf("default theme missing token %q", token)
		}
	}
}
