package i18n

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalog_HasContactKeys(t *testing.T) {
	catalog, err := Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}

	if diff := cmp.Diff([]string{"en", "fi", "sv"}, catalog.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}

	keys := []string{
		"contact.name", "contact.email", "contact.subject", "contact.message",
		"contact.terms", "contact.send", "contact.success", "contact.failure",
		"contact.category.label", "contact.category.general", "contact.category.tickets",
		"contact.category.petitions", "contact.category.info", "contact.category.volunteer",
		"contact.category.press", "footer.language", "footer.cookieSettings",
	}
	for _, locale := range catalog.Locales() {
		for _, key := range keys {
			if _, err := catalog.Translate(locale, key); err != nil {
				t.Errorf("%s: %v", locale, err)
			}
		}
	}
}

func TestCatalog_Fallbacks(t *testing.T) {
	catalog := NewCatalog("en")
	catalog.Add("en", map[string]string{"greeting": "Hello", "only.en": "English"})
	catalog.Add("fi", map[string]string{"greeting": "Hei"})

	cases := []struct {
		locale string
		key    string
		want   string
	}{
		{"fi", "greeting", "Hei"},
		{"fi-FI", "greeting", "Hei"},
		{"fi_FI", "greeting", "Hei"},
		{"fi", "only.en", "English"},
		{"de", "greeting", "Hello"},
	}
	for _, tc := range cases {
		got, err := catalog.Translate(tc.locale, tc.key)
		if err != nil {
			t.Fatalf("%s/%s: %v", tc.locale, tc.key, err)
		}
		if got != tc.want {
			t.Fatalf("%s/%s: expected %q, got %q", tc.locale, tc.key, tc.want, got)
		}
	}

	if _, err := catalog.Translate("fi", "missing"); !errors.Is(err, ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}

func TestCatalog_FormatsArgs(t *testing.T) {
	catalog := NewCatalog("en")
	catalog.Add("en", map[string]string{"news.published": "Published %s"})

	got, err := catalog.Translate("en", "news.published", "12.6.2020")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Published 12.6.2020" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestLoadFS_FlattensNestedKeys(t *testing.T) {
	files := fstest.MapFS{
		"i18n/en.yaml":   {Data: []byte("contact:\n  category:\n    label: Category\n")},
		"i18n/notes.txt": {Data: []byte("ignored")},
	}
	catalog, err := LoadFS(files, "i18n", "en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := catalog.Translate("en", "contact.category.label")
	if err != nil || got != "Category" {
		t.Fatalf("expected flattened key, got %q (%v)", got, err)
	}
}

func TestNegotiator(t *testing.T) {
	n := NewNegotiator("en", "fi", "sv")

	cases := map[string]string{
		"":                        "en",
		"fi-FI,fi;q=0.9,en;q=0.8": "fi",
		"sv-SE":                   "sv",
		"de-DE,de;q=0.9":          "en",
		"not a header;;;":         "en",
	}
	for header, want := range cases {
		if got := n.Negotiate(header); got != want {
			t.Errorf("Negotiate(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestT_NilTranslator(t *testing.T) {
	if got := T(nil, "en", "contact.send", nil); got != "contact.send" {
		t.Fatalf("expected key, got %q", got)
	}
	var seen error
	T(nil, "en", "contact.send", func(_, key string, _ []any, err error) string {
		seen = err
		return key
	})
	if !errors.Is(seen, ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", seen)
	}
}

func TestT_MissingKeyFallbacks(t *testing.T) {
	catalog := NewCatalog("en")
	catalog.Add("fi", map[string]string{"contact.send": "Lähetä"})

	if got := T(catalog, "fi", "contact.send", nil); got != "Lähetä" {
		t.Fatalf("expected translated string, got %q", got)
	}
	if got := T(catalog, "fi", "missing.key", nil, map[string]any{"default": "Fallback"}); got != "Fallback" {
		t.Fatalf("expected default hint, got %q", got)
	}
	if got := T(catalog, "fi", "missing.key", nil); got != "missing.key" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}
