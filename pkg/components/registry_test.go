package components

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func noopRenderer(*bytes.Buffer, any, ComponentData) error { return nil }

func TestRegistryDescriptorClone(t *testing.T) {
	reg := New()

	if err := reg.Register("test", Descriptor{Renderer: noopRenderer, Stylesheets: []string{"/a.css"}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc, ok := reg.Descriptor("test")
	if !ok {
		t.Fatalf("descriptor not found")
	}

	desc.Stylesheets = append(desc.Stylesheets, "/mutated.css")

	original, _ := reg.Descriptor("test")
	if len(original.Stylesheets) != 1 || original.Stylesheets[0] != "/a.css" {
		t.Fatalf("registry descriptor mutated: %#v", original.Stylesheets)
	}
}

func TestRegistryRejectsInvalidDescriptors(t *testing.T) {
	reg := New()
	if err := reg.Register(" ", Descriptor{Renderer: noopRenderer}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := reg.Register("nil", Descriptor{}); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}

func TestRegistryLookupIgnoresCase(t *testing.T) {
	reg := New()
	reg.MustRegister("faqContainer", Descriptor{Renderer: noopRenderer})

	desc, ok := reg.Descriptor("FAQCONTAINER")
	if !ok {
		t.Fatalf("expected case-insensitive lookup")
	}
	if desc.Name != "faqContainer" {
		t.Fatalf("expected registered name to be kept, got %q", desc.Name)
	}
}

func TestRegistryAssetsDeduplicates(t *testing.T) {
	reg := New()

	reg.MustRegister("quotesCarousel", Descriptor{
		Renderer:    noopRenderer,
		Stylesheets: []string{"shared.css", "carousel.css"},
		Scripts:     []Script{{Src: "carousel.js"}},
	})
	reg.MustRegister("carousel", Descriptor{
		Renderer:    noopRenderer,
		Stylesheets: []string{"shared.css"},
		Scripts:     []Script{{Src: "carousel.js"}, {Inline: "init()"}},
	})

	styles, scripts := reg.Assets([]string{"quotesCarousel", "carousel", "missing"})
	if diff := cmp.Diff([]string{"shared.css", "carousel.css"}, styles); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Script{{Src: "carousel.js"}, {Inline: "init()"}}, scripts); diff != "" {
		t.Fatalf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryCloneIsIndependent(t *testing.T) {
	reg := NewDefaultRegistry()
	clone := reg.Clone()
	clone.MustRegister("extra", Descriptor{Renderer: noopRenderer})

	if _, ok := reg.Descriptor("extra"); ok {
		t.Fatalf("clone registration leaked into the original registry")
	}
	if diff := cmp.Diff(len(reg.Names())+1, len(clone.Names())); diff != "" {
		t.Fatalf("clone size mismatch (-want +got):\n%s", diff)
	}
}

func TestTitleTag(t *testing.T) {
	cases := map[string]string{
		"h1":       "h1",
		"h4":       "h4",
		"navTitle": "span",
		"":         "h2",
		"banner":   "h2",
	}
	for kind, want := range cases {
		if got := (Title{Type: kind}).Tag(); got != want {
			t.Errorf("Title{%q}.Tag() = %q, want %q", kind, got, want)
		}
	}
}

func TestCSSToken(t *testing.T) {
	if got := cssToken(" fresh Dough;}"); got != "freshDough" {
		t.Fatalf("cssToken = %q", got)
	}
}
