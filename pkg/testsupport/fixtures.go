// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cmsfront/pkg/content"
)

//go:embed testdata/site.yaml
var siteFixture []byte

// SiteFixture returns the raw YAML bundle used across renderer and server
// tests. It carries every container appearance and special content slug.
func SiteFixture() []byte {
	return append([]byte(nil), siteFixture...)
}

// Sites decodes the shared fixture.
func Sites(t testing.TB) []content.Site {
	t.Helper()

	doc := content.MustNewDocument(content.SourceFromFS("site.yaml"), siteFixture)
	sites, err := content.Decode(doc)
	if err != nil {
		t.Fatalf("decode site fixture: %v", err)
	}
	return sites
}

// Repository returns a repository loaded with the shared fixture.
func Repository(t testing.TB) *content.Repository {
	t.Helper()

	repo, err := content.NewRepository(Sites(t)...)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	return repo
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	writeGoldenFile(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

func writeGoldenFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
