package site

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// DefaultTheme is the name of the embedded theme.
const DefaultTheme = "default"

// ErrThemeNotFound is returned when a theme or variant is not registered.
var ErrThemeNotFound = errors.New("site: theme not found")

type manifestFile struct {
	Name      string                 `yaml:"name"`
	Version   string                 `yaml:"version"`
	Tokens    map[string]string      `yaml:"tokens"`
	Templates map[string]string      `yaml:"templates"`
	Assets    assetsFile             `yaml:"assets"`
	Variants  map[string]variantFile `yaml:"variants"`
}

type variantFile struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsFile        `yaml:"assets"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

// ParseManifest decodes a YAML theme manifest.
func ParseManifest(raw []byte) (*theme.Manifest, error) {
	var file manifestFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("site: decode theme manifest: %w", err)
	}
	if strings.TrimSpace(file.Name) == "" {
		return nil, errors.New("site: theme manifest name is required")
	}

	manifest := &theme.Manifest{
		Name:      file.Name,
		Version:   file.Version,
		Tokens:    file.Tokens,
		Templates: file.Templates,
		Assets:    theme.Assets{Prefix: file.Assets.Prefix, Files: file.Assets.Files},
	}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, variant := range file.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
				Assets:    theme.Assets{Prefix: variant.Assets.Prefix, Files: variant.Assets.Files},
			}
		}
	}
	return manifest, nil
}

// LoadManifests reads every *.yaml manifest in dir.
func LoadManifests(files fs.FS, dir string) ([]*theme.Manifest, error) {
	matches, err := fs.Glob(files, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("site: list themes: %w", err)
	}
	sort.Strings(matches)

	manifests := make([]*theme.Manifest, 0, len(matches))
	for _, match := range matches {
		raw, err := fs.ReadFile(files, match)
		if err != nil {
			return nil, fmt.Errorf("site: read theme %s: %w", match, err)
		}
		manifest, err := ParseManifest(raw)
		if err != nil {
			return nil, fmt.Errorf("site: theme %s: %w", match, err)
		}
		manifests = append(manifests, manifest)
	}
	return manifests, nil
}

// DefaultManifest returns the embedded theme.
func DefaultManifest() *theme.Manifest {
	raw, err := fs.ReadFile(embeddedThemes, "themes/default.yaml")
	if err != nil {
		panic(fmt.Sprintf("site: embedded theme missing: %v", err))
	}
	manifest, err := ParseManifest(raw)
	if err != nil {
		panic(err)
	}
	return manifest
}

// Themes is an in-memory theme.ThemeSelector.
type Themes struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Themes)(nil)

// NewThemes registers manifests and remembers the defaults used when Select
// is called with empty names.
func NewThemes(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*Themes, error) {
	t := &Themes{
		manifests:      make(map[string]*theme.Manifest),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if err := t.Register(manifest); err != nil {
			return nil, err
		}
	}
	if t.defaultTheme == "" {
		t.defaultTheme = DefaultTheme
	}
	return t, nil
}

// Register adds or replaces a manifest.
func (t *Themes) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return errors.New("site: theme manifest name is required")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.manifests[manifest.Name] = manifest
	return nil
}

// Select resolves a theme and variant, falling back to the defaults.
func (t *Themes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = t.defaultTheme
	}
	variant = strings.TrimSpace(variant)
	if variant == "" && name == t.defaultTheme {
		variant = t.defaultVariant
	}

	manifest, ok := t.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %s/%s", ErrThemeNotFound, name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig merges a selection into renderer configuration: variant
// tokens, templates, and asset files override the base manifest, every token
// becomes a "--<token>" CSS variable, and fallbacks fill partials the theme
// does not define.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := maps.Clone(manifest.Tokens)
	partials := maps.Clone(fallbacks)
	files := maps.Clone(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, manifest.Templates)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	} else {
		partials = mergeStrings(partials, manifest.Templates)
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file := strings.TrimSpace(files[key])
			if file == "" {
				return ""
			}
			if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}
}

func mergeStrings(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	maps.Copy(dst, src)
	return dst
}

// CSSVarsStyle renders the theme variables as a :root rule with keys sorted
// for stable output. Values that could close the rule are skipped.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		// values end up inside a <style> element
		if strings.ContainsAny(cfg.CSSVars[key], "<>{};") {
			continue
		}
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
