package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// DefaultLocale is used when nothing better can be negotiated.
const DefaultLocale = "en"

// Catalog is an in-memory Translator backed by flattened key/message maps.
type Catalog struct {
	mu       sync.RWMutex
	fallback string
	messages map[string]map[string]string
}

var _ Translator = (*Catalog)(nil)

// NewCatalog returns an empty catalog that falls back to the given locale.
func NewCatalog(fallback string) *Catalog {
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		fallback = DefaultLocale
	}
	return &Catalog{
		fallback: fallback,
		messages: make(map[string]map[string]string),
	}
}

// Default loads the catalogs shipped with the module.
func Default() (*Catalog, error) {
	return LoadFS(embeddedLocales, "locales", DefaultLocale)
}

// LoadFS reads every <locale>.yaml file in dir.
func LoadFS(files fs.FS, dir, fallback string) (*Catalog, error) {
	if files == nil {
		return nil, fmt.Errorf("i18n: filesystem is required")
	}
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return nil, fmt.Errorf("i18n: read %s: %w", dir, err)
	}

	catalog := NewCatalog(fallback)
	for _, entry := range entries {
		name := entry.Name()
		ext := path.Ext(name)
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		raw, err := fs.ReadFile(files, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		if err := catalog.AddYAML(strings.TrimSuffix(name, ext), raw); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// AddYAML merges a nested YAML document into the locale, flattening keys
// with dots ("contact: {name: Name}" becomes "contact.name").
func (c *Catalog) AddYAML(locale string, raw []byte) error {
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("i18n: decode %s: %w", locale, err)
	}
	flat := make(map[string]string)
	flatten("", tree, flat)
	c.Add(locale, flat)
	return nil
}

// Add merges messages into the locale. Later calls override earlier keys.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = normalizeLocale(locale)
	if locale == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket, ok := c.messages[locale]
	if !ok {
		bucket = make(map[string]string, len(messages))
		c.messages[locale] = bucket
	}
	for key, msg := range messages {
		bucket[key] = msg
	}
}

// Locales lists the loaded locales in sorted order.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Translate looks the key up in locale, then its base language, then the
// fallback locale. Args are applied with printf verbs when present.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range c.candidates(locale) {
		if msg, ok := c.messages[candidate][key]; ok {
			return format(candidate, msg, args), nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
}

func (c *Catalog) candidates(locale string) []string {
	locale = normalizeLocale(locale)
	out := make([]string, 0, 3)
	if locale != "" {
		out = append(out, locale)
		if base, _, found := strings.Cut(locale, "-"); found {
			out = append(out, base)
		}
	}
	return append(out, c.fallback)
}

func format(locale, msg string, args []any) string {
	var verbs []any
	for _, arg := range args {
		if _, hint := arg.(map[string]any); hint {
			continue
		}
		verbs = append(verbs, arg)
	}
	if len(verbs) == 0 || !strings.Contains(msg, "%") {
		return msg
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return message.NewPrinter(tag).Sprintf(msg, verbs...)
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, out)
		case nil:
			out[full] = ""
		default:
			out[full] = fmt.Sprint(v)
		}
	}
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}
