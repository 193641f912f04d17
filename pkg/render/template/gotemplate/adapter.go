package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-cmsfront/pkg/render/template"
)

const templateExt = ".tpl"

// Option configures the engine before construction.
type Option func(*Engine) error

// WithBaseDir searches a directory on disk before any embedded filesystem,
// so site owners can override single templates.
func WithBaseDir(dir string) Option {
	return func(e *Engine) error {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return nil
		}
		loader, err := pongo2.NewLocalFileSystemLoader(dir)
		if err != nil {
			return fmt.Errorf("gotemplate: template dir %q: %w", dir, err)
		}
		e.loaders = append([]pongo2.TemplateLoader{loader}, e.loaders...)
		return nil
	}
}

// WithFS appends a filesystem to the search path.
func WithFS(files fs.FS) Option {
	return func(e *Engine) error {
		if files != nil {
			e.loaders = append(e.loaders, pongo2.NewFSLoader(files))
		}
		return nil
	}
}

// WithAssetPrefix sets the URL prefix used by asset("name").
func WithAssetPrefix(prefix string) Option {
	return func(e *Engine) error {
		e.assetPrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
		return nil
	}
}

// Engine renders page and component templates with pongo2. Compiled
// templates are cached by path for the lifetime of the engine.
type Engine struct {
	loaders     []pongo2.TemplateLoader
	assetPrefix string

	set      *pongo2.TemplateSet
	compiled sync.Map // path -> *pongo2.Template

	// globals is swapped under mu; executions hold the read lock.
	mu sync.RWMutex
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine. At least one template source is required.
func New(options ...Option) (*Engine, error) {
	e := &Engine{assetPrefix: "/assets"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if len(e.loaders) == 0 {
		return nil, errors.New("gotemplate: no template source, use WithBaseDir or WithFS")
	}

	e.set = pongo2.NewSet("cmsfront", e.loaders...)
	e.set.Globals = pongo2.Context{"asset": e.asset}
	registerDefaultFilters()
	return e, nil
}

// Render executes name as inline source when it contains template tags and
// as a template path otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes a template file. The ".tpl" extension is optional.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	if !strings.HasSuffix(name, templateExt) {
		name += templateExt
	}
	tpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.run(tpl, name, data, out)
}

// RenderString compiles and executes inline template source. The result is
// not cached.
func (e *Engine) RenderString(source string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tpl, err := e.set.FromString(source)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.run(tpl, "inline template", data, out)
}

// RegisterFilter adds a filter. pongo2 keeps filters in one process-wide
// table, so a name can be registered once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template can read.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	globals, err := viewContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global context: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.set.Globals.Update(globals)
	return nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	if cached, ok := e.compiled.Load(path); ok {
		return cached.(*pongo2.Template), nil
	}
	tpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	actual, _ := e.compiled.LoadOrStore(path, tpl)
	return actual.(*pongo2.Template), nil
}

func (e *Engine) run(tpl *pongo2.Template, label string, data any, out []io.Writer) (string, error) {
	ctx, err := viewContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s: %w", label, err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	html := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, html); err != nil {
			return "", fmt.Errorf("gotemplate: write %s: %w", label, err)
		}
	}
	return html, nil
}

func (e *Engine) asset(name string) string {
	return e.assetPrefix + "/" + strings.TrimLeft(strings.TrimSpace(name), "/")
}

// viewContext turns view data into a pongo2 context. Top-level functions are
// kept callable; every other value is normalised through JSON so templates
// address struct fields by their json names.
func viewContext(data any) (pongo2.Context, error) {
	var fields map[string]any
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		fields = v
	case map[string]any:
		fields = v
	default:
		decoded, err := normalize(v)
		if err != nil {
			return nil, err
		}
		object, ok := decoded.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("view data must encode to an object, got %T", data)
		}
		return pongo2.Context(object), nil
	}

	ctx := make(pongo2.Context, len(fields))
	for key, value := range fields {
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		if value != nil && reflect.TypeOf(value).Kind() == reflect.Func {
			ctx[key] = value
			continue
		}
		decoded, err := normalize(value)
		if err != nil {
			return nil, fmt.Errorf("view field %q: %w", key, err)
		}
		ctx[key] = decoded
	}
	return ctx, nil
}

func normalize(value any) (any, error) {
	switch value.(type) {
	case nil, string, bool, int, int64, float64:
		return value, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}
