package extend

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/miquelnez/extman/internal/extension"
)

// Loader loads an extension's contribution entries and normalizes them to
// Extenders. Entries come from the extension's extend.yaml file and from
// programmatic contributions made by compiled-in extensions.
type Loader struct {
	fs afero.Fs

	mu          sync.Mutex
	factories   map[string]Factory
	callables   map[string]Func
	contributed map[string][]Entry
}

// NewLoader creates a loader reading contribution files through fsys.
func NewLoader(fsys afero.Fs) *Loader {
	return &Loader{
		fs:          fsys,
		factories:   make(map[string]Factory),
		callables:   make(map[string]Func),
		contributed: make(map[string][]Entry),
	}
}

// RegisterFactory makes a native-extender factory addressable from
// extend.yaml entries of the form {use: name, with: {...}}.
func (l *Loader) RegisterFactory(name string, f Factory) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.factories[name] = f
}

// RegisterCallable makes a callable addressable from legacy string entries.
func (l *Loader) RegisterCallable(name string, fn Func) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callables[name] = fn
}

// Contribute records entries on behalf of a compiled-in extension. They are
// appended after whatever the extension's file contributes.
func (l *Loader) Contribute(extensionID string, entries ...Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.contributed[extensionID] = append(l.contributed[extensionID], entries...)
}

// Load returns the extension's extenders in declared order. An extension
// with no contribution file and no programmatic entries contributes nothing;
// that is not an error.
func (l *Loader) Load(ext *extension.Descriptor) ([]Extender, error) {
	var entries []Entry

	path := ext.ExtendPath()
	exists, err := afero.Exists(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("checking contribution file for %s: %w", ext.ID, err)
	}
	if exists {
		fileEntries, err := l.loadFile(ext.ID, path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fileEntries...)
	}

	l.mu.Lock()
	entries = append(entries, l.contributed[ext.ID]...)
	l.mu.Unlock()

	extenders := make([]Extender, 0, len(entries))
	for _, e := range entries {
		normalized, err := l.normalize(e)
		if err != nil {
			return nil, fmt.Errorf("extension %s: %w", ext.ID, err)
		}
		extenders = append(extenders, normalized)
	}
	return extenders, nil
}

// loadFile parses extend.yaml: either a single entry or a sequence of them.
func (l *Loader) loadFile(id, path string) ([]Entry, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading contribution file for %s: %w", id, err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing contribution file for %s: %w", id, err)
	}
	if raw == nil {
		return nil, nil
	}

	items, ok := raw.([]any)
	if !ok {
		items = []any{raw}
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		entry, err := entryFromYAML(item)
		if err != nil {
			return nil, fmt.Errorf("contribution file for %s, entry %d: %w", id, i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// entryFromYAML maps one decoded YAML value to an Entry: a bare string is a
// legacy reference, a mapping with "use" is a declarative native spec.
func entryFromYAML(v any) (Entry, error) {
	switch val := v.(type) {
	case string:
		return Reference(val), nil
	case map[string]any:
		use, _ := val["use"].(string)
		if use == "" {
			return Entry{}, fmt.Errorf("mapping entry missing %q key", "use")
		}
		with, _ := val["with"].(map[string]any)
		return Spec(use, with), nil
	default:
		return Entry{}, fmt.Errorf("unsupported entry type %T", v)
	}
}

// normalize maps any entry variant to the unified Extender shape.
func (l *Loader) normalize(e Entry) (Extender, error) {
	switch e.kind {
	case kindNative:
		return e.native, nil
	case kindCallable:
		return funcExtender{fn: e.call}, nil
	case kindReference:
		l.mu.Lock()
		fn, ok := l.callables[e.ref]
		l.mu.Unlock()
		if !ok {
			return nil, fmt.Errorf("unknown extender reference %q", e.ref)
		}
		return funcExtender{fn: fn}, nil
	case kindSpec:
		l.mu.Lock()
		f, ok := l.factories[e.use]
		l.mu.Unlock()
		if !ok {
			return nil, fmt.Errorf("unknown extender factory %q", e.use)
		}
		ext, err := f(e.with)
		if err != nil {
			return nil, fmt.Errorf("building extender %q: %w", e.use, err)
		}
		return ext, nil
	default:
		return nil, fmt.Errorf("invalid entry")
	}
}
