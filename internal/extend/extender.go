// Package extend collects behavior contributions ("extenders") from enabled
// extensions. Contributions arrive in three shapes: native extenders,
// legacy bare callables, and legacy string references; all are normalized to
// the single Extender interface before the host applies them at boot.
package extend

import (
	"github.com/miquelnez/extman/internal/extension"
)

// App is the host-application surface extenders act on during boot. The
// host supplies the implementation.
type App interface {
	// Bind registers a named contribution with the host.
	Bind(name string, value any)
}

// Extender applies one extension's contribution to the host application.
type Extender interface {
	Extend(app App, ext *extension.Descriptor) error
}

// Func is the legacy bare-callable shape of an extender.
type Func func(app App, ext *extension.Descriptor) error

// Factory builds a native extender from its extend.yaml configuration.
type Factory func(config map[string]any) (Extender, error)

type entryKind int

const (
	kindNative entryKind = iota
	kindCallable
	kindReference
	kindSpec
)

// Entry is one raw contribution before normalization. Exactly one variant is
// set, selected by the constructor used.
type Entry struct {
	kind   entryKind
	native Extender
	call   Func
	ref    string
	use    string
	with   map[string]any
}

// Native wraps an extender already in the unified shape.
func Native(e Extender) Entry {
	return Entry{kind: kindNative, native: e}
}

// Callable wraps a legacy bare callable.
func Callable(fn Func) Entry {
	return Entry{kind: kindCallable, call: fn}
}

// Reference wraps a legacy string naming a registered callable.
func Reference(name string) Entry {
	return Entry{kind: kindReference, ref: name}
}

// Spec wraps a declarative entry naming a registered factory plus its
// configuration.
func Spec(use string, with map[string]any) Entry {
	return Entry{kind: kindSpec, use: use, with: with}
}

// funcExtender is the compatibility adapter exposing legacy callables as
// Extenders. Extend passes through both the host and the owning extension.
type funcExtender struct {
	fn Func
}

func (f funcExtender) Extend(app App, ext *extension.Descriptor) error {
	return f.fn(app, ext)
}

// Bound pairs an extender with its owning extension so the wrapped call
// receives both the host and the extension identity.
type Bound struct {
	Extension *extension.Descriptor
	Extender  Extender
}

// Extend applies the contribution to the host.
func (b Bound) Extend(app App) error {
	return b.Extender.Extend(app, b.Extension)
}
