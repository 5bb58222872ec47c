package extend

import (
	"errors"

	"github.com/miquelnez/extman/internal/extension"
)

// Aggregator flattens the contributions of every enabled extension, in
// registry order, into the sequence the host applies at boot. The order is
// load-bearing: later extensions may intentionally override earlier ones.
type Aggregator struct {
	registry *extension.Registry
	loader   *Loader
}

// NewAggregator creates an aggregator over the given registry and loader.
func NewAggregator(reg *extension.Registry, loader *Loader) *Aggregator {
	return &Aggregator{registry: reg, loader: loader}
}

// Extenders returns the flattened, bound extender sequence for all enabled
// extensions. A fresh host with no install manifest yields an empty sequence.
func (a *Aggregator) Extenders() ([]Bound, error) {
	enabled, err := a.registry.Enabled()
	if err != nil {
		if errors.Is(err, extension.ErrDiscoveryUnavailable) {
			return nil, nil
		}
		return nil, err
	}

	var out []Bound
	for _, ext := range enabled {
		extenders, err := a.loader.Load(ext)
		if err != nil {
			return nil, err
		}
		for _, e := range extenders {
			out = append(out, Bound{Extension: ext, Extender: e})
		}
	}
	return out, nil
}

// Apply runs every aggregated extender against the host in order.
func (a *Aggregator) Apply(app App) error {
	bound, err := a.Extenders()
	if err != nil {
		return err
	}
	for _, b := range bound {
		if err := b.Extend(app); err != nil {
			return err
		}
	}
	return nil
}
