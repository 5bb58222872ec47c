package extension

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/miquelnez/extman/internal/branding"
	"github.com/miquelnez/extman/internal/manifest"
	"github.com/miquelnez/extman/internal/paths"
	"github.com/miquelnez/extman/internal/settings"
)

// Registry owns the process-scoped collection of discovered extensions.
// Discovery runs lazily on first access and the result is memoized until
// Refresh invalidates it. The mutex only guards the cache so the fsnotify
// watcher callback is safe; lifecycle operations themselves assume a single
// administrative actor.
type Registry struct {
	fs    afero.Fs
	paths paths.Paths
	store settings.Store

	mu    sync.Mutex
	cache []*Descriptor
	index map[string]*Descriptor
}

// NewRegistry creates a registry reading through fsys against the given host
// paths, consulting store for the enabled-extension list.
func NewRegistry(fsys afero.Fs, p paths.Paths, store settings.Store) *Registry {
	return &Registry{fs: fsys, paths: p, store: store}
}

// All returns every discovered extension sorted by title. The collection is
// built once and reused until Refresh. A missing install manifest surfaces
// as ErrDiscoveryUnavailable.
func (r *Registry) All() ([]*Descriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensure(); err != nil {
		return nil, err
	}
	out := make([]*Descriptor, len(r.cache))
	copy(out, r.cache)
	return out, nil
}

// Get returns the descriptor for id, or ErrUnknownExtension.
func (r *Registry) Get(id string) (*Descriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensure(); err != nil {
		return nil, err
	}
	d, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, id)
	}
	return d, nil
}

// Enabled returns the enabled extensions in registry (title) order. Ids in
// the persisted enabled list that no longer resolve to a discoverable
// extension are silently dropped.
func (r *Registry) Enabled() ([]*Descriptor, error) {
	set, err := settings.LoadEnabled(r.store)
	if err != nil {
		return nil, err
	}

	all, err := r.All()
	if err != nil {
		return nil, err
	}

	var out []*Descriptor
	for _, d := range all {
		if d.Enabled && set.Has(d.ID) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Refresh invalidates the memoized collection; the next access rediscovers.
func (r *Registry) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = nil
	r.index = nil
}

// ensure populates the cache if needed. Caller holds r.mu.
func (r *Registry) ensure() error {
	if r.cache != nil {
		return nil
	}

	descriptors, err := r.discover()
	if err != nil {
		return err
	}

	index := make(map[string]*Descriptor, len(descriptors))
	for _, d := range descriptors {
		index[d.ID] = d
	}

	r.cache = descriptors
	r.index = index
	return nil
}

// titleCollator compares titles case- and accent-insensitively regardless of
// process locale.
var titleCollator = collate.New(language.Und, collate.Loose)

// discover reads the install manifest and builds descriptors for every
// extension-typed package, sorted by title with id tie-break.
func (r *Registry) discover() ([]*Descriptor, error) {
	manifestPath := r.paths.InstallManifest()

	exists, err := afero.Exists(r.fs, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("checking install manifest: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrDiscoveryUnavailable, manifestPath)
	}

	im, err := manifest.ParseInstallManifest(r.fs, manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDiscoveryUnavailable, manifestPath)
		}
		return nil, err
	}

	set, err := settings.LoadEnabled(r.store)
	if err != nil {
		return nil, err
	}

	var descriptors []*Descriptor
	for _, entry := range im.Packages {
		if entry.Type != branding.PackageType() || strings.TrimSpace(entry.Name) == "" {
			continue
		}

		d := &Descriptor{
			ID:        entry.Name,
			Path:      r.paths.PackageRoot(entry.Name),
			Installed: true,
			Enabled:   set.Has(entry.Name),
			Version:   normalizeVersion(entry.Version),
		}

		// A missing or malformed extension.json is tolerated; the
		// descriptor falls back to its id for display and sorting.
		if ext, err := manifest.ParseExtension(r.fs, filepath.Join(d.Path, "extension.json")); err == nil {
			d.Manifest = ext
		}

		descriptors = append(descriptors, d)
	}

	sort.SliceStable(descriptors, func(i, j int) bool {
		cmp := titleCollator.CompareString(descriptors[i].Title(), descriptors[j].Title())
		if cmp == 0 {
			return descriptors[i].ID < descriptors[j].ID
		}
		return cmp < 0
	})

	return descriptors, nil
}

// normalizeVersion returns the canonical semver form when the install
// manifest version parses, otherwise the raw string unchanged.
func normalizeVersion(raw string) string {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return raw
	}
	return v.String()
}
