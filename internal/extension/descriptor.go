package extension

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/miquelnez/extman/internal/manifest"
)

// Conventional locations inside an extension package.
const (
	MigrationsDir = "migrations"
	AssetsDir     = "assets"
	ExtendFile    = "extend.yaml"
)

// Descriptor is the in-memory record of one discovered extension. Identity
// fields are immutable after discovery; the lifecycle manager exclusively
// owns the Installed/Enabled/Version flags and updates them in place. A
// descriptor is never removed from the registry during a run; uninstall
// only flips Installed to false.
type Descriptor struct {
	// ID is the package name (e.g., "acme/widget"), stable for the
	// process lifetime.
	ID string

	// Path is the extension package root on disk.
	Path string

	// Manifest is the parsed extension.json, nil when the file was
	// missing or unreadable.
	Manifest *manifest.Extension

	// Installed, Enabled and Version are owned by the lifecycle manager.
	// Enabled implies Installed.
	Installed bool
	Enabled   bool
	Version   string
}

// Title returns the manifest title, falling back to the id so sorting and
// display never see an empty string.
func (d *Descriptor) Title() string {
	if d.Manifest != nil && d.Manifest.Title != "" {
		return d.Manifest.Title
	}
	return d.ID
}

// MigrationsPath returns the extension's migration directory.
func (d *Descriptor) MigrationsPath() string {
	return filepath.Join(d.Path, MigrationsDir)
}

// AssetsPath returns the extension's shipped assets directory.
func (d *Descriptor) AssetsPath() string {
	return filepath.Join(d.Path, AssetsDir)
}

// ExtendPath returns the extension's bootstrap contribution file.
func (d *Descriptor) ExtendPath() string {
	return filepath.Join(d.Path, ExtendFile)
}

// HasMigrations reports whether the extension ships a migration directory.
func (d *Descriptor) HasMigrations(fsys afero.Fs) bool {
	ok, err := afero.DirExists(fsys, d.MigrationsPath())
	return err == nil && ok
}

// HasAssets reports whether the extension ships an assets directory.
func (d *Descriptor) HasAssets(fsys afero.Fs) bool {
	ok, err := afero.DirExists(fsys, d.AssetsPath())
	return err == nil && ok
}
