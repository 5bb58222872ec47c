// Package paths resolves the host application directories the extension
// subsystem needs: the base installation, the public web root, and the
// writable storage area. Conventional file locations inside those roots are
// derived here so the rest of the code never hardcodes layout.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/miquelnez/extman/internal/branding"
)

// Directory and file name constants for the host layout convention.
const (
	PackagesDir         = "packages"
	InstallManifestFile = "installed.json"
	AssetsDir           = "assets"
	ExtensionsDir       = "extensions"
	SettingsFile        = "settings.yaml"
	MigrationLedgerFile = "extman.db"
)

// Paths holds the three host application roots.
type Paths struct {
	// Base is the host installation root; the package tree and install
	// manifest live beneath it.
	Base string
	// Public is the web-served document root; published assets go here.
	Public string
	// Storage is the writable area for settings and the migration ledger.
	Storage string
}

// FromEnv builds Paths from EXTMAN_BASE / EXTMAN_PUBLIC / EXTMAN_STORAGE,
// falling back to base, base/public and base/storage under the given default.
func FromEnv(defaultBase string) Paths {
	base := defaultBase
	if v := os.Getenv(branding.EnvVar("BASE")); v != "" {
		base = v
	}
	public := filepath.Join(base, "public")
	if v := os.Getenv(branding.EnvVar("PUBLIC")); v != "" {
		public = v
	}
	storage := filepath.Join(base, "storage")
	if v := os.Getenv(branding.EnvVar("STORAGE")); v != "" {
		storage = v
	}
	return Paths{Base: base, Public: public, Storage: storage}
}

// InstallManifest returns the path of the package install manifest.
func (p Paths) InstallManifest() string {
	return filepath.Join(p.Base, PackagesDir, InstallManifestFile)
}

// PackageRoot returns the root directory of a package by its name
// (e.g., "acme/widget" → <base>/packages/acme/widget).
func (p Paths) PackageRoot(name string) string {
	return filepath.Join(p.Base, PackagesDir, filepath.FromSlash(name))
}

// PublicAssets returns the directory under which extension assets are
// published, one subdirectory per extension.
func (p Paths) PublicAssets() string {
	return filepath.Join(p.Public, AssetsDir, ExtensionsDir)
}

// Settings returns the path of the settings store file.
func (p Paths) Settings() string {
	return filepath.Join(p.Storage, SettingsFile)
}

// MigrationLedger returns the path of the sqlite migration ledger.
func (p Paths) MigrationLedger() string {
	return filepath.Join(p.Storage, MigrationLedgerFile)
}

// AssetNamespace converts an extension id to the directory name its published
// assets live under. Package names contain a slash ("acme/widget"), which is
// not usable as a single path element, so it becomes a dash.
func AssetNamespace(id string) string {
	return strings.ReplaceAll(id, "/", "-")
}
