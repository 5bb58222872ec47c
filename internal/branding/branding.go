// Package branding provides compile-time identity values for extman.
//
// Forkers edit branding.yaml in this package. Go's //go:embed bakes it
// into the binary, so a rebrand is a one-file edit plus a rebuild.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	PackageType string `yaml:"package_type"`
	EnabledKey  string `yaml:"enabled_key"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "extman",
			DisplayName: "Extman",
			Description: "Extension lifecycle manager for the host application",
			EnvPrefix:   "EXTMAN",
			GoModule:    "github.com/miquelnez/extman",
			PackageType: "extman-extension",
			EnabledKey:  "extensions_enabled",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "extman").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "EXTMAN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Used by rebrand tooling, not at runtime.
func GoModule() string { load(); return defaults.GoModule }

// PackageType returns the install-manifest type marker that identifies a
// package as an extension (e.g., "extman-extension").
func PackageType() string { load(); return defaults.PackageType }

// EnabledKey returns the settings key holding the enabled-extension list.
func EnabledKey() string { load(); return defaults.EnabledKey }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("BASE") → "EXTMAN_BASE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
