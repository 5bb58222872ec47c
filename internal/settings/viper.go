package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/miquelnez/extman/internal/branding"
)

// File is a Store backed by a YAML settings file via viper. Environment
// variables with the EXTMAN_ prefix override file values on read.
type File struct {
	v    *viper.Viper
	path string
}

// NewFile creates a file-backed store at path. The file does not need to
// exist yet; it is created on the first Set.
func NewFile(path string) *File {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	// Ignore error if the settings file doesn't exist yet.
	_ = v.ReadInConfig()

	return &File{v: v, path: path}
}

// Get returns the value for key.
func (f *File) Get(key string) (string, bool) {
	if !f.v.IsSet(key) {
		return "", false
	}
	return f.v.GetString(key), true
}

// Set persists a key-value pair to the settings file.
func (f *File) Set(key, value string) error {
	f.v.Set(key, value)

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := f.v.WriteConfigAs(f.path); err != nil {
		return fmt.Errorf("writing settings file %s: %w", f.path, err)
	}
	return nil
}
