package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

// ParseExtension reads and parses an extension.json file.
func ParseExtension(fsys afero.Fs, path string) (*Extension, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var ext Extension
	if err := json.Unmarshal(data, &ext); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	return &ext, nil
}

// ParseInstallManifest reads and parses the host's install manifest. Both the
// object form {"packages": [...]} and a bare top-level array are accepted.
func ParseInstallManifest(fsys afero.Fs, path string) (*InstallManifest, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading install manifest %s: %w", path, err)
	}

	var im InstallManifest
	if err := json.Unmarshal(data, &im); err == nil && im.Packages != nil {
		return &im, nil
	}

	var entries []InstallEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing install manifest %s: %w", path, err)
	}
	return &InstallManifest{Packages: entries}, nil
}
