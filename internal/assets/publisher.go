// Package assets publishes an extension's shipped static assets into the
// host's public web root, one namespaced directory per extension.
package assets

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/miquelnez/extman/internal/extension"
	"github.com/miquelnez/extman/internal/paths"
)

// Publisher copies extension asset trees into the public asset root.
type Publisher struct {
	fs   afero.Fs
	root string
}

// NewPublisher creates a publisher writing beneath root
// (e.g., <public>/assets/extensions).
func NewPublisher(fsys afero.Fs, root string) *Publisher {
	return &Publisher{fs: fsys, root: root}
}

// Dir returns the public directory an extension's assets are published to.
func (p *Publisher) Dir(ext *extension.Descriptor) string {
	return filepath.Join(p.root, paths.AssetNamespace(ext.ID))
}

// Path composes the public path of one published asset file.
func (p *Publisher) Path(ext *extension.Descriptor, relative string) string {
	return filepath.Join(p.Dir(ext), filepath.FromSlash(relative))
}

// Publish copies the extension's assets directory into the public root.
// An extension without assets is a no-op. Re-running replaces the published
// tree with current contents.
func (p *Publisher) Publish(ext *extension.Descriptor) error {
	if !ext.HasAssets(p.fs) {
		return nil
	}

	dst := p.Dir(ext)

	// Remove any previous publication so stale files don't linger.
	if err := p.fs.RemoveAll(dst); err != nil {
		return fmt.Errorf("clearing published assets for %s: %w", ext.ID, err)
	}
	if err := copyDir(p.fs, ext.AssetsPath(), dst); err != nil {
		return fmt.Errorf("publishing assets for %s: %w", ext.ID, err)
	}
	return nil
}

// Unpublish deletes the extension's published directory. Absence is not an
// error.
func (p *Publisher) Unpublish(ext *extension.Descriptor) error {
	if err := p.fs.RemoveAll(p.Dir(ext)); err != nil {
		return fmt.Errorf("removing published assets for %s: %w", ext.ID, err)
	}
	return nil
}

// copyDir recursively copies src to dst.
func copyDir(fsys afero.Fs, src, dst string) error {
	srcInfo, err := fsys.Stat(src)
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := afero.ReadDir(fsys, src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(fsys, srcPath, dstPath); err != nil {
				return err
			}
		} else if entry.Mode().IsRegular() {
			if err := copyFile(fsys, srcPath, dstPath); err != nil {
				return err
			}
		}
		// Symlinks and other special files are skipped during publication.
	}

	return nil
}

// copyFile copies a single file, preserving permissions.
func copyFile(fsys afero.Fs, src, dst string) error {
	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return err
	}

	srcInfo, err := fsys.Stat(src)
	if err != nil {
		return err
	}

	return afero.WriteFile(fsys, dst, data, srcInfo.Mode().Perm())
}
