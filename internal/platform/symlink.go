// Package platform holds the OS-specific helpers the tool needs, currently
// symbolic link support for development-mode asset linking.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Symlink creates link pointing at target. On Windows, creating symlinks
// requires developer mode or elevation; the error says so when that is the
// likely cause.
func Symlink(target, link string) error {
	if err := os.Symlink(target, link); err != nil {
		if runtime.GOOS == "windows" {
			return fmt.Errorf("creating symlink (enable developer mode or run elevated): %w", err)
		}
		return fmt.Errorf("creating symlink: %w", err)
	}
	return nil
}

// Remove deletes a symlink. A missing link is not an error.
func Remove(link string) error {
	err := os.Remove(link)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing symlink: %w", err)
	}
	return nil
}

// Target returns what link points at.
func Target(link string) (string, error) {
	return os.Readlink(link)
}

// Supported reports whether the platform can create symlinks right now. On
// Windows this attempts a probe link, since support depends on the machine's
// developer mode setting rather than the OS alone.
func Supported() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	dir := os.TempDir()
	probe := filepath.Join(dir, ".extman-symlink-probe")
	defer os.Remove(probe)
	return os.Symlink(dir, probe) == nil
}
