package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSymlinkRoundtrip(t *testing.T) {
	if !Supported() {
		t.Skip("symlinks not supported on this machine")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "assets")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")

	if err := Symlink(target, link); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	got, err := Target(link)
	if err != nil {
		t.Fatalf("Target: %v", err)
	}
	if got != target {
		t.Errorf("Target = %q, want %q", got, target)
	}

	if err := Remove(link); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Error("link still present after Remove")
	}
}

func TestRemoveMissingLink(t *testing.T) {
	if err := Remove(filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Errorf("Remove of missing link: %v", err)
	}
}
