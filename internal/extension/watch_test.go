package extension

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/miquelnez/extman/internal/paths"
	"github.com/miquelnez/extman/internal/settings"
)

func TestWatchRefreshesOnManifestChange(t *testing.T) {
	base := t.TempDir()
	p := paths.Paths{Base: base, Public: filepath.Join(base, "public"), Storage: filepath.Join(base, "storage")}

	if err := os.MkdirAll(filepath.Dir(p.InstallManifest()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p.InstallManifest(), []byte(`{"packages": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := NewRegistry(afero.NewOsFs(), p, settings.NewMemory())
	if _, err := reg.All(); err != nil {
		t.Fatalf("All: %v", err)
	}

	refreshed := make(chan struct{}, 1)
	stop, err := reg.Watch(func() {
		select {
		case refreshed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	manifest := `{"packages": [{"name": "acme/widget", "type": "extman-extension", "version": "1.0.0"}]}`
	if err := os.WriteFile(p.InstallManifest(), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-refreshed:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not observe the manifest change")
	}

	all, err := reg.All()
	if err != nil {
		t.Fatalf("All after change: %v", err)
	}
	if len(all) != 1 || all[0].ID != "acme/widget" {
		t.Errorf("All after change = %+v, want acme/widget", all)
	}
}
