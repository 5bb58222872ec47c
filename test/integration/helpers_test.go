//go:build integration

package integration_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/miquelnez/extman/internal/assets"
	"github.com/miquelnez/extman/internal/event"
	"github.com/miquelnez/extman/internal/extension"
	"github.com/miquelnez/extman/internal/lifecycle"
	"github.com/miquelnez/extman/internal/migrate"
	"github.com/miquelnez/extman/internal/paths"
	"github.com/miquelnez/extman/internal/settings"
)

// host is a real on-disk host application tree plus the subsystem wired
// against it, the way the command layer wires it.
type host struct {
	paths    paths.Paths
	store    *settings.File
	registry *extension.Registry
	manager  *lifecycle.Manager
	db       *sql.DB
}

// newHost builds an isolated host tree under a temp directory. Call wire to
// get a working subsystem; call it again for a fresh process-restart view.
func newHost(t *testing.T) *host {
	t.Helper()

	base := t.TempDir()
	t.Setenv("EXTMAN_BASE", base)

	h := &host{paths: paths.FromEnv(base)}
	if err := os.MkdirAll(h.paths.Storage, 0o755); err != nil {
		t.Fatal(err)
	}
	h.wire(t)
	t.Cleanup(func() { h.db.Close() })
	return h
}

// wire constructs the subsystem against the host tree, replacing any prior
// wiring. Reusing it mid-test simulates a process restart.
func (h *host) wire(t *testing.T) {
	t.Helper()

	if h.db != nil {
		h.db.Close()
	}

	fsys := afero.NewOsFs()
	h.store = settings.NewFile(h.paths.Settings())
	h.registry = extension.NewRegistry(fsys, h.paths, h.store)

	db, err := migrate.Open(h.paths.MigrationLedger())
	if err != nil {
		t.Fatal(err)
	}
	migrator, err := migrate.NewSQLite(db, fsys)
	if err != nil {
		db.Close()
		t.Fatal(err)
	}
	h.db = db

	h.manager = lifecycle.NewManager(lifecycle.Config{
		Fs:       fsys,
		Registry: h.registry,
		Settings: h.store,
		Migrator: migrator,
		Assets:   assets.NewPublisher(fsys, h.paths.PublicAssets()),
		Events:   event.NewBus(),
		Logger:   zerolog.Nop(),
	})
}

// installExtension drops a package into the host tree and registers it in the
// install manifest.
func (h *host) installExtension(t *testing.T, name string) {
	t.Helper()

	root := h.paths.PackageRoot(name)
	writeFile(t, filepath.Join(root, "extension.json"),
		`{"name": "`+name+`", "title": "Integration Fixture"}`)
	writeFile(t, filepath.Join(root, "migrations", "001_init.sql"),
		"-- +migrate Up\nCREATE TABLE fixture_items (id INTEGER PRIMARY KEY, label TEXT);\n"+
			"-- +migrate Down\nDROP TABLE fixture_items;\n")
	writeFile(t, filepath.Join(root, "assets", "app.css"), "body{}\n")

	writeFile(t, h.paths.InstallManifest(),
		`{"packages": [{"name": "`+name+`", "type": "extman-extension", "version": "1.0.0"}]}`)
}

// tableExists checks the migration target schema through the shared ledger DB
// handle, which points at the same sqlite file.
func (h *host) tableExists(t *testing.T, table string) bool {
	t.Helper()

	var n int
	err := h.db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
	).Scan(&n)
	if err != nil {
		t.Fatal(err)
	}
	return n > 0
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
