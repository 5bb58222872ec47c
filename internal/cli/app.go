package cli

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/miquelnez/extman/internal/assets"
	"github.com/miquelnez/extman/internal/event"
	"github.com/miquelnez/extman/internal/extend"
	"github.com/miquelnez/extman/internal/extension"
	"github.com/miquelnez/extman/internal/lifecycle"
	"github.com/miquelnez/extman/internal/migrate"
	"github.com/miquelnez/extman/internal/paths"
	"github.com/miquelnez/extman/internal/settings"
)

// app bundles the wired subsystem for one command invocation.
type app struct {
	fs         afero.Fs
	paths      paths.Paths
	registry   *extension.Registry
	manager    *lifecycle.Manager
	publisher  *assets.Publisher
	aggregator *extend.Aggregator

	db *sql.DB
}

// newApp wires the subsystem against the real filesystem and the host
// layout under --base (env overrides apply).
func newApp() (*app, error) {
	p := paths.FromEnv(flagBase)
	fsys := afero.NewOsFs()

	if err := os.MkdirAll(p.Storage, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	store := settings.NewFile(p.Settings())
	registry := extension.NewRegistry(fsys, p, store)

	db, err := migrate.Open(p.MigrationLedger())
	if err != nil {
		return nil, err
	}
	migrator, err := migrate.NewSQLite(db, fsys)
	if err != nil {
		db.Close()
		return nil, err
	}

	publisher := assets.NewPublisher(fsys, p.PublicAssets())
	loader := extend.NewLoader(fsys)

	manager := lifecycle.NewManager(lifecycle.Config{
		Fs:       fsys,
		Registry: registry,
		Settings: store,
		Migrator: migrator,
		Assets:   publisher,
		Events:   event.NewBus(),
		Logger:   newLogger(),
	})

	return &app{
		fs:         fsys,
		paths:      p,
		registry:   registry,
		manager:    manager,
		publisher:  publisher,
		aggregator: extend.NewAggregator(registry, loader),
		db:         db,
	}, nil
}

// close releases resources held by the app.
func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

// manifestPath returns an extension's manifest location, for validation output.
func (a *app) manifestPath(d *extension.Descriptor) string {
	return filepath.Join(d.Path, "extension.json")
}
