// Package lifecycle drives extensions through their enable, disable, and
// uninstall transitions. Each transition is an ordered pipeline over several
// independent side effects (schema migrations, published assets, persisted
// enabled-list, events) with no transaction tying them together, so the
// ordering is the safety mechanism: migrations and assets run before the
// enabled-list commit point, and the in-memory flag flips only after
// persistence succeeds. A failed transition leaves a re-runnable state; no
// compensating rollback is performed.
package lifecycle

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/miquelnez/extman/internal/assets"
	"github.com/miquelnez/extman/internal/event"
	"github.com/miquelnez/extman/internal/extension"
	"github.com/miquelnez/extman/internal/migrate"
	"github.com/miquelnez/extman/internal/settings"
)

// Lifecycle event names, dispatched synchronously. The pre-transition event
// fires while listeners can still observe old state; the post-transition
// event fires after the durable commit.
const (
	EventEnabling    = "extension.enabling"
	EventEnabled     = "extension.enabled"
	EventDisabling   = "extension.disabling"
	EventDisabled    = "extension.disabled"
	EventUninstalled = "extension.uninstalled"
)

// Failure categories for transitions. The underlying cause is wrapped
// alongside, so errors.Is matches both.
var (
	// ErrMigrationFailure marks a schema step error. Steps applied before
	// the failure stay applied; the transition aborts.
	ErrMigrationFailure = errors.New("migration failure")

	// ErrAssetFailure marks an asset copy/delete error. On enable it
	// occurs after migrations ran: the schema stays migrated while the
	// extension remains disabled, and a retry is safe because both side
	// effects are idempotent.
	ErrAssetFailure = errors.New("asset publication failure")
)

// Config wires a Manager's collaborators.
type Config struct {
	Fs       afero.Fs
	Registry *extension.Registry
	Settings settings.Store
	Migrator migrate.Migrator
	Assets   *assets.Publisher
	Events   event.Dispatcher
	Logger   zerolog.Logger
}

// Manager is the extension lifecycle state machine. It assumes a single
// administrative actor; concurrent transitions against the same settings
// store can lose updates (the enabled-list read-modify-write is not atomic).
type Manager struct {
	fs       afero.Fs
	registry *extension.Registry
	store    settings.Store
	migrator migrate.Migrator
	assets   *assets.Publisher
	events   event.Dispatcher
	logger   zerolog.Logger
}

// NewManager creates a lifecycle manager from cfg. Events may be nil when no
// listener cares.
func NewManager(cfg Config) *Manager {
	return &Manager{
		fs:       cfg.Fs,
		registry: cfg.Registry,
		store:    cfg.Settings,
		migrator: cfg.Migrator,
		assets:   cfg.Assets,
		events:   cfg.Events,
		logger:   cfg.Logger,
	}
}

// IsEnabled reports whether id is in the persisted enabled list. The
// persisted list, not the cached descriptor flag, is the source of truth so
// external state changes are tolerated.
func (m *Manager) IsEnabled(id string) bool {
	set, err := settings.LoadEnabled(m.store)
	if err != nil {
		return false
	}
	return set.Has(id)
}

// Enable activates an extension: migrations forward, assets published,
// enabled-list persisted (the commit point), descriptor flag flipped, events
// around it all. Enabling an already-enabled extension is a no-op.
func (m *Manager) Enable(id string) error {
	set, err := settings.LoadEnabled(m.store)
	if err != nil {
		return err
	}
	if set.Has(id) {
		return nil
	}

	ext, err := m.registry.Get(id)
	if err != nil {
		return err
	}

	m.dispatch(EventEnabling, ext)

	working := set.Add(id)

	notes, err := m.Migrate(ext, migrate.Up)
	if err != nil {
		return fmt.Errorf("enable %s: %w: %w", id, ErrMigrationFailure, err)
	}
	m.logNotes(id, notes)

	if err := m.assets.Publish(ext); err != nil {
		return fmt.Errorf("enable %s: %w: %w", id, ErrAssetFailure, err)
	}

	if err := settings.SaveEnabled(m.store, working); err != nil {
		return fmt.Errorf("enable %s: %w", id, err)
	}

	ext.Enabled = true
	m.dispatch(EventEnabled, ext)

	m.logger.Info().Str("extension", id).Msg("extension enabled")
	return nil
}

// Disable deactivates an extension. Schema and published assets stay intact
// so re-enabling is cheap and stale asset URLs keep resolving. Disabling an
// extension that is not enabled is a no-op.
func (m *Manager) Disable(id string) error {
	set, err := settings.LoadEnabled(m.store)
	if err != nil {
		return err
	}
	if !set.Has(id) {
		return nil
	}

	ext, err := m.registry.Get(id)
	if err != nil {
		return err
	}

	m.dispatch(EventDisabling, ext)

	if err := settings.SaveEnabled(m.store, set.Remove(id)); err != nil {
		return fmt.Errorf("disable %s: %w", id, err)
	}

	ext.Enabled = false
	m.dispatch(EventDisabled, ext)

	m.logger.Info().Str("extension", id).Msg("extension disabled")
	return nil
}

// Uninstall disables the extension, reverts its migrations, deletes its
// published assets, and flips Installed off. The descriptor stays in the
// registry; the extension can return by reappearing in discovery.
func (m *Manager) Uninstall(id string) error {
	ext, err := m.registry.Get(id)
	if err != nil {
		return err
	}

	if err := m.Disable(id); err != nil {
		return err
	}

	notes, err := m.Migrate(ext, migrate.Down)
	if err != nil {
		return fmt.Errorf("uninstall %s: %w: %w", id, ErrMigrationFailure, err)
	}
	m.logNotes(id, notes)

	if err := m.assets.Unpublish(ext); err != nil {
		return fmt.Errorf("uninstall %s: %w: %w", id, ErrAssetFailure, err)
	}

	ext.Installed = false
	m.dispatch(EventUninstalled, ext)

	m.logger.Info().Str("extension", id).Msg("extension uninstalled")
	return nil
}

// Migrate runs the extension's migrations in the given direction. An
// extension without a migration directory is a no-op with no notes.
func (m *Manager) Migrate(ext *extension.Descriptor, direction migrate.Direction) ([]string, error) {
	if !ext.HasMigrations(m.fs) {
		return nil, nil
	}

	dir := ext.MigrationsPath()
	switch direction {
	case migrate.Down:
		return m.migrator.Reset(dir, ext.ID)
	default:
		return m.migrator.Run(dir, ext.ID)
	}
}

func (m *Manager) dispatch(name string, ext *extension.Descriptor) {
	if m.events == nil {
		return
	}
	m.events.Dispatch(event.Event{Name: name, Extension: ext})
}

func (m *Manager) logNotes(id string, notes []string) {
	if len(notes) == 0 {
		return
	}
	m.logger.Info().Str("extension", id).Strs("notes", notes).Msg("migrations ran")
}
