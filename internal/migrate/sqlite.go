package migrate

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	_ "modernc.org/sqlite"
)

const ledgerTable = "migrations"

// Section markers inside a migration file.
const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// SQLite is a Migrator backed by a sqlite ledger. Migration files are plain
// .sql files containing "-- +migrate Up" and "-- +migrate Down" sections;
// file names define step order.
type SQLite struct {
	db    *sql.DB
	fs    afero.Fs
	notes []string
}

// Open opens (or creates) the sqlite ledger database at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening migration ledger %s: %w", path, err)
	}
	return db, nil
}

// NewSQLite creates a sqlite-backed migrator reading migration files through
// fsys. It ensures the ledger table exists.
func NewSQLite(db *sql.DB, fsys afero.Fs) (*SQLite, error) {
	if db == nil {
		return nil, fmt.Errorf("sql db is required")
	}

	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    migration TEXT NOT NULL,
    extension TEXT NOT NULL,
    applied_at INTEGER NOT NULL,
    PRIMARY KEY (migration, extension)
);
`, ledgerTable)
	if _, err := db.Exec(createSQL); err != nil {
		return nil, fmt.Errorf("ensure migration ledger: %w", err)
	}

	return &SQLite{db: db, fs: fsys}, nil
}

// Run applies pending steps in dir for owner, ascending by file name.
func (m *SQLite) Run(dir, owner string) ([]string, error) {
	files, err := m.listMigrations(dir)
	if err != nil {
		return nil, err
	}

	var notes []string
	for _, file := range files {
		name := strings.TrimSuffix(file, ".sql")

		applied, err := m.isApplied(name, owner)
		if err != nil {
			return notes, fmt.Errorf("check migration %s: %w", name, err)
		}
		if applied {
			continue
		}

		content, err := afero.ReadFile(m.fs, filepath.Join(dir, file))
		if err != nil {
			return notes, fmt.Errorf("read migration %s: %w", name, err)
		}

		upSQL := extractSection(string(content), upMarker, downMarker)
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		if err := m.exec(upSQL, func(tx *sql.Tx) error {
			_, err := tx.Exec(
				fmt.Sprintf("INSERT INTO %s (migration, extension, applied_at) VALUES (?, ?, ?)", ledgerTable),
				name, owner, time.Now().UTC().UnixMilli(),
			)
			return err
		}); err != nil {
			return notes, fmt.Errorf("migration %s: %w", name, err)
		}

		notes = m.note(notes, fmt.Sprintf("migrated up: %s (%s)", name, owner))
	}

	return notes, nil
}

// Reset reverts every step owner has applied, descending.
func (m *SQLite) Reset(dir, owner string) ([]string, error) {
	rows, err := m.db.Query(
		fmt.Sprintf("SELECT migration FROM %s WHERE extension = ? ORDER BY migration DESC", ledgerTable),
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("listing applied migrations for %s: %w", owner, err)
	}

	var applied []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning applied migration: %w", err)
		}
		applied = append(applied, name)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	var notes []string
	for _, name := range applied {
		downSQL := ""
		content, err := afero.ReadFile(m.fs, filepath.Join(dir, name+".sql"))
		if err == nil {
			downSQL = extractSection(string(content), downMarker, "")
		}
		// A vanished migration file still gets its ledger row removed so
		// an uninstall can complete; there is nothing left to revert.

		if err := m.exec(downSQL, func(tx *sql.Tx) error {
			_, err := tx.Exec(
				fmt.Sprintf("DELETE FROM %s WHERE migration = ? AND extension = ?", ledgerTable),
				name, owner,
			)
			return err
		}); err != nil {
			return notes, fmt.Errorf("migration %s: %w", name, err)
		}

		notes = m.note(notes, fmt.Sprintf("migrated down: %s (%s)", name, owner))
	}

	return notes, nil
}

// Notes returns every note accumulated by this migrator.
func (m *SQLite) Notes() []string {
	out := make([]string, len(m.notes))
	copy(out, m.notes)
	return out
}

// exec runs stepSQL (if non-empty) and the ledger update in one transaction.
func (m *SQLite) exec(stepSQL string, ledger func(*sql.Tx) error) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if strings.TrimSpace(stepSQL) != "" {
		if _, err := tx.Exec(stepSQL); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := ledger(tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("recording ledger entry: %w", err)
	}

	return tx.Commit()
}

// listMigrations returns the .sql files in dir sorted ascending. A missing
// directory means the extension declares no migrations.
func (m *SQLite) listMigrations(dir string) ([]string, error) {
	exists, err := afero.DirExists(m.fs, dir)
	if err != nil || !exists {
		return nil, err
	}

	entries, err := afero.ReadDir(m.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *SQLite) isApplied(name, owner string) (bool, error) {
	var found int
	row := m.db.QueryRow(
		fmt.Sprintf("SELECT 1 FROM %s WHERE migration = ? AND extension = ?", ledgerTable),
		name, owner,
	)
	err := row.Scan(&found)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *SQLite) note(notes []string, msg string) []string {
	m.notes = append(m.notes, msg)
	return append(notes, msg)
}

// extractSection returns the content between the from marker and the next to
// marker. Content without a from marker is returned whole only for the up
// section; a missing down marker yields nothing to revert.
func extractSection(content, from, to string) string {
	fromIdx := strings.Index(content, from)
	if fromIdx == -1 {
		if from == upMarker {
			return content
		}
		return ""
	}
	rest := content[fromIdx+len(from):]
	if to == "" {
		return rest
	}
	if toIdx := strings.Index(rest, to); toIdx != -1 {
		return rest[:toIdx]
	}
	return rest
}
