// Package migrate runs an extension's ordered schema migrations. The
// lifecycle manager drives it through the Migrator interface; the sqlite
// implementation keeps a per-extension ledger so reverts touch exactly the
// steps one extension applied, independent of every other extension.
package migrate

// Direction selects forward application or reversal of migration steps.
type Direction string

const (
	// Up applies pending steps in ascending declared order.
	Up Direction = "up"
	// Down reverts previously applied steps in descending order.
	Down Direction = "down"
)

// Migrator applies and reverts migration steps found in a directory, scoping
// ledger entries to an owner (the extension id). All methods return
// human-readable notes describing what ran, for surfacing to operators.
type Migrator interface {
	// Run applies every pending step in dir on behalf of owner, ascending.
	// A mid-run failure aborts and identifies the failing step; steps
	// already applied stay applied.
	Run(dir, owner string) ([]string, error)

	// Reset reverts every step owner has applied, descending. Like Run,
	// a mid-run failure leaves earlier reverts in place.
	Reset(dir, owner string) ([]string, error)

	// Notes returns every note accumulated over the migrator's lifetime.
	Notes() []string
}
