// Package catalog models the Glue Data Catalog surface this tool touches:
// a database descriptor, a point lookup with an explicit tri-state outcome,
// and the create call.
package catalog

import "context"

// Database describes a catalog database. Built once per invocation from
// input configuration and never mutated afterwards; the remote catalog
// owns persistence.
type Database struct {
	Name        string
	Description string
	LocationURI string
	Parameters  map[string]string
}

// LookupState classifies the outcome of a point lookup.
type LookupState int

const (
	// LookupFound means the database exists; the result carries its descriptor.
	LookupFound LookupState = iota
	// LookupNotFound is the expected-path miss, not an error.
	LookupNotFound
	// LookupFailed covers everything else (auth, throttling, network).
	LookupFailed
)

// LookupResult is the tri-state outcome of a point lookup. "Not found" is
// modeled as a state rather than an error so callers branch on it
// explicitly instead of string-matching error text.
type LookupResult struct {
	State    LookupState
	Database *Database
	Err      error
}

// Found wraps an existing database descriptor.
func Found(db *Database) LookupResult {
	return LookupResult{State: LookupFound, Database: db}
}

// NotFound reports a clean miss.
func NotFound() LookupResult {
	return LookupResult{State: LookupNotFound}
}

// Failed reports an unexpected lookup failure.
func Failed(err error) LookupResult {
	return LookupResult{State: LookupFailed, Err: err}
}

// Catalog is the lookup/create capability pair consumed by the orchestrator.
// Implementations carry their own catalog scope; tests substitute scripted
// fakes so no real network dependency is needed.
type Catalog interface {
	// Lookup performs a single existence/read check by name.
	Lookup(ctx context.Context, name string) LookupResult
	// Create creates the database. It is expected to fail when the target
	// already exists; callers rely on Lookup rather than that signal.
	Create(ctx context.Context, db Database) error
}
