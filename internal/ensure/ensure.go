// Package ensure holds the existence-and-create orchestration: one point
// lookup, an idempotency branch, at most one create call, and a bounded
// fixed-delay poll that masks the catalog's read-after-write lag.
package ensure

import (
	"context"
	"fmt"
	"time"

	"github.com/predictr-io/aws-glue-create-database/internal/catalog"
	"github.com/predictr-io/aws-glue-create-database/internal/util"

	"github.com/pkg/errors"
)

const (
	defaultMaxAttempts = 10
	defaultDelay       = 1000 * time.Millisecond
)

// ConflictError reports a database that already exists while tolerance for
// existing databases is disabled.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("database %q already exists", e.Name)
}

// NotVisibleError reports a create that succeeded server-side but whose
// result never became visible within the attempt budget. The database
// likely exists; only visibility lagged.
type NotVisibleError struct {
	Name     string
	Attempts int
}

func (e *NotVisibleError) Error() string {
	return fmt.Sprintf("database %q was created but is not yet visible after %d lookup attempts", e.Name, e.Attempts)
}

// Options tunes the orchestrator.
type Options struct {
	// IfNotExists tolerates a pre-existing database instead of failing.
	IfNotExists bool
	// MaxAttempts bounds the post-create visibility poll. Defaults to 10.
	MaxAttempts int
	// Delay is the fixed wait between consecutive poll attempts. No
	// backoff; the inconsistency window is expected to be short. Defaults
	// to one second.
	Delay time.Duration
	// Sleep replaces time.Sleep, so tests can run the exhaustion path
	// without real elapsed time.
	Sleep func(time.Duration)
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaultMaxAttempts
	}
	if o.Delay <= 0 {
		o.Delay = defaultDelay
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	return o
}

// Result is the terminal outcome of a successful invocation.
type Result struct {
	// AlreadyExisted is true when the database was found and tolerated.
	AlreadyExisted bool
	// Attempts is the number of post-create lookups performed, for
	// diagnostics only.
	Attempts int
}

// Ensure makes the named database exist. It performs a single point lookup,
// then either accepts or rejects an existing database per Options, or
// creates it and polls until the create is visible. Any lookup failure
// other than a clean miss propagates immediately.
func Ensure(ctx context.Context, cat catalog.Catalog, db catalog.Database, opts Options) (Result, error) {
	if db.Name == "" {
		return Result{}, errors.New("database name must not be empty")
	}
	opts = opts.withDefaults()

	res := cat.Lookup(ctx, db.Name)
	switch res.State {
	case catalog.LookupFound:
		if !opts.IfNotExists {
			return Result{}, &ConflictError{Name: db.Name}
		}
		util.Infof("database %s already exists, leaving it untouched", db.Name)
		return Result{AlreadyExisted: true}, nil
	case catalog.LookupNotFound:
		// fall through to create
	default:
		return Result{}, errors.Wrap(res.Err, "check database existence")
	}

	if err := cat.Create(ctx, db); err != nil {
		return Result{}, err
	}
	attempts, err := waitForDatabase(ctx, cat, db.Name, opts)
	if err != nil {
		return Result{}, err
	}
	return Result{Attempts: attempts}, nil
}

// waitForDatabase polls the same point lookup until the freshly created
// database is visible. It performs at most opts.MaxAttempts lookups with a
// fixed delay between consecutive attempts, and aborts on any failure that
// is not a clean miss without consuming the remaining budget.
func waitForDatabase(ctx context.Context, cat catalog.Catalog, name string, opts Options) (int, error) {
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		res := cat.Lookup(ctx, name)
		switch res.State {
		case catalog.LookupFound:
			util.Infof("database %s visible after %d lookup(s)", name, attempt)
			return attempt, nil
		case catalog.LookupNotFound:
			if attempt == opts.MaxAttempts {
				return attempt, &NotVisibleError{Name: name, Attempts: attempt}
			}
			util.Warnf("database %s not visible yet (attempt %d/%d), waiting %s", name, attempt, opts.MaxAttempts, opts.Delay)
			opts.Sleep(opts.Delay)
		default:
			return attempt, errors.Wrap(res.Err, "wait for database visibility")
		}
	}
	// MaxAttempts >= 1 after withDefaults, so the loop always returns.
	return 0, &NotVisibleError{Name: name, Attempts: opts.MaxAttempts}
}
