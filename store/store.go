// Package store defines the persistence contract for the register's audit
// trail. Backends live in the memory, sqlite, postgres and mongo
// subpackages.
package store

import (
	"context"
	"time"

	"github.com/caisseplanck/register/audit"
	"github.com/caisseplanck/register/id"
)

// Store persists audit entries. Every Store is an audit.Recorder and can
// back an audit.RecorderSink.
type Store interface {
	// Append stores e. A duplicate ID is errs.ErrAlreadyExists.
	Append(ctx context.Context, e *audit.Entry) error
	// Get returns the entry with the given ID or a not found error.
	Get(ctx context.Context, entryID id.ID) (*audit.Entry, error)
	// List returns matching entries oldest first.
	List(ctx context.Context, opts audit.ListOpts) ([]*audit.Entry, error)
	// Purge deletes entries older than before and returns how many went.
	Purge(ctx context.Context, before time.Time) (int64, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
