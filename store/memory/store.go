// Package memory is an in-process audit Store, used by tests and by a till
// run without a database.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/caisseplanck/register/audit"
	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/id"
	"github.com/caisseplanck/register/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

type Store struct {
	mu      sync.RWMutex
	entries []*audit.Entry
	byID    map[string]int
}

func New() *Store {
	return &Store{byID: make(map[string]int)}
}

func (s *Store) Append(_ context.Context, e *audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := e.ID.String()
	if _, exists := s.byID[key]; exists {
		return errs.ErrAlreadyExists
	}
	cp := *e
	s.byID[key] = len(s.entries)
	s.entries = append(s.entries, &cp)
	return nil
}

func (s *Store) Get(_ context.Context, entryID id.ID) (*audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.byID[entryID.String()]; ok {
		cp := *s.entries[i]
		return &cp, nil
	}
	return nil, errs.NotFound("audit entry", entryID.String())
}

func (s *Store) List(_ context.Context, opts audit.ListOpts) ([]*audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*audit.Entry
	for _, e := range s.entries {
		if !opts.Match(e) {
			continue
		}
		cp := *e
		result = append(result, &cp)
	}
	slices.SortStableFunc(result, func(a, b *audit.Entry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (s *Store) Purge(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	var purged int64
	for _, e := range s.entries {
		if e.Timestamp.Before(before) {
			purged++
			continue
		}
		kept = append(kept, e)
	}
	clear(s.entries[len(kept):])
	s.entries = kept

	clear(s.byID)
	for i, e := range s.entries {
		s.byID[e.ID.String()] = i
	}
	return purged, nil
}

// Migrate is a no-op.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }
