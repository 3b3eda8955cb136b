package memory

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/caisseplanck/register/audit"
	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/id"
)

func entry(stream audit.Stream, msg string, ts time.Time) *audit.Entry {
	return &audit.Entry{
		ID:        id.NewEntryID(),
		Stream:    stream,
		Level:     slog.LevelInfo.String(),
		Message:   msg,
		Timestamp: ts,
	}
}

func TestAppendGet(t *testing.T) {
	s := New()
	ctx := context.Background()
	e := entry(audit.StreamEvents, "login", time.Now())

	if err := s.Append(ctx, e); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, e); !errors.Is(err, errs.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := s.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Message != "login" {
		t.Errorf("unexpected entry: %+v", got)
	}

	if _, err := s.Get(ctx, id.NewEntryID()); !errs.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestList(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	// appended out of order
	_ = s.Append(ctx, entry(audit.StreamCounts, "c2", base.Add(3*time.Minute)))
	_ = s.Append(ctx, entry(audit.StreamEvents, "e1", base))
	_ = s.Append(ctx, entry(audit.StreamCounts, "c1", base.Add(time.Minute)))
	_ = s.Append(ctx, entry(audit.StreamTransactions, "t1", base.Add(2*time.Minute)))

	tests := []struct {
		name string
		opts audit.ListOpts
		want []string
	}{
		{"all", audit.ListOpts{}, []string{"e1", "c1", "t1", "c2"}},
		{"stream", audit.ListOpts{Stream: audit.StreamCounts}, []string{"c1", "c2"}},
		{"since", audit.ListOpts{Since: base.Add(2 * time.Minute)}, []string{"t1", "c2"}},
		{"limit", audit.ListOpts{Limit: 2}, []string{"e1", "c1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d entries, got %d", len(tt.want), len(got))
			}
			for i, e := range got {
				if e.Message != tt.want[i] {
					t.Errorf("entry %d: got %q, want %q", i, e.Message, tt.want[i])
				}
			}
		})
	}
}

func TestPurge(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Now()
	old := entry(audit.StreamEvents, "old", base.Add(-time.Hour))
	recent := entry(audit.StreamEvents, "recent", base)
	_ = s.Append(ctx, old)
	_ = s.Append(ctx, recent)

	n, err := s.Purge(ctx, base.Add(-time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged, got %d", n)
	}
	if _, err := s.Get(ctx, old.ID); !errs.IsNotFound(err) {
		t.Errorf("expected purged entry to be gone, got %v", err)
	}
	if _, err := s.Get(ctx, recent.ID); err != nil {
		t.Errorf("expected recent entry to survive: %v", err)
	}
}

func TestBacksRecorderSink(t *testing.T) {
	s := New()
	ctx := context.Background()
	sink := audit.NewRecorderSink(s)

	_ = sink.LogTransaction(ctx, "Alice", "Gum x 1")
	got, err := s.List(ctx, audit.ListOpts{Stream: audit.StreamTransactions})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Operator != "Alice" || got[0].Message != "Gum x 1" {
		t.Errorf("unexpected entries: %+v", got)
	}
}
