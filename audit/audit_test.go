package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/caisseplanck/register/id"
)

func TestRecorderSink(t *testing.T) {
	var got []*Entry
	rec := RecorderFunc(func(_ context.Context, e *Entry) error {
		got = append(got, e)
		return nil
	})
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	s := NewRecorderSink(rec, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	if err := s.LogEvent(ctx, slog.LevelWarn, "count mismatch"); err != nil {
		t.Fatal(err)
	}
	if err := s.LogTransaction(ctx, "Alice", "Gum x 2"); err != nil {
		t.Fatal(err)
	}
	if err := s.LogCount(ctx, "adjusted"); err != nil {
		t.Fatal(err)
	}

	want := []struct {
		stream   Stream
		level    string
		operator string
		msg      string
	}{
		{StreamEvents, "WARN", "", "count mismatch"},
		{StreamTransactions, "INFO", "Alice", "Gum x 2"},
		{StreamCounts, "INFO", "", "adjusted"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i, w := range want {
		e := got[i]
		if e.Stream != w.stream || e.Level != w.level || e.Operator != w.operator || e.Message != w.msg {
			t.Errorf("entry %d: got %+v", i, e)
		}
		if !e.Timestamp.Equal(fixed) {
			t.Errorf("entry %d: expected timestamp %v, got %v", i, fixed, e.Timestamp)
		}
		if e.ID.Prefix() != id.PrefixEntry {
			t.Errorf("entry %d: expected %q id, got %q", i, id.PrefixEntry, e.ID.Prefix())
		}
	}
}

func TestLoggerSink(t *testing.T) {
	var events, txns, counts bytes.Buffer
	newLogger := func(b *bytes.Buffer) *slog.Logger {
		return slog.New(slog.NewTextHandler(b, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	s := NewLoggerSink(newLogger(&events), newLogger(&txns), newLogger(&counts))
	ctx := context.Background()

	_ = s.LogEvent(ctx, slog.LevelInfo, "login")
	_ = s.LogTransaction(ctx, "Bob", "Gum x 1\nChips x 3")
	_ = s.LogCount(ctx, "reconciled")

	if !strings.Contains(events.String(), "msg=login") {
		t.Errorf("unexpected events output: %q", events.String())
	}
	if !strings.Contains(txns.String(), `order="Gum x 1; Chips x 3"`) || !strings.Contains(txns.String(), "operator=Bob") {
		t.Errorf("unexpected transactions output: %q", txns.String())
	}
	if strings.Count(txns.String(), "\n") != 1 {
		t.Errorf("expected a single transaction line, got %q", txns.String())
	}
	if !strings.Contains(counts.String(), "msg=reconciled") {
		t.Errorf("unexpected counts output: %q", counts.String())
	}
}

func TestOpenDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	s, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	ctx := context.Background()
	_ = s.LogEvent(ctx, slog.LevelWarn, "access denied")
	_ = s.LogTransaction(ctx, "Carol", "Chocolate bar x 1")
	_ = s.LogCount(ctx, "old=1 new=2")
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for name, want := range map[string]string{
		EventsFile:       "access denied",
		TransactionsFile: "Carol",
		CountsFile:       "old=1 new=2",
	} {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !strings.Contains(string(b), want) {
			t.Errorf("%s: expected %q in %q", name, want, b)
		}
	}
}

type failingSink struct{ err error }

func (f failingSink) LogEvent(context.Context, slog.Level, string) error  { return f.err }
func (f failingSink) LogTransaction(context.Context, string, string) error { return f.err }
func (f failingSink) LogCount(context.Context, string) error               { return f.err }

func TestTee(t *testing.T) {
	var n int
	counting := NewRecorderSink(RecorderFunc(func(context.Context, *Entry) error {
		n++
		return nil
	}))
	boom := errors.New("disk full")
	s := Tee(failingSink{boom}, counting, Discard)

	if err := s.LogCount(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("expected joined error, got %v", err)
	}
	if n != 1 {
		t.Errorf("expected later sinks to still be called, got %d", n)
	}
}

func TestListOptsMatch(t *testing.T) {
	now := time.Now()
	e := &Entry{Stream: StreamCounts, Timestamp: now}

	tests := []struct {
		name string
		opts ListOpts
		want bool
	}{
		{"all", ListOpts{}, true},
		{"same stream", ListOpts{Stream: StreamCounts}, true},
		{"other stream", ListOpts{Stream: StreamEvents}, false},
		{"since before", ListOpts{Since: now.Add(-time.Minute)}, true},
		{"since after", ListOpts{Since: now.Add(time.Minute)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Match(e); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
