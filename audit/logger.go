package audit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LoggerSink writes each stream to its own slog.Logger. The handler
// supplies the timestamp.
type LoggerSink struct {
	events       *slog.Logger
	transactions *slog.Logger
	counts       *slog.Logger
	closers      []io.Closer
}

// NewLoggerSink creates a LoggerSink from three loggers.
func NewLoggerSink(events, transactions, counts *slog.Logger) *LoggerSink {
	return &LoggerSink{events: events, transactions: transactions, counts: counts}
}

// File names used by OpenDir.
const (
	EventsFile       = "events.log"
	TransactionsFile = "transactions.log"
	CountsFile       = "counts.log"
)

// OpenDir opens (appending) events.log, transactions.log and counts.log
// under dir, creating dir if needed. The returned sink must be closed.
func OpenDir(dir string) (*LoggerSink, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}

	s := &LoggerSink{}
	open := func(name string) (*slog.Logger, error) {
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			return nil, fmt.Errorf("open audit log %s: %w", name, err)
		}
		s.closers = append(s.closers, f)
		return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), nil
	}

	var err error
	if s.events, err = open(EventsFile); err != nil {
		_ = s.Close() //nolint:errcheck // already failing
		return nil, err
	}
	if s.transactions, err = open(TransactionsFile); err != nil {
		_ = s.Close() //nolint:errcheck // already failing
		return nil, err
	}
	if s.counts, err = open(CountsFile); err != nil {
		_ = s.Close() //nolint:errcheck // already failing
		return nil, err
	}
	return s, nil
}

// LogEvent implements Sink.
func (s *LoggerSink) LogEvent(ctx context.Context, level slog.Level, msg string) error {
	s.events.Log(ctx, level, msg)
	return nil
}

// LogTransaction implements Sink. Multi-line order text is folded onto
// one line with "; " separators.
func (s *LoggerSink) LogTransaction(ctx context.Context, operator, orderText string) error {
	s.transactions.InfoContext(ctx, "checkout",
		"operator", operator,
		"order", strings.ReplaceAll(orderText, "\n", "; "),
	)
	return nil
}

// LogCount implements Sink.
func (s *LoggerSink) LogCount(ctx context.Context, msg string) error {
	s.counts.InfoContext(ctx, msg)
	return nil
}

// Close closes any files opened by OpenDir.
func (s *LoggerSink) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}
