package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/caisseplanck/register/id"
)

// RecorderSink turns sink calls into Entries and hands them to a Recorder.
type RecorderSink struct {
	recorder Recorder
	now      func() time.Time
}

// RecorderOption configures a RecorderSink.
type RecorderOption func(*RecorderSink)

// WithClock sets the clock used to timestamp entries.
func WithClock(now func() time.Time) RecorderOption {
	return func(s *RecorderSink) { s.now = now }
}

// NewRecorderSink creates a RecorderSink writing to r.
func NewRecorderSink(r Recorder, opts ...RecorderOption) *RecorderSink {
	s := &RecorderSink{recorder: r, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogEvent implements Sink.
func (s *RecorderSink) LogEvent(ctx context.Context, level slog.Level, msg string) error {
	return s.append(ctx, StreamEvents, level, "", msg)
}

// LogTransaction implements Sink.
func (s *RecorderSink) LogTransaction(ctx context.Context, operator, orderText string) error {
	return s.append(ctx, StreamTransactions, slog.LevelInfo, operator, orderText)
}

// LogCount implements Sink.
func (s *RecorderSink) LogCount(ctx context.Context, msg string) error {
	return s.append(ctx, StreamCounts, slog.LevelInfo, "", msg)
}

func (s *RecorderSink) append(ctx context.Context, stream Stream, level slog.Level, operator, msg string) error {
	return s.recorder.Append(ctx, &Entry{
		ID:        id.NewEntryID(),
		Stream:    stream,
		Level:     level.String(),
		Operator:  operator,
		Message:   msg,
		Timestamp: s.now().UTC(),
	})
}
