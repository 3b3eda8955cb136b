// Package audit defines the register's write-only audit trail.
//
// A Sink receives three independent append-only streams: events,
// transactions and counts. Entries are timestamped by the sink; the engine
// never supplies a time.
package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/caisseplanck/register/id"
)

// Stream names one of the three audit streams.
type Stream string

const (
	StreamEvents       Stream = "events"
	StreamTransactions Stream = "transactions"
	StreamCounts       Stream = "counts"
)

// Streams lists every stream in a fixed order.
func Streams() []Stream {
	return []Stream{StreamEvents, StreamTransactions, StreamCounts}
}

// Valid reports whether s is a known stream.
func (s Stream) Valid() bool {
	switch s {
	case StreamEvents, StreamTransactions, StreamCounts:
		return true
	}
	return false
}

// Sink receives audit records from the register.
type Sink interface {
	LogEvent(ctx context.Context, level slog.Level, msg string) error
	LogTransaction(ctx context.Context, operator, orderText string) error
	LogCount(ctx context.Context, msg string) error
}

// Entry is one persisted audit record.
type Entry struct {
	ID        id.ID     `json:"id"`
	Stream    Stream    `json:"stream"`
	Level     string    `json:"level"`
	Operator  string    `json:"operator,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ListOpts filters entries returned by a store.
type ListOpts struct {
	Stream Stream // empty = all streams
	Since  time.Time
	Limit  int // 0 = no limit
}

// Match reports whether e passes the filter, ignoring Limit.
func (o ListOpts) Match(e *Entry) bool {
	if o.Stream != "" && e.Stream != o.Stream {
		return false
	}
	if !o.Since.IsZero() && e.Timestamp.Before(o.Since) {
		return false
	}
	return true
}

// Recorder persists entries. Stores implement it.
type Recorder interface {
	Append(ctx context.Context, e *Entry) error
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, e *Entry) error

// Append implements Recorder.
func (f RecorderFunc) Append(ctx context.Context, e *Entry) error { return f(ctx, e) }

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) LogEvent(context.Context, slog.Level, string) error  { return nil }
func (discard) LogTransaction(context.Context, string, string) error { return nil }
func (discard) LogCount(context.Context, string) error               { return nil }

// Tee fans every record out to all sinks. Every sink is called; the
// returned error joins the failures.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

func (t tee) LogEvent(ctx context.Context, level slog.Level, msg string) error {
	var errs []error
	for _, s := range t {
		errs = append(errs, s.LogEvent(ctx, level, msg))
	}
	return errors.Join(errs...)
}

func (t tee) LogTransaction(ctx context.Context, operator, orderText string) error {
	var errs []error
	for _, s := range t {
		errs = append(errs, s.LogTransaction(ctx, operator, orderText))
	}
	return errors.Join(errs...)
}

func (t tee) LogCount(ctx context.Context, msg string) error {
	var errs []error
	for _, s := range t {
		errs = append(errs, s.LogCount(ctx, msg))
	}
	return errors.Join(errs...)
}
