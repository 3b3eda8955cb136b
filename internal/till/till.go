// Package till assembles a Register from configuration: it loads the menu
// and staff files, opens the register count and wires the audit trail.
package till

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/caisseplanck/register"
	"github.com/caisseplanck/register/audit"
	audithook "github.com/caisseplanck/register/audit_hook"
	"github.com/caisseplanck/register/balance"
	"github.com/caisseplanck/register/config"
	"github.com/caisseplanck/register/menu"
	"github.com/caisseplanck/register/staff"
)

// Till is an assembled Register plus the resources it owns.
type Till struct {
	Register *register.Register
	Logs     *audit.LoggerSink
}

// Option configures Open.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	recorders []audit.Recorder
	regOpts   []register.Option
}

// WithLogger sets the process logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRecorder also persists audit entries through rec, typically a store.
func WithRecorder(rec audit.Recorder) Option {
	return func(o *options) { o.recorders = append(o.recorders, rec) }
}

// WithRegisterOption passes opts through to register.New.
func WithRegisterOption(opts ...register.Option) Option {
	return func(o *options) { o.regOpts = append(o.regOpts, opts...) }
}

// Open builds a Register from cfg. Skipped menu and staff lines are logged,
// not fatal; an unreadable file or a corrupt register count is.
func Open(cfg config.Config, opts ...Option) (*Till, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, _, err := menu.LoadFile(cfg.MenuPath, menu.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}
	dir, _, err := staff.LoadFile(cfg.StaffPath, staff.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}
	l, err := balance.Open(cfg.BalancePath, balance.WithLogger(o.logger))
	if err != nil {
		return nil, fmt.Errorf("open register count: %w", err)
	}

	logs, err := audit.OpenDir(cfg.LogDir)
	if err != nil {
		return nil, err
	}

	sinks := []audit.Sink{logs}
	for _, rec := range o.recorders {
		sinks = append(sinks, audit.NewRecorderSink(rec))
	}

	hook := audithook.New(audit.Tee(sinks...),
		audithook.WithLogger(o.logger),
		audithook.WithDisabledActions(cfg.AuditDisabledActions...),
	)

	regOpts := append([]register.Option{
		register.WithLogger(o.logger),
		register.WithPlugin(hook),
	}, o.regOpts...)

	return &Till{
		Register: register.New(m, dir, l, regOpts...),
		Logs:     logs,
	}, nil
}

// Close stops the register and closes the log files.
func (t *Till) Close() error {
	return errors.Join(t.Register.Stop(), t.Logs.Close())
}
