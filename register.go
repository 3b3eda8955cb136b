package register

import (
	"context"
	"log/slog"
	"sync"

	"github.com/caisseplanck/register/access"
	"github.com/caisseplanck/register/audit"
	audithook "github.com/caisseplanck/register/audit_hook"
	"github.com/caisseplanck/register/balance"
	"github.com/caisseplanck/register/menu"
	"github.com/caisseplanck/register/order"
	"github.com/caisseplanck/register/plugin"
	"github.com/caisseplanck/register/staff"
	"github.com/caisseplanck/register/types"
)

// Register is the till engine. It owns one session, one order and one
// balance ledger, and serializes every operation behind a single mutex.
//
// Plugin hooks run while the register is locked; a plugin must not call
// back into the Register that notified it.
type Register struct {
	mu sync.Mutex

	menu    *menu.Menu
	staff   *staff.Directory
	ledger  *balance.Ledger
	session access.Session
	order   *order.Order

	plugins    *plugin.Registry
	auditSinks []audit.Sink
	logger     *slog.Logger
}

// New creates a Register over a loaded menu, employee directory and ledger.
func New(m *menu.Menu, dir *staff.Directory, l *balance.Ledger, opts ...Option) *Register {
	r := &Register{
		menu:    m,
		staff:   dir,
		ledger:  l,
		order:   order.New(),
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	// built after the options so the hook shares the final logger
	if len(r.auditSinks) > 0 {
		hook := audithook.New(audit.Tee(r.auditSinks...), audithook.WithLogger(r.logger))
		_ = r.plugins.Register(hook) //nolint:errcheck // a single audit hook per register
		r.auditSinks = nil
	}

	return r
}

// Option configures a Register instance.
type Option func(*Register)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Register) {
		r.logger = logger
		r.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(r *Register) {
		_ = r.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithAuditSink records the register's events, transactions and counts to
// sink. Repeated calls fan out to every sink.
func WithAuditSink(sink audit.Sink) Option {
	return func(r *Register) { r.auditSinks = append(r.auditSinks, sink) }
}

// Plugins returns the plugin registry.
func (r *Register) Plugins() *plugin.Registry { return r.plugins }

// Menu returns the catalog the register sells from.
func (r *Register) Menu() *menu.Menu { return r.menu }

// Start notifies plugins that the register is open.
func (r *Register) Start(ctx context.Context) error {
	r.plugins.EmitInit(ctx, r)

	r.logger.Info("register started",
		"menu_items", r.menu.Len(),
		"employees", r.staff.Len(),
		"balance", types.Format(r.ledger.Balance()),
		"balance_path", r.ledger.Path(),
	)
	return nil
}

// Stop logs out any operator and notifies plugins of shutdown.
func (r *Register) Stop() error {
	ctx := context.Background()
	r.Logout(ctx)
	r.plugins.EmitShutdown(ctx)

	r.logger.Info("register stopped")
	return nil
}

// authorize checks op against the session and reports denials to plugins.
// Callers hold r.mu.
func (r *Register) authorize(ctx context.Context, op access.Op) error {
	if err := r.session.Authorize(op); err != nil {
		r.logger.Debug("access denied", "op", op, "operator", r.session.Name(), "error", err)
		r.plugins.EmitAccessDenied(ctx, r.session.Name(), op, err)
		return err
	}
	return nil
}
