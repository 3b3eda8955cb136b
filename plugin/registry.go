package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/caisseplanck/register/access"
	"github.com/caisseplanck/register/balance"
	"github.com/caisseplanck/register/menu"
	"github.com/caisseplanck/register/order"
	"github.com/caisseplanck/register/staff"
)

// DefaultTimeout bounds a single hook call.
const DefaultTimeout = 5 * time.Second

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery so dispatch never type-asserts.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger
	timeout time.Duration

	// Type-cached plugin lists for efficient dispatch
	onInit            []OnInit
	onShutdown        []OnShutdown
	onLogin           []OnLogin
	onLoginFailed     []OnLoginFailed
	onLogout          []OnLogout
	onAccessDenied    []OnAccessDenied
	onItemAdded       []OnItemAdded
	onItemRemoved     []OnItemRemoved
	onOrderCleared    []OnOrderCleared
	onCheckout        []OnCheckout
	onBalanceAdjusted []OnBalanceAdjusted
	onCountReconciled []OnCountReconciled
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:  slog.Default(),
		timeout: DefaultTimeout,
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// WithTimeout sets the per-hook timeout.
func (r *Registry) WithTimeout(d time.Duration) *Registry {
	r.timeout = d
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnLogin); ok {
		r.onLogin = append(r.onLogin, v)
	}
	if v, ok := p.(OnLoginFailed); ok {
		r.onLoginFailed = append(r.onLoginFailed, v)
	}
	if v, ok := p.(OnLogout); ok {
		r.onLogout = append(r.onLogout, v)
	}
	if v, ok := p.(OnAccessDenied); ok {
		r.onAccessDenied = append(r.onAccessDenied, v)
	}
	if v, ok := p.(OnItemAdded); ok {
		r.onItemAdded = append(r.onItemAdded, v)
	}
	if v, ok := p.(OnItemRemoved); ok {
		r.onItemRemoved = append(r.onItemRemoved, v)
	}
	if v, ok := p.(OnOrderCleared); ok {
		r.onOrderCleared = append(r.onOrderCleared, v)
	}
	if v, ok := p.(OnCheckout); ok {
		r.onCheckout = append(r.onCheckout, v)
	}
	if v, ok := p.(OnBalanceAdjusted); ok {
		r.onBalanceAdjusted = append(r.onBalanceAdjusted, v)
	}
	if v, ok := p.(OnCountReconciled); ok {
		r.onCountReconciled = append(r.onCountReconciled, v)
	}

	r.logger.Debug("plugin registered",
		"name", p.Name(),
		"interfaces", implementedInterfaces(p),
	)

	return nil
}

var hookTypes = []struct {
	name string
	typ  reflect.Type
}{
	{"OnInit", reflect.TypeFor[OnInit]()},
	{"OnShutdown", reflect.TypeFor[OnShutdown]()},
	{"OnLogin", reflect.TypeFor[OnLogin]()},
	{"OnLoginFailed", reflect.TypeFor[OnLoginFailed]()},
	{"OnLogout", reflect.TypeFor[OnLogout]()},
	{"OnAccessDenied", reflect.TypeFor[OnAccessDenied]()},
	{"OnItemAdded", reflect.TypeFor[OnItemAdded]()},
	{"OnItemRemoved", reflect.TypeFor[OnItemRemoved]()},
	{"OnOrderCleared", reflect.TypeFor[OnOrderCleared]()},
	{"OnCheckout", reflect.TypeFor[OnCheckout]()},
	{"OnBalanceAdjusted", reflect.TypeFor[OnBalanceAdjusted]()},
	{"OnCountReconciled", reflect.TypeFor[OnCountReconciled]()},
}

// implementedInterfaces returns the hook names implemented by p.
func implementedInterfaces(p Plugin) []string {
	var names []string
	v := reflect.TypeOf(p)
	for _, h := range hookTypes {
		if v.Implements(h.typ) {
			names = append(names, h.name)
		}
	}
	return names
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// emit calls fn for every plugin in the cached list. Failures are logged
// and never reach the caller.
func emit[T Plugin](ctx context.Context, r *Registry, hook string, cached func() []T, fn func(T) error) {
	r.mu.RLock()
	plugins := cached()
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error { return fn(p) }); err != nil {
			r.logger.Warn("plugin "+hook+" failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, reg interface{}) {
	emit(ctx, r, "OnInit", func() []OnInit { return r.onInit }, func(p OnInit) error {
		return p.OnInit(ctx, reg)
	})
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	emit(ctx, r, "OnShutdown", func() []OnShutdown { return r.onShutdown }, func(p OnShutdown) error {
		return p.OnShutdown(ctx)
	})
}

// EmitLogin emits a login event.
func (r *Registry) EmitLogin(ctx context.Context, who staff.Identity) {
	emit(ctx, r, "OnLogin", func() []OnLogin { return r.onLogin }, func(p OnLogin) error {
		return p.OnLogin(ctx, who)
	})
}

// EmitLoginFailed emits a failed login event.
func (r *Registry) EmitLoginFailed(ctx context.Context, token string, err error) {
	emit(ctx, r, "OnLoginFailed", func() []OnLoginFailed { return r.onLoginFailed }, func(p OnLoginFailed) error {
		return p.OnLoginFailed(ctx, token, err)
	})
}

// EmitLogout emits a logout event.
func (r *Registry) EmitLogout(ctx context.Context, who staff.Identity) {
	emit(ctx, r, "OnLogout", func() []OnLogout { return r.onLogout }, func(p OnLogout) error {
		return p.OnLogout(ctx, who)
	})
}

// EmitAccessDenied emits an access denied event.
func (r *Registry) EmitAccessDenied(ctx context.Context, operator string, op access.Op, err error) {
	emit(ctx, r, "OnAccessDenied", func() []OnAccessDenied { return r.onAccessDenied }, func(p OnAccessDenied) error {
		return p.OnAccessDenied(ctx, operator, op, err)
	})
}

// EmitItemAdded emits an item added event.
func (r *Registry) EmitItemAdded(ctx context.Context, operator string, item menu.Item, quantity int) {
	emit(ctx, r, "OnItemAdded", func() []OnItemAdded { return r.onItemAdded }, func(p OnItemAdded) error {
		return p.OnItemAdded(ctx, operator, item, quantity)
	})
}

// EmitItemRemoved emits an item removed event.
func (r *Registry) EmitItemRemoved(ctx context.Context, operator string, item menu.Item, quantity int) {
	emit(ctx, r, "OnItemRemoved", func() []OnItemRemoved { return r.onItemRemoved }, func(p OnItemRemoved) error {
		return p.OnItemRemoved(ctx, operator, item, quantity)
	})
}

// EmitOrderCleared emits an order cleared event.
func (r *Registry) EmitOrderCleared(ctx context.Context, operator string, lines int) {
	emit(ctx, r, "OnOrderCleared", func() []OnOrderCleared { return r.onOrderCleared }, func(p OnOrderCleared) error {
		return p.OnOrderCleared(ctx, operator, lines)
	})
}

// EmitCheckout emits a checkout event.
func (r *Registry) EmitCheckout(ctx context.Context, receipt *order.Receipt) {
	emit(ctx, r, "OnCheckout", func() []OnCheckout { return r.onCheckout }, func(p OnCheckout) error {
		return p.OnCheckout(ctx, receipt)
	})
}

// EmitBalanceAdjusted emits a balance adjusted event.
func (r *Registry) EmitBalanceAdjusted(ctx context.Context, operator string, adj balance.Adjustment) {
	emit(ctx, r, "OnBalanceAdjusted", func() []OnBalanceAdjusted { return r.onBalanceAdjusted }, func(p OnBalanceAdjusted) error {
		return p.OnBalanceAdjusted(ctx, operator, adj)
	})
}

// EmitCountReconciled emits a count reconciled event.
func (r *Registry) EmitCountReconciled(ctx context.Context, operator string, rec balance.Reconciliation) {
	emit(ctx, r, "OnCountReconciled", func() []OnCountReconciled { return r.onCountReconciled }, func(p OnCountReconciled) error {
		return p.OnCountReconciled(ctx, operator, rec)
	})
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the till.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
