// Package plugin provides an extensible plugin system for the register.
// Plugins can hook into session, order and balance lifecycle events.
package plugin

import (
	"context"

	"github.com/caisseplanck/register/access"
	"github.com/caisseplanck/register/balance"
	"github.com/caisseplanck/register/menu"
	"github.com/caisseplanck/register/order"
	"github.com/caisseplanck/register/staff"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the register starts.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, r interface{}) error
}

// OnShutdown is called when the register stops.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Session hooks
// ──────────────────────────────────────────────────

// OnLogin is called after an employee logs in.
type OnLogin interface {
	Plugin
	OnLogin(ctx context.Context, who staff.Identity) error
}

// OnLoginFailed is called when a login token matches no employee.
type OnLoginFailed interface {
	Plugin
	OnLoginFailed(ctx context.Context, token string, err error) error
}

// OnLogout is called after an employee logs out.
type OnLogout interface {
	Plugin
	OnLogout(ctx context.Context, who staff.Identity) error
}

// OnAccessDenied is called when an operation is refused for lack of
// credentials. operator is "None" when nobody is logged in.
type OnAccessDenied interface {
	Plugin
	OnAccessDenied(ctx context.Context, operator string, op access.Op, err error) error
}

// ──────────────────────────────────────────────────
// Order hooks
// ──────────────────────────────────────────────────

// OnItemAdded is called after an item is added; quantity is the new
// quantity of its line.
type OnItemAdded interface {
	Plugin
	OnItemAdded(ctx context.Context, operator string, item menu.Item, quantity int) error
}

// OnItemRemoved is called after an item is removed; quantity is what is
// left on its line.
type OnItemRemoved interface {
	Plugin
	OnItemRemoved(ctx context.Context, operator string, item menu.Item, quantity int) error
}

// OnOrderCleared is called when the order is emptied without a checkout.
type OnOrderCleared interface {
	Plugin
	OnOrderCleared(ctx context.Context, operator string, lines int) error
}

// OnCheckout is called after a checkout was persisted.
type OnCheckout interface {
	Plugin
	OnCheckout(ctx context.Context, receipt *order.Receipt) error
}

// ──────────────────────────────────────────────────
// Balance hooks
// ──────────────────────────────────────────────────

// OnBalanceAdjusted is called after a manual adjustment was persisted.
type OnBalanceAdjusted interface {
	Plugin
	OnBalanceAdjusted(ctx context.Context, operator string, adj balance.Adjustment) error
}

// OnCountReconciled is called after an operator count was compared with
// the balance, matching or not.
type OnCountReconciled interface {
	Plugin
	OnCountReconciled(ctx context.Context, operator string, rec balance.Reconciliation) error
}
