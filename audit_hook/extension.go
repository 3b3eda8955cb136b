// Package audithook bridges register lifecycle events to the audit trail.
//
// Session and order activity goes to the events stream, checkouts to the
// transactions stream, and balance adjustments and counts to the counts
// stream.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/caisseplanck/register/access"
	"github.com/caisseplanck/register/audit"
	"github.com/caisseplanck/register/balance"
	"github.com/caisseplanck/register/menu"
	"github.com/caisseplanck/register/order"
	"github.com/caisseplanck/register/plugin"
	"github.com/caisseplanck/register/staff"
	"github.com/caisseplanck/register/types"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin            = (*Extension)(nil)
	_ plugin.OnLogin           = (*Extension)(nil)
	_ plugin.OnLoginFailed     = (*Extension)(nil)
	_ plugin.OnLogout          = (*Extension)(nil)
	_ plugin.OnAccessDenied    = (*Extension)(nil)
	_ plugin.OnItemAdded       = (*Extension)(nil)
	_ plugin.OnItemRemoved     = (*Extension)(nil)
	_ plugin.OnOrderCleared    = (*Extension)(nil)
	_ plugin.OnCheckout        = (*Extension)(nil)
	_ plugin.OnBalanceAdjusted = (*Extension)(nil)
	_ plugin.OnCountReconciled = (*Extension)(nil)
)

// Extension writes register lifecycle events to an audit.Sink.
type Extension struct {
	sink    audit.Sink
	enabled map[string]bool // nil = all enabled
	unknown []string
	logger  *slog.Logger
}

// New creates an Extension that writes through the provided sink.
func New(sink audit.Sink, opts ...Option) *Extension {
	e := &Extension{
		sink:   sink,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, action := range e.unknown {
		e.logger.Warn("audit hook: unknown action ignored", "action", action)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Session hooks
// ──────────────────────────────────────────────────

// OnLogin implements plugin.OnLogin.
func (e *Extension) OnLogin(ctx context.Context, who staff.Identity) error {
	return e.event(ctx, ActionLogin, slog.LevelInfo,
		fmt.Sprintf("employee %s logged in (%s)", who.Name, who.Level))
}

// OnLoginFailed implements plugin.OnLoginFailed.
func (e *Extension) OnLoginFailed(ctx context.Context, token string, _ error) error {
	return e.event(ctx, ActionLoginFailed, slog.LevelWarn,
		fmt.Sprintf("failed login attempt with token %q", token))
}

// OnLogout implements plugin.OnLogout.
func (e *Extension) OnLogout(ctx context.Context, who staff.Identity) error {
	return e.event(ctx, ActionLogout, slog.LevelInfo,
		fmt.Sprintf("employee %s logged out", who.Name))
}

// OnAccessDenied implements plugin.OnAccessDenied.
func (e *Extension) OnAccessDenied(ctx context.Context, operator string, op access.Op, err error) error {
	return e.event(ctx, ActionAccessDenied, slog.LevelWarn,
		fmt.Sprintf("access denied to %s for %s: %v", op, operator, err))
}

// ──────────────────────────────────────────────────
// Order hooks
// ──────────────────────────────────────────────────

// OnItemAdded implements plugin.OnItemAdded.
func (e *Extension) OnItemAdded(ctx context.Context, operator string, item menu.Item, quantity int) error {
	return e.event(ctx, ActionItemAdded, slog.LevelInfo,
		fmt.Sprintf("%s added %s (%s), quantity %d", operator, item.Name, item.Barcode, quantity))
}

// OnItemRemoved implements plugin.OnItemRemoved.
func (e *Extension) OnItemRemoved(ctx context.Context, operator string, item menu.Item, quantity int) error {
	return e.event(ctx, ActionItemRemoved, slog.LevelInfo,
		fmt.Sprintf("%s removed %s (%s), quantity %d", operator, item.Name, item.Barcode, quantity))
}

// OnOrderCleared implements plugin.OnOrderCleared.
func (e *Extension) OnOrderCleared(ctx context.Context, operator string, lines int) error {
	return e.event(ctx, ActionOrderCleared, slog.LevelInfo,
		fmt.Sprintf("%s cleared the order (%d lines)", operator, lines))
}

// OnCheckout implements plugin.OnCheckout.
func (e *Extension) OnCheckout(ctx context.Context, receipt *order.Receipt) error {
	if !e.isEnabled(ActionCheckout) {
		return nil
	}
	if err := e.sink.LogTransaction(ctx, receipt.Operator, receipt.Text); err != nil {
		e.warn(ActionCheckout, err)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Balance hooks
// ──────────────────────────────────────────────────

// OnBalanceAdjusted implements plugin.OnBalanceAdjusted.
func (e *Extension) OnBalanceAdjusted(ctx context.Context, operator string, adj balance.Adjustment) error {
	return e.count(ctx, ActionBalanceAdjusted,
		fmt.Sprintf("adjustment %s by %s: old=%s new=%s delta=%s",
			adj.ID, operator, types.Format(adj.Old), types.Format(adj.New), types.Format(adj.Delta)))
}

// OnCountReconciled implements plugin.OnCountReconciled. A mismatch is
// also raised as a warning on the events stream.
func (e *Extension) OnCountReconciled(ctx context.Context, operator string, rec balance.Reconciliation) error {
	msg := fmt.Sprintf("count %s by %s: reported=%s expected=%s discrepancy=%s",
		rec.ID, operator, types.Format(rec.Reported), types.Format(rec.Expected), types.Format(rec.Discrepancy))
	if err := e.count(ctx, ActionCountReconciled, msg); err != nil {
		return err
	}
	if rec.Balanced() {
		return nil
	}
	return e.event(ctx, ActionCountMismatch, slog.LevelWarn, "count mismatch: "+msg)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

func (e *Extension) isEnabled(action string) bool {
	return e.enabled == nil || e.enabled[action]
}

// event writes to the events stream if the action is enabled. Sink
// failures are logged, never returned.
func (e *Extension) event(ctx context.Context, action string, level slog.Level, msg string) error {
	if !e.isEnabled(action) {
		return nil
	}
	if err := e.sink.LogEvent(ctx, level, msg); err != nil {
		e.warn(action, err)
	}
	return nil
}

func (e *Extension) count(ctx context.Context, action, msg string) error {
	if !e.isEnabled(action) {
		return nil
	}
	if err := e.sink.LogCount(ctx, msg); err != nil {
		e.warn(action, err)
	}
	return nil
}

func (e *Extension) warn(action string, err error) {
	e.logger.Warn("audit_hook: failed to record audit event",
		"action", action,
		"error", err,
	)
}
