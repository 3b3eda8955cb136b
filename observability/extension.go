// Package observability provides a metrics plugin for the register that
// records session, order and balance activity via an injected MetricFactory.
package observability

import (
	"context"

	"github.com/caisseplanck/register/access"
	"github.com/caisseplanck/register/balance"
	"github.com/caisseplanck/register/menu"
	"github.com/caisseplanck/register/order"
	"github.com/caisseplanck/register/plugin"
	"github.com/caisseplanck/register/staff"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin            = (*MetricsExtension)(nil)
	_ plugin.OnLogin           = (*MetricsExtension)(nil)
	_ plugin.OnLoginFailed     = (*MetricsExtension)(nil)
	_ plugin.OnLogout          = (*MetricsExtension)(nil)
	_ plugin.OnAccessDenied    = (*MetricsExtension)(nil)
	_ plugin.OnItemAdded       = (*MetricsExtension)(nil)
	_ plugin.OnItemRemoved     = (*MetricsExtension)(nil)
	_ plugin.OnOrderCleared    = (*MetricsExtension)(nil)
	_ plugin.OnCheckout        = (*MetricsExtension)(nil)
	_ plugin.OnBalanceAdjusted = (*MetricsExtension)(nil)
	_ plugin.OnCountReconciled = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records till activity metrics.
// Register it as a register plugin to track them automatically.
type MetricsExtension struct {
	// Session metrics
	Logins        Counter
	LoginFailures Counter
	Logouts       Counter
	AccessDenied  Counter

	// Order metrics
	ItemsAdded    Counter
	ItemsRemoved  Counter
	CustomItems   Counter
	OrdersCleared Counter

	// Checkout metrics
	Checkouts     Counter
	CheckoutTotal Histogram
	CheckoutLines Histogram

	// Balance metrics
	Adjustments        Counter
	AdjustmentDelta    Histogram
	Reconciliations    Counter
	CountMismatches    Counter
	CountDiscrepancies Histogram
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		Logins:        factory.Counter("register.session.logins"),
		LoginFailures: factory.Counter("register.session.login_failures"),
		Logouts:       factory.Counter("register.session.logouts"),
		AccessDenied:  factory.Counter("register.access.denied"),

		ItemsAdded:    factory.Counter("register.order.items_added"),
		ItemsRemoved:  factory.Counter("register.order.items_removed"),
		CustomItems:   factory.Counter("register.order.custom_items"),
		OrdersCleared: factory.Counter("register.order.cleared"),

		Checkouts:     factory.Counter("register.checkout.count"),
		CheckoutTotal: factory.Histogram("register.checkout.total_amount"),
		CheckoutLines: factory.Histogram("register.checkout.lines"),

		Adjustments:        factory.Counter("register.balance.adjustments"),
		AdjustmentDelta:    factory.Histogram("register.balance.adjustment_delta"),
		Reconciliations:    factory.Counter("register.balance.reconciliations"),
		CountMismatches:    factory.Counter("register.balance.count_mismatches"),
		CountDiscrepancies: factory.Histogram("register.balance.count_discrepancy"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// ──────────────────────────────────────────────────
// Session hooks
// ──────────────────────────────────────────────────

// OnLogin implements plugin.OnLogin.
func (m *MetricsExtension) OnLogin(_ context.Context, _ staff.Identity) error {
	m.Logins.Inc()
	return nil
}

// OnLoginFailed implements plugin.OnLoginFailed.
func (m *MetricsExtension) OnLoginFailed(_ context.Context, _ string, _ error) error {
	m.LoginFailures.Inc()
	return nil
}

// OnLogout implements plugin.OnLogout.
func (m *MetricsExtension) OnLogout(_ context.Context, _ staff.Identity) error {
	m.Logouts.Inc()
	return nil
}

// OnAccessDenied implements plugin.OnAccessDenied.
func (m *MetricsExtension) OnAccessDenied(_ context.Context, _ string, _ access.Op, _ error) error {
	m.AccessDenied.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Order hooks
// ──────────────────────────────────────────────────

// OnItemAdded implements plugin.OnItemAdded.
func (m *MetricsExtension) OnItemAdded(_ context.Context, _ string, item menu.Item, _ int) error {
	m.ItemsAdded.Inc()
	if item.IsCustom() {
		m.CustomItems.Inc()
	}
	return nil
}

// OnItemRemoved implements plugin.OnItemRemoved.
func (m *MetricsExtension) OnItemRemoved(_ context.Context, _ string, _ menu.Item, _ int) error {
	m.ItemsRemoved.Inc()
	return nil
}

// OnOrderCleared implements plugin.OnOrderCleared.
func (m *MetricsExtension) OnOrderCleared(_ context.Context, _ string, _ int) error {
	m.OrdersCleared.Inc()
	return nil
}

// OnCheckout implements plugin.OnCheckout.
func (m *MetricsExtension) OnCheckout(_ context.Context, receipt *order.Receipt) error {
	m.Checkouts.Inc()
	m.CheckoutTotal.Observe(receipt.Total)
	m.CheckoutLines.Observe(float64(len(receipt.Lines)))
	return nil
}

// ──────────────────────────────────────────────────
// Balance hooks
// ──────────────────────────────────────────────────

// OnBalanceAdjusted implements plugin.OnBalanceAdjusted.
func (m *MetricsExtension) OnBalanceAdjusted(_ context.Context, _ string, adj balance.Adjustment) error {
	m.Adjustments.Inc()
	m.AdjustmentDelta.Observe(adj.Delta)
	return nil
}

// OnCountReconciled implements plugin.OnCountReconciled.
func (m *MetricsExtension) OnCountReconciled(_ context.Context, _ string, rec balance.Reconciliation) error {
	m.Reconciliations.Inc()
	if !rec.Balanced() {
		m.CountMismatches.Inc()
		m.CountDiscrepancies.Observe(rec.Discrepancy)
	}
	return nil
}
