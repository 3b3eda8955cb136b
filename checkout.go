package register

import (
	"context"

	"github.com/caisseplanck/register/access"
	"github.com/caisseplanck/register/balance"
	"github.com/caisseplanck/register/order"
	"github.com/caisseplanck/register/types"
)

// Checkout folds the order total into the balance, records the
// transaction and clears the order. If the balance cannot be persisted
// the order is kept and the balance is unchanged.
func (r *Register) Checkout(ctx context.Context) (*order.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.authorize(ctx, access.OpCheckout); err != nil {
		return nil, err
	}

	if r.order.IsEmpty() {
		r.logger.Info("checking out an empty order", "operator", r.session.Name())
	}
	receipt := order.NewReceipt(r.session.Name(), r.order)
	receipt.BalanceBefore = r.ledger.Balance()

	after, err := r.ledger.Add(receipt.Total)
	if err != nil {
		r.logger.Error("checkout failed", "receipt", receipt.ID, "error", err)
		return nil, err
	}
	receipt.BalanceAfter = after

	r.plugins.EmitCheckout(ctx, receipt)
	r.order.Clear()

	r.logger.Info("order checked out",
		"receipt", receipt.ID,
		"operator", receipt.Operator,
		"total", types.Format(receipt.Total),
		"balance", types.Format(after),
	)
	return receipt, nil
}

// ReadBalance returns the register count.
func (r *Register) ReadBalance() (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.authorize(context.Background(), access.OpViewBalance); err != nil {
		return 0, err
	}
	return r.ledger.Balance(), nil
}

// Adjust applies a signed change to the register count. A withdrawal larger
// than the balance is a validation error and changes nothing.
func (r *Register) Adjust(ctx context.Context, amount float64) (balance.Adjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.authorize(ctx, access.OpAdjustBalance); err != nil {
		return balance.Adjustment{}, err
	}
	adj, err := r.ledger.Adjust(amount)
	if err != nil {
		return balance.Adjustment{}, err
	}

	r.logger.Info("register count adjusted",
		"operator", r.session.Name(),
		"old", types.Format(adj.Old),
		"new", types.Format(adj.New),
	)
	r.plugins.EmitBalanceAdjusted(ctx, r.session.Name(), adj)
	return adj, nil
}

// Reconcile compares an operator's physical count with the register count.
// The balance is never changed.
func (r *Register) Reconcile(ctx context.Context, count float64) (balance.Reconciliation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.authorize(ctx, access.OpReconcile); err != nil {
		return balance.Reconciliation{}, err
	}
	rec, err := r.ledger.Reconcile(count)
	if err != nil {
		return balance.Reconciliation{}, err
	}

	if !rec.Balanced() {
		r.logger.Warn("register count mismatch",
			"operator", r.session.Name(),
			"reported", types.Format(rec.Reported),
			"expected", types.Format(rec.Expected),
			"discrepancy", types.Format(rec.Discrepancy),
		)
	}
	r.plugins.EmitCountReconciled(ctx, r.session.Name(), rec)
	return rec, nil
}
