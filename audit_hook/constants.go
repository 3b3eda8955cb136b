package audithook

import "github.com/caisseplanck/register/audit"

// Action constants for audit events.
const (
	// Session actions
	ActionLogin        = "session.login"
	ActionLoginFailed  = "session.login_failed"
	ActionLogout       = "session.logout"
	ActionAccessDenied = "access.denied"

	// Order actions
	ActionItemAdded    = "order.item_added"
	ActionItemRemoved  = "order.item_removed"
	ActionOrderCleared = "order.cleared"
	ActionCheckout     = "order.checkout"

	// Balance actions
	ActionBalanceAdjusted = "balance.adjusted"
	ActionCountReconciled = "balance.reconciled"
	ActionCountMismatch   = "balance.count_mismatch"
)

// allActions returns all known audit actions.
func allActions() []string {
	return []string{
		ActionLogin,
		ActionLoginFailed,
		ActionLogout,
		ActionAccessDenied,
		ActionItemAdded,
		ActionItemRemoved,
		ActionOrderCleared,
		ActionCheckout,
		ActionBalanceAdjusted,
		ActionCountReconciled,
		ActionCountMismatch,
	}
}

// streamOf returns the audit stream an action is written to. A count
// mismatch is both a counts line and an events warning; it is filed under
// events.
func streamOf(action string) audit.Stream {
	switch action {
	case ActionCheckout:
		return audit.StreamTransactions
	case ActionBalanceAdjusted, ActionCountReconciled:
		return audit.StreamCounts
	default:
		return audit.StreamEvents
	}
}
