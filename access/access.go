// Package access maps the logged-in identity to privilege tiers and gates
// register operations.
package access

import (
	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/staff"
)

// NoAuth is the required level of operations open to everyone, logged in or not.
const NoAuth staff.Level = -1

// Op names a gated register operation.
type Op string

// Register operations.
const (
	OpLogin         Op = "login"
	OpLogout        Op = "logout"
	OpScan          Op = "scan"
	OpFind          Op = "find"
	OpRemove        Op = "remove"
	OpClearOrder    Op = "clear_order"
	OpViewOrder     Op = "view_order"
	OpCustomItem    Op = "custom_item"
	OpCheckout      Op = "checkout"
	OpViewBalance   Op = "view_balance"
	OpAdjustBalance Op = "adjust_balance"
	OpReconcile     Op = "reconcile"
)

var required = map[Op]staff.Level{
	OpLogin:         NoAuth,
	OpLogout:        NoAuth,
	OpScan:          staff.LevelClerk,
	OpFind:          staff.LevelClerk,
	OpRemove:        staff.LevelClerk,
	OpClearOrder:    staff.LevelClerk,
	OpViewOrder:     staff.LevelClerk,
	OpCustomItem:    staff.LevelCashier,
	OpCheckout:      staff.LevelCashier,
	OpViewBalance:   staff.LevelManager,
	OpAdjustBalance: staff.LevelManager,
	OpReconcile:     staff.LevelManager,
}

// Required returns the level op requires. Unknown operations require the
// highest tier.
func Required(op Op) staff.Level {
	if l, ok := required[op]; ok {
		return l
	}
	return staff.LevelManager
}

// Verify succeeds iff level is NoAuth, or who is non-nil and holds at least
// level.
func Verify(who *staff.Identity, level staff.Level) error {
	return verify("", who, level)
}

// Authorize verifies who against the level op requires.
func Authorize(who *staff.Identity, op Op) error {
	return verify(op, who, Required(op))
}

func verify(op Op, who *staff.Identity, level staff.Level) error {
	if level == NoAuth {
		return nil
	}
	if who == nil {
		return &errs.CredentialError{Op: opName(op), Required: int(level)}
	}
	if who.Level < level {
		return &errs.CredentialError{Op: opName(op), Required: int(level), Held: int(who.Level), LoggedIn: true}
	}
	return nil
}

func opName(op Op) string {
	if op == "" {
		return "operation"
	}
	return string(op)
}
