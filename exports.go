package register

import (
	"github.com/caisseplanck/register/balance"
	"github.com/caisseplanck/register/menu"
	"github.com/caisseplanck/register/order"
	"github.com/caisseplanck/register/staff"
	"github.com/caisseplanck/register/types"
)

// Re-export common types for convenience so users don't have to import each package.

// Item is a menu entry.
type Item = menu.Item

// Identity is an employee.
type Identity = staff.Identity

// Level is an employee privilege level.
type Level = staff.Level

// Line is one order line.
type Line = order.Line

// Receipt records a completed checkout.
type Receipt = order.Receipt

// Adjustment records a manual register count change.
type Adjustment = balance.Adjustment

// Reconciliation records an operator count.
type Reconciliation = balance.Reconciliation

// Privilege levels.
const (
	LevelClerk   = staff.LevelClerk
	LevelCashier = staff.LevelCashier
	LevelManager = staff.LevelManager
)

// Re-export amount helpers
var (
	FormatAmount = types.Format
	Sum          = types.Sum
)
