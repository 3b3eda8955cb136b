// Package staff holds the employee directory and its file loader.
package staff

import (
	"strconv"

	"github.com/caisseplanck/register/errs"
)

// Level is an employee privilege tier.
type Level int

// Privilege tiers.
const (
	LevelClerk   Level = 0 // scan and remove items, view the order
	LevelCashier Level = 1 // custom items and checkout
	LevelManager Level = 2 // view, adjust and reconcile the balance
)

// Valid reports whether l is one of the defined tiers.
func (l Level) Valid() bool { return l >= LevelClerk && l <= LevelManager }

func (l Level) String() string {
	switch l {
	case LevelClerk:
		return "clerk"
	case LevelCashier:
		return "cashier"
	case LevelManager:
		return "manager"
	default:
		return "level(" + strconv.Itoa(int(l)) + ")"
	}
}

// Identity is an employee who can log into the register. Two identities are
// the same employee when their barcodes are equal.
type Identity struct {
	Name    string `json:"name"`
	Barcode string `json:"barcode"`
	Code    string `json:"code"`
	Level   Level  `json:"level"`
}

// NewIdentity validates and builds an identity.
func NewIdentity(name, barcode, code string, level Level) (Identity, error) {
	id := Identity{Name: name, Barcode: barcode, Code: code, Level: level}
	if err := id.Validate(); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// Validate checks the identity's invariants.
func (i Identity) Validate() error {
	switch {
	case i.Name == "":
		return errs.Invalid("employee name", "must not be empty")
	case i.Barcode == "":
		return errs.Invalid("employee barcode", "must not be empty")
	case i.Code == "":
		return errs.Invalid("employee code", "must not be empty")
	case !i.Level.Valid():
		return errs.Invalid("employee level", "must be in {0, 1, 2}, got %d", int(i.Level))
	}
	return nil
}

// Matches reports whether token is the identity's barcode or permanent code.
func (i Identity) Matches(token string) bool {
	return token == i.Barcode || token == i.Code
}

func (i Identity) String() string {
	return i.Name + "|" + i.Barcode + "|" + i.Code + "|" + strconv.Itoa(int(i.Level))
}
