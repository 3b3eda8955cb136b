// Package menu holds the register's item catalog and its file loader.
package menu

import (
	"strings"

	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/types"
)

// Category names with special meaning.
const (
	DefaultCategory = "General"
	CustomCategory  = "Custom"
)

// CustomBarcodePrefix prefixes the barcode of ad hoc items.
const CustomBarcodePrefix = "custom_"

// Item is one sellable catalog entry. Two items are the same item when their
// barcodes are equal.
type Item struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Barcode  string  `json:"barcode"`
	Category string  `json:"category"`
	Shortcut string  `json:"shortcut,omitempty"`
}

// NewItem validates and builds an item. An empty category means DefaultCategory.
func NewItem(name string, price float64, barcode, category, shortcut string) (Item, error) {
	if category == "" {
		category = DefaultCategory
	}
	it := Item{Name: name, Price: price, Barcode: barcode, Category: category, Shortcut: shortcut}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}

// NewCustomItem builds an item that is not backed by a catalog entry.
func NewCustomItem(name string, price float64) (Item, error) {
	if strings.ContainsFunc(name, isSpace) {
		return Item{}, errs.Invalid("item name", "must not contain white space")
	}
	return NewItem(name, price, CustomBarcodePrefix+name, CustomCategory, "")
}

// Validate checks the item's invariants.
func (i Item) Validate() error {
	switch {
	case i.Name == "":
		return errs.Invalid("item name", "must not be empty")
	case i.Barcode == "":
		return errs.Invalid("item barcode", "must not be empty")
	case i.Category == "":
		return errs.Invalid("item category", "must not be empty")
	case !types.ValidAmount(i.Price):
		return errs.Invalid("item price", "must be a non-negative number, got %v", i.Price)
	}
	return nil
}

// Matches reports whether token is the item's barcode or shortcut.
func (i Item) Matches(token string) bool {
	return token == i.Barcode || (i.Shortcut != "" && token == i.Shortcut)
}

// IsCustom reports whether the item was created ad hoc.
func (i Item) IsCustom() bool {
	return i.Category == CustomCategory && strings.HasPrefix(i.Barcode, CustomBarcodePrefix)
}

func (i Item) String() string {
	return i.Barcode + "|" + i.Name + "|" + i.Category + "|" + types.Format(i.Price)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
