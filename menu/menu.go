package menu

import (
	"github.com/caisseplanck/register/errs"
)

// Menu is an immutable catalog of items in load order.
type Menu struct {
	items     []Item
	byBarcode map[string]int
}

// New builds a menu. Duplicate barcodes are rejected.
func New(items ...Item) (*Menu, error) {
	m := &Menu{byBarcode: make(map[string]int, len(items))}
	for _, it := range items {
		if err := m.add(it); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Menu) add(it Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	if _, dup := m.byBarcode[it.Barcode]; dup {
		return errs.Invalid("item barcode", "duplicate barcode %q", it.Barcode)
	}
	m.byBarcode[it.Barcode] = len(m.items)
	m.items = append(m.items, it)
	return nil
}

// Find returns the first item in load order whose barcode or shortcut equals
// token.
func (m *Menu) Find(token string) (Item, error) {
	for _, it := range m.items {
		if it.Matches(token) {
			return it, nil
		}
	}
	return Item{}, errs.NotFound("item", token)
}

// Items returns a copy of the catalog in load order.
func (m *Menu) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of items.
func (m *Menu) Len() int { return len(m.items) }
