// Package order implements the in-progress order of a register session: a
// multiset of menu items keyed by barcode that preserves insertion order.
package order

import (
	"strconv"
	"strings"

	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/menu"
	"github.com/caisseplanck/register/types"
)

// Line is one item of the order with its quantity (always >= 1).
type Line struct {
	Item     menu.Item `json:"item"`
	Quantity int       `json:"quantity"`
}

// Subtotal returns price × quantity.
func (l Line) Subtotal() float64 { return types.Mul(l.Item.Price, l.Quantity) }

func (l Line) String() string {
	return l.Item.Name + " x " + strconv.Itoa(l.Quantity)
}

// Order is not safe for concurrent use; the register serializes access.
type Order struct {
	lines []Line
	index map[string]int // barcode -> position in lines
}

// New returns an empty order.
func New() *Order {
	return &Order{index: make(map[string]int)}
}

// Add increments the item's quantity, inserting it at quantity 1 if absent.
func (o *Order) Add(it menu.Item) {
	if i, ok := o.index[it.Barcode]; ok {
		o.lines[i].Quantity++
		return
	}
	o.index[it.Barcode] = len(o.lines)
	o.lines = append(o.lines, Line{Item: it, Quantity: 1})
}

// Remove decrements the item's quantity and drops the line at zero.
func (o *Order) Remove(it menu.Item) error {
	return o.RemoveBarcode(it.Barcode)
}

// RemoveBarcode is Remove keyed by barcode.
func (o *Order) RemoveBarcode(barcode string) error {
	i, ok := o.index[barcode]
	if !ok {
		return errs.NotFound("order line", barcode)
	}
	if o.lines[i].Quantity > 1 {
		o.lines[i].Quantity--
		return nil
	}
	o.lines = append(o.lines[:i], o.lines[i+1:]...)
	delete(o.index, barcode)
	for j := i; j < len(o.lines); j++ {
		o.index[o.lines[j].Item.Barcode] = j
	}
	return nil
}

// Lookup returns the line for barcode.
func (o *Order) Lookup(barcode string) (Line, bool) {
	i, ok := o.index[barcode]
	if !ok {
		return Line{}, false
	}
	return o.lines[i], true
}

// Quantity returns the quantity of barcode, 0 when absent.
func (o *Order) Quantity(barcode string) int {
	l, _ := o.Lookup(barcode)
	return l.Quantity
}

// Clear empties the order.
func (o *Order) Clear() {
	o.lines = nil
	clear(o.index)
}

// Len returns the number of distinct lines.
func (o *Order) Len() int { return len(o.lines) }

// IsEmpty reports whether the order has no lines.
func (o *Order) IsEmpty() bool { return len(o.lines) == 0 }

// Lines returns a copy of the lines in insertion order.
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// Total returns Σ price × quantity, 0 for an empty order.
func (o *Order) Total() float64 {
	subtotals := make([]float64, len(o.lines))
	for i, l := range o.lines {
		subtotals[i] = l.Subtotal()
	}
	return types.Sum(subtotals...)
}

// String renders "name x quantity" per line, newline-joined, in insertion
// order, with no trailing newline.
func (o *Order) String() string {
	parts := make([]string, len(o.lines))
	for i, l := range o.lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}
