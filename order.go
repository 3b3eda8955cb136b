package register

import (
	"context"

	"github.com/caisseplanck/register/access"
	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/menu"
	"github.com/caisseplanck/register/order"
)

// Add scans token (barcode or shortcut) into the order and returns the
// updated line.
func (r *Register) Add(ctx context.Context, token string) (order.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.authorize(ctx, access.OpScan); err != nil {
		return order.Line{}, err
	}
	it, err := r.menu.Find(token)
	if err != nil {
		return order.Line{}, err
	}
	return r.add(ctx, it), nil
}

// AddCustom adds an item that is not on the menu. The name must contain no
// whitespace and the price must be a non-negative number.
func (r *Register) AddCustom(ctx context.Context, name string, price float64) (order.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.authorize(ctx, access.OpCustomItem); err != nil {
		return order.Line{}, err
	}
	it, err := menu.NewCustomItem(name, price)
	if err != nil {
		return order.Line{}, err
	}
	return r.add(ctx, it), nil
}

func (r *Register) add(ctx context.Context, it menu.Item) order.Line {
	r.order.Add(it)
	line, _ := r.order.Lookup(it.Barcode)
	r.logger.Debug("item added", "barcode", it.Barcode, "quantity", line.Quantity)
	r.plugins.EmitItemAdded(ctx, r.session.Name(), it, line.Quantity)
	return line
}

// Remove takes one unit of token off the order. token is resolved against
// the menu first, then against barcodes already in the order so custom
// items can be removed too. The returned line holds the remaining
// quantity, 0 when the line was dropped.
func (r *Register) Remove(ctx context.Context, token string) (order.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.authorize(ctx, access.OpRemove); err != nil {
		return order.Line{}, err
	}

	var it menu.Item
	if found, err := r.menu.Find(token); err == nil {
		it = found
	} else if line, ok := r.order.Lookup(token); ok {
		it = line.Item
	} else {
		return order.Line{}, err
	}

	if err := r.order.Remove(it); err != nil {
		return order.Line{}, errs.NotFound("order line", it.Name)
	}
	line := order.Line{Item: it, Quantity: r.order.Quantity(it.Barcode)}
	r.logger.Debug("item removed", "barcode", it.Barcode, "quantity", line.Quantity)
	r.plugins.EmitItemRemoved(ctx, r.session.Name(), it, line.Quantity)
	return line, nil
}

// ClearOrder empties the order.
func (r *Register) ClearOrder(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.authorize(ctx, access.OpClearOrder); err != nil {
		return err
	}
	n := r.order.Len()
	r.order.Clear()
	r.plugins.EmitOrderCleared(ctx, r.session.Name(), n)
	return nil
}

// Find looks token up on the menu without touching the order.
func (r *Register) Find(token string) (menu.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.authorize(context.Background(), access.OpFind); err != nil {
		return menu.Item{}, err
	}
	return r.menu.Find(token)
}

// OrderString renders the order as "name x quantity" lines.
func (r *Register) OrderString() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.authorize(context.Background(), access.OpViewOrder); err != nil {
		return "", err
	}
	return r.order.String(), nil
}

// OrderTotal returns the order total, 0 for an empty order.
func (r *Register) OrderTotal() (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.authorize(context.Background(), access.OpViewOrder); err != nil {
		return 0, err
	}
	return r.order.Total(), nil
}

// OrderLines returns a copy of the order lines in scan order.
func (r *Register) OrderLines() ([]order.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.authorize(context.Background(), access.OpViewOrder); err != nil {
		return nil, err
	}
	return r.order.Lines(), nil
}
