// Package balance persists the register count: the amount of physical
// currency in the till. The balance lives in a dedicated 8-byte file and
// never goes negative.
package balance

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/id"
	"github.com/caisseplanck/register/types"
)

// Adjustment records a signed change to the balance.
type Adjustment struct {
	ID    id.ID   `json:"id"`
	Old   float64 `json:"old"`
	New   float64 `json:"new"`
	Delta float64 `json:"delta"`
}

// Reconciliation compares an operator's count with the persisted balance.
type Reconciliation struct {
	ID          id.ID   `json:"id"`
	Reported    float64 `json:"reported"`
	Expected    float64 `json:"expected"`
	Discrepancy float64 `json:"discrepancy"` // Reported - Expected
}

// Balanced reports whether the count matched the balance.
func (r Reconciliation) Balanced() bool { return types.Cmp(r.Discrepancy, 0) == 0 }

// Ledger owns one balance file. Every mutation is persisted before it
// returns, and the in-memory value only changes once the write succeeded.
type Ledger struct {
	mu      sync.Mutex
	path    string
	balance float64
	logger  *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// Open loads the balance stored at path. A missing file is created holding
// 0.0 and a warning is logged.
func Open(path string, opts ...Option) (*Ledger, error) {
	l := &Ledger{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}

	v, err := ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := WriteFile(path, 0); err != nil {
			return nil, err
		}
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		l.logger.Warn("register count file not found, created one with value 0.0", "path", abs)
		v = 0
	case err != nil:
		return nil, err
	}
	l.balance = v
	return l, nil
}

// Path returns the balance file path.
func (l *Ledger) Path() string { return l.path }

// Balance returns the current balance.
func (l *Ledger) Balance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Add increases the balance by amount (>= 0) and returns the new balance.
func (l *Ledger) Add(amount float64) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.add(amount)
}

// Subtract decreases the balance by amount. An amount larger than the
// balance is rejected and nothing changes.
func (l *Ledger) Subtract(amount float64) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.subtract(amount)
}

// Adjust applies a signed delta: Add when delta >= 0, Subtract(|delta|)
// otherwise.
func (l *Ledger) Adjust(delta float64) (Adjustment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !types.Finite(delta) {
		return Adjustment{}, errs.Invalid("adjustment", "must be a finite number, got %v", delta)
	}
	old := l.balance
	var err error
	if delta >= 0 {
		_, err = l.add(delta)
	} else {
		_, err = l.subtract(-delta)
	}
	if err != nil {
		return Adjustment{}, err
	}
	return Adjustment{ID: id.NewAdjustmentID(), Old: old, New: l.balance, Delta: delta}, nil
}

// Reconcile compares an operator-reported count with the balance. It never
// mutates the balance.
func (l *Ledger) Reconcile(count float64) (Reconciliation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !types.ValidAmount(count) {
		return Reconciliation{}, errs.Invalid("count", "must be a non-negative number, got %v", count)
	}
	return Reconciliation{
		ID:          id.NewReconciliationID(),
		Reported:    count,
		Expected:    l.balance,
		Discrepancy: types.Sub(count, l.balance),
	}, nil
}

func (l *Ledger) add(amount float64) (float64, error) {
	if !types.ValidAmount(amount) {
		return l.balance, errs.Invalid("amount", "must be a non-negative number, got %v", amount)
	}
	return l.persist(types.Add(l.balance, amount))
}

func (l *Ledger) subtract(amount float64) (float64, error) {
	if !types.ValidAmount(amount) {
		return l.balance, errs.Invalid("amount", "must be a non-negative number, got %v", amount)
	}
	if types.Cmp(amount, l.balance) > 0 {
		return l.balance, errs.Invalid("amount",
			"cannot subtract %s, greater than register count %s", types.Format(amount), types.Format(l.balance))
	}
	return l.persist(types.Sub(l.balance, amount))
}

func (l *Ledger) persist(v float64) (float64, error) {
	if !types.Finite(v) {
		return l.balance, errs.Invalid("amount", "register count would overflow")
	}
	if v < 0 {
		// decimal rounding back to float64 can land a hair under zero
		v = 0
	}
	if err := WriteFile(l.path, v); err != nil {
		return l.balance, fmt.Errorf("persist balance: %w", err)
	}
	l.balance = v
	return v, nil
}

