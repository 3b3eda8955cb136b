package plugin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/caisseplanck/register/access"
	"github.com/caisseplanck/register/menu"
	"github.com/caisseplanck/register/order"
	"github.com/caisseplanck/register/staff"
)

type recorder struct {
	name string
	mu   sync.Mutex
	seen []string
	err  error
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) add(s string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, s)
	return r.err
}

func (r *recorder) OnLogin(_ context.Context, who staff.Identity) error {
	return r.add("login:" + who.Name)
}

func (r *recorder) OnItemAdded(_ context.Context, _ string, item menu.Item, _ int) error {
	return r.add("added:" + item.Barcode)
}

func (r *recorder) OnCheckout(_ context.Context, rec *order.Receipt) error {
	return r.add("checkout:" + rec.Operator)
}

type onlyName struct{ name string }

func (o onlyName) Name() string { return o.name }

type slow struct{}

func (slow) Name() string { return "slow" }
func (slow) OnLogout(ctx context.Context, _ staff.Identity) error {
	time.Sleep(time.Second)
	return nil
}

func quietRegistry() *Registry {
	return NewRegistry().WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := quietRegistry()
	if err := r.Register(onlyName{"a"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(onlyName{"a"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if r.Count() != 1 || r.Get("a") == nil || r.Get("b") != nil {
		t.Errorf("unexpected registry state: %v", r.List())
	}
}

func TestDispatchOnlyToImplementers(t *testing.T) {
	r := quietRegistry()
	rec := &recorder{name: "rec"}
	_ = r.Register(onlyName{"bare"})
	_ = r.Register(rec)

	ctx := context.Background()
	r.EmitLogin(ctx, staff.Identity{Name: "Alice"})
	r.EmitItemAdded(ctx, "Alice", menu.Item{Barcode: "001"}, 1)
	r.EmitCheckout(ctx, &order.Receipt{Operator: "Alice"})
	r.EmitLogout(ctx, staff.Identity{Name: "Alice"})
	r.EmitAccessDenied(ctx, "None", access.OpScan, errors.New("denied"))

	want := []string{"login:Alice", "added:001", "checkout:Alice"}
	if !slices.Equal(rec.seen, want) {
		t.Errorf("got %v, want %v", rec.seen, want)
	}
}

func TestHookErrorsAreSwallowed(t *testing.T) {
	r := quietRegistry()
	failing := &recorder{name: "failing", err: errors.New("boom")}
	ok := &recorder{name: "ok"}
	_ = r.Register(failing)
	_ = r.Register(ok)

	r.EmitLogin(context.Background(), staff.Identity{Name: "Bob"})

	if len(ok.seen) != 1 {
		t.Errorf("expected later plugin to run after a failure, got %v", ok.seen)
	}
}

func TestHookTimeout(t *testing.T) {
	r := quietRegistry().WithTimeout(10 * time.Millisecond)
	_ = r.Register(slow{})

	start := time.Now()
	r.EmitLogout(context.Background(), staff.Identity{Name: "Carol"})
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("expected timeout to bound dispatch, took %v", elapsed)
	}
}

func TestImplementedInterfaces(t *testing.T) {
	got := implementedInterfaces(&recorder{})
	want := []string{"OnLogin", "OnItemAdded", "OnCheckout"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
