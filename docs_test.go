package register_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/caisseplanck/register"
	"github.com/caisseplanck/register/audit"
	"github.com/caisseplanck/register/balance"
	"github.com/caisseplanck/register/menu"
	"github.com/caisseplanck/register/staff"
	"github.com/caisseplanck/register/types"
)

// TestDocumentationExamples verifies that the package documentation examples run.
func TestDocumentationExamples(t *testing.T) {
	t.Run("QuickStartExample", func(t *testing.T) {
		dir := t.TempDir()
		menuPath := filepath.Join(dir, "menu.txt")
		staffPath := filepath.Join(dir, "employees.txt")
		if err := os.WriteFile(menuPath, []byte(sampleMenu), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(staffPath, []byte(sampleStaff), 0o600); err != nil {
			t.Fatal(err)
		}

		m, _, err := menu.LoadFile(menuPath)
		if err != nil {
			t.Fatal(err)
		}
		employees, _, err := staff.LoadFile(staffPath)
		if err != nil {
			t.Fatal(err)
		}
		// a missing count file is created at 0.00
		l, err := balance.Open(filepath.Join(dir, "register_count.bin"))
		if err != nil {
			t.Fatal(err)
		}

		sink, err := audit.OpenDir(filepath.Join(dir, "logs"))
		if err != nil {
			t.Fatal(err)
		}
		defer sink.Close()

		ctx := context.Background()
		r := register.New(m, employees, l,
			register.WithLogger(slog.Default()),
			register.WithAuditSink(sink),
		)
		if err := r.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer r.Stop()

		if _, err := r.Login(ctx, "1111"); err != nil {
			t.Fatal(err)
		}
		if _, err := r.Add(ctx, "001"); err != nil {
			t.Fatal(err)
		}
		receipt, err := r.Checkout(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if receipt.BalanceAfter != 1.0 {
			t.Errorf("expected balance 1.00, got %s", register.FormatAmount(receipt.BalanceAfter))
		}
	})

	t.Run("AmountExamples", func(t *testing.T) {
		if got := types.Add(11.57, 2.5); got != 14.07 {
			t.Errorf("11.57 + 2.5: got %v", got)
		}
		if got := types.Mul(0.75, 3); got != 2.25 {
			t.Errorf("0.75 x 3: got %v", got)
		}
		if got := register.Sum(1.0, 0.75); got != 1.75 {
			t.Errorf("sum: got %v", got)
		}
		if got := types.Format(3.5); got != "3.50" {
			t.Errorf("format: got %q", got)
		}
	})
}
