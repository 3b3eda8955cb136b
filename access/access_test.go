package access

import (
	"errors"
	"strings"
	"testing"

	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/staff"
)

func TestVerifyMonotonic(t *testing.T) {
	levels := []staff.Level{staff.LevelClerk, staff.LevelCashier, staff.LevelManager}
	for _, held := range levels {
		for _, req := range levels {
			who := &staff.Identity{Name: "E", Barcode: "1", Code: "e", Level: held}
			err := Verify(who, req)
			if held >= req && err != nil {
				t.Errorf("held %d, required %d: unexpected error %v", held, req, err)
			}
			if held < req && !errs.IsCredential(err) {
				t.Errorf("held %d, required %d: expected credential error, got %v", held, req, err)
			}
		}
		who := &staff.Identity{Level: held}
		if err := Verify(who, NoAuth); err != nil {
			t.Errorf("NoAuth must always succeed, got %v", err)
		}
	}
}

func TestVerifyNil(t *testing.T) {
	if err := Verify(nil, NoAuth); err != nil {
		t.Errorf("nil identity with NoAuth: %v", err)
	}
	for _, req := range []staff.Level{staff.LevelClerk, staff.LevelCashier, staff.LevelManager} {
		err := Verify(nil, req)
		if !errors.Is(err, errs.ErrNoSession) {
			t.Errorf("nil identity, level %d: expected ErrNoSession, got %v", req, err)
		}
	}
}

func TestRequired(t *testing.T) {
	tests := []struct {
		op   Op
		want staff.Level
	}{
		{OpLogin, NoAuth},
		{OpScan, staff.LevelClerk},
		{OpRemove, staff.LevelClerk},
		{OpViewOrder, staff.LevelClerk},
		{OpCustomItem, staff.LevelCashier},
		{OpCheckout, staff.LevelCashier},
		{OpViewBalance, staff.LevelManager},
		{OpAdjustBalance, staff.LevelManager},
		{OpReconcile, staff.LevelManager},
		{Op("unknown"), staff.LevelManager},
	}
	for _, tt := range tests {
		if got := Required(tt.op); got != tt.want {
			t.Errorf("Required(%s) = %d, want %d", tt.op, got, tt.want)
		}
	}
}

func TestAuthorizeNamesOperation(t *testing.T) {
	err := Authorize(&staff.Identity{Level: staff.LevelClerk}, OpCheckout)
	if err == nil || !strings.Contains(err.Error(), "checkout") {
		t.Errorf("expected error naming checkout, got %v", err)
	}
}

func TestSession(t *testing.T) {
	dir, err := staff.NewDirectory(
		staff.Identity{Name: "Admin", Barcode: "2222", Code: "admin", Level: staff.LevelManager},
		staff.Identity{Name: "Guest", Barcode: "0000", Code: "guest", Level: staff.LevelClerk},
	)
	if err != nil {
		t.Fatal(err)
	}

	var s Session
	if s.Current() != nil || s.Name() != NoOperator {
		t.Fatal("expected empty session")
	}
	if _, ok := s.Logout(); ok {
		t.Error("logout while logged out must be a no-op")
	}

	id, err := s.Login(dir, "admin")
	if err != nil {
		t.Fatal(err)
	}
	if id.Name != "Admin" || s.Name() != "Admin" {
		t.Errorf("unexpected identity %+v", id)
	}
	if err := s.Authorize(OpAdjustBalance); err != nil {
		t.Errorf("admin must be able to adjust: %v", err)
	}

	if _, err := s.Login(dir, "nobody"); !errs.IsCredential(err) {
		t.Errorf("expected credential error, got %v", err)
	}
	if s.Name() != "Admin" {
		t.Error("failed login must leave the session unchanged")
	}

	if _, err := s.Login(dir, "0000"); err != nil {
		t.Fatal(err)
	}
	if err := s.Authorize(OpCheckout); !errs.IsCredential(err) {
		t.Errorf("guest must not check out, got %v", err)
	}

	prev, ok := s.Logout()
	if !ok || prev.Name != "Guest" || s.Current() != nil {
		t.Errorf("unexpected logout result %+v %v", prev, ok)
	}
}
