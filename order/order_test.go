package order

import (
	"reflect"
	"strings"
	"testing"

	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/menu"
)

var (
	chocolate = menu.Item{Name: "Chocolate bar", Price: 1.0, Barcode: "001", Category: "Candy"}
	gum       = menu.Item{Name: "Gum", Price: 0.75, Barcode: "002", Category: "Candy"}
	custom    = menu.Item{Name: "gum", Price: 0.47, Barcode: "custom_gum", Category: "Custom"}
)

func TestAdd(t *testing.T) {
	o := New()
	o.Add(chocolate)
	o.Add(gum)
	o.Add(gum)

	want := []Line{{Item: chocolate, Quantity: 1}, {Item: gum, Quantity: 2}}
	if got := o.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestAddKeysByBarcode(t *testing.T) {
	o := New()
	o.Add(gum)
	renamed := gum
	renamed.Name = "Gum (mint)"
	o.Add(renamed)

	if o.Len() != 1 || o.Quantity(gum.Barcode) != 2 {
		t.Errorf("expected a single line with quantity 2, got %+v", o.Lines())
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name   string
		setup  []menu.Item
		remove menu.Item
		want   []Line
	}{
		{"duplicate decrements", []menu.Item{gum, gum}, gum, []Line{{Item: gum, Quantity: 1}}},
		{"unique drops line", []menu.Item{gum}, gum, []Line{}},
		{"middle line keeps order", []menu.Item{chocolate, gum, custom}, gum,
			[]Line{{Item: chocolate, Quantity: 1}, {Item: custom, Quantity: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New()
			for _, it := range tt.setup {
				o.Add(it)
			}
			if err := o.Remove(tt.remove); err != nil {
				t.Fatal(err)
			}
			if got := o.Lines(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRemoveMissing(t *testing.T) {
	o := New()
	o.Add(chocolate)
	if err := o.Remove(gum); !errs.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if o.Quantity(chocolate.Barcode) != 1 {
		t.Error("failed remove must not mutate the order")
	}
}

func TestAddRemoveInverse(t *testing.T) {
	for _, it := range []menu.Item{chocolate, gum, custom} {
		o := New()
		o.Add(chocolate)
		o.Add(gum)
		o.Add(gum)
		before := o.Lines()

		o.Add(it)
		if err := o.Remove(it); err != nil {
			t.Fatal(err)
		}
		if after := o.Lines(); !reflect.DeepEqual(before, after) {
			t.Errorf("add/remove %s: got %+v, want %+v", it.Name, after, before)
		}

		o.Add(custom)
		if err := o.Remove(custom); err != nil {
			t.Fatal(err)
		}
		if _, ok := o.Lookup(custom.Barcode); ok {
			t.Error("custom line should be gone")
		}
	}
}

func TestClear(t *testing.T) {
	o := New()
	o.Add(chocolate)
	o.Add(gum)
	o.Clear()
	if !o.IsEmpty() || o.Quantity(chocolate.Barcode) != 0 {
		t.Errorf("expected empty order, got %+v", o.Lines())
	}
	o.Add(gum)
	if o.Len() != 1 {
		t.Error("order must be reusable after Clear")
	}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []menu.Item
		want  float64
	}{
		{"empty", nil, 0},
		{"catalog and custom", []menu.Item{chocolate, custom}, 1.47},
		{"quantities", []menu.Item{gum, gum, gum, chocolate}, 3.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New()
			for _, it := range tt.items {
				o.Add(it)
			}
			if got := o.Total(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	o := New()
	if o.String() != "" {
		t.Errorf("empty order should render empty, got %q", o.String())
	}
	o.Add(chocolate)
	o.Add(gum)
	o.Add(gum)
	want := "Chocolate bar x 1\nGum x 2"
	if got := o.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.HasSuffix(o.String(), "\n") {
		t.Error("no trailing newline expected")
	}
}

func TestNewReceipt(t *testing.T) {
	o := New()
	o.Add(chocolate)
	o.Add(gum)
	r := NewReceipt("Admin", o)
	if r.ID.IsNil() || r.Operator != "Admin" || r.Total != 1.75 || r.Text != "Chocolate bar x 1\nGum x 1" {
		t.Errorf("unexpected receipt %+v", r)
	}
	o.Clear()
	if len(r.Lines) != 2 {
		t.Error("receipt must not alias the order")
	}
}
