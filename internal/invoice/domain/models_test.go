package domain

import "testing"

func TestItemRecalculateMaintainsLineTotal(t *testing.T) {
	item := InvoiceItem{Name: "Design", Quantity: 3, UnitCost: 2500}
	item.Recalculate()
	if item.LineTotal != 7500 {
		t.Fatalf("LineTotal=%d, want 7500", item.LineTotal)
	}

	item.Quantity = 1.5
	item.Recalculate()
	if item.LineTotal != 3750 {
		t.Fatalf("after quantity change LineTotal=%d, want 3750", item.LineTotal)
	}

	item.UnitCost = 333
	item.Recalculate()
	if item.LineTotal != 500 { // 1.5 * 333 = 499.5, rounds away from zero
		t.Fatalf("after unit cost change LineTotal=%d, want 500", item.LineTotal)
	}
}

func TestInvoiceRecalculateDerivesSubtotalAndTotal(t *testing.T) {
	inv := Invoice{
		Tax: 750,
		Items: []InvoiceItem{
			{Name: "Design", Quantity: 2, UnitCost: 10000},
			{Name: "Development", Quantity: 10, UnitCost: 15000},
			{Name: "", Quantity: 5, UnitCost: 99999}, // blank name: excluded
		},
	}
	inv.Recalculate()

	if inv.Subtotal != 1720000 {
		t.Fatalf("Subtotal=%d, want 1720000", inv.Subtotal)
	}
	if inv.Total != 1720750 {
		t.Fatalf("Total=%d, want 1720750", inv.Total)
	}
	for _, item := range inv.Items {
		want := int64(0)
		switch item.Name {
		case "Design":
			want = 20000
		case "Development":
			want = 1500000
		case "":
			want = 499995
		}
		if item.LineTotal != want {
			t.Fatalf("item %q LineTotal=%d, want %d", item.Name, item.LineTotal, want)
		}
	}
}

func TestInvoiceRecalculateZeroItems(t *testing.T) {
	inv := Invoice{Tax: 500}
	inv.Recalculate()
	if inv.Subtotal != 0 {
		t.Fatalf("Subtotal=%d, want 0", inv.Subtotal)
	}
	if inv.Total != 500 {
		t.Fatalf("Total=%d, want tax amount 500", inv.Total)
	}
}

func TestValidItemsFiltersBlankNames(t *testing.T) {
	inv := Invoice{
		Items: []InvoiceItem{
			{Name: "First"},
			{Name: "   "},
			{Name: "Second"},
			{Name: ""},
		},
	}
	valid := inv.ValidItems()
	if len(valid) != 2 {
		t.Fatalf("got %d valid items, want 2", len(valid))
	}
	if valid[0].Name != "First" || valid[1].Name != "Second" {
		t.Fatalf("valid items out of order: %q, %q", valid[0].Name, valid[1].Name)
	}
}
