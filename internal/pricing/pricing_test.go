package pricing

import "testing"

func TestComputeTotals(t *testing.T) {
	lines := []Line{
		{UnitPrice: 500, Quantity: 2},
		{UnitPrice: 120, Quantity: 1},
	}

	totals := Compute(lines, 50)
	if totals.Subtotal != 1120 {
		t.Fatalf("expected subtotal 1120, got %d", totals.Subtotal)
	}
	if totals.ShippingFee != 50 {
		t.Fatalf("expected shipping fee 50, got %d", totals.ShippingFee)
	}
	if totals.Total != 1170 {
		t.Fatalf("expected total 1170, got %d", totals.Total)
	}
	if totals.TotalItems != 3 {
		t.Fatalf("expected 3 items, got %d", totals.TotalItems)
	}
}

func TestComputeSingleLine(t *testing.T) {
	totals := Compute([]Line{{UnitPrice: 500, Quantity: 2}}, 50)
	if totals.Subtotal != 1000 || totals.Total != 1050 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestComputeEmptyCartStillCarriesFlatShipping(t *testing.T) {
	totals := Compute(nil, 50)
	if totals.Subtotal != 0 || totals.TotalItems != 0 {
		t.Fatalf("expected empty subtotal, got %+v", totals)
	}
	if totals.ShippingFee != 50 || totals.Total != 50 {
		t.Fatalf("expected flat shipping fee on empty cart, got %+v", totals)
	}
}

func TestComputeIgnoresNonPositiveLines(t *testing.T) {
	totals := Compute([]Line{
		{UnitPrice: 100, Quantity: 0},
		{UnitPrice: 0, Quantity: 3},
		{UnitPrice: 250, Quantity: 1},
	}, 50)
	if totals.Subtotal != 250 {
		t.Fatalf("expected subtotal 250, got %d", totals.Subtotal)
	}
	if totals.Total != 300 {
		t.Fatalf("expected total 300, got %d", totals.Total)
	}
}
