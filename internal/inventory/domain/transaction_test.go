package domain

import "testing"

func TestStockDelta(t *testing.T) {
	tests := []struct {
		transactionType string
		quantity        int
		want            int
	}{
		{TypeIn, 5, 5},
		{TypeReturn, 3, 3},
		{TypeOut, 5, -5},
		{TypeBorrow, 2, -2},
		{TypeIn, 1, 1},
		{TypeOut, 1, -1},
	}

	for _, tt := range tests {
		tr := Transaction{Type: tt.transactionType, Quantity: tt.quantity}
		if got := tr.StockDelta(); got != tt.want {
			t.Errorf("StockDelta(%s, %d) = %d, want %d", tt.transactionType, tt.quantity, got, tt.want)
		}
	}
}

func TestValidType(t *testing.T) {
	for _, valid := range []string{TypeIn, TypeOut, TypeBorrow, TypeReturn} {
		if !ValidType(valid) {
			t.Errorf("expected %q to be valid", valid)
		}
	}
	for _, invalid := range []string{"", "IN", "transfer", "inn"} {
		if ValidType(invalid) {
			t.Errorf("expected %q to be invalid", invalid)
		}
	}
}

func TestDepreciationStockDelta(t *testing.T) {
	d := Depreciation{Quantity: 4}
	if got := d.StockDelta(); got != -4 {
		t.Errorf("depreciation delta = %d, want -4", got)
	}
}

func TestIsLowStock(t *testing.T) {
	tests := []struct {
		current, min int
		want         bool
	}{
		{10, 5, false},
		{5, 5, true},
		{4, 5, true},
		{0, 0, true},
	}

	for _, tt := range tests {
		item := Item{CurrentStock: tt.current, MinStock: tt.min}
		if got := item.IsLowStock(); got != tt.want {
			t.Errorf("IsLowStock(current=%d, min=%d) = %v, want %v", tt.current, tt.min, got, tt.want)
		}
	}
}
