package finance

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"121000", 121000},
		{"121,000.50", 121000.50},
		{"SAR 1,500", 1500},
		{"  -42.5 ", -42.5},
		{"+10", 10},
		{"1.2.3", 0},
		{"", 0},
		{"abc", 0},
		{"١٢٣", 0}, // eastern digits are not normalized; degrade to zero
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseAmount(tt.in); got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAmountOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float64", 12.5, 12.5},
		{"int", 7, 7},
		{"string with noise", "1,000 SAR", 1000},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"map", map[string]any{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AmountOf(tt.in); got != tt.want {
				t.Errorf("AmountOf(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComputeRaw_ToleratesMalformedShapes(t *testing.T) {
	raw := map[string]any{
		"classification":    "housing_loan_program",
		"total_value":       "1,000,000",
		"total_bank_value":  600000.0,
		"total_owner_value": nil,
		"bank_fees":         "not an object",
		"owner_fees": map[string]any{
			"has_fee":    true,
			"design_pct": "5",
		},
	}

	b, err := ComputeRaw(raw)
	if err != nil {
		t.Fatalf("ComputeRaw failed: %v", err)
	}
	if b.Owner.Gross != 400000 {
		t.Errorf("owner gross = %v, want 400000", b.Owner.Gross)
	}
	if b.Bank.Rate != 0 {
		t.Errorf("bank rate = %v, want 0 for unparsable fees", b.Bank.Rate)
	}
	if b.Owner.Rate != 5 {
		t.Errorf("owner rate = %v, want 5", b.Owner.Rate)
	}
}

func TestComputeRaw_NilPayload(t *testing.T) {
	_, err := ComputeRaw(nil)
	if err == nil {
		t.Fatal("expected error for nil payload")
	}
	ce, ok := err.(*ComputeError)
	if !ok {
		t.Fatalf("expected *ComputeError, got %T", err)
	}
	if ce.Error() == "" {
		t.Error("expected a descriptive error message")
	}
}
