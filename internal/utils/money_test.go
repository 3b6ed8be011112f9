package utils

import (
	"encoding/json"
	"testing"
)

func TestMoneyCreation(t *testing.T) {
	t.Run("NewMoney", func(t *testing.T) {
		m := NewMoney(10, 50)
		if m.ToCents() != 1050 {
			t.Errorf("Expected 1050 cents, got %d", m.ToCents())
		}
	})

	t.Run("Cents", func(t *testing.T) {
		m := Cents(1234)
		if m.ToCents() != 1234 {
			t.Errorf("Expected 1234 cents, got %d", m.ToCents())
		}
	})

	t.Run("Units", func(t *testing.T) {
		m := Units(100)
		if m.ToCents() != 10000 {
			t.Errorf("Expected 10000 cents, got %d", m.ToCents())
		}
	})
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"5000", 500000, false},
		{"12.5", 1250, false},
		{"0.01", 1, false},
		{" 19.99 ", 1999, false},
		{"-3.75", -375, false},
		{"0.1", 10, false},
		{"1.005", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"23058430092136939.51", int64(MaxMoney), false},
		{"23058430092136939.52", 0, true},
		{"-23058430092136939.52", 0, true},
		{"46116860184273879.04", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got %d", tt.input, got.ToCents())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tt.input, err)
			}
			if got.ToCents() != tt.want {
				t.Errorf("Expected %d cents, got %d", tt.want, got.ToCents())
			}
		})
	}
}

func TestMaxMoneySumDoesNotOverflow(t *testing.T) {
	if sum := MaxMoney.Add(MaxMoney); !sum.IsPositive() {
		t.Errorf("Expected positive sum, got %s", sum)
	}
	if diff := MaxMoney.Neg().Sub(MaxMoney); !diff.IsNegative() {
		t.Errorf("Expected negative difference, got %s", diff)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	m1 := NewMoney(10, 50)
	m2 := NewMoney(5, 25)

	t.Run("Add", func(t *testing.T) {
		result := m1.Add(m2)
		if result.ToCents() != 1575 {
			t.Errorf("Expected 1575 cents, got %d", result.ToCents())
		}
	})

	t.Run("Sub", func(t *testing.T) {
		result := m1.Sub(m2)
		if result.ToCents() != 525 {
			t.Errorf("Expected 525 cents, got %d", result.ToCents())
		}
	})

	t.Run("Neg", func(t *testing.T) {
		if m1.Neg().ToCents() != -1050 {
			t.Errorf("Expected -1050 cents, got %d", m1.Neg().ToCents())
		}
	})

	t.Run("Exact tenths", func(t *testing.T) {
		// 0.1 + 0.2 must be exactly 0.3 in minor units
		sum := MustParseMoney("0.1").Add(MustParseMoney("0.2"))
		if sum != MustParseMoney("0.3") {
			t.Errorf("Expected 0.30, got %s", sum)
		}
	})
}

func TestMoneyComparison(t *testing.T) {
	m1 := NewMoney(10, 0)
	m2 := NewMoney(20, 0)
	m3 := NewMoney(10, 0)

	if m1.Cmp(m2) != -1 {
		t.Error("Expected m1 < m2")
	}
	if m2.Cmp(m1) != 1 {
		t.Error("Expected m2 > m1")
	}
	if m1.Cmp(m3) != 0 {
		t.Error("Expected m1 == m3")
	}
	if m1.Max(m2) != m2 {
		t.Error("Expected max to be m2")
	}
}

func TestMoneyString(t *testing.T) {
	m := NewMoney(1234, 56)
	if str := m.String(); str != "1234.56" {
		t.Errorf("Expected '1234.56', got '%s'", str)
	}

	m = Cents(-5075)
	if str := m.String(); str != "-50.75" {
		t.Errorf("Expected '-50.75', got '%s'", str)
	}
}

func TestMoneyFormat(t *testing.T) {
	m := NewMoney(1234567, 89)
	if str := m.Format(); str != "1,234,567.89" {
		t.Errorf("Expected '1,234,567.89', got '%s'", str)
	}

	if str := Units(10000).Format(); str != "10,000.00" {
		t.Errorf("Expected '10,000.00', got '%s'", str)
	}
}

func TestMoneyJSON(t *testing.T) {
	type payload struct {
		Amount Money `json:"amount"`
	}

	data, err := json.Marshal(payload{Amount: Units(5000)})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"amount":"5000.00"}` {
		t.Errorf("Expected decimal string, got %s", data)
	}

	var fromNumber payload
	if err := json.Unmarshal([]byte(`{"amount": 12.5}`), &fromNumber); err != nil {
		t.Fatalf("Unmarshal number failed: %v", err)
	}
	if fromNumber.Amount.ToCents() != 1250 {
		t.Errorf("Expected 1250 cents, got %d", fromNumber.Amount.ToCents())
	}

	var fromString payload
	if err := json.Unmarshal([]byte(`{"amount": "500"}`), &fromString); err != nil {
		t.Fatalf("Unmarshal string failed: %v", err)
	}
	if fromString.Amount != Units(500) {
		t.Errorf("Expected 500.00, got %s", fromString.Amount)
	}
}

func TestMoneyScan(t *testing.T) {
	var m Money
	if err := m.Scan(int64(4200)); err != nil {
		t.Fatalf("Scan int64 failed: %v", err)
	}
	if m.ToCents() != 4200 {
		t.Errorf("Expected 4200 cents, got %d", m.ToCents())
	}

	if err := m.Scan([]byte("-15")); err != nil {
		t.Fatalf("Scan bytes failed: %v", err)
	}
	if m.ToCents() != -15 {
		t.Errorf("Expected -15 cents, got %d", m.ToCents())
	}

	if err := m.Scan("nope"); err == nil {
		t.Error("Expected error scanning a string")
	}
}

func TestRandomAmount(t *testing.T) {
	rng := NewRandom(42)

	min := Units(10)
	max := Units(100)

	for i := 0; i < 1000; i++ {
		m := RandomAmount(rng, min, max)
		if m < min || m > max {
			t.Errorf("RandomAmount returned %d, expected between %d and %d", m.ToCents(), min.ToCents(), max.ToCents())
		}
	}
}

func TestMoneyRoundToNearest(t *testing.T) {
	m := NewMoney(123, 0)
	result := m.RoundToNearest(Units(5))
	if result.ToCents() != 12500 {
		t.Errorf("Expected 12500 cents, got %d", result.ToCents())
	}
}
