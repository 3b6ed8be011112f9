package utils

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value in minor units (cents).
// Balances, debts and risk limits are all kept as Money so that
// ledger arithmetic is exact integer arithmetic.
type Money int64

// MinorUnitDigits is the number of fractional digits a Money value carries.
const MinorUnitDigits = 2

// MaxMoney is the largest magnitude ParseMoney accepts. Any two values within
// it add or subtract without overflowing int64.
const MaxMoney Money = 1<<61 - 1

// NewMoney creates a Money value from major and minor units
func NewMoney(units int64, cents int) Money {
	return Money(units*100 + int64(cents))
}

// Cents creates a Money value from minor units only
func Cents(cents int64) Money {
	return Money(cents)
}

// Units creates a Money value from whole major units
func Units(units int64) Money {
	return Money(units * 100)
}

// ParseMoney parses a decimal string such as "5000", "12.5" or "-3.75".
// Values with more than two fractional digits are rejected rather than rounded.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	scaled := d.Shift(MinorUnitDigits)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("invalid amount %q: more than %d decimal places", s, MinorUnitDigits)
	}
	if scaled.Abs().GreaterThan(decimal.NewFromInt(int64(MaxMoney))) {
		return 0, fmt.Errorf("invalid amount %q: out of range", s)
	}

	return Money(scaled.IntPart()), nil
}

// MustParseMoney is ParseMoney for constants and tests; it panics on bad input.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ToCents returns the value in cents (the underlying representation)
func (m Money) ToCents() int64 {
	return int64(m)
}

// Decimal returns the value as an exact decimal in major units
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -MinorUnitDigits)
}

// Add returns the sum of two Money values
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns the difference of two Money values
func (m Money) Sub(other Money) Money {
	return m - other
}

// Neg returns the negated value
func (m Money) Neg() Money {
	return -m
}

// IsZero returns true if the value is zero
func (m Money) IsZero() bool {
	return m == 0
}

// IsPositive returns true if the value is positive
func (m Money) IsPositive() bool {
	return m > 0
}

// IsNegative returns true if the value is negative
func (m Money) IsNegative() bool {
	return m < 0
}

// Cmp compares two Money values: returns -1 if m < other, 0 if equal, 1 if m > other
func (m Money) Cmp(other Money) int {
	if m < other {
		return -1
	}
	if m > other {
		return 1
	}
	return 0
}

// Max returns the larger of two Money values
func (m Money) Max(other Money) Money {
	if m > other {
		return m
	}
	return other
}

// String returns a plain representation (e.g., "123.45")
func (m Money) String() string {
	negative := m < 0
	if negative {
		m = -m
	}

	result := fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
	if negative {
		result = "-" + result
	}
	return result
}

// Format renders the value with thousands separators (e.g., "10,000.00")
func (m Money) Format() string {
	negative := m < 0
	if negative {
		m = -m
	}

	result := formatWithSeparator(int64(m)/100, ",") + fmt.Sprintf(".%02d", int64(m)%100)
	if negative {
		result = "-" + result
	}
	return result
}

// formatWithSeparator adds thousands separators to a number
func formatWithSeparator(n int64, sep string) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 || sep == "" {
		return str
	}

	var result strings.Builder
	startOffset := len(str) % 3
	if startOffset == 0 {
		startOffset = 3
	}

	result.WriteString(str[:startOffset])
	for i := startOffset; i < len(str); i += 3 {
		result.WriteString(sep)
		result.WriteString(str[i : i+3])
	}

	return result.String()
}

// MarshalJSON encodes the value as a decimal string so clients never see floats
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a decimal string or a JSON number
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}

	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value stores Money as its minor-unit integer
func (m Money) Value() (driver.Value, error) {
	return int64(m), nil
}

// Scan reads a minor-unit integer column
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*m = Money(v)
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("failed to scan money: %w", err)
		}
		*m = Money(n)
	case nil:
		*m = 0
	default:
		return fmt.Errorf("failed to scan money from %T", src)
	}
	return nil
}

// RandomAmount generates a random money amount in the given range using the provided RNG
func RandomAmount(rng *Random, min, max Money) Money {
	if min >= max {
		return min
	}
	return Money(rng.Int64Range(int64(min), int64(max)))
}

// RoundToNearest rounds the money to the nearest multiple of 'nearest'
// e.g., Cents(12345).RoundToNearest(Units(5)) returns 125.00
func (m Money) RoundToNearest(nearest Money) Money {
	if nearest <= 0 {
		return m
	}
	half := nearest / 2
	return ((m + half) / nearest) * nearest
}
