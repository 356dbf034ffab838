package records

import "github.com/shopspring/decimal"

// Money keeps the platform's decimal string as the canonical amount and a
// parsed value for comparisons. Displays and exports always use the string;
// the parsed value never travels back out.
type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`

	value decimal.Decimal
}

// NewMoney parses the amount once at the ingest boundary. A malformed or
// empty amount yields a zero value, never an error.
func NewMoney(amount, currency string) Money {
	m := Money{Amount: amount, Currency: currency}
	if amount == "" {
		return m
	}
	if parsed, err := decimal.NewFromString(amount); err == nil {
		m.value = parsed
	}
	return m
}

// Value returns the parsed decimal for comparison and aggregation.
func (m Money) Value() decimal.Decimal {
	return m.value
}

// Cmp compares two amounts numerically.
func (m Money) Cmp(other Money) int {
	return m.value.Cmp(other.value)
}

// IsZero reports whether the parsed amount is zero.
func (m Money) IsZero() bool {
	return m.value.IsZero()
}
