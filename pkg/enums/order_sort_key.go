package enums

import "fmt"

// OrderSortKey selects the comparator for order list views.
type OrderSortKey string

const (
	OrderSortKeyOrder OrderSortKey = "order"
	OrderSortKeyDate  OrderSortKey = "date"
	OrderSortKeyTotal OrderSortKey = "total"
)

var validOrderSortKeys = []OrderSortKey{
	OrderSortKeyOrder,
	OrderSortKeyDate,
	OrderSortKeyTotal,
}

// String implements fmt.Stringer.
func (o OrderSortKey) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderSortKey.
func (o OrderSortKey) IsValid() bool {
	for _, candidate := range validOrderSortKeys {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderSortKey converts raw input into an OrderSortKey.
func ParseOrderSortKey(value string) (OrderSortKey, error) {
	for _, candidate := range validOrderSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order sort key %q", value)
}
