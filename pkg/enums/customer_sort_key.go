package enums

import "fmt"

// CustomerSortKey selects the comparator for customer list views.
type CustomerSortKey string

const (
	CustomerSortKeyName CustomerSortKey = "name"
	CustomerSortKeyDate CustomerSortKey = "date"
)

var validCustomerSortKeys = []CustomerSortKey{
	CustomerSortKeyName,
	CustomerSortKeyDate,
}

// String implements fmt.Stringer.
func (c CustomerSortKey) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CustomerSortKey.
func (c CustomerSortKey) IsValid() bool {
	for _, candidate := range validCustomerSortKeys {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerSortKey converts raw input into a CustomerSortKey.
func ParseCustomerSortKey(value string) (CustomerSortKey, error) {
	for _, candidate := range validCustomerSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer sort key %q", value)
}
