package enums

import (
	"fmt"
	"strings"
)

// FinancialStatus is the payment state of an order as reported by the
// commerce platform. The platform sends upper-case values; records carry
// the lower-case form.
type FinancialStatus string

const (
	FinancialStatusPending           FinancialStatus = "pending"
	FinancialStatusAuthorized        FinancialStatus = "authorized"
	FinancialStatusPaid              FinancialStatus = "paid"
	FinancialStatusPartiallyPaid     FinancialStatus = "partially_paid"
	FinancialStatusPartiallyRefunded FinancialStatus = "partially_refunded"
	FinancialStatusRefunded          FinancialStatus = "refunded"
	FinancialStatusVoided            FinancialStatus = "voided"
	FinancialStatusExpired           FinancialStatus = "expired"
)

var validFinancialStatuses = []FinancialStatus{
	FinancialStatusPending,
	FinancialStatusAuthorized,
	FinancialStatusPaid,
	FinancialStatusPartiallyPaid,
	FinancialStatusPartiallyRefunded,
	FinancialStatusRefunded,
	FinancialStatusVoided,
	FinancialStatusExpired,
}

// String implements fmt.Stringer.
func (f FinancialStatus) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FinancialStatus.
func (f FinancialStatus) IsValid() bool {
	for _, candidate := range validFinancialStatuses {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFinancialStatus converts raw input into a FinancialStatus.
func ParseFinancialStatus(value string) (FinancialStatus, error) {
	for _, candidate := range validFinancialStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid financial status %q", value)
}

// NormalizeFinancialStatus lower-cases a raw platform value. Unknown values
// are preserved rather than rejected so filters can still match them.
func NormalizeFinancialStatus(value string) FinancialStatus {
	return FinancialStatus(strings.ToLower(strings.TrimSpace(value)))
}
