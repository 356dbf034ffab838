package enums

import (
	"fmt"
	"strings"
)

// FulfillmentStatus is the shipping state of an order as reported by the
// commerce platform.
type FulfillmentStatus string

const (
	FulfillmentStatusUnfulfilled        FulfillmentStatus = "unfulfilled"
	FulfillmentStatusPartiallyFulfilled FulfillmentStatus = "partially_fulfilled"
	FulfillmentStatusFulfilled          FulfillmentStatus = "fulfilled"
	FulfillmentStatusScheduled          FulfillmentStatus = "scheduled"
	FulfillmentStatusOnHold             FulfillmentStatus = "on_hold"
)

var validFulfillmentStatuses = []FulfillmentStatus{
	FulfillmentStatusUnfulfilled,
	FulfillmentStatusPartiallyFulfilled,
	FulfillmentStatusFulfilled,
	FulfillmentStatusScheduled,
	FulfillmentStatusOnHold,
}

// String implements fmt.Stringer.
func (f FulfillmentStatus) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FulfillmentStatus.
func (f FulfillmentStatus) IsValid() bool {
	for _, candidate := range validFulfillmentStatuses {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFulfillmentStatus converts raw input into a FulfillmentStatus.
func ParseFulfillmentStatus(value string) (FulfillmentStatus, error) {
	for _, candidate := range validFulfillmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fulfillment status %q", value)
}

// NormalizeFulfillmentStatus lower-cases a raw platform value, preserving
// unknown values.
func NormalizeFulfillmentStatus(value string) FulfillmentStatus {
	return FulfillmentStatus(strings.ToLower(strings.TrimSpace(value)))
}
