package queryengine

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harborcommerce/backoffice-backend/internal/records"
	"github.com/harborcommerce/backoffice-backend/pkg/enums"
)

// Inactivity windows for the customer cohort metrics, in days before now.
const (
	inactiveWindowDays = 90
	atRiskWindowDays   = 60
)

// CustomerMetrics summarizes one fetched customer batch.
type CustomerMetrics struct {
	Total           int     `json:"total"`
	AverageOrders   float64 `json:"average_orders"`
	MissingEmail    int     `json:"missing_email"`
	RefundHeavy     int     `json:"refund_heavy"`
	Inactive90Days  int     `json:"inactive_90_days"`
	AtRiskHighValue int     `json:"at_risk_high_value"`
}

// FilterAndSortCustomers applies every active predicate as a conjunction and
// stable-sorts the survivors. The batch itself is left untouched; the result
// is always a fresh slice.
func FilterAndSortCustomers(batch []records.CustomerRecord, query CustomerQuery) []records.CustomerRecord {
	minOrders, hasMinOrders := parseMinOrders(query.MinOrders)
	out := make([]records.CustomerRecord, 0, len(batch))
	for _, customer := range batch {
		if matchCustomer(customer, query, minOrders, hasMinOrders) {
			out = append(out, customer)
		}
	}
	sortCustomers(out, query.SortKey, query.SortDirection)
	return out
}

// ComputeCustomerMetrics runs over the whole batch regardless of any active
// query. now anchors the inactivity windows so callers and tests share one
// clock. An empty batch is all zeroes with no division.
func ComputeCustomerMetrics(batch []records.CustomerRecord, now time.Time) CustomerMetrics {
	m := CustomerMetrics{Total: len(batch)}
	if m.Total == 0 {
		return m
	}

	inactiveCutoff := now.AddDate(0, 0, -inactiveWindowDays)
	atRiskCutoff := now.AddDate(0, 0, -atRiskWindowDays)

	orderSum := 0
	totalSpent := decimal.Zero
	for _, customer := range batch {
		orderSum += customer.OrdersCount
		totalSpent = totalSpent.Add(customer.AmountSpent.Value())
		if strings.TrimSpace(customer.Email) == "" {
			m.MissingEmail++
		}
		if countRefundFlavored(customer.RecentOrders) > 1 {
			m.RefundHeavy++
		}
		if inactiveSince(customer, inactiveCutoff) {
			m.Inactive90Days++
		}
	}
	m.AverageOrders = float64(orderSum) / float64(m.Total)

	averageSpent := totalSpent.Div(decimal.NewFromInt(int64(m.Total)))
	for _, customer := range batch {
		if customer.AmountSpent.Value().GreaterThan(averageSpent) && inactiveSince(customer, atRiskCutoff) {
			m.AtRiskHighValue++
		}
	}
	return m
}

func matchCustomer(customer records.CustomerRecord, query CustomerQuery, minOrders int, hasMinOrders bool) bool {
	if query.Text != "" && !containsFold(customer.FullName()+" "+customer.Email, query.Text) {
		return false
	}
	if query.Tag != "" && !matchAnyTag(customer.Tags, query.Tag) {
		return false
	}
	if query.Country != "" && !containsFold(customer.Country, query.Country) {
		return false
	}
	if hasMinOrders && customer.OrdersCount < minOrders {
		return false
	}
	// Customers with no last order pass a recency filter on purpose: the
	// filter narrows to "not seen since date", and never-seen qualifies.
	if query.LastOrderBefore != nil && customer.LastOrder != nil && customer.LastOrder.ProcessedAt.After(*query.LastOrderBefore) {
		return false
	}
	return true
}

func matchAnyTag(tags []string, sub string) bool {
	for _, tag := range tags {
		if containsFold(tag, sub) {
			return true
		}
	}
	return false
}

// parseMinOrders interprets the raw minimum-order filter. Anything that does
// not parse as an integer means the filter is absent.
func parseMinOrders(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func countRefundFlavored(orders []records.RecentOrder) int {
	count := 0
	for _, order := range orders {
		switch order.FinancialStatus {
		case enums.FinancialStatusRefunded, enums.FinancialStatusPartiallyRefunded:
			count++
		}
	}
	return count
}

// inactiveSince reports whether the customer placed no order on or after the
// cutoff. Never having ordered counts as inactive.
func inactiveSince(customer records.CustomerRecord, cutoff time.Time) bool {
	if customer.LastOrder == nil {
		return true
	}
	return customer.LastOrder.ProcessedAt.Before(cutoff)
}

func sortCustomers(list []records.CustomerRecord, key enums.CustomerSortKey, direction enums.SortDirection) {
	compare := customerComparator(key)
	desc := direction == enums.SortDirectionDesc
	sort.SliceStable(list, func(i, j int) bool {
		c := compare(list[i], list[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// customerComparator returns a three-way comparator for the sort key.
// Unknown keys fall back to signup date.
func customerComparator(key enums.CustomerSortKey) func(a, b records.CustomerRecord) int {
	switch key {
	case enums.CustomerSortKeyName:
		return func(a, b records.CustomerRecord) int {
			return strings.Compare(strings.ToLower(a.FullName()), strings.ToLower(b.FullName()))
		}
	default:
		return func(a, b records.CustomerRecord) int {
			return compareTime(a.CreatedAt, b.CreatedAt)
		}
	}
}
