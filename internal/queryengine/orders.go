package queryengine

import (
	"sort"
	"strings"

	"github.com/harborcommerce/backoffice-backend/internal/records"
	"github.com/harborcommerce/backoffice-backend/pkg/enums"
)

// highRiskThreshold is the cancelled share of a batch above which the
// dashboard flags the page. Exactly at the threshold is not high risk.
const highRiskThreshold = 0.10

// OrderMetrics summarizes one fetched order batch.
type OrderMetrics struct {
	Total     int  `json:"total"`
	Cancelled int  `json:"cancelled"`
	Pending   int  `json:"pending"`
	HighRisk  bool `json:"high_risk"`
}

// FilterAndSortOrders applies every active predicate as a conjunction and
// stable-sorts the survivors. The batch itself is left untouched; the result
// is always a fresh slice.
func FilterAndSortOrders(batch []records.OrderRecord, query OrderQuery) []records.OrderRecord {
	statuses := statusSet(query.Statuses)
	out := make([]records.OrderRecord, 0, len(batch))
	for _, order := range batch {
		if matchOrder(order, query, statuses) {
			out = append(out, order)
		}
	}
	sortOrders(out, query.SortKey, query.SortDirection)
	return out
}

// ComputeOrderMetrics runs over the whole batch regardless of any active
// query. An empty batch is all zeroes and never high risk.
func ComputeOrderMetrics(batch []records.OrderRecord) OrderMetrics {
	m := OrderMetrics{Total: len(batch)}
	for _, order := range batch {
		if isCancelled(order) {
			m.Cancelled++
		}
		if order.FinancialStatus == enums.FinancialStatusPending {
			m.Pending++
		}
	}
	if m.Total > 0 {
		m.HighRisk = float64(m.Cancelled)/float64(m.Total) > highRiskThreshold
	}
	return m
}

func matchOrder(order records.OrderRecord, query OrderQuery, statuses map[string]struct{}) bool {
	if query.Text != "" && !containsFold(order.Name+" "+order.CustomerName(), query.Text) {
		return false
	}
	if len(statuses) > 0 {
		if _, ok := statuses[strings.ToLower(order.FinancialStatus.String())]; !ok {
			return false
		}
	}
	if query.Product != "" && !matchAnyLineItem(order.LineItems, query.Product) {
		return false
	}
	if query.ProcessedAfter != nil && order.ProcessedAt.Before(*query.ProcessedAfter) {
		return false
	}
	return true
}

func matchAnyLineItem(items []records.LineItem, sub string) bool {
	for _, item := range items {
		if containsFold(item.Title, sub) {
			return true
		}
	}
	return false
}

// statusSet lower-cases the accepted statuses. Blank entries are dropped so
// a list of empty strings means no status filtering at all.
func statusSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		set[value] = struct{}{}
	}
	return set
}

func isCancelled(order records.OrderRecord) bool {
	switch order.FinancialStatus {
	case enums.FinancialStatusRefunded, enums.FinancialStatusVoided:
		return true
	}
	return order.CancelReason != ""
}

func sortOrders(list []records.OrderRecord, key enums.OrderSortKey, direction enums.SortDirection) {
	compare := orderComparator(key)
	desc := direction == enums.SortDirectionDesc
	sort.SliceStable(list, func(i, j int) bool {
		c := compare(list[i], list[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// orderComparator returns a three-way comparator for the sort key. Unknown
// keys fall back to processed date so a bad query parameter still renders.
func orderComparator(key enums.OrderSortKey) func(a, b records.OrderRecord) int {
	switch key {
	case enums.OrderSortKeyOrder:
		return func(a, b records.OrderRecord) int {
			return strings.Compare(a.Name, b.Name)
		}
	case enums.OrderSortKeyTotal:
		return func(a, b records.OrderRecord) int {
			return a.Total.Cmp(b.Total)
		}
	default:
		return func(a, b records.OrderRecord) int {
			return compareTime(a.ProcessedAt, b.ProcessedAt)
		}
	}
}
