// Package queryengine filters, sorts, and summarizes fetched record batches
// entirely in memory. Every entry point is a pure function over one batch:
// inputs are never mutated and identical inputs produce identical output, so
// the handlers can recompute on every request without caching.
//
// Filtering and metrics are deliberately separate operations. The Filter
// functions produce the visible rows for the active query; the Compute
// functions always run over the whole batch, so summary cards stay fixed
// while the merchant narrows the list.
package queryengine

import (
	"strings"
	"time"

	"github.com/harborcommerce/backoffice-backend/pkg/enums"
)

// OrderQuery is one immutable filter and sort selection over an order batch.
// Every field is optional: absent predicates keep everything, an empty sort
// key falls back to processed date ascending.
type OrderQuery struct {
	Text           string
	Statuses       []string
	Product        string
	ProcessedAfter *time.Time
	SortKey        enums.OrderSortKey
	SortDirection  enums.SortDirection
}

// CustomerQuery is the customer-list counterpart of OrderQuery. MinOrders
// stays a raw string because it arrives straight from a query parameter;
// non-numeric input disables the predicate instead of failing the request.
type CustomerQuery struct {
	Text            string
	Tag             string
	Country         string
	MinOrders       string
	LastOrderBefore *time.Time
	SortKey         enums.CustomerSortKey
	SortDirection   enums.SortDirection
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
