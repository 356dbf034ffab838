package records

import (
	"strings"
	"time"

	"github.com/harborcommerce/backoffice-backend/pkg/commerce"
	"github.com/harborcommerce/backoffice-backend/pkg/enums"
)

// OrderRecord is one order as the dashboard works with it: statuses
// normalized, timestamps parsed, money parsed once. A batch of these is the
// unit the query engine operates on.
type OrderRecord struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	ProcessedAt       time.Time               `json:"processed_at"`
	FinancialStatus   enums.FinancialStatus   `json:"financial_status"`
	FulfillmentStatus enums.FulfillmentStatus `json:"fulfillment_status"`
	Total             Money                   `json:"total"`
	Customer          *OrderCustomer          `json:"customer,omitempty"`
	LineItems         []LineItem              `json:"line_items,omitempty"`
	CancelReason      string                  `json:"cancel_reason,omitempty"`
	CancelledAt       *time.Time              `json:"cancelled_at,omitempty"`
}

// OrderCustomer is the buyer attached to an order.
type OrderCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName joins the name parts, skipping blanks.
func (c *OrderCustomer) FullName() string {
	if c == nil {
		return ""
	}
	return joinName(c.FirstName, c.LastName)
}

// LineItem is a purchased product line.
type LineItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

// CustomerName returns the buyer's full name, or empty when the platform
// sent no customer.
func (o OrderRecord) CustomerName() string {
	return o.Customer.FullName()
}

// OrderFromUpstream maps one platform order into a record. All defaulting
// happens here: missing strings stay empty, bad timestamps become zero
// times, statuses are lower-cased. A sparse order is never rejected.
func OrderFromUpstream(in commerce.Order) OrderRecord {
	rec := OrderRecord{
		ID:                in.ID,
		Name:              in.Name,
		ProcessedAt:       parseTime(in.ProcessedAt),
		FinancialStatus:   enums.NormalizeFinancialStatus(in.FinancialStatus),
		FulfillmentStatus: enums.NormalizeFulfillmentStatus(in.FulfillmentStatus),
		Total:             NewMoney(in.Total.Amount, in.Total.CurrencyCode),
		CancelReason:      strings.TrimSpace(in.CancelReason),
	}
	if ts := parseTime(in.CancelledAt); !ts.IsZero() {
		rec.CancelledAt = &ts
	}
	if in.Customer != nil {
		rec.Customer = &OrderCustomer{
			FirstName: in.Customer.FirstName,
			LastName:  in.Customer.LastName,
		}
	}
	if len(in.LineItems) > 0 {
		rec.LineItems = make([]LineItem, 0, len(in.LineItems))
		for _, item := range in.LineItems {
			rec.LineItems = append(rec.LineItems, LineItem{
				Title:    item.Title,
				Quantity: item.Quantity,
			})
		}
	}
	return rec
}

// OrdersFromUpstream maps a fetched batch in order.
func OrdersFromUpstream(in []commerce.Order) []OrderRecord {
	out := make([]OrderRecord, 0, len(in))
	for _, order := range in {
		out = append(out, OrderFromUpstream(order))
	}
	return out
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func joinName(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
