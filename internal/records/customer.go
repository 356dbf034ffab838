package records

import (
	"time"

	"github.com/harborcommerce/backoffice-backend/pkg/commerce"
	"github.com/harborcommerce/backoffice-backend/pkg/enums"
)

// CustomerRecord is one customer as the dashboard works with it.
type CustomerRecord struct {
	ID           string        `json:"id"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Email        string        `json:"email"`
	Country      string        `json:"country"`
	Tags         []string      `json:"tags,omitempty"`
	OrdersCount  int           `json:"orders_count"`
	LastOrder    *LastOrder    `json:"last_order,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	AmountSpent  Money         `json:"amount_spent"`
	RecentOrders []RecentOrder `json:"recent_orders,omitempty"`
}

// LastOrder summarizes a customer's most recent order.
type LastOrder struct {
	ProcessedAt     time.Time             `json:"processed_at"`
	FinancialStatus enums.FinancialStatus `json:"financial_status"`
}

// RecentOrder carries only the status of a recent order.
type RecentOrder struct {
	FinancialStatus enums.FinancialStatus `json:"financial_status"`
}

// FullName joins the name parts, skipping blanks.
func (c CustomerRecord) FullName() string {
	return joinName(c.FirstName, c.LastName)
}

// CustomerFromUpstream maps one platform customer into a record with the
// same defaulting rules as orders: sparse input maps to zero values, never
// an error.
func CustomerFromUpstream(in commerce.Customer) CustomerRecord {
	rec := CustomerRecord{
		ID:          in.ID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Country:     in.Country,
		Tags:        in.Tags,
		OrdersCount: in.OrdersCount,
		CreatedAt:   parseTime(in.CreatedAt),
		AmountSpent: NewMoney(in.AmountSpent.Amount, in.AmountSpent.CurrencyCode),
	}
	if in.LastOrder != nil {
		rec.LastOrder = &LastOrder{
			ProcessedAt:     parseTime(in.LastOrder.ProcessedAt),
			FinancialStatus: enums.NormalizeFinancialStatus(in.LastOrder.FinancialStatus),
		}
	}
	if len(in.RecentOrders) > 0 {
		rec.RecentOrders = make([]RecentOrder, 0, len(in.RecentOrders))
		for _, recent := range in.RecentOrders {
			rec.RecentOrders = append(rec.RecentOrders, RecentOrder{
				FinancialStatus: enums.NormalizeFinancialStatus(recent.FinancialStatus),
			})
		}
	}
	return rec
}

// CustomersFromUpstream maps a fetched batch in order.
func CustomersFromUpstream(in []commerce.Customer) []CustomerRecord {
	out := make([]CustomerRecord, 0, len(in))
	for _, customer := range in {
		out = append(out, CustomerFromUpstream(customer))
	}
	return out
}
