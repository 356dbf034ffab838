package records

import (
	"testing"
	"time"

	"github.com/harborcommerce/backoffice-backend/pkg/commerce"
	"github.com/harborcommerce/backoffice-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderFromUpstreamMapsAllFields(t *testing.T) {
	in := commerce.Order{
		ID:                "gid://commerce/Order/1001",
		Name:              "#1001",
		ProcessedAt:       "2024-05-01T10:00:00Z",
		FinancialStatus:   "PAID",
		FulfillmentStatus: "FULFILLED",
		CancelReason:      " CUSTOMER ",
		CancelledAt:       "2024-05-02T09:00:00Z",
		Total:             commerce.Money{Amount: "125.50", CurrencyCode: "USD"},
		Customer:          &commerce.OrderCustomer{FirstName: "Ada", LastName: "Lovelace"},
		LineItems: []commerce.OrderLineItem{
			{Title: "Walnut Desk Organizer", Quantity: 2},
		},
	}

	rec := OrderFromUpstream(in)

	assert.Equal(t, "#1001", rec.Name)
	assert.Equal(t, enums.FinancialStatusPaid, rec.FinancialStatus)
	assert.Equal(t, enums.FulfillmentStatusFulfilled, rec.FulfillmentStatus)
	assert.Equal(t, "CUSTOMER", rec.CancelReason)
	require.NotNil(t, rec.CancelledAt)
	assert.Equal(t, 2024, rec.CancelledAt.Year())
	assert.Equal(t, "125.50", rec.Total.Amount)
	assert.Equal(t, "Ada Lovelace", rec.CustomerName())
	require.Len(t, rec.LineItems, 1)
	assert.Equal(t, 2, rec.LineItems[0].Quantity)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), rec.ProcessedAt)
}

func TestOrderFromUpstreamSparseDefaults(t *testing.T) {
	rec := OrderFromUpstream(commerce.Order{})

	assert.Empty(t, rec.ID)
	assert.True(t, rec.ProcessedAt.IsZero())
	assert.Equal(t, enums.FinancialStatus(""), rec.FinancialStatus)
	assert.Nil(t, rec.CancelledAt)
	assert.Nil(t, rec.Customer)
	assert.Empty(t, rec.CustomerName())
	assert.Empty(t, rec.LineItems)
	assert.True(t, rec.Total.IsZero())
}

func TestOrderFromUpstreamBadTimestamp(t *testing.T) {
	rec := OrderFromUpstream(commerce.Order{ProcessedAt: "yesterday", CancelledAt: "never"})
	assert.True(t, rec.ProcessedAt.IsZero())
	assert.Nil(t, rec.CancelledAt)
}

func TestStatusNormalizationPreservesUnknownValues(t *testing.T) {
	rec := OrderFromUpstream(commerce.Order{FinancialStatus: "IN_DISPUTE"})
	assert.Equal(t, enums.FinancialStatus("in_dispute"), rec.FinancialStatus)
	assert.False(t, rec.FinancialStatus.IsValid())
}

func TestCustomerFromUpstreamMapsAllFields(t *testing.T) {
	in := commerce.Customer{
		ID:          "gid://commerce/Customer/7",
		FirstName:   "Grace",
		LastName:    "Hopper",
		Email:       "grace@example.com",
		Country:     "United States",
		Tags:        []string{"vip", "wholesale"},
		OrdersCount: 12,
		AmountSpent: commerce.Money{Amount: "2450.00", CurrencyCode: "USD"},
		CreatedAt:   "2023-01-15T08:30:00Z",
		LastOrder: &commerce.CustomerLastOrder{
			ProcessedAt:     "2024-04-20T12:00:00Z",
			FinancialStatus: "PAID",
		},
		RecentOrders: []commerce.CustomerRecentOrder{
			{FinancialStatus: "PAID"},
			{FinancialStatus: "REFUNDED"},
		},
	}

	rec := CustomerFromUpstream(in)

	assert.Equal(t, "Grace Hopper", rec.FullName())
	assert.Equal(t, 12, rec.OrdersCount)
	assert.Equal(t, "2450.00", rec.AmountSpent.Amount)
	require.NotNil(t, rec.LastOrder)
	assert.Equal(t, enums.FinancialStatusPaid, rec.LastOrder.FinancialStatus)
	require.Len(t, rec.RecentOrders, 2)
	assert.Equal(t, enums.FinancialStatusRefunded, rec.RecentOrders[1].FinancialStatus)
}

func TestCustomerFromUpstreamSparseDefaults(t *testing.T) {
	rec := CustomerFromUpstream(commerce.Customer{})

	assert.Empty(t, rec.FullName())
	assert.Zero(t, rec.OrdersCount)
	assert.Nil(t, rec.LastOrder)
	assert.Empty(t, rec.RecentOrders)
	assert.True(t, rec.CreatedAt.IsZero())
	assert.True(t, rec.AmountSpent.IsZero())
}

func TestProductFromUpstream(t *testing.T) {
	rec := ProductFromUpstream(commerce.Product{
		ID:             "gid://commerce/Product/55",
		Title:          "Walnut Desk Organizer",
		Status:         "ACTIVE",
		Vendor:         "Harbor Woodworks",
		TotalInventory: 31,
		Price:          commerce.Money{Amount: "49.00", CurrencyCode: "USD"},
	})

	assert.Equal(t, enums.ProductStatusActive, rec.Status)
	assert.Equal(t, 31, rec.TotalInventory)
	assert.Equal(t, "49.00", rec.Price.Amount)
}

func TestMoneyKeepsCanonicalAmount(t *testing.T) {
	m := NewMoney("125.5000", "USD")
	assert.Equal(t, "125.5000", m.Amount, "amount string must never be reformatted")
	assert.True(t, m.Value().Equal(NewMoney("125.50", "USD").Value()))

	bad := NewMoney("12,50", "USD")
	assert.Equal(t, "12,50", bad.Amount)
	assert.True(t, bad.IsZero())

	assert.Equal(t, 1, NewMoney("10.00", "USD").Cmp(NewMoney("9.99", "USD")))
	assert.Equal(t, -1, NewMoney("-1", "USD").Cmp(NewMoney("0", "USD")))
}

func TestJoinNameSkipsBlanks(t *testing.T) {
	assert.Equal(t, "Ada", joinName("Ada", ""))
	assert.Equal(t, "Lovelace", joinName("", "Lovelace"))
	assert.Equal(t, "Ada Lovelace", joinName(" Ada ", " Lovelace "))
	assert.Equal(t, "", joinName("", ""))
}
