package commerce

import (
	"context"
	"strings"

	pkgerrors "github.com/harborcommerce/backoffice-backend/pkg/errors"
)

const customersQuery = `query DashboardCustomers($first: Int!) {
  customers(first: $first, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        id
        firstName
        lastName
        email
        numberOfOrders
        tags
        createdAt
        defaultAddress { country }
        amountSpent { amount currencyCode }
        lastOrder { processedAt displayFinancialStatus }
        orders(first: 10, sortKey: PROCESSED_AT, reverse: true) {
          edges { node { displayFinancialStatus } }
        }
      }
    }
  }
}`

const customerAccountQuery = `query StorefrontAccount($id: ID!, $first: Int!) {
  customer(id: $id) {
    id
    firstName
    lastName
    email
    numberOfOrders
    tags
    createdAt
    defaultAddress { country }
    amountSpent { amount currencyCode }
    lastOrder { processedAt displayFinancialStatus }
    orders(first: 10, sortKey: PROCESSED_AT, reverse: true) {
      edges { node { displayFinancialStatus } }
    }
    orderHistory: orders(first: $first, sortKey: PROCESSED_AT, reverse: true) {
      edges {
        node {
          id
          name
          processedAt
          displayFinancialStatus
          displayFulfillmentStatus
          cancelReason
          cancelledAt
          totalPriceSet { shopMoney { amount currencyCode } }
          lineItems(first: 10) { edges { node { title quantity } } }
        }
      }
    }
  }
}`

type customerNode struct {
	ID             string   `json:"id"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	NumberOfOrders string   `json:"numberOfOrders"`
	Tags           []string `json:"tags"`
	CreatedAt      string   `json:"createdAt"`
	DefaultAddress *struct {
		Country string `json:"country"`
	} `json:"defaultAddress"`
	AmountSpent moneyNode `json:"amountSpent"`
	LastOrder   *struct {
		ProcessedAt            string `json:"processedAt"`
		DisplayFinancialStatus string `json:"displayFinancialStatus"`
	} `json:"lastOrder"`
	Orders struct {
		Edges []struct {
			Node struct {
				DisplayFinancialStatus string `json:"displayFinancialStatus"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"orders"`
}

type customersData struct {
	Customers struct {
		Edges []struct {
			Node customerNode `json:"node"`
		} `json:"edges"`
	} `json:"customers"`
}

type customerAccountData struct {
	Customer *struct {
		customerNode
		OrderHistory struct {
			Edges []struct {
				Node orderNode `json:"node"`
			} `json:"edges"`
		} `json:"orderHistory"`
	} `json:"customer"`
}

// ListCustomers fetches the newest customers, at most first of them, in one query.
func (c *Client) ListCustomers(ctx context.Context, first int) ([]Customer, error) {
	var data customersData
	if err := c.execute(ctx, "ListCustomers", customersQuery, map[string]any{"first": first}, &data); err != nil {
		return nil, err
	}

	customers := make([]Customer, 0, len(data.Customers.Edges))
	for _, edge := range data.Customers.Edges {
		customers = append(customers, flattenCustomer(edge.Node))
	}
	c.metrics.ObserveBatchSize("ListCustomers", len(customers))
	return customers, nil
}

// GetCustomerAccount fetches one customer's profile plus their most recent
// orders for the storefront account view.
func (c *Client) GetCustomerAccount(ctx context.Context, customerID string, first int) (*Customer, []Order, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	var data customerAccountData
	vars := map[string]any{"id": customerID, "first": first}
	if err := c.execute(ctx, "GetCustomerAccount", customerAccountQuery, vars, &data); err != nil {
		return nil, nil, err
	}
	if data.Customer == nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}

	customer := flattenCustomer(data.Customer.customerNode)
	orders := make([]Order, 0, len(data.Customer.OrderHistory.Edges))
	for _, edge := range data.Customer.OrderHistory.Edges {
		orders = append(orders, flattenOrder(edge.Node))
	}
	c.metrics.ObserveBatchSize("GetCustomerAccount", len(orders))
	return &customer, orders, nil
}

func flattenCustomer(node customerNode) Customer {
	customer := Customer{
		ID:          node.ID,
		FirstName:   node.FirstName,
		LastName:    node.LastName,
		Email:       node.Email,
		Tags:        node.Tags,
		OrdersCount: parseCount(node.NumberOfOrders),
		CreatedAt:   node.CreatedAt,
		AmountSpent: Money{
			Amount:       node.AmountSpent.Amount,
			CurrencyCode: node.AmountSpent.CurrencyCode,
		},
	}
	if node.DefaultAddress != nil {
		customer.Country = node.DefaultAddress.Country
	}
	if node.LastOrder != nil {
		customer.LastOrder = &CustomerLastOrder{
			ProcessedAt:     node.LastOrder.ProcessedAt,
			FinancialStatus: node.LastOrder.DisplayFinancialStatus,
		}
	}
	if len(node.Orders.Edges) > 0 {
		customer.RecentOrders = make([]CustomerRecentOrder, 0, len(node.Orders.Edges))
		for _, edge := range node.Orders.Edges {
			customer.RecentOrders = append(customer.RecentOrders, CustomerRecentOrder{
				FinancialStatus: edge.Node.DisplayFinancialStatus,
			})
		}
	}
	return customer
}
