package commerce

import (
	"context"
	"strconv"
)

const ordersQuery = `query DashboardOrders($first: Int!) {
  orders(first: $first, sortKey: PROCESSED_AT, reverse: true) {
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
        customer { firstName lastName }
        lineItems(first: 10) { edges { node { title quantity } } }
      }
    }
  }
}`

type moneyNode struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type orderNode struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	ProcessedAt              string `json:"processedAt"`
	DisplayFinancialStatus   string `json:"displayFinancialStatus"`
	DisplayFulfillmentStatus string `json:"displayFulfillmentStatus"`
	CancelReason             string `json:"cancelReason"`
	CancelledAt              string `json:"cancelledAt"`
	TotalPriceSet            struct {
		ShopMoney moneyNode `json:"shopMoney"`
	} `json:"totalPriceSet"`
	Customer *struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"customer"`
	LineItems struct {
		Edges []struct {
			Node struct {
				Title    string `json:"title"`
				Quantity int    `json:"quantity"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

type ordersData struct {
	Orders struct {
		Edges []struct {
			Node orderNode `json:"node"`
		} `json:"edges"`
	} `json:"orders"`
}

// ListOrders fetches the newest orders, at most first of them, in one query.
func (c *Client) ListOrders(ctx context.Context, first int) ([]Order, error) {
	var data ordersData
	if err := c.execute(ctx, "ListOrders", ordersQuery, map[string]any{"first": first}, &data); err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(data.Orders.Edges))
	for _, edge := range data.Orders.Edges {
		orders = append(orders, flattenOrder(edge.Node))
	}
	c.metrics.ObserveBatchSize("ListOrders", len(orders))
	return orders, nil
}

func flattenOrder(node orderNode) Order {
	order := Order{
		ID:                node.ID,
		Name:              node.Name,
		ProcessedAt:       node.ProcessedAt,
		FinancialStatus:   node.DisplayFinancialStatus,
		FulfillmentStatus: node.DisplayFulfillmentStatus,
		CancelReason:      node.CancelReason,
		CancelledAt:       node.CancelledAt,
		Total: Money{
			Amount:       node.TotalPriceSet.ShopMoney.Amount,
			CurrencyCode: node.TotalPriceSet.ShopMoney.CurrencyCode,
		},
	}
	if node.Customer != nil {
		order.Customer = &OrderCustomer{
			FirstName: node.Customer.FirstName,
			LastName:  node.Customer.LastName,
		}
	}
	if len(node.LineItems.Edges) > 0 {
		order.LineItems = make([]OrderLineItem, 0, len(node.LineItems.Edges))
		for _, edge := range node.LineItems.Edges {
			order.LineItems = append(order.LineItems, OrderLineItem{
				Title:    edge.Node.Title,
				Quantity: edge.Node.Quantity,
			})
		}
	}
	return order
}

// parseCount handles the platform habit of serializing counts as strings.
func parseCount(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
