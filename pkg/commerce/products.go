package commerce

import "context"

const productsQuery = `query DashboardProducts($first: Int!) {
  products(first: $first, sortKey: UPDATED_AT, reverse: true) {
    edges {
      node {
        id
        title
        status
        vendor
        totalInventory
        priceRangeV2 { minVariantPrice { amount currencyCode } }
      }
    }
  }
}`

type productNode struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Status         string `json:"status"`
	Vendor         string `json:"vendor"`
	TotalInventory int    `json:"totalInventory"`
	PriceRangeV2   struct {
		MinVariantPrice moneyNode `json:"minVariantPrice"`
	} `json:"priceRangeV2"`
}

type productsData struct {
	Products struct {
		Edges []struct {
			Node productNode `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

// ListProducts fetches the most recently updated products, at most first of
// them, in one query.
func (c *Client) ListProducts(ctx context.Context, first int) ([]Product, error) {
	var data productsData
	if err := c.execute(ctx, "ListProducts", productsQuery, map[string]any{"first": first}, &data); err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(data.Products.Edges))
	for _, edge := range data.Products.Edges {
		products = append(products, flattenProduct(edge.Node))
	}
	c.metrics.ObserveBatchSize("ListProducts", len(products))
	return products, nil
}

func flattenProduct(node productNode) Product {
	return Product{
		ID:             node.ID,
		Title:          node.Title,
		Status:         node.Status,
		Vendor:         node.Vendor,
		TotalInventory: node.TotalInventory,
		Price: Money{
			Amount:       node.PriceRangeV2.MinVariantPrice.Amount,
			CurrencyCode: node.PriceRangeV2.MinVariantPrice.CurrencyCode,
		},
	}
}
