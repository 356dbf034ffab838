package records

import (
	"github.com/harborcommerce/backoffice-backend/pkg/commerce"
	"github.com/harborcommerce/backoffice-backend/pkg/enums"
)

// ProductRecord is one catalog row. Products are fetched and presented but
// not run through the query engine.
type ProductRecord struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Status         enums.ProductStatus `json:"status"`
	Vendor         string              `json:"vendor"`
	TotalInventory int                 `json:"total_inventory"`
	Price          Money               `json:"price"`
}

// ProductFromUpstream maps one platform product into a record.
func ProductFromUpstream(in commerce.Product) ProductRecord {
	return ProductRecord{
		ID:             in.ID,
		Title:          in.Title,
		Status:         enums.NormalizeProductStatus(in.Status),
		Vendor:         in.Vendor,
		TotalInventory: in.TotalInventory,
		Price:          NewMoney(in.Price.Amount, in.Price.CurrencyCode),
	}
}

// ProductsFromUpstream maps a fetched batch in order.
func ProductsFromUpstream(in []commerce.Product) []ProductRecord {
	out := make([]ProductRecord, 0, len(in))
	for _, product := range in {
		out = append(out, ProductFromUpstream(product))
	}
	return out
}
