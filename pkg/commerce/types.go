package commerce

// Money is a decimal amount exactly as the platform serialized it. The
// amount string is never reformatted on this side of the wire.
type Money struct {
	Amount       string
	CurrencyCode string
}

// OrderCustomer is the buyer attached to an order, when the platform
// shares one.
type OrderCustomer struct {
	FirstName string
	LastName  string
}

// OrderLineItem is a purchased product line.
type OrderLineItem struct {
	Title    string
	Quantity int
}

// Order is one order row from the platform, flattened out of the
// connection envelope. String fields arrive exactly as sent; parsing and
// defaulting happen at ingest.
type Order struct {
	ID                string
	Name              string
	ProcessedAt       string
	FinancialStatus   string
	FulfillmentStatus string
	CancelReason      string
	CancelledAt       string
	Total             Money
	Customer          *OrderCustomer
	LineItems         []OrderLineItem
}

// CustomerLastOrder is the most recent order summary on a customer.
type CustomerLastOrder struct {
	ProcessedAt     string
	FinancialStatus string
}

// CustomerRecentOrder carries only the status of a recent order; the
// dashboard uses these for refund counting.
type CustomerRecentOrder struct {
	FinancialStatus string
}

// Customer is one customer row from the platform.
type Customer struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Country      string
	Tags         []string
	OrdersCount  int
	AmountSpent  Money
	CreatedAt    string
	LastOrder    *CustomerLastOrder
	RecentOrders []CustomerRecentOrder
}

// Product is one catalog row from the platform.
type Product struct {
	ID             string
	Title          string
	Status         string
	Vendor         string
	TotalInventory int
	Price          Money
}
