package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/harborcommerce/backoffice-backend/internal/queryengine"
	"github.com/harborcommerce/backoffice-backend/pkg/commerce"
	"github.com/harborcommerce/backoffice-backend/pkg/enums"
	pkgerrors "github.com/harborcommerce/backoffice-backend/pkg/errors"
)

type stubFetcher struct {
	orders    []commerce.Order
	customers []commerce.Customer
	products  []commerce.Product
	err       error
	firsts    []int
}

func (s *stubFetcher) ListOrders(_ context.Context, first int) ([]commerce.Order, error) {
	s.firsts = append(s.firsts, first)
	if s.err != nil {
		return nil, s.err
	}
	return s.orders, nil
}

func (s *stubFetcher) ListCustomers(_ context.Context, first int) ([]commerce.Customer, error) {
	s.firsts = append(s.firsts, first)
	if s.err != nil {
		return nil, s.err
	}
	return s.customers, nil
}

func (s *stubFetcher) ListProducts(_ context.Context, first int) ([]commerce.Product, error) {
	s.firsts = append(s.firsts, first)
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func upstreamOrders() []commerce.Order {
	return []commerce.Order{
		{
			ID:              "1",
			Name:            "#1001",
			ProcessedAt:     "2024-01-10T00:00:00Z",
			FinancialStatus: "PAID",
			Total:           commerce.Money{Amount: "100.00", CurrencyCode: "USD"},
		},
		{
			ID:              "2",
			Name:            "#1002",
			ProcessedAt:     "2024-01-05T00:00:00Z",
			FinancialStatus: "VOIDED",
			Total:           commerce.Money{Amount: "9.50", CurrencyCode: "USD"},
		},
		{
			ID:              "3",
			Name:            "#1003",
			ProcessedAt:     "2024-01-20T00:00:00Z",
			FinancialStatus: "PAID",
			Total:           commerce.Money{Amount: "42.00", CurrencyCode: "USD"},
		},
	}
}

func TestNewServiceRequiresFetcher(t *testing.T) {
	_, err := NewService(nil, 50)
	if err == nil {
		t.Fatal("expected error creating service without fetcher")
	}
}

func TestNewServiceRequiresPageSize(t *testing.T) {
	_, err := NewService(&stubFetcher{}, 0)
	if err == nil {
		t.Fatal("expected error creating service with zero page size")
	}
}

func TestServiceOrdersFiltersRowsButMetricsCoverBatch(t *testing.T) {
	fetcher := &stubFetcher{orders: upstreamOrders()}
	svc, err := NewService(fetcher, 75)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	page, err := svc.Orders(context.Background(), queryengine.OrderQuery{
		Statuses: []string{"paid"},
		SortKey:  enums.OrderSortKeyDate,
	})
	if err != nil {
		t.Fatalf("orders page: %v", err)
	}

	if len(page.Orders) != 2 {
		t.Fatalf("expected 2 visible orders, got %d", len(page.Orders))
	}
	if page.Orders[0].ID != "1" || page.Orders[1].ID != "3" {
		t.Fatalf("unexpected row order: %s, %s", page.Orders[0].ID, page.Orders[1].ID)
	}
	// Metrics cover all three fetched orders, not the two visible ones.
	if page.Metrics.Total != 3 {
		t.Fatalf("expected metrics over whole batch, got total %d", page.Metrics.Total)
	}
	if page.Metrics.Cancelled != 1 {
		t.Fatalf("expected 1 cancelled, got %d", page.Metrics.Cancelled)
	}
	if len(fetcher.firsts) != 1 || fetcher.firsts[0] != 75 {
		t.Fatalf("expected one fetch of 75, got %v", fetcher.firsts)
	}
}

func TestServiceOrdersPassesUpstreamErrorThrough(t *testing.T) {
	upstreamErr := pkgerrors.New(pkgerrors.CodeRateLimit, "upstream throttled")
	svc, err := NewService(&stubFetcher{err: upstreamErr}, 50)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Orders(context.Background(), queryengine.OrderQuery{})
	if gotErr == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit code preserved, got %v", gotErr)
	}
}

func TestServiceCustomersUsesInjectedClock(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc := &service{
		fetcher: &stubFetcher{customers: []commerce.Customer{
			{
				ID:          "c1",
				FirstName:   "Mara",
				LastName:    "Voss",
				Email:       "mara@harbor.example",
				OrdersCount: 4,
				CreatedAt:   "2023-01-01T00:00:00Z",
				LastOrder:   &commerce.CustomerLastOrder{ProcessedAt: "2024-02-01T00:00:00Z", FinancialStatus: "PAID"},
				AmountSpent: commerce.Money{Amount: "100.00", CurrencyCode: "USD"},
			},
		}},
		pageSize: 50,
		now:      func() time.Time { return now },
	}

	page, err := svc.Customers(context.Background(), queryengine.CustomerQuery{})
	if err != nil {
		t.Fatalf("customers page: %v", err)
	}

	if len(page.Customers) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(page.Customers))
	}
	// Last order on Feb 1 is older than June 1 minus 90 days.
	if page.Metrics.Inactive90Days != 1 {
		t.Fatalf("expected customer counted inactive, got %d", page.Metrics.Inactive90Days)
	}
}

func TestServiceProducts(t *testing.T) {
	svc, err := NewService(&stubFetcher{products: []commerce.Product{
		{ID: "p1", Title: "Harbor Mug", Status: "ACTIVE", TotalInventory: 12, Price: commerce.Money{Amount: "18.00", CurrencyCode: "USD"}},
		{ID: "p2", Title: "Steel Bottle", Status: "DRAFT", TotalInventory: 0, Price: commerce.Money{Amount: "24.00", CurrencyCode: "USD"}},
	}}, 50)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	page, err := svc.Products(context.Background())
	if err != nil {
		t.Fatalf("products page: %v", err)
	}

	if page.Total != 2 || len(page.Products) != 2 {
		t.Fatalf("expected 2 products, got total %d len %d", page.Total, len(page.Products))
	}
	if page.Products[0].Status != "active" {
		t.Fatalf("expected normalized status, got %q", page.Products[0].Status)
	}
}

func TestServiceOverviewCombinesAllThreeFetches(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{
		orders: upstreamOrders(),
		customers: []commerce.Customer{
			{ID: "c1", Email: "c1@harbor.example", OrdersCount: 2, AmountSpent: commerce.Money{Amount: "10.00", CurrencyCode: "USD"}},
		},
		products: []commerce.Product{{ID: "p1", Title: "Harbor Mug"}},
	}
	svc := &service{fetcher: fetcher, pageSize: 50, now: func() time.Time { return now }}

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if overview.Orders.Total != 3 {
		t.Fatalf("expected 3 orders in overview, got %d", overview.Orders.Total)
	}
	if overview.Customers.Total != 1 {
		t.Fatalf("expected 1 customer in overview, got %d", overview.Customers.Total)
	}
	if overview.Products != 1 {
		t.Fatalf("expected 1 product in overview, got %d", overview.Products)
	}
	if len(fetcher.firsts) != 3 {
		t.Fatalf("expected three upstream fetches, got %d", len(fetcher.firsts))
	}
}
