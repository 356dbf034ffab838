package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/harborcommerce/backoffice-backend/internal/dashboard"
	"github.com/harborcommerce/backoffice-backend/internal/queryengine"
	"github.com/harborcommerce/backoffice-backend/internal/records"
	"github.com/harborcommerce/backoffice-backend/pkg/enums"
	pkgerrors "github.com/harborcommerce/backoffice-backend/pkg/errors"
)

type stubExportSource struct {
	ordersFn    func(ctx context.Context, query queryengine.OrderQuery) (*dashboard.OrdersPage, error)
	customersFn func(ctx context.Context, query queryengine.CustomerQuery) (*dashboard.CustomersPage, error)
}

func (s stubExportSource) Orders(ctx context.Context, query queryengine.OrderQuery) (*dashboard.OrdersPage, error) {
	if s.ordersFn != nil {
		return s.ordersFn(ctx, query)
	}
	return &dashboard.OrdersPage{}, nil
}

func (s stubExportSource) Customers(ctx context.Context, query queryengine.CustomerQuery) (*dashboard.CustomersPage, error) {
	if s.customersFn != nil {
		return s.customersFn(ctx, query)
	}
	return &dashboard.CustomersPage{}, nil
}

func TestExportOrdersStreamsCSVAttachment(t *testing.T) {
	var got queryengine.OrderQuery
	source := stubExportSource{
		ordersFn: func(ctx context.Context, query queryengine.OrderQuery) (*dashboard.OrdersPage, error) {
			got = query
			return &dashboard.OrdersPage{Orders: []records.OrderRecord{{
				ID:                "order-1",
				Name:              "#1001",
				ProcessedAt:       time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
				FinancialStatus:   enums.FinancialStatusPaid,
				FulfillmentStatus: enums.FulfillmentStatusFulfilled,
				Total:             records.NewMoney("125.5000", "USD"),
				Customer:          &records.OrderCustomer{FirstName: "Mara", LastName: "Voss"},
			}}}, nil
		},
	}

	handler := ExportOrders(source, nil)
	body := strings.NewReader(`{"statuses":["paid"],"sort":"total","direction":"asc"}`)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != `attachment; filename="orders.csv"` {
		t.Fatalf("unexpected content disposition %q", cd)
	}

	if got.SortKey != enums.OrderSortKeyTotal || got.SortDirection != enums.SortDirectionAsc {
		t.Fatalf("unexpected sort %v %v", got.SortKey, got.SortDirection)
	}
	if len(got.Statuses) != 1 || got.Statuses[0] != "paid" {
		t.Fatalf("unexpected statuses %v", got.Statuses)
	}

	lines := strings.Split(strings.TrimSpace(resp.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != "ID,Name,Customer,Processed At,Financial Status,Fulfillment Status,Total,Currency" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "125.5000") || !strings.Contains(lines[1], "Mara Voss") {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestExportOrdersRejectsUnknownSortKey(t *testing.T) {
	handler := ExportOrders(stubExportSource{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"sort":"bogus"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestExportOrdersRejectsMalformedJSON(t *testing.T) {
	handler := ExportOrders(stubExportSource{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"sort":`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestExportOrdersFailureStaysJSON(t *testing.T) {
	source := stubExportSource{
		ordersFn: func(ctx context.Context, query queryengine.OrderQuery) (*dashboard.OrdersPage, error) {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "upstream down")
		},
	}

	handler := ExportOrders(source, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("error response should be JSON, got %q", ct)
	}
	if resp.Header().Get("Content-Disposition") != "" {
		t.Fatal("error response must not carry an attachment header")
	}
}

func TestExportCustomersLenientBodyDate(t *testing.T) {
	var got queryengine.CustomerQuery
	source := stubExportSource{
		customersFn: func(ctx context.Context, query queryengine.CustomerQuery) (*dashboard.CustomersPage, error) {
			got = query
			return &dashboard.CustomersPage{Customers: []records.CustomerRecord{{
				ID:    "customer-1",
				Email: "mara@harbor.example",
			}}}, nil
		},
	}

	handler := ExportCustomers(source, nil)
	body := strings.NewReader(`{"last_order_before":"not-a-date","sort":"name"}`)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if got.LastOrderBefore != nil {
		t.Fatalf("expected absent date filter, got %v", got.LastOrderBefore)
	}
	if got.SortKey != enums.CustomerSortKeyName {
		t.Fatalf("unexpected sort key %v", got.SortKey)
	}

	lines := strings.Split(strings.TrimSpace(resp.Body.String()), "\n")
	if lines[0] != "ID,Name,Email,Country,Tags,Orders,Last Order Date,Joined Date" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if len(lines) != 2 || !strings.Contains(lines[1], "mara@harbor.example") {
		t.Fatalf("unexpected rows %v", lines)
	}
}

func TestExportCustomersRejectsUnknownDirection(t *testing.T) {
	handler := ExportCustomers(stubExportSource{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"direction":"sideways"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
