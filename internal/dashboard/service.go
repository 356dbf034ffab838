package dashboard

import (
	"context"
	"time"

	"github.com/harborcommerce/backoffice-backend/internal/queryengine"
	"github.com/harborcommerce/backoffice-backend/internal/records"
	"github.com/harborcommerce/backoffice-backend/pkg/commerce"
	pkgerrors "github.com/harborcommerce/backoffice-backend/pkg/errors"
)

// Fetcher is the slice of the commerce client the admin pages need. Every
// call fetches one fixed-size page; the service never follows cursors.
type Fetcher interface {
	ListOrders(ctx context.Context, first int) ([]commerce.Order, error)
	ListCustomers(ctx context.Context, first int) ([]commerce.Customer, error)
	ListProducts(ctx context.Context, first int) ([]commerce.Product, error)
}

// OrdersPage is the admin orders view: the rows the active query leaves
// visible plus metrics over the whole fetched batch. The metrics stay fixed
// while the merchant narrows the list.
type OrdersPage struct {
	Orders  []records.OrderRecord    `json:"orders"`
	Metrics queryengine.OrderMetrics `json:"metrics"`
}

// CustomersPage is the admin customers view, same shape as OrdersPage.
type CustomersPage struct {
	Customers []records.CustomerRecord    `json:"customers"`
	Metrics   queryengine.CustomerMetrics `json:"metrics"`
}

// ProductsPage is a plain catalog listing; no query engine pass.
type ProductsPage struct {
	Products []records.ProductRecord `json:"products"`
	Total    int                     `json:"total"`
}

// Overview feeds the dashboard summary cards.
type Overview struct {
	Orders    queryengine.OrderMetrics    `json:"orders"`
	Customers queryengine.CustomerMetrics `json:"customers"`
	Products  int                         `json:"products"`
}

// Service renders the admin dashboard pages: fetch one batch, ingest it,
// run the query engine, shape the view.
type Service interface {
	Orders(ctx context.Context, query queryengine.OrderQuery) (*OrdersPage, error)
	Customers(ctx context.Context, query queryengine.CustomerQuery) (*CustomersPage, error)
	Products(ctx context.Context) (*ProductsPage, error)
	Overview(ctx context.Context) (*Overview, error)
}

type service struct {
	fetcher  Fetcher
	pageSize int
	now      func() time.Time
}

// NewService builds the dashboard service. pageSize is the fixed upstream
// fetch size from config.
func NewService(fetcher Fetcher, pageSize int) (Service, error) {
	if fetcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "commerce fetcher required")
	}
	if pageSize <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "page size must be positive")
	}
	return &service{fetcher: fetcher, pageSize: pageSize, now: time.Now}, nil
}

func (s *service) Orders(ctx context.Context, query queryengine.OrderQuery) (*OrdersPage, error) {
	raw, err := s.fetcher.ListOrders(ctx, s.pageSize)
	if err != nil {
		return nil, err
	}
	batch := records.OrdersFromUpstream(raw)
	return &OrdersPage{
		Orders:  queryengine.FilterAndSortOrders(batch, query),
		Metrics: queryengine.ComputeOrderMetrics(batch),
	}, nil
}

func (s *service) Customers(ctx context.Context, query queryengine.CustomerQuery) (*CustomersPage, error) {
	raw, err := s.fetcher.ListCustomers(ctx, s.pageSize)
	if err != nil {
		return nil, err
	}
	batch := records.CustomersFromUpstream(raw)
	return &CustomersPage{
		Customers: queryengine.FilterAndSortCustomers(batch, query),
		Metrics:   queryengine.ComputeCustomerMetrics(batch, s.now()),
	}, nil
}

func (s *service) Products(ctx context.Context) (*ProductsPage, error) {
	raw, err := s.fetcher.ListProducts(ctx, s.pageSize)
	if err != nil {
		return nil, err
	}
	batch := records.ProductsFromUpstream(raw)
	return &ProductsPage{Products: batch, Total: len(batch)}, nil
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	rawOrders, err := s.fetcher.ListOrders(ctx, s.pageSize)
	if err != nil {
		return nil, err
	}
	rawCustomers, err := s.fetcher.ListCustomers(ctx, s.pageSize)
	if err != nil {
		return nil, err
	}
	rawProducts, err := s.fetcher.ListProducts(ctx, s.pageSize)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Orders:    queryengine.ComputeOrderMetrics(records.OrdersFromUpstream(rawOrders)),
		Customers: queryengine.ComputeCustomerMetrics(records.CustomersFromUpstream(rawCustomers), s.now()),
		Products:  len(rawProducts),
	}, nil
}
