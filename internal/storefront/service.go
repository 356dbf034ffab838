package storefront

import (
	"context"
	"strings"

	"github.com/harborcommerce/backoffice-backend/internal/queryengine"
	"github.com/harborcommerce/backoffice-backend/internal/records"
	"github.com/harborcommerce/backoffice-backend/pkg/commerce"
	"github.com/harborcommerce/backoffice-backend/pkg/enums"
	pkgerrors "github.com/harborcommerce/backoffice-backend/pkg/errors"
)

// Fetcher is the slice of the commerce client the storefront fragment needs.
type Fetcher interface {
	GetCustomerAccount(ctx context.Context, customerID string, first int) (*commerce.Customer, []commerce.Order, error)
}

// Account is the shopper's own profile plus order history, newest first.
type Account struct {
	Profile records.CustomerRecord `json:"profile"`
	Orders  []records.OrderRecord  `json:"orders"`
}

// Service renders the storefront account fragment. The customer identity
// always comes from the caller's token, never from request input.
type Service interface {
	Account(ctx context.Context, customerID string) (*Account, error)
}

type service struct {
	fetcher  Fetcher
	pageSize int
}

// NewService builds the storefront service.
func NewService(fetcher Fetcher, pageSize int) (Service, error) {
	if fetcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "commerce fetcher required")
	}
	if pageSize <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "page size must be positive")
	}
	return &service{fetcher: fetcher, pageSize: pageSize}, nil
}

func (s *service) Account(ctx context.Context, customerID string) (*Account, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}

	profile, history, err := s.fetcher.GetCustomerAccount(ctx, customerID, s.pageSize)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer account not found")
	}

	orders := queryengine.FilterAndSortOrders(records.OrdersFromUpstream(history), queryengine.OrderQuery{
		SortKey:       enums.OrderSortKeyDate,
		SortDirection: enums.SortDirectionDesc,
	})
	return &Account{
		Profile: records.CustomerFromUpstream(*profile),
		Orders:  orders,
	}, nil
}
