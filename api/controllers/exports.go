package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/harborcommerce/backoffice-backend/api/responses"
	"github.com/harborcommerce/backoffice-backend/api/validators"
	"github.com/harborcommerce/backoffice-backend/internal/dashboard"
	"github.com/harborcommerce/backoffice-backend/internal/export"
	"github.com/harborcommerce/backoffice-backend/internal/queryengine"
	"github.com/harborcommerce/backoffice-backend/pkg/enums"
	pkgerrors "github.com/harborcommerce/backoffice-backend/pkg/errors"
	"github.com/harborcommerce/backoffice-backend/pkg/logger"
)

// exportSource is the slice of the dashboard service the CSV exports need:
// the same filtered view the merchant is looking at, minus the metrics.
type exportSource interface {
	Orders(ctx context.Context, query queryengine.OrderQuery) (*dashboard.OrdersPage, error)
	Customers(ctx context.Context, query queryengine.CustomerQuery) (*dashboard.CustomersPage, error)
}

// exportOrdersRequest mirrors the orders list filters. Sort fields are
// enum-checked here because a body, unlike a typo in a filter box, comes
// from the dashboard code itself.
type exportOrdersRequest struct {
	Text           string   `json:"q" validate:"omitempty,max=256"`
	Statuses       []string `json:"statuses" validate:"omitempty,dive,max=64"`
	Product        string   `json:"product" validate:"omitempty,max=256"`
	ProcessedAfter string   `json:"processed_after" validate:"omitempty,max=64"`
	Sort           string   `json:"sort" validate:"omitempty,oneof=order date total"`
	Direction      string   `json:"direction" validate:"omitempty,oneof=asc desc"`
}

type exportCustomersRequest struct {
	Text            string `json:"q" validate:"omitempty,max=256"`
	Tag             string `json:"tag" validate:"omitempty,max=256"`
	Country         string `json:"country" validate:"omitempty,max=256"`
	MinOrders       string `json:"min_orders" validate:"omitempty,max=32"`
	LastOrderBefore string `json:"last_order_before" validate:"omitempty,max=64"`
	Sort            string `json:"sort" validate:"omitempty,oneof=name date"`
	Direction       string `json:"direction" validate:"omitempty,oneof=asc desc"`
}

// ExportOrders streams the filtered order view as a CSV attachment.
func ExportOrders(source exportSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if source == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "export source unavailable"))
			return
		}

		var body exportOrdersRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := source.Orders(r.Context(), body.toQuery())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCSVHeaders(w, "orders.csv")
		if err := export.WriteOrders(w, page.Orders); err != nil && logg != nil {
			logg.Error(r.Context(), "export.orders.write_failed", err)
		}
	}
}

// ExportCustomers streams the filtered customer view as a CSV attachment.
func ExportCustomers(source exportSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if source == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "export source unavailable"))
			return
		}

		var body exportCustomersRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := source.Customers(r.Context(), body.toQuery())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCSVHeaders(w, "customers.csv")
		if err := export.WriteCustomers(w, page.Customers); err != nil && logg != nil {
			logg.Error(r.Context(), "export.customers.write_failed", err)
		}
	}
}

func (b exportOrdersRequest) toQuery() queryengine.OrderQuery {
	query := queryengine.OrderQuery{
		Text:           strings.TrimSpace(b.Text),
		Statuses:       b.Statuses,
		Product:        strings.TrimSpace(b.Product),
		ProcessedAfter: validators.ParseDate(b.ProcessedAfter),
		SortKey:        enums.OrderSortKeyDate,
		SortDirection:  enums.SortDirectionDesc,
	}
	if key, err := enums.ParseOrderSortKey(b.Sort); err == nil {
		query.SortKey = key
	}
	if dir, err := enums.ParseSortDirection(b.Direction); err == nil {
		query.SortDirection = dir
	}
	return query
}

func (b exportCustomersRequest) toQuery() queryengine.CustomerQuery {
	query := queryengine.CustomerQuery{
		Text:            strings.TrimSpace(b.Text),
		Tag:             strings.TrimSpace(b.Tag),
		Country:         strings.TrimSpace(b.Country),
		MinOrders:       b.MinOrders,
		LastOrderBefore: validators.ParseDate(b.LastOrderBefore),
		SortKey:         enums.CustomerSortKeyDate,
		SortDirection:   enums.SortDirectionDesc,
	}
	if key, err := enums.ParseCustomerSortKey(b.Sort); err == nil {
		query.SortKey = key
	}
	if dir, err := enums.ParseSortDirection(b.Direction); err == nil {
		query.SortDirection = dir
	}
	return query
}

func writeCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
}
