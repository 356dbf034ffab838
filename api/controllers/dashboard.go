package controllers

import (
	"net/http"

	"github.com/harborcommerce/backoffice-backend/api/responses"
	"github.com/harborcommerce/backoffice-backend/api/validators"
	"github.com/harborcommerce/backoffice-backend/internal/dashboard"
	"github.com/harborcommerce/backoffice-backend/internal/queryengine"
	"github.com/harborcommerce/backoffice-backend/pkg/enums"
	pkgerrors "github.com/harborcommerce/backoffice-backend/pkg/errors"
	"github.com/harborcommerce/backoffice-backend/pkg/logger"
)

// DashboardOrders lists the order page for the admin dashboard: filtered,
// sorted rows plus batch-wide metrics.
func DashboardOrders(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		page, err := svc.Orders(r.Context(), orderQueryFromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// DashboardCustomers lists the customer page for the admin dashboard.
func DashboardCustomers(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		page, err := svc.Customers(r.Context(), customerQueryFromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// DashboardProducts lists the catalog page. Products carry no query engine
// pass; the page is the fetched batch as-is.
func DashboardProducts(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		page, err := svc.Products(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// DashboardOverview returns the summary cards shown on the dashboard home.
func DashboardOverview(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		overview, err := svc.Overview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}

// orderQueryFromRequest maps query parameters onto an order query. Filter
// parameters never reject the request: values that fail to parse leave the
// default in place, so the merchant sees a wider list rather than an error.
func orderQueryFromRequest(r *http.Request) queryengine.OrderQuery {
	query := queryengine.OrderQuery{
		Text:           validators.QueryText(r, "q"),
		Statuses:       validators.QueryValues(r, "status"),
		Product:        validators.QueryText(r, "product"),
		ProcessedAfter: validators.QueryDate(r, "processed_after"),
		SortKey:        enums.OrderSortKeyDate,
		SortDirection:  enums.SortDirectionDesc,
	}
	if key, err := enums.ParseOrderSortKey(validators.QueryText(r, "sort")); err == nil {
		query.SortKey = key
	}
	if dir, err := enums.ParseSortDirection(validators.QueryText(r, "direction")); err == nil {
		query.SortDirection = dir
	}
	return query
}

func customerQueryFromRequest(r *http.Request) queryengine.CustomerQuery {
	query := queryengine.CustomerQuery{
		Text:            validators.QueryText(r, "q"),
		Tag:             validators.QueryText(r, "tag"),
		Country:         validators.QueryText(r, "country"),
		MinOrders:       validators.QueryText(r, "min_orders"),
		LastOrderBefore: validators.QueryDate(r, "last_order_before"),
		SortKey:         enums.CustomerSortKeyDate,
		SortDirection:   enums.SortDirectionDesc,
	}
	if key, err := enums.ParseCustomerSortKey(validators.QueryText(r, "sort")); err == nil {
		query.SortKey = key
	}
	if dir, err := enums.ParseSortDirection(validators.QueryText(r, "direction")); err == nil {
		query.SortDirection = dir
	}
	return query
}
