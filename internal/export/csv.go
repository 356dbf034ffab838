// Package export serializes visible rows to CSV. It is one-way: nothing in
// this service ever parses CSV back.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/harborcommerce/backoffice-backend/internal/records"
	pkgerrors "github.com/harborcommerce/backoffice-backend/pkg/errors"
)

// Column layouts are a contract with the dashboard's download buttons.
var (
	ordersHeader    = []string{"ID", "Name", "Customer", "Processed At", "Financial Status", "Fulfillment Status", "Total", "Currency"}
	customersHeader = []string{"ID", "Name", "Email", "Country", "Tags", "Orders", "Last Order Date", "Joined Date"}
)

const dateLayout = "2006-01-02"

// WriteOrders writes the header and one row per order. Amounts are the
// platform's canonical strings, never re-rendered from the parsed value.
func WriteOrders(w io.Writer, orders []records.OrderRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ordersHeader); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write orders export header")
	}
	for _, order := range orders {
		row := []string{
			order.ID,
			order.Name,
			order.CustomerName(),
			formatDate(order.ProcessedAt),
			order.FinancialStatus.String(),
			order.FulfillmentStatus.String(),
			order.Total.Amount,
			order.Total.Currency,
		}
		if err := cw.Write(row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write orders export row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush orders export")
	}
	return nil
}

// WriteCustomers writes the header and one row per customer. Tags share one
// cell, joined with ", ".
func WriteCustomers(w io.Writer, customers []records.CustomerRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(customersHeader); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write customers export header")
	}
	for _, customer := range customers {
		row := []string{
			customer.ID,
			customer.FullName(),
			customer.Email,
			customer.Country,
			strings.Join(customer.Tags, ", "),
			strconv.Itoa(customer.OrdersCount),
			lastOrderDate(customer),
			formatDate(customer.CreatedAt),
		}
		if err := cw.Write(row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write customers export row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush customers export")
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func lastOrderDate(customer records.CustomerRecord) string {
	if customer.LastOrder == nil {
		return ""
	}
	return formatDate(customer.LastOrder.ProcessedAt)
}
