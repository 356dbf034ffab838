package controllers

import (
	"context"
	"net/http"

	"github.com/harborcommerce/backoffice-backend/api/middleware"
	"github.com/harborcommerce/backoffice-backend/api/responses"
	"github.com/harborcommerce/backoffice-backend/internal/storefront"
	pkgerrors "github.com/harborcommerce/backoffice-backend/pkg/errors"
	"github.com/harborcommerce/backoffice-backend/pkg/logger"
)

type accountService interface {
	Account(ctx context.Context, customerID string) (*storefront.Account, error)
}

// StorefrontAccount returns the signed-in customer's profile and order
// history. The customer ID comes from the verified token, never from the
// request, so a shopper can only ever read their own account.
func StorefrontAccount(svc accountService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront service unavailable"))
			return
		}

		customerID := middleware.UserIDFromContext(r.Context())
		account, err := svc.Account(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}
