package middleware

import (
	"net/http"

	"github.com/harborcommerce/backoffice-backend/api/responses"
	pkgerrors "github.com/harborcommerce/backoffice-backend/pkg/errors"
	"github.com/harborcommerce/backoffice-backend/pkg/logger"
)

// RequireShop rejects tokens that carry no shop claim. Admin pages always
// act on behalf of a shop; a shopless token reaching a dashboard handler
// means the token was minted for another surface.
func RequireShop(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ShopFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "shop context missing"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
