package controllers

import (
	"net/http"

	"github.com/harborcommerce/backoffice-backend/api/middleware"
	"github.com/harborcommerce/backoffice-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

// PrivatePing is the authenticated smoke check; it echoes the shop bound to
// the token so operators can confirm which tenant a token acts for.
func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if shop := middleware.ShopFromContext(r.Context()); shop != "" {
			payload["shop"] = shop
		}
		responses.WriteSuccess(w, payload)
	}
}
