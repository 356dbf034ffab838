package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harborcommerce/backoffice-backend/api/middleware"
	"github.com/harborcommerce/backoffice-backend/internal/records"
	"github.com/harborcommerce/backoffice-backend/internal/storefront"
	pkgerrors "github.com/harborcommerce/backoffice-backend/pkg/errors"
)

type stubAccountService struct {
	accountFn func(ctx context.Context, customerID string) (*storefront.Account, error)
}

func (s stubAccountService) Account(ctx context.Context, customerID string) (*storefront.Account, error) {
	if s.accountFn != nil {
		return s.accountFn(ctx, customerID)
	}
	return &storefront.Account{}, nil
}

func TestStorefrontAccountUsesTokenIdentity(t *testing.T) {
	var gotID string
	svc := stubAccountService{
		accountFn: func(ctx context.Context, customerID string) (*storefront.Account, error) {
			gotID = customerID
			return &storefront.Account{
				Profile: records.CustomerRecord{ID: customerID, FirstName: "Mara", LastName: "Voss"},
			}, nil
		},
	}

	handler := StorefrontAccount(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/?customer_id=someone-else", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "customer-7"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	// The query string must never influence whose account is read.
	if gotID != "customer-7" {
		t.Fatalf("expected token identity, got %q", gotID)
	}

	var envelope struct {
		Data storefront.Account `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Profile.ID != "customer-7" {
		t.Fatalf("unexpected profile %+v", envelope.Data.Profile)
	}
}

func TestStorefrontAccountMissingIdentity(t *testing.T) {
	svc := stubAccountService{
		accountFn: func(ctx context.Context, customerID string) (*storefront.Account, error) {
			if customerID != "" {
				t.Fatalf("expected empty identity, got %q", customerID)
			}
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
		},
	}

	handler := StorefrontAccount(svc, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestStorefrontAccountNotFound(t *testing.T) {
	svc := stubAccountService{
		accountFn: func(ctx context.Context, customerID string) (*storefront.Account, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		},
	}

	handler := StorefrontAccount(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "customer-gone"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
