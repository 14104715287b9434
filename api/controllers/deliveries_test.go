package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelara/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
)

func TestParseDeliveryListParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/deliveries?cursor=abc&limit=20&merchant_id=3&driver_id=4&status=in_progress&from=2026-01-01T00:00:00Z", nil)

	params, err := parseDeliveryListParams(req)
	if err != nil {
		t.Fatalf("parse params: %v", err)
	}
	if params.Cursor != "abc" || params.Limit != 20 {
		t.Fatalf("unexpected paging: %+v", params)
	}
	if params.MerchantID == nil || *params.MerchantID != 3 {
		t.Fatalf("expected merchant 3, got %+v", params.MerchantID)
	}
	if params.DriverID == nil || *params.DriverID != 4 {
		t.Fatalf("expected driver 4, got %+v", params.DriverID)
	}
	if params.CustomerID != nil {
		t.Fatalf("customer filter should be absent, got %+v", params.CustomerID)
	}
	if params.Status == nil || *params.Status != enums.DeliveryStatusInProgress {
		t.Fatalf("unexpected status filter: %+v", params.Status)
	}
	want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if params.From == nil || !params.From.Equal(want) {
		t.Fatalf("unexpected from: %+v", params.From)
	}
	if params.To != nil {
		t.Fatalf("to filter should be absent, got %+v", params.To)
	}
}

func TestParseDeliveryListParamsRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"bad status": "/api/v1/deliveries?status=teleported",
		"bad date":   "/api/v1/deliveries?from=yesterday",
		"bad limit":  "/api/v1/deliveries?limit=0",
		"bad id":     "/api/v1/deliveries?merchant_id=-1",
	}
	for name, target := range cases {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		_, err := parseDeliveryListParams(req)
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}
