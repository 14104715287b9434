package controllers

import (
	"net/http"

	"github.com/avelara/dispatchly-backend/api/responses"
	"github.com/avelara/dispatchly-backend/api/validators"
	"github.com/avelara/dispatchly-backend/internal/analytics"
	"github.com/avelara/dispatchly-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// AnalyticsSummary computes revenue and order KPIs, optionally scoped to a
// merchant and a reporting window.
func AnalyticsSummary(svc *analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := validators.ParseQueryID(r, "merchant_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		window, err := analytics.ParseWindow(r.URL.Query().Get("window"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var scope *int64
		if merchantID > 0 {
			scope = &merchantID
		}

		result, err := svc.Summary(r.Context(), scope, window)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AnalyticsCustomers groups order history per customer.
func AnalyticsCustomers(svc *analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := validators.ParseQueryID(r, "merchant_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var scope *int64
		if merchantID > 0 {
			scope = &merchantID
		}

		result, err := svc.CustomerRollup(r.Context(), scope)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DriverRating returns the driver's mean rating across delivered orders.
func DriverRating(svc *analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.DriverAverageRating(r.Context(), driverID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
