package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/avelara/dispatchly-backend/api/middleware"
	"github.com/avelara/dispatchly-backend/api/responses"
	"github.com/avelara/dispatchly-backend/api/validators"
	"github.com/avelara/dispatchly-backend/internal/deliveries"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
	"github.com/avelara/dispatchly-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// CreateDelivery opens a new pending delivery for a merchant.
func CreateDelivery(svc *deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body deliveries.CreateDeliveryDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// GetDelivery returns one delivery with its items.
func GetDelivery(svc *deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListDeliveries filters deliveries by participant, status, and date range.
func ListDeliveries(svc *deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseDeliveryListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), *params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type assignDriverRequest struct {
	DriverID int64 `json:"driver_id" validate:"required,gt=0"`
	Version  int64 `json:"version"`
}

// AssignDriver moves a pending delivery to assigned.
func AssignDriver(svc *deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body assignDriverRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AssignDriver(r.Context(), id, body.DriverID, body.Version)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type setStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Version int64  `json:"version"`
}

// SetDeliveryStatus advances the workflow; the actor role comes from the
// authenticated token, not the payload.
func SetDeliveryStatus(svc *deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body setStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseDeliveryStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		result, err := svc.SetStatus(r.Context(), id, status, middleware.RoleFromContext(r.Context()), body.Version)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type rateDriverRequest struct {
	Rating  int     `json:"rating" validate:"required"`
	Comment *string `json:"comment,omitempty"`
	Version int64   `json:"version"`
}

// RateDriver records a one-time rating on a delivered order.
func RateDriver(svc *deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body rateDriverRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RateDriver(r.Context(), id, body.Rating, body.Comment, body.Version)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateDelivery patches customer-facing fields; never status or identity.
func UpdateDelivery(svc *deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body deliveries.UpdateDeliveryDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DeleteDelivery removes a delivery while it is still pending.
func DeleteDelivery(svc *deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseDeliveryListParams(r *http.Request) (*deliveries.ListParams, error) {
	params := &deliveries.ListParams{
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}

	limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
	if err != nil {
		return nil, err
	}
	params.Limit = limit

	for key, dest := range map[string]**int64{
		"merchant_id": &params.MerchantID,
		"driver_id":   &params.DriverID,
		"customer_id": &params.CustomerID,
	} {
		id, err := validators.ParseQueryID(r, key)
		if err != nil {
			return nil, err
		}
		if id > 0 {
			value := id
			*dest = &value
		}
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseDeliveryStatus(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		params.Status = &status
	}

	for key, dest := range map[string]**time.Time{
		"from": &params.From,
		"to":   &params.To,
	} {
		if raw := strings.TrimSpace(r.URL.Query().Get(key)); raw != "" {
			value, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "date filters must be RFC3339").WithDetails(map[string]any{"field": key})
			}
			*dest = &value
		}
	}

	return params, nil
}
