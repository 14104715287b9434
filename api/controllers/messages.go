package controllers

import (
	"net/http"

	"github.com/avelara/dispatchly-backend/api/responses"
	"github.com/avelara/dispatchly-backend/api/validators"
	"github.com/avelara/dispatchly-backend/internal/messages"
	"github.com/avelara/dispatchly-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// SendMessage appends a chat message to a delivery's log.
func SendMessage(svc *messages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body messages.SendDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Send(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ListDeliveryMessages returns the delivery's full log, oldest first.
func ListDeliveryMessages(svc *messages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deliveryID, err := validators.ParsePathID(chi.URLParam(r, "deliveryID"), "deliveryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListByDelivery(r.Context(), deliveryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
