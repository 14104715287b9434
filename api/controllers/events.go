package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/avelara/dispatchly-backend/api/responses"
	"github.com/avelara/dispatchly-backend/api/validators"
	"github.com/avelara/dispatchly-backend/internal/events"
	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
	"github.com/avelara/dispatchly-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// CreateEvent schedules a new event.
func CreateEvent(svc *events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body events.CreateEventDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateEvent(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// GetEvent returns one event.
func GetEvent(svc *events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.GetEvent(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListEvents filters the calendar by category and date range.
func ListEvents(svc *events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var from, to *time.Time
		for key, dest := range map[string]**time.Time{
			"from": &from,
			"to":   &to,
		} {
			if raw := strings.TrimSpace(r.URL.Query().Get(key)); raw != "" {
				value, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					responses.WriteError(r.Context(), logg, w,
						pkgerrors.New(pkgerrors.CodeValidation, "date filters must be RFC3339").WithDetails(map[string]any{"field": key}))
					return
				}
				*dest = &value
			}
		}

		sortBy, sortDesc, err := validators.ParseQuerySort(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListEvents(r.Context(), events.ListEventsParams{
			Category: strings.TrimSpace(r.URL.Query().Get("category")),
			From:     from,
			To:       to,
			SortBy:   sortBy,
			SortDesc: sortDesc,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateEvent patches an event.
func UpdateEvent(svc *events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body events.UpdateEventDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateEvent(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DeleteEvent removes an event and its guest list.
func DeleteEvent(svc *events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteEvent(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type addGuestRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// AddEventGuest invites a guest; the event comes from the path.
func AddEventGuest(svc *events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := validators.ParsePathID(chi.URLParam(r, "eventID"), "eventID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addGuestRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddGuest(r.Context(), events.CreateGuestDTO{
			EventID: eventID,
			Name:    body.Name,
			Email:   body.Email,
			Phone:   body.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ListEventGuests returns the guest list, oldest first.
func ListEventGuests(svc *events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := validators.ParsePathID(chi.URLParam(r, "eventID"), "eventID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListGuests(r.Context(), eventID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateEventGuest patches a guest's contact details.
func UpdateEventGuest(svc *events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, guestID, err := guestPathIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body events.UpdateGuestDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateGuest(r.Context(), eventID, guestID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type rsvpRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateGuestRSVP records a guest's response.
func UpdateGuestRSVP(svc *events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, guestID, err := guestPathIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body rsvpRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateRSVP(r.Context(), eventID, guestID, body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// RemoveEventGuest drops a guest from the list.
func RemoveEventGuest(svc *events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, guestID, err := guestPathIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveGuest(r.Context(), eventID, guestID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// EventRSVPStats tallies the guest list by response.
func EventRSVPStats(svc *events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := validators.ParsePathID(chi.URLParam(r, "eventID"), "eventID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RSVPStats(r.Context(), eventID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// EventDashboard summarises the calendar.
func EventDashboard(svc *events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func guestPathIDs(r *http.Request) (int64, int64, error) {
	eventID, err := validators.ParsePathID(chi.URLParam(r, "eventID"), "eventID")
	if err != nil {
		return 0, 0, err
	}
	guestID, err := validators.ParsePathID(chi.URLParam(r, "guestID"), "guestID")
	if err != nil {
		return 0, 0, err
	}
	return eventID, guestID, nil
}
