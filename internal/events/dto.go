package events

import (
	"time"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"github.com/avelara/dispatchly-backend/pkg/enums"
)

// CreateEventDTO holds the fields needed to schedule an event.
type CreateEventDTO struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
}

// UpdateEventDTO is a patch; nil fields are left untouched.
type UpdateEventDTO struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Category    *string    `json:"category,omitempty"`
}

func (u UpdateEventDTO) changes() map[string]any {
	changes := map[string]any{}
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.Date != nil {
		changes["date"] = *u.Date
	}
	if u.Location != nil {
		changes["location"] = *u.Location
	}
	if u.Category != nil {
		changes["category"] = *u.Category
	}
	return changes
}

// CreateGuestDTO invites one guest to an event.
type CreateGuestDTO struct {
	EventID int64  `json:"event_id" validate:"required,gt=0"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
}

// UpdateGuestDTO is a patch; nil fields are left untouched.
type UpdateGuestDTO struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

func (u UpdateGuestDTO) changes() map[string]any {
	changes := map[string]any{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.Email != nil {
		changes["email"] = *u.Email
	}
	if u.Phone != nil {
		changes["phone"] = *u.Phone
	}
	return changes
}

// RSVPTally counts guests by response for one event.
type RSVPTally struct {
	EventID  int64 `json:"event_id"`
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Declined int64 `json:"declined"`
	Total    int64 `json:"total"`
}

// DashboardStats summarises the event calendar.
type DashboardStats struct {
	TotalEvents    int64            `json:"total_events"`
	UpcomingEvents int64            `json:"upcoming_events"`
	PastEvents     int64            `json:"past_events"`
	EventsThisWeek int64            `json:"events_this_week"`
	TotalGuests    int64            `json:"total_guests"`
	ByCategory     map[string]int64 `json:"by_category"`
	TopCategory    string           `json:"top_category,omitempty"`
}

func (c CreateEventDTO) toModel() *models.Event {
	return &models.Event{
		Title:       c.Title,
		Description: c.Description,
		Date:        c.Date,
		Location:    c.Location,
		Category:    c.Category,
	}
}

func (c CreateGuestDTO) toModel() *models.Guest {
	return &models.Guest{
		EventID:    c.EventID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		RSVPStatus: enums.RSVPStatusPending,
	}
}
