package events

import (
	"context"
	"errors"
	"time"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages the event calendar and guest lists.
type Service struct {
	db   txRunner
	repo Repository
	now  func() time.Time
}

// NewService wires the calendar dependencies.
func NewService(db txRunner, repo Repository) (*Service, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "events repository required")
	}
	return &Service{
		db:   db,
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

// CreateEvent schedules a new event.
func (s *Service) CreateEvent(ctx context.Context, dto CreateEventDTO) (*models.Event, error) {
	if dto.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event title is required")
	}
	if dto.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event date is required")
	}

	event := dto.toModel()
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create event")
	}
	return event, nil
}

// GetEvent returns one event.
func (s *Service) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.repo.FindEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}
	return event, nil
}

// ListEventsParams scopes and orders an event listing. An empty SortBy sorts
// by date.
type ListEventsParams struct {
	Category string
	From     *time.Time
	To       *time.Time
	SortBy   string
	SortDesc bool
}

// ListEvents returns events, optionally scoped to a category or a date range
// and sorted by one of date, title, or guest_count.
func (s *Service) ListEvents(ctx context.Context, params ListEventsParams) ([]models.Event, error) {
	if params.SortBy != "" {
		if _, ok := eventSortColumns[params.SortBy]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort key").
				WithDetails(map[string]any{"field": "sort", "supported": []string{"date", "title", "guest_count"}})
		}
	}
	rows, err := s.repo.ListEvents(ctx, eventFilter{
		Category: params.Category,
		From:     params.From,
		To:       params.To,
		SortBy:   params.SortBy,
		SortDesc: params.SortDesc,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list events")
	}
	return rows, nil
}

// UpdateEvent patches an event.
func (s *Service) UpdateEvent(ctx context.Context, id int64, dto UpdateEventDTO) (*models.Event, error) {
	if dto.Title != nil && *dto.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event title cannot be empty")
	}
	if dto.Date != nil && dto.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event date cannot be empty")
	}

	event, err := s.repo.UpdateEvent(ctx, id, dto.changes())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update event")
	}
	return event, nil
}

// DeleteEvent removes an event and its guest list.
func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.repo.WithTx(tx).DeleteEvent(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete event")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil
	})
}

// AddGuest invites a guest; the response starts as Pending and the event's
// guest_count is kept in sync in the same transaction.
func (s *Service) AddGuest(ctx context.Context, dto CreateGuestDTO) (*models.Guest, error) {
	if dto.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest name is required")
	}
	if _, err := s.GetEvent(ctx, dto.EventID); err != nil {
		return nil, err
	}

	guest := dto.toModel()
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateGuest(ctx, guest); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create guest")
		}
		return repo.SyncGuestCount(ctx, dto.EventID)
	})
	if err != nil {
		return nil, err
	}
	return guest, nil
}

// GetGuest returns one guest scoped to an event.
func (s *Service) GetGuest(ctx context.Context, eventID, guestID int64) (*models.Guest, error) {
	guest, err := s.repo.FindGuestByID(ctx, eventID, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load guest")
	}
	return guest, nil
}

// ListGuests returns an event's guest list in invitation order.
func (s *Service) ListGuests(ctx context.Context, eventID int64) ([]models.Guest, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	guests, err := s.repo.ListGuests(ctx, eventID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list guests")
	}
	return guests, nil
}

// UpdateGuest patches a guest's contact details.
func (s *Service) UpdateGuest(ctx context.Context, eventID, guestID int64, dto UpdateGuestDTO) (*models.Guest, error) {
	if dto.Name != nil && *dto.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest name cannot be empty")
	}

	guest, err := s.repo.UpdateGuest(ctx, eventID, guestID, dto.changes())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update guest")
	}
	return guest, nil
}

// UpdateRSVP records a guest's response to the invitation.
func (s *Service) UpdateRSVP(ctx context.Context, eventID, guestID int64, raw string) (*models.Guest, error) {
	status, err := enums.ParseRSVPStatus(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rsvp status")
	}

	guest, err := s.repo.UpdateGuest(ctx, eventID, guestID, map[string]any{"rsvp_status": status})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rsvp")
	}
	return guest, nil
}

// RemoveGuest deletes a guest and refreshes the event's guest_count.
func (s *Service) RemoveGuest(ctx context.Context, eventID, guestID int64) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		rows, err := repo.DeleteGuest(ctx, eventID, guestID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete guest")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
		}
		return repo.SyncGuestCount(ctx, eventID)
	})
}

// RSVPStats tallies invitation responses for one event.
func (s *Service) RSVPStats(ctx context.Context, eventID int64) (*RSVPTally, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	tally, err := s.repo.TallyRSVP(ctx, eventID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "tally rsvp")
	}
	return tally, nil
}

// Dashboard summarises the calendar: totals, upcoming versus past, events in
// the current week, and the category breakdown.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	weekStart := startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	stats := &DashboardStats{}
	var err error
	if stats.TotalEvents, err = s.repo.CountEvents(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count events")
	}
	if stats.UpcomingEvents, err = s.repo.CountEventsBetween(ctx, &now, nil); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count upcoming events")
	}
	stats.PastEvents = stats.TotalEvents - stats.UpcomingEvents
	if stats.EventsThisWeek, err = s.repo.CountEventsBetween(ctx, &weekStart, &weekEnd); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count weekly events")
	}
	if stats.TotalGuests, err = s.repo.CountGuests(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count guests")
	}
	if stats.ByCategory, err = s.repo.CountByCategory(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count categories")
	}

	var best int64
	for category, count := range stats.ByCategory {
		if category == "" {
			continue
		}
		if count > best || (count == best && category < stats.TopCategory) {
			best = count
			stats.TopCategory = category
		}
	}
	return stats, nil
}

func startOfWeek(now time.Time) time.Time {
	day := now.AddDate(0, 0, -int(now.Weekday()))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}
