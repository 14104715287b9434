package events

import (
	"context"
	"time"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for events and their guest lists.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateEvent(ctx context.Context, event *models.Event) error
	FindEventByID(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context, filter eventFilter) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id int64, changes map[string]any) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int64) (int64, error)
	SyncGuestCount(ctx context.Context, eventID int64) error

	CreateGuest(ctx context.Context, guest *models.Guest) error
	FindGuestByID(ctx context.Context, eventID, guestID int64) (*models.Guest, error)
	ListGuests(ctx context.Context, eventID int64) ([]models.Guest, error)
	UpdateGuest(ctx context.Context, eventID, guestID int64, changes map[string]any) (*models.Guest, error)
	DeleteGuest(ctx context.Context, eventID, guestID int64) (int64, error)
	TallyRSVP(ctx context.Context, eventID int64) (*RSVPTally, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	FindCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id int64, changes map[string]any) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) (int64, error)

	CountEvents(ctx context.Context) (int64, error)
	CountEventsBetween(ctx context.Context, from, to *time.Time) (int64, error)
	CountGuests(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an events repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type eventFilter struct {
	Category string
	From     *time.Time
	To       *time.Time
	SortBy   string
	SortDesc bool
}

// eventSortColumns whitelists sortable columns; the id tiebreak keeps the
// ordering stable across equal keys.
var eventSortColumns = map[string]string{
	"date":        "date",
	"title":       "title",
	"guest_count": "guest_count",
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) CreateEvent(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repositoryImpl) FindEventByID(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repositoryImpl) ListEvents(ctx context.Context, filter eventFilter) ([]models.Event, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date < ?", *filter.To)
	}

	column, ok := eventSortColumns[filter.SortBy]
	if !ok {
		column = "date"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	var events []models.Event
	if err := query.Order(column + " " + direction + ", id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repositoryImpl) UpdateEvent(ctx context.Context, id int64, changes map[string]any) (*models.Event, error) {
	if len(changes) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Event{}).
			Where("id = ?", id).
			Updates(changes)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindEventByID(ctx, id)
}

func (r *repositoryImpl) DeleteEvent(ctx context.Context, id int64) (int64, error) {
	// guest rows go first so sqlite without FK cascades stays consistent
	if err := r.db.WithContext(ctx).Where("event_id = ?", id).Delete(&models.Guest{}).Error; err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SyncGuestCount recomputes guest_count from the guest rows. Called inside
// the same transaction as any guest mutation.
func (r *repositoryImpl) SyncGuestCount(ctx context.Context, eventID int64) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Guest{}).
		Where("event_id = ?", eventID).
		Count(&count).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", eventID).
		UpdateColumn("guest_count", count).Error
}

func (r *repositoryImpl) CreateGuest(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

func (r *repositoryImpl) FindGuestByID(ctx context.Context, eventID, guestID int64) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.WithContext(ctx).
		First(&guest, "id = ? AND event_id = ?", guestID, eventID).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *repositoryImpl) ListGuests(ctx context.Context, eventID int64) ([]models.Guest, error) {
	var guests []models.Guest
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("added_at ASC, id ASC").
		Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

func (r *repositoryImpl) UpdateGuest(ctx context.Context, eventID, guestID int64, changes map[string]any) (*models.Guest, error) {
	if len(changes) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Guest{}).
			Where("id = ? AND event_id = ?", guestID, eventID).
			Updates(changes)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindGuestByID(ctx, eventID, guestID)
}

func (r *repositoryImpl) DeleteGuest(ctx context.Context, eventID, guestID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND event_id = ?", guestID, eventID).
		Delete(&models.Guest{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repositoryImpl) TallyRSVP(ctx context.Context, eventID int64) (*RSVPTally, error) {
	var rows []struct {
		RSVPStatus enums.RSVPStatus
		Count      int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Guest{}).
		Select("rsvp_status, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Group("rsvp_status").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	tally := &RSVPTally{EventID: eventID}
	for _, row := range rows {
		switch row.RSVPStatus {
		case enums.RSVPStatusPending:
			tally.Pending = row.Count
		case enums.RSVPStatusAccepted:
			tally.Accepted = row.Count
		case enums.RSVPStatusDeclined:
			tally.Declined = row.Count
		}
		tally.Total += row.Count
	}
	return tally, nil
}

func (r *repositoryImpl) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repositoryImpl) FindCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repositoryImpl) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repositoryImpl) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).
		Order("name ASC, id ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repositoryImpl) UpdateCategory(ctx context.Context, id int64, changes map[string]any) (*models.Category, error) {
	if len(changes) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Category{}).
			Where("id = ?", id).
			Updates(changes)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindCategoryByID(ctx, id)
}

func (r *repositoryImpl) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repositoryImpl) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Event{}).Count(&count).Error
	return count, err
}

func (r *repositoryImpl) CountEventsBetween(ctx context.Context, from, to *time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{})
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date < ?", *to)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *repositoryImpl) CountGuests(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Guest{}).Count(&count).Error
	return count, err
}

func (r *repositoryImpl) CountByCategory(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Category string
		Count    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}
