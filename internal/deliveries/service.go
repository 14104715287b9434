package deliveries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelara/dispatchly-backend/internal/notifications"
	"github.com/avelara/dispatchly-backend/internal/users"
	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
	"github.com/avelara/dispatchly-backend/pkg/logger"
	"github.com/avelara/dispatchly-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userStore interface {
	WithTx(tx *gorm.DB) userStore
	FindByID(ctx context.Context, id int64) (*models.User, error)
	AddEarnings(ctx context.Context, id int64, amount decimal.Decimal) error
}

type gormUserStore struct {
	repo *users.Repository
}

func (g gormUserStore) WithTx(tx *gorm.DB) userStore {
	return gormUserStore{repo: g.repo.WithTx(tx)}
}

func (g gormUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return g.repo.FindByID(ctx, id)
}

func (g gormUserStore) AddEarnings(ctx context.Context, id int64, amount decimal.Decimal) error {
	return g.repo.AddEarnings(ctx, id, amount)
}

// Service drives the delivery workflow and its notification side effects.
type Service struct {
	db     txRunner
	repo   Repository
	users  userStore
	notifs notifications.Repository
	logg   *logger.Logger
	now    func() time.Time
}

// NewService wires the delivery workflow dependencies.
func NewService(db txRunner, repo Repository, usersRepo *users.Repository, notifs notifications.Repository, logg *logger.Logger) (*Service, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "deliveries repository required")
	}
	if usersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	if notifs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &Service{
		db:     db,
		repo:   repo,
		users:  gormUserStore{repo: usersRepo},
		notifs: notifs,
		logg:   logg,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create opens a pending delivery and notifies the merchant of the new order.
func (s *Service) Create(ctx context.Context, dto CreateDeliveryDTO) (*DeliveryDTO, error) {
	if err := s.validateCreate(ctx, dto); err != nil {
		return nil, err
	}

	delivery := dto.toModel()
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, delivery); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create delivery")
		}
		notification := &models.Notification{
			UserID:  delivery.MerchantID,
			Type:    enums.NotificationTypeNewOrder,
			Message: fmt.Sprintf("New order #%d from %s", delivery.ID, delivery.CustomerName),
		}
		if err := s.notifs.WithTx(tx).Create(ctx, notification); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify merchant")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.info(ctx, "delivery created", map[string]any{"delivery_id": delivery.ID, "merchant_id": delivery.MerchantID})
	return FromModel(delivery), nil
}

func (s *Service) validateCreate(ctx context.Context, dto CreateDeliveryDTO) error {
	if dto.CustomerName == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if dto.Address == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}
	if !dto.Amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	for _, item := range dto.Items {
		if item.Name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
		}
		if item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		if item.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative")
		}
	}

	merchant, err := s.users.FindByID(ctx, dto.MerchantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "merchant not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load merchant")
	}
	if merchant.Role != enums.RoleMerchant {
		return pkgerrors.New(pkgerrors.CodeValidation, "deliveries can only belong to merchants")
	}

	if dto.CustomerID != nil {
		if _, err := s.users.FindByID(ctx, *dto.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
		}
	}
	return nil
}

// Get returns one delivery with its items.
func (s *Service) Get(ctx context.Context, id int64) (*DeliveryDTO, error) {
	delivery, err := s.findDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(delivery), nil
}

// List returns a filtered page of deliveries.
func (s *Service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listQuery{
		MerchantID: params.MerchantID,
		DriverID:   params.DriverID,
		CustomerID: params.CustomerID,
		Status:     params.Status,
		From:       params.From,
		To:         params.To,
		Limit:      params.Limit,
	}
	if params.Status != nil && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list deliveries")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

// AssignDriver moves a pending delivery to assigned, binding the driver.
// Reassignment outside pending is rejected.
func (s *Service) AssignDriver(ctx context.Context, deliveryID, driverID, version int64) (*DeliveryDTO, error) {
	delivery, err := s.findDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	driver, err := s.users.FindByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "driver not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load driver")
	}
	if driver.Role != enums.RoleDriver {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "assignee must be a driver")
	}

	if err := CanTransition(delivery.Status, enums.DeliveryStatusAssigned, enums.RoleMerchant); err != nil {
		return nil, err
	}

	changes := map[string]any{
		"driver_id": driverID,
		"status":    enums.DeliveryStatusAssigned,
	}
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.applyCAS(ctx, tx, deliveryID, version, changes); err != nil {
			return err
		}
		notifs := s.notifs.WithTx(tx)
		driverNote := &models.Notification{
			UserID:  driverID,
			Type:    enums.NotificationTypeNewDelivery,
			Message: fmt.Sprintf("You have been assigned delivery #%d to %s", deliveryID, delivery.Address),
		}
		if err := notifs.Create(ctx, driverNote); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify driver")
		}
		if delivery.CustomerID != nil {
			customerNote := &models.Notification{
				UserID:  *delivery.CustomerID,
				Type:    enums.NotificationTypeOrderAccepted,
				Message: fmt.Sprintf("Order #%d has been accepted and a driver is on the way", deliveryID),
			}
			if err := notifs.Create(ctx, customerNote); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify customer")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.info(ctx, "driver assigned", map[string]any{"delivery_id": deliveryID, "driver_id": driverID})
	return s.Get(ctx, deliveryID)
}

// SetStatus advances the workflow on behalf of the given actor role.
func (s *Service) SetStatus(ctx context.Context, id int64, to enums.DeliveryStatus, actor enums.Role, version int64) (*DeliveryDTO, error) {
	if !to.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target status")
	}
	if !actor.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid actor role")
	}

	delivery, err := s.findDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanTransition(delivery.Status, to, actor); err != nil {
		return nil, err
	}

	changes := map[string]any{"status": to}
	deliveredNow := to == enums.DeliveryStatusDelivered
	if deliveredNow {
		changes["delivered_at"] = s.now()
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.applyCAS(ctx, tx, id, version, changes); err != nil {
			return err
		}
		if deliveredNow && delivery.DriverID != nil {
			if err := s.users.WithTx(tx).AddEarnings(ctx, *delivery.DriverID, delivery.Amount); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "credit driver earnings")
			}
		}
		if delivery.CustomerID != nil {
			note := &models.Notification{
				UserID:  *delivery.CustomerID,
				Type:    enums.NotificationTypeOrderStatus,
				Message: fmt.Sprintf("Order #%d is now %s", id, to),
			}
			if err := s.notifs.WithTx(tx).Create(ctx, note); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify customer")
			}
		}
		if deliveredNow {
			note := &models.Notification{
				UserID:  delivery.MerchantID,
				Type:    enums.NotificationTypeOrderStatus,
				Message: fmt.Sprintf("Order #%d has been delivered", id),
			}
			if err := s.notifs.WithTx(tx).Create(ctx, note); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify merchant")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.info(ctx, "delivery status updated", map[string]any{"delivery_id": id, "status": string(to)})
	return s.Get(ctx, id)
}

// RateDriver records a one-time 1-5 rating on a delivered order.
func (s *Service) RateDriver(ctx context.Context, id int64, rating int, comment *string, version int64) (*DeliveryDTO, error) {
	if rating < 1 || rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	delivery, err := s.findDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	if delivery.Status != enums.DeliveryStatusDelivered {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only delivered orders can be rated")
	}
	if delivery.DriverRating != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "delivery has already been rated")
	}

	changes := map[string]any{"driver_rating": rating}
	if comment != nil {
		changes["driver_rating_comment"] = *comment
	}
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.applyCAS(ctx, tx, id, version, changes)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Update patches mutable order details. Terminal deliveries are immutable.
func (s *Service) Update(ctx context.Context, id int64, dto UpdateDeliveryDTO) (*DeliveryDTO, error) {
	delivery, err := s.findDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	if delivery.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "delivered orders cannot be edited")
	}
	if dto.Amount != nil && !dto.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if dto.Address != nil && *dto.Address == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address cannot be empty")
	}

	if _, err := s.repo.Update(ctx, id, dto.changes()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery")
	}
	return s.Get(ctx, id)
}

// Delete removes a delivery; only pending ones may be deleted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	rows, err := s.repo.DeletePending(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete delivery")
	}
	if rows > 0 {
		s.info(ctx, "delivery deleted", map[string]any{"delivery_id": id})
		return nil
	}

	if _, err := s.findDelivery(ctx, id); err != nil {
		return err
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending deliveries can be deleted")
}

func (s *Service) findDelivery(ctx context.Context, id int64) (*models.Delivery, error) {
	delivery, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery")
	}
	return delivery, nil
}

// applyCAS runs a compare-and-swap update inside tx, translating a zero-row
// result into not-found or concurrent-modification conflicts.
func (s *Service) applyCAS(ctx context.Context, tx *gorm.DB, id, version int64, changes map[string]any) error {
	rows, err := s.repo.WithTx(tx).UpdateCAS(ctx, id, version, changes)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery")
	}
	if rows == 0 {
		if _, findErr := s.repo.WithTx(tx).FindByID(ctx, id); findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load delivery")
		}
		return pkgerrors.New(pkgerrors.CodeConflict, "delivery was modified concurrently")
	}
	return nil
}

func (s *Service) info(ctx context.Context, msg string, fields map[string]any) {
	if s.logg == nil {
		return
	}
	s.logg.Info(s.logg.WithFields(ctx, fields), msg)
}
