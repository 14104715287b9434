package messages

import (
	"context"
	"errors"
	"strings"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
	"gorm.io/gorm"
)

type deliveryFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Delivery, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// SendDTO carries one outgoing chat message.
type SendDTO struct {
	DeliveryID int64  `json:"delivery_id" validate:"required,gt=0"`
	SenderID   int64  `json:"sender_id" validate:"required,gt=0"`
	ReceiverID int64  `json:"receiver_id" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required"`
}

// Service provides the per-delivery message log.
type Service struct {
	repo       Repository
	deliveries deliveryFinder
	users      userFinder
}

// NewService wires the message log dependencies.
func NewService(repo Repository, deliveries deliveryFinder, users userFinder) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "messages repository required")
	}
	if deliveries == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "deliveries repository required")
	}
	if users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	return &Service{repo: repo, deliveries: deliveries, users: users}, nil
}

// Send appends a message to the delivery's log.
func (s *Service) Send(ctx context.Context, dto SendDTO) (*models.Message, error) {
	if strings.TrimSpace(dto.Content) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message content is required")
	}
	if dto.SenderID == dto.ReceiverID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sender and receiver must differ")
	}

	if _, err := s.deliveries.FindByID(ctx, dto.DeliveryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery")
	}
	for _, id := range []int64{dto.SenderID, dto.ReceiverID} {
		if _, err := s.users.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "participant not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load participant")
		}
	}

	message := &models.Message{
		DeliveryID: dto.DeliveryID,
		SenderID:   dto.SenderID,
		ReceiverID: dto.ReceiverID,
		Content:    dto.Content,
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create message")
	}
	return message, nil
}

// ListByDelivery returns the full log, oldest first.
func (s *Service) ListByDelivery(ctx context.Context, deliveryID int64) ([]models.Message, error) {
	if deliveryID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery id required")
	}
	rows, err := s.repo.ListByDelivery(ctx, deliveryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list messages")
	}
	return rows, nil
}
