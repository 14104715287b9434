package products

import (
	"context"
	"errors"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
	"gorm.io/gorm"
)

type userFinder interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// Service manages merchant catalogues.
type Service struct {
	repo  Repository
	users userFinder
}

// NewService wires the catalogue dependencies.
func NewService(repo Repository, users userFinder) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "products repository required")
	}
	if users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	return &Service{repo: repo, users: users}, nil
}

// Create adds a catalogue entry for a merchant.
func (s *Service) Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error) {
	if dto.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if dto.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	owner, err := s.users.FindByID(ctx, dto.MerchantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "merchant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load merchant")
	}
	if owner.Role != enums.RoleMerchant {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "products can only belong to merchants")
	}

	product := dto.toModel()
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return product, nil
}

// Get returns one catalogue entry.
func (s *Service) Get(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// List filters the catalogue by merchant, category, and free-text search,
// sorted by one of name, price, or created_at.
func (s *Service) List(ctx context.Context, params ListParams) ([]models.Product, error) {
	if params.SortBy != "" {
		if _, ok := productSortColumns[params.SortBy]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort key").
				WithDetails(map[string]any{"field": "sort", "supported": []string{"name", "price", "created_at"}})
		}
	}
	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, nil
}

// Update patches a catalogue entry.
func (s *Service) Update(ctx context.Context, id int64, dto UpdateProductDTO) (*models.Product, error) {
	if dto.Name != nil && *dto.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
	}
	if dto.Price != nil && dto.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	rows, err := s.repo.Update(ctx, id, dto.changes())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	if rows == 0 {
		// either a no-op patch or a missing row; Get disambiguates
		return s.Get(ctx, id)
	}
	return s.Get(ctx, id)
}

// SetAvailability toggles whether a product can be ordered.
func (s *Service) SetAvailability(ctx context.Context, id int64, available bool) (*models.Product, error) {
	return s.Update(ctx, id, UpdateProductDTO{Available: &available})
}

// Delete removes a catalogue entry.
func (s *Service) Delete(ctx context.Context, id int64) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
