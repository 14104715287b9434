package events

import (
	"context"
	"errors"
	"strings"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
	"gorm.io/gorm"
)

// CreateCategoryDTO names a new calendar category.
type CreateCategoryDTO struct {
	Name string `json:"name" validate:"required"`
}

// UpdateCategoryDTO renames a category; the id never changes.
type UpdateCategoryDTO struct {
	Name *string `json:"name,omitempty"`
}

// CreateCategory adds a calendar category. Names are unique.
func (s *Service) CreateCategory(ctx context.Context, dto CreateCategoryDTO) (*models.Category, error) {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	if _, err := s.repo.FindCategoryByName(ctx, name); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category name")
	}

	category := &models.Category{Name: name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return category, nil
}

// GetCategory returns one category.
func (s *Service) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

// ListCategories returns all categories ordered by name.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

// UpdateCategory renames a category. Events that reference the old name keep
// it; category names are labels, not foreign keys.
func (s *Service) UpdateCategory(ctx context.Context, id int64, dto UpdateCategoryDTO) (*models.Category, error) {
	changes := map[string]any{}
	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name cannot be empty")
		}
		if existing, err := s.repo.FindCategoryByName(ctx, name); err == nil {
			if existing.ID != id {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category name")
		}
		changes["name"] = name
	}

	category, err := s.repo.UpdateCategory(ctx, id, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return category, nil
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	rows, err := s.repo.DeleteCategory(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return nil
}
