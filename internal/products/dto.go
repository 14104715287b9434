package products

import (
	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// CreateProductDTO holds the fields needed to add a catalogue entry.
type CreateProductDTO struct {
	MerchantID  int64           `json:"merchant_id" validate:"required,gt=0"`
	Name        string          `json:"name" validate:"required"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Available   *bool           `json:"available,omitempty"`
}

// UpdateProductDTO is a patch; nil fields are left untouched.
type UpdateProductDTO struct {
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Description *string          `json:"description,omitempty"`
	Available   *bool            `json:"available,omitempty"`
}

func (u UpdateProductDTO) changes() map[string]any {
	changes := map[string]any{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.Category != nil {
		changes["category"] = *u.Category
	}
	if u.Price != nil {
		changes["price"] = *u.Price
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.Available != nil {
		changes["available"] = *u.Available
	}
	return changes
}

// ListParams filters and orders catalogue queries. An empty SortBy sorts
// by name.
type ListParams struct {
	MerchantID    *int64
	Category      *string
	Search        string
	AvailableOnly bool
	SortBy        string
	SortDesc      bool
}

func (c CreateProductDTO) toModel() *models.Product {
	available := true
	if c.Available != nil {
		available = *c.Available
	}
	return &models.Product{
		MerchantID:  c.MerchantID,
		Name:        c.Name,
		Category:    c.Category,
		Price:       c.Price,
		Description: c.Description,
		Available:   available,
	}
}
