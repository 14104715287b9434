package users

import (
	"time"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         enums.Role      `json:"role"`
	Phone        string          `json:"phone,omitempty"`
	Earnings     decimal.Decimal `json:"earnings"`
	BusinessName *string         `json:"business_name,omitempty"`
	Address      *string         `json:"address,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Role         enums.Role
	Phone        string
	BusinessName *string
	Address      *string
}

// UpdateUserDTO is a patch; nil fields are left untouched.
type UpdateUserDTO struct {
	Name         *string
	Phone        *string
	BusinessName *string
	Address      *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Phone:        u.Phone,
		Earnings:     u.Earnings,
		BusinessName: u.BusinessName,
		Address:      u.Address,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		Phone:        c.Phone,
		Earnings:     decimal.Zero,
		BusinessName: c.BusinessName,
		Address:      c.Address,
	}
}

func (u UpdateUserDTO) changes() map[string]any {
	changes := map[string]any{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.Phone != nil {
		changes["phone"] = *u.Phone
	}
	if u.BusinessName != nil {
		changes["business_name"] = *u.BusinessName
	}
	if u.Address != nil {
		changes["address"] = *u.Address
	}
	return changes
}
