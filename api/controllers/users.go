package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/avelara/dispatchly-backend/api/middleware"
	"github.com/avelara/dispatchly-backend/api/responses"
	"github.com/avelara/dispatchly-backend/api/validators"
	"github.com/avelara/dispatchly-backend/internal/users"
	"github.com/avelara/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
	"github.com/avelara/dispatchly-backend/pkg/logger"
	"gorm.io/gorm"
)

// GetProfile returns the authenticated user's own record.
func GetProfile(repo *users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := repo.FindByID(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "user not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user"))
			return
		}
		responses.WriteSuccess(w, users.FromModel(user))
	}
}

type updateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	BusinessName *string `json:"business_name,omitempty"`
	Address      *string `json:"address,omitempty"`
}

// UpdateProfile patches the authenticated user's own record.
func UpdateProfile(repo *users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body updateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty"))
			return
		}

		user, err := repo.Update(r.Context(), middleware.UserIDFromContext(r.Context()), users.UpdateUserDTO{
			Name:         body.Name,
			Phone:        body.Phone,
			BusinessName: body.BusinessName,
			Address:      body.Address,
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "user not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user"))
			return
		}
		responses.WriteSuccess(w, users.FromModel(user))
	}
}

// ListDrivers returns every driver account, for merchant assignment flows.
func ListDrivers(repo *users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := repo.ListByRole(r.Context(), enums.RoleDriver)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drivers"))
			return
		}

		result := make([]*users.UserDTO, 0, len(rows))
		for i := range rows {
			result = append(result, users.FromModel(&rows[i]))
		}
		responses.WriteSuccess(w, result)
	}
}
