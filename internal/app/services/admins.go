package services

import (
	"context"
	"fmt"

	"github.com/classlens/admin-panel/internal/app/models"
	"github.com/classlens/admin-panel/internal/app/models/dto"
	"github.com/classlens/admin-panel/internal/classlens"
	"github.com/classlens/admin-panel/internal/pkg/apperrors"
)

// AdminUserForm is the admin-user create/update form.
type AdminUserForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password"`
	IsActive bool   `form:"is_active"`
}

// AdminUserService handles admin-user page operations.
type AdminUserService struct {
	api *classlens.Client
}

// NewAdminUserService creates a new admin-user service instance.
func NewAdminUserService(api *classlens.Client) *AdminUserService {
	return &AdminUserService{api: api}
}

// List fetches the admin-user list and applies the search filter.
func (s *AdminUserService) List(ctx context.Context, token, query string) ([]models.AdminUser, []models.AdminUser, error) {
	admins, err := s.api.AdminUsers(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return admins, FilterAdminUsers(admins, query), nil
}

// Get fetches a single admin user for the edit form.
func (s *AdminUserService) Get(ctx context.Context, token, id string) (models.AdminUser, error) {
	return s.api.AdminUser(ctx, token, id)
}

// Save creates the admin user when id is empty and updates it otherwise.
// A blank password on update leaves the stored one unchanged; on create
// the password is required.
func (s *AdminUserService) Save(ctx context.Context, token, id string, form AdminUserForm) error {
	isUpdate := id != ""
	if !isUpdate && form.Password == "" {
		return fmt.Errorf("%w: password is required", apperrors.ErrValidationFailed)
	}
	payload := dto.AdminUserPayload(form.Username, form.Password, form.IsActive, isUpdate)
	if !isUpdate {
		return s.api.CreateAdminUser(ctx, token, payload)
	}
	return s.api.UpdateAdminUser(ctx, token, id, payload)
}

// Delete removes an admin user.
func (s *AdminUserService) Delete(ctx context.Context, token, id string) error {
	return s.api.Delete(ctx, token, classlens.ResourceAdminUsers, id)
}
