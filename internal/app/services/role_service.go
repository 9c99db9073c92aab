package services

import (
	"context"
	"strings"

	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/app/models/dto"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
)

// RoleService handles role operations
type RoleService struct {
	roles RoleStore
}

// NewRoleService creates a new RoleService
func NewRoleService(roles RoleStore) *RoleService {
	return &RoleService{roles: roles}
}

// roleFromRequest validates a request; role codes are stored upper-case
func roleFromRequest(req *dto.RoleRequest) (*models.Role, error) {
	role := &models.Role{
		Name: strings.TrimSpace(req.RoleName),
		Code: strings.ToUpper(strings.TrimSpace(req.RoleCode)),
	}
	if role.Name == "" {
		return nil, apperrors.NewValidationError("role_name is required")
	}
	if role.Code == "" {
		return nil, apperrors.NewValidationError("role_code is required")
	}
	return role, nil
}

// List returns every role
func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	return s.roles.List(ctx)
}

// GetByID returns one role
func (s *RoleService) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	return s.roles.GetByID(ctx, id)
}

// Create adds a role and returns its ID
func (s *RoleService) Create(ctx context.Context, req *dto.RoleRequest) (int64, error) {
	role, err := roleFromRequest(req)
	if err != nil {
		return 0, err
	}
	return s.roles.Create(ctx, role)
}

// Update replaces a role
func (s *RoleService) Update(ctx context.Context, id int64, req *dto.RoleRequest) error {
	role, err := roleFromRequest(req)
	if err != nil {
		return err
	}
	role.ID = id
	return s.roles.Update(ctx, role)
}

// Delete removes a role
func (s *RoleService) Delete(ctx context.Context, id int64) error {
	return s.roles.Delete(ctx, id)
}
