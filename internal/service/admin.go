package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/target/frontdesk-console/internal/domain/model"
	"github.com/target/frontdesk-console/internal/ports"
)

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	API ports.AdminAPI
}

// AdminService wraps role and permission lookups and assignments.
type AdminService struct {
	api      ports.AdminAPI
	validate *validator.Validate
}

// NewAdminService constructs a new AdminService.
func NewAdminService(opts AdminServiceOptions) *AdminService {
	if opts.API == nil {
		panic("admin API is required")
	}
	return &AdminService{api: opts.API, validate: newValidator()}
}

func (s *AdminService) ListRoles(ctx context.Context) ([]model.RoleRecord, error) {
	return s.api.ListRoles(ctx)
}

func (s *AdminService) CreateRole(ctx context.Context, req model.CreateRoleRequest) (model.RoleRecord, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return model.RoleRecord{}, err
	}
	return s.api.CreateRole(ctx, req)
}

func (s *AdminService) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	return s.api.ListPermissions(ctx)
}

func (s *AdminService) CreatePermission(
	ctx context.Context,
	req model.CreatePermissionRequest,
) (model.Permission, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return model.Permission{}, err
	}
	return s.api.CreatePermission(ctx, req)
}

func (s *AdminService) RolePermissions(ctx context.Context, roleID string) ([]model.Permission, error) {
	if err := requireID(roleID, "roleId"); err != nil {
		return nil, err
	}
	return s.api.RolePermissions(ctx, roleID)
}

func (s *AdminService) AssignPermissionsToRole(ctx context.Context, req model.AssignPermissionsRequest) error {
	if err := validateRequest(s.validate, req); err != nil {
		return err
	}
	return s.api.AssignPermissionsToRole(ctx, req)
}

func (s *AdminService) AssignRolesToUser(ctx context.Context, req model.AssignRolesRequest) error {
	if err := validateRequest(s.validate, req); err != nil {
		return err
	}
	return s.api.AssignRolesToUser(ctx, req)
}
