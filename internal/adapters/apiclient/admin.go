package apiclient

import (
	"context"
	"net/http"

	"github.com/target/frontdesk-console/internal/domain/model"
)

func (c *Client) ListRoles(ctx context.Context) ([]model.RoleRecord, error) {
	var roles []model.RoleRecord
	err := c.api.call(ctx, request{method: http.MethodGet, path: "/admin/roles"}, &roles, "Unable to load roles")
	return roles, err
}

func (c *Client) CreateRole(ctx context.Context, req model.CreateRoleRequest) (model.RoleRecord, error) {
	var role model.RoleRecord
	err := c.api.call(ctx, request{
		method: http.MethodPost,
		path:   "/admin/roles",
		body:   req,
	}, &role, "Unable to create role")
	return role, err
}

func (c *Client) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	var perms []model.Permission
	err := c.api.call(ctx, request{
		method: http.MethodGet,
		path:   "/admin/permissions",
	}, &perms, "Unable to load permissions")
	return perms, err
}

func (c *Client) CreatePermission(ctx context.Context, req model.CreatePermissionRequest) (model.Permission, error) {
	var perm model.Permission
	err := c.api.call(ctx, request{
		method: http.MethodPost,
		path:   "/admin/permissions",
		body:   req,
	}, &perm, "Unable to create permission")
	return perm, err
}

// RolePermissions lists the permissions granted to a role.
func (c *Client) RolePermissions(ctx context.Context, roleID string) ([]model.Permission, error) {
	var perms []model.Permission
	err := c.api.call(ctx, request{
		method: http.MethodGet,
		path:   "/admin/roles/" + escapeID(roleID) + "/permissions",
	}, &perms, "Unable to load role permissions")
	return perms, err
}

func (c *Client) AssignPermissionsToRole(ctx context.Context, req model.AssignPermissionsRequest) error {
	return c.api.call(ctx, request{
		method: http.MethodPost,
		path:   "/admin/roles/" + escapeID(req.RoleID) + "/permissions",
		body:   req,
	}, nil, "Unable to assign permissions")
}

func (c *Client) AssignRolesToUser(ctx context.Context, req model.AssignRolesRequest) error {
	return c.api.call(ctx, request{
		method: http.MethodPost,
		path:   "/admin/users/" + escapeID(req.UserID) + "/roles",
		body:   req,
	}, nil, "Unable to assign roles")
}
