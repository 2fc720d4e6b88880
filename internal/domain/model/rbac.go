//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// RoleRecord is a role as managed by the admin API.
type RoleRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Permission is a permission code grouped by module.
type Permission struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Module      string `json:"module"`
	Description string `json:"description,omitempty"`
}

type CreateRoleRequest struct {
	Name        string `json:"name"                  validate:"required"`
	Description string `json:"description,omitempty"`
}

type CreatePermissionRequest struct {
	Code        string `json:"code"                  validate:"required"`
	Module      string `json:"module"                validate:"required"`
	Description string `json:"description,omitempty"`
}

// AssignRolesRequest replaces the roles of a user.
type AssignRolesRequest struct {
	UserID  string   `json:"-"       validate:"required"`
	RoleIDs []string `json:"roleIds" validate:"required,min=1,dive,required"`
}

// AssignPermissionsRequest replaces the permissions of a role.
type AssignPermissionsRequest struct {
	RoleID        string   `json:"-"             validate:"required"`
	PermissionIDs []string `json:"permissionIds" validate:"required,min=1,dive,required"`
}
