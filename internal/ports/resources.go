package ports

import (
	"context"

	"github.com/target/frontdesk-console/internal/domain/model"
)

// FrontOfficeAPI covers the visitor and phone-call logs.
type FrontOfficeAPI interface {
	ListVisitors(ctx context.Context, opts model.VisitorListOptions) (model.Page[model.Visitor], error)
	GetVisitor(ctx context.Context, id string) (model.Visitor, error)
	CreateVisitor(ctx context.Context, req model.CreateVisitorRequest) (model.Visitor, error)
	CheckoutVisitor(ctx context.Context, id string, req model.CheckoutVisitorRequest) (model.Visitor, error)

	ListPhoneCalls(ctx context.Context, opts model.PhoneCallListOptions) (model.Page[model.PhoneCall], error)
	GetPhoneCall(ctx context.Context, id string) (model.PhoneCall, error)
	CreatePhoneCall(ctx context.Context, req model.CreatePhoneCallRequest) (model.PhoneCall, error)
}

// AcademicYearAPI covers academic-year settings.
type AcademicYearAPI interface {
	ListAcademicYears(ctx context.Context) ([]model.AcademicYear, error)
	CreateAcademicYear(ctx context.Context, req model.CreateAcademicYearRequest) (model.AcademicYear, error)
	UpdateAcademicYear(ctx context.Context, id string, req model.UpdateAcademicYearRequest) (model.AcademicYear, error)
	DeleteAcademicYear(ctx context.Context, id string) error
	MakeCurrentAcademicYear(ctx context.Context, id string) (model.AcademicYear, error)
}

// AdminAPI covers role and permission lookups and assignments.
type AdminAPI interface {
	ListRoles(ctx context.Context) ([]model.RoleRecord, error)
	CreateRole(ctx context.Context, req model.CreateRoleRequest) (model.RoleRecord, error)
	ListPermissions(ctx context.Context) ([]model.Permission, error)
	CreatePermission(ctx context.Context, req model.CreatePermissionRequest) (model.Permission, error)
	RolePermissions(ctx context.Context, roleID string) ([]model.Permission, error)
	AssignPermissionsToRole(ctx context.Context, req model.AssignPermissionsRequest) error
	AssignRolesToUser(ctx context.Context, req model.AssignRolesRequest) error
}

// AccountAPI covers the account endpoints that never touch the session.
type AccountAPI interface {
	Register(ctx context.Context, req model.SignUpRequest) error
	ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error
}
