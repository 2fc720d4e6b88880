package httpx

import (
	"net/http"

	"github.com/target/frontdesk-console/internal/domain/model"
	"github.com/target/frontdesk-console/internal/service"
)

// FrontOfficeHandlers serves the visitor and phone-call logs.
type FrontOfficeHandlers struct {
	Svc *service.FrontOfficeService
}

// ListVisitors handles GET /api/visitors.
func (h *FrontOfficeHandlers) ListVisitors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.Svc.ListVisitors(r.Context(), model.VisitorListOptions{
		PageRequest: pageRequestFromQuery(r),
		Search:      q.Get("search"),
		Purpose:     q.Get("purpose"),
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// GetVisitor handles GET /api/visitors/{id}.
func (h *FrontOfficeHandlers) GetVisitor(w http.ResponseWriter, r *http.Request) {
	v, err := h.Svc.GetVisitor(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, v)
}

// CreateVisitor handles POST /api/visitors.
func (h *FrontOfficeHandlers) CreateVisitor(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVisitorRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	v, err := h.Svc.CreateVisitor(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, v)
}

// CheckoutVisitor handles PATCH /api/visitors/{id}/checkout.
func (h *FrontOfficeHandlers) CheckoutVisitor(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutVisitorRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	v, err := h.Svc.CheckoutVisitor(r.Context(), r.PathValue("id"), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, v)
}

// ListPhoneCalls handles GET /api/phone-calls.
func (h *FrontOfficeHandlers) ListPhoneCalls(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.Svc.ListPhoneCalls(r.Context(), model.PhoneCallListOptions{
		PageRequest: pageRequestFromQuery(r),
		Search:      q.Get("search"),
		CallType:    model.CallType(q.Get("callType")),
		FromDate:    q.Get("fromDate"),
		ToDate:      q.Get("toDate"),
		Sort:        q.Get("sort"),
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

// GetPhoneCall handles GET /api/phone-calls/{id}.
func (h *FrontOfficeHandlers) GetPhoneCall(w http.ResponseWriter, r *http.Request) {
	c, err := h.Svc.GetPhoneCall(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

// CreatePhoneCall handles POST /api/phone-calls.
func (h *FrontOfficeHandlers) CreatePhoneCall(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePhoneCallRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	c, err := h.Svc.CreatePhoneCall(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, c)
}

// AcademicYearHandlers serves academic-year settings.
type AcademicYearHandlers struct {
	Svc *service.AcademicYearService
}

// List handles GET /api/academic-years.
func (h *AcademicYearHandlers) List(w http.ResponseWriter, r *http.Request) {
	years, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, years)
}

// Current handles GET /api/academic-years/current.
func (h *AcademicYearHandlers) Current(w http.ResponseWriter, r *http.Request) {
	year, err := h.Svc.Current(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, year)
}

// Create handles POST /api/academic-years.
func (h *AcademicYearHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAcademicYearRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	year, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, year)
}

// Update handles PATCH /api/academic-years/{id}.
func (h *AcademicYearHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateAcademicYearRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	year, err := h.Svc.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, year)
}

// Delete handles DELETE /api/academic-years/{id}.
func (h *AcademicYearHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MakeCurrent handles POST /api/academic-years/{id}/make-current.
func (h *AcademicYearHandlers) MakeCurrent(w http.ResponseWriter, r *http.Request) {
	year, err := h.Svc.MakeCurrent(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, year)
}

// AdminHandlers serves role and permission lookups and assignments.
type AdminHandlers struct {
	Svc *service.AdminService
}

// ListRoles handles GET /api/admin/roles.
func (h *AdminHandlers) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Svc.ListRoles(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, roles)
}

// CreateRole handles POST /api/admin/roles.
func (h *AdminHandlers) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRoleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	role, err := h.Svc.CreateRole(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, role)
}

// ListPermissions handles GET /api/admin/permissions.
func (h *AdminHandlers) ListPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.Svc.ListPermissions(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, perms)
}

// CreatePermission handles POST /api/admin/permissions.
func (h *AdminHandlers) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePermissionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	perm, err := h.Svc.CreatePermission(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, perm)
}

// RolePermissions handles GET /api/admin/roles/{id}/permissions.
func (h *AdminHandlers) RolePermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.Svc.RolePermissions(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, perms)
}

// AssignPermissions handles POST /api/admin/roles/{id}/permissions.
func (h *AdminHandlers) AssignPermissions(w http.ResponseWriter, r *http.Request) {
	var req model.AssignPermissionsRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.RoleID = r.PathValue("id")
	if err := h.Svc.AssignPermissionsToRole(r.Context(), req); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignRoles handles POST /api/admin/users/{id}/roles.
func (h *AdminHandlers) AssignRoles(w http.ResponseWriter, r *http.Request) {
	var req model.AssignRolesRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.UserID = r.PathValue("id")
	if err := h.Svc.AssignRolesToUser(r.Context(), req); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DashboardHandlers serves the landing-page summary.
type DashboardHandlers struct {
	Svc *service.DashboardService
}

// Summary handles GET /api/dashboard.
func (h *DashboardHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Svc.Summary(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}
