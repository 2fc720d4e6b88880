package httpx

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	frontdesk "github.com/target/frontdesk-console"
	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
	"github.com/target/frontdesk-console/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Session       SessionService
	Accounts      AccountService
	FrontOffice   *service.FrontOfficeService
	AcademicYears *service.AcademicYearService
	Admin         *service.AdminService
	Dashboard     *service.DashboardService

	// AdminRoles may use /api/admin. Super admins always can.
	AdminRoles []domainauth.Role
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
	// TemplateFS overrides the embedded templates (optional).
	TemplateFS fs.FS
	Logger     *slog.Logger
}

// NewRouter creates and configures the console router with browser detection.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Session == nil {
		return nil, errors.New("router: session service is required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS := services.TemplateFS
	if templateFS == nil {
		sub, err := fs.Sub(frontdesk.TemplateFS, "web/templates")
		if err != nil {
			return nil, fmt.Errorf("router: templates: %w", err)
		}
		templateFS = sub
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: templateFS, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	mux := http.NewServeMux()
	reader := services.Session.Reader()

	registerAuthRoutes(mux, &AuthHandlers{Svc: services.Session, Accounts: services.Accounts, Logger: logger})
	registerUIRoutes(mux, &UIHandlers{
		Session:   services.Session,
		Dashboard: services.Dashboard,
		T:         tr,
		Logger:    logger,
	})

	protected := RequireSession(reader)
	if services.FrontOffice != nil {
		registerFrontOfficeRoutes(mux, &FrontOfficeHandlers{Svc: services.FrontOffice}, protected)
	}
	if services.AcademicYears != nil {
		registerAcademicYearRoutes(mux, &AcademicYearHandlers{Svc: services.AcademicYears}, protected)
	}
	if services.Admin != nil {
		registerAdminRoutes(mux, &AdminHandlers{Svc: services.Admin}, RequireRole(reader, services.AdminRoles...))
	}
	if services.Dashboard != nil {
		mux.Handle("GET /api/dashboard", protected(http.HandlerFunc((&DashboardHandlers{Svc: services.Dashboard}).Summary)))
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyHandler(reader))
	if services.Metrics != nil {
		mux.Handle("GET /metrics", services.Metrics)
	}

	return BrowserDetection()(mux), nil
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
	mux.HandleFunc("POST /auth/refresh", h.Refresh)
	if h.Accounts != nil {
		mux.HandleFunc("POST /auth/signup", h.Register)
		mux.HandleFunc("POST /auth/forgot-password", h.ForgotPassword)
		mux.HandleFunc("POST /auth/reset-password", h.ResetPassword)
	}
}

// registerUIRoutes mounts the HTML pages. Every form route carries CSRF protection.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers) {
	csrf := CSRFProtection(CSRFConfig{})
	reader := h.Session.Reader()

	mux.Handle("GET /login", csrf(http.HandlerFunc(h.LoginPage)))
	mux.Handle("POST /login", csrf(http.HandlerFunc(h.LoginSubmit)))
	mux.Handle("POST /logout", csrf(http.HandlerFunc(h.LogoutSubmit)))
	mux.Handle("GET /{$}", RequireSession(reader)(csrf(http.HandlerFunc(h.Home))))
}

func registerFrontOfficeRoutes(mux *http.ServeMux, h *FrontOfficeHandlers, wrap func(http.Handler) http.Handler) {
	mux.Handle("GET /api/visitors", wrap(http.HandlerFunc(h.ListVisitors)))
	mux.Handle("POST /api/visitors", wrap(http.HandlerFunc(h.CreateVisitor)))
	mux.Handle("GET /api/visitors/{id}", wrap(http.HandlerFunc(h.GetVisitor)))
	mux.Handle("PATCH /api/visitors/{id}/checkout", wrap(http.HandlerFunc(h.CheckoutVisitor)))

	mux.Handle("GET /api/phone-calls", wrap(http.HandlerFunc(h.ListPhoneCalls)))
	mux.Handle("POST /api/phone-calls", wrap(http.HandlerFunc(h.CreatePhoneCall)))
	mux.Handle("GET /api/phone-calls/{id}", wrap(http.HandlerFunc(h.GetPhoneCall)))
}

func registerAcademicYearRoutes(mux *http.ServeMux, h *AcademicYearHandlers, wrap func(http.Handler) http.Handler) {
	mux.Handle("GET /api/academic-years", wrap(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/academic-years", wrap(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/academic-years/current", wrap(http.HandlerFunc(h.Current)))
	mux.Handle("PATCH /api/academic-years/{id}", wrap(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/academic-years/{id}", wrap(http.HandlerFunc(h.Delete)))
	mux.Handle("POST /api/academic-years/{id}/make-current", wrap(http.HandlerFunc(h.MakeCurrent)))
}

func registerAdminRoutes(mux *http.ServeMux, h *AdminHandlers, wrap func(http.Handler) http.Handler) {
	mux.Handle("GET /api/admin/roles", wrap(http.HandlerFunc(h.ListRoles)))
	mux.Handle("POST /api/admin/roles", wrap(http.HandlerFunc(h.CreateRole)))
	mux.Handle("GET /api/admin/permissions", wrap(http.HandlerFunc(h.ListPermissions)))
	mux.Handle("POST /api/admin/permissions", wrap(http.HandlerFunc(h.CreatePermission)))
	mux.Handle("GET /api/admin/roles/{id}/permissions", wrap(http.HandlerFunc(h.RolePermissions)))
	mux.Handle("POST /api/admin/roles/{id}/permissions", wrap(http.HandlerFunc(h.AssignPermissions)))
	mux.Handle("POST /api/admin/users/{id}/roles", wrap(http.HandlerFunc(h.AssignRoles)))
}
