package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"
	"github.com/target/frontdesk-console/config"
	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
	"github.com/target/frontdesk-console/internal/domain/model"
	authmocks "github.com/target/frontdesk-console/internal/mocks/auth"
	"github.com/target/frontdesk-console/internal/observability/metrics"
	"github.com/target/frontdesk-console/internal/ports"
	"github.com/target/frontdesk-console/internal/service"
	"github.com/target/frontdesk-console/internal/session"
)

// consoleFixture wires the router over a real coordinator with in-memory doubles.
type consoleFixture struct {
	gateway  *authmocks.FakeGateway
	tokens   *authmocks.MemoryTokenStore
	store    *session.Store
	coord    *service.SessionCoordinator
	registry *prometheus.Registry

	frontOffice *stubFrontOffice
	years       *stubAcademicYears
	admin       *stubAdmin
	accounts    *stubAccounts

	handler http.Handler
}

type fixtureOption func(*consoleFixture)

func withStoredToken(token string) fixtureOption {
	return func(f *consoleFixture) { f.tokens = authmocks.NewMemoryTokenStore(token) }
}

func newConsoleFixture(t *testing.T, opts ...fixtureOption) *consoleFixture {
	t.Helper()
	f := &consoleFixture{
		gateway:     authmocks.NewFakeGateway(),
		tokens:      authmocks.NewMemoryTokenStore(""),
		store:       session.NewStore(),
		registry:    prometheus.NewRegistry(),
		frontOffice: &stubFrontOffice{},
		years:       &stubAcademicYears{},
		admin:       &stubAdmin{},
		accounts:    &stubAccounts{},
	}
	for _, opt := range opts {
		opt(f)
	}

	coord, err := service.NewSessionCoordinator(service.SessionCoordinatorOptions{
		Gateway: f.gateway,
		Tokens:  f.tokens,
		Store:   f.store,
		Policy:  config.CredentialPolicyKeep,
		Metrics: metrics.NewSessionMetrics(f.registry),
	})
	require.NoError(t, err)
	f.coord = coord

	frontOffice := service.NewFrontOfficeService(service.FrontOfficeServiceOptions{API: f.frontOffice})
	years := service.NewAcademicYearService(service.AcademicYearServiceOptions{API: f.years})
	handler, err := NewRouter(RouterServices{
		Session:       coord,
		Accounts:      service.NewAccountService(service.AccountServiceOptions{API: f.accounts}),
		FrontOffice:   frontOffice,
		AcademicYears: years,
		Admin:         service.NewAdminService(service.AdminServiceOptions{API: f.admin}),
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			FrontOffice:  frontOffice,
			AcademicYear: years,
		}),
		AdminRoles: []domainauth.Role{"Admin"},
		Metrics:    promhttp.HandlerFor(f.registry, promhttp.HandlerOpts{}),
	})
	require.NoError(t, err)
	f.handler = handler
	return f
}

func (f *consoleFixture) hydrate(t *testing.T) {
	t.Helper()
	require.NoError(t, f.coord.Hydrate(context.Background()))
}

// signIn hydrates an empty store and logs in as the gateway's default identity.
func (f *consoleFixture) signIn(t *testing.T) {
	t.Helper()
	f.hydrate(t)
	res := f.coord.Login(context.Background(), "admin", "secret")
	require.True(t, res.Success, res.Error)
}

func (f *consoleFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req
}

func browserRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	return req
}

// formRequest builds a browser form post carrying a matching CSRF cookie and field.
func formRequest(target string, form url.Values) *http.Request {
	const token = "test-csrf-token"
	form.Set(DefaultCSRFFormField, token)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
	return req
}

func authenticatedSession(role domainauth.Role) domainauth.Session {
	return domainauth.Session{
		Token: "t1",
		Phase: domainauth.PhaseIdle,
		Identity: &domainauth.Identity{
			ID:          "u1",
			Username:    "dev",
			FirstName:   "Dev",
			LastName:    "User",
			Role:        role,
			Permissions: domainauth.NewPermissionSet(),
		},
	}
}

type stubFrontOffice struct {
	ports.FrontOfficeAPI

	mu              sync.Mutex
	visitorOpts     []model.VisitorListOptions
	createdCalls    []model.CreatePhoneCallRequest
	visitorTotal    int
	phoneCallTotal  int
	getVisitorErr   error
	listVisitorsErr error
}

func (s *stubFrontOffice) ListVisitors(_ context.Context, opts model.VisitorListOptions) (model.Page[model.Visitor], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visitorOpts = append(s.visitorOpts, opts)
	if s.listVisitorsErr != nil {
		return model.Page[model.Visitor]{}, s.listVisitorsErr
	}
	return model.Page[model.Visitor]{
		Content: []model.Visitor{{ID: "v1", VisitorName: "Ann Parent", Purpose: "Meeting"}},
		Page:    model.PageInfo{Page: opts.Page, Size: opts.Size, TotalElements: s.visitorTotal, TotalPages: 1},
	}, nil
}

func (s *stubFrontOffice) GetVisitor(_ context.Context, id string) (model.Visitor, error) {
	if s.getVisitorErr != nil {
		return model.Visitor{}, s.getVisitorErr
	}
	return model.Visitor{ID: id, VisitorName: "Ann Parent"}, nil
}

func (s *stubFrontOffice) CreateVisitor(_ context.Context, req model.CreateVisitorRequest) (model.Visitor, error) {
	return model.Visitor{ID: "v2", VisitorName: req.VisitorName, Purpose: req.Purpose}, nil
}

func (s *stubFrontOffice) ListPhoneCalls(
	_ context.Context,
	opts model.PhoneCallListOptions,
) (model.Page[model.PhoneCall], error) {
	return model.Page[model.PhoneCall]{
		Page: model.PageInfo{Page: opts.Page, Size: opts.Size, TotalElements: s.phoneCallTotal},
	}, nil
}

func (s *stubFrontOffice) CreatePhoneCall(_ context.Context, req model.CreatePhoneCallRequest) (model.PhoneCall, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createdCalls = append(s.createdCalls, req)
	return model.PhoneCall{ID: "c1", CallerName: req.CallerName, CallType: req.CallType}, nil
}

func (s *stubFrontOffice) listedVisitorOptions() []model.VisitorListOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.VisitorListOptions(nil), s.visitorOpts...)
}

type stubAcademicYears struct {
	ports.AcademicYearAPI

	years   []model.AcademicYear
	deleted []string
	updates int
}

func (s *stubAcademicYears) ListAcademicYears(context.Context) ([]model.AcademicYear, error) {
	return s.years, nil
}

func (s *stubAcademicYears) UpdateAcademicYear(
	_ context.Context,
	id string,
	req model.UpdateAcademicYearRequest,
) (model.AcademicYear, error) {
	s.updates++
	year := model.AcademicYear{ID: id}
	if req.Name != nil {
		year.Name = *req.Name
	}
	return year, nil
}

func (s *stubAcademicYears) DeleteAcademicYear(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubAcademicYears) MakeCurrentAcademicYear(_ context.Context, id string) (model.AcademicYear, error) {
	return model.AcademicYear{ID: id, IsCurrent: true}, nil
}

type stubAdmin struct {
	ports.AdminAPI

	roleAssignments []model.AssignRolesRequest
}

func (s *stubAdmin) ListRoles(context.Context) ([]model.RoleRecord, error) {
	return []model.RoleRecord{{ID: "r1", Name: "Admin"}}, nil
}

func (s *stubAdmin) AssignRolesToUser(_ context.Context, req model.AssignRolesRequest) error {
	s.roleAssignments = append(s.roleAssignments, req)
	return nil
}

type stubAccounts struct {
	registered []model.SignUpRequest
	forgotten  []string
}

func (s *stubAccounts) Register(_ context.Context, req model.SignUpRequest) error {
	s.registered = append(s.registered, req)
	return nil
}

func (s *stubAccounts) ForgotPassword(_ context.Context, req model.ForgotPasswordRequest) error {
	s.forgotten = append(s.forgotten, req.Email)
	return nil
}

func (s *stubAccounts) ResetPassword(context.Context, model.ResetPasswordRequest) error {
	return nil
}
