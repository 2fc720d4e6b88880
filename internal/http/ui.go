package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
	"github.com/target/frontdesk-console/internal/service"
	"github.com/target/frontdesk-console/internal/session"
)

// UIHandlers serves the login page and the signed-in landing page.
type UIHandlers struct {
	Session   SessionService
	Dashboard *service.DashboardService // optional
	T         *TemplateRenderer
	Logger    *slog.Logger
}

type pageData struct {
	Title       string
	CSRFToken   string
	RedirectURI string
	Username    string
	Error       string
	User        *domainauth.Identity
	Summary     *service.DashboardSummary
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage handles GET /login. A signed-in operator is sent straight on.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	switch session.Guard(h.Session.Reader().Snapshot()) {
	case session.DecisionPlaceholder:
		writePlaceholder(w, r)
		return
	case session.DecisionRender:
		http.Redirect(w, r, redirectURI, http.StatusSeeOther)
		return
	case session.DecisionRedirect:
	}

	_ = h.T.Render(w, http.StatusOK, "login", pageData{
		Title:       "Sign in",
		CSRFToken:   GetCSRFToken(r),
		RedirectURI: redirectURI,
	})
}

// LoginSubmit handles POST /login from the login form.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	redirectURI := safeRedirectPath(r.PostFormValue("redirect_uri"))
	username := r.PostFormValue("username")

	res := h.Session.Login(r.Context(), username, r.PostFormValue("password"))
	if res.Success {
		http.Redirect(w, r, redirectURI, http.StatusSeeOther)
		return
	}

	_ = h.T.Render(w, loginFailureStatus(res.Err), "login", pageData{
		Title:       "Sign in",
		CSRFToken:   GetCSRFToken(r),
		RedirectURI: redirectURI,
		Username:    username,
		Error:       res.Error,
	})
}

// LogoutSubmit handles POST /logout from the landing page.
func (h *UIHandlers) LogoutSubmit(w http.ResponseWriter, r *http.Request) {
	h.Session.Logout(r.Context())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Home handles GET /. It sits behind RequireSession.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:     "Front Desk",
		CSRFToken: GetCSRFToken(r),
		User:      IdentityFromContext(r.Context()),
	}
	if h.Dashboard != nil {
		summary, err := h.Dashboard.Summary(r.Context())
		if err != nil {
			h.logger().WarnContext(r.Context(), "dashboard summary unavailable", "error", err)
		} else {
			data.Summary = &summary
		}
	}

	_ = h.T.Render(w, http.StatusOK, "home", data)
}
