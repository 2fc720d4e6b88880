package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
	"github.com/target/frontdesk-console/internal/ports"
	"github.com/target/frontdesk-console/internal/session"
)

// HeaderRequestID carries the request correlation id in both directions.
const HeaderRequestID = "X-Request-Id"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", RequestIDFromContext(r.Context())),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type requestIDKey struct{}

// RequestID tags every request with a correlation id, reusing a well-formed inbound one.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, id)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequireSession gates a handler on the shared session.
// While hydration runs the caller gets a neutral 503 so that neither the protected content nor the
// login page flashes; anonymous browsers are sent to the login page and API callers get 401.
func RequireSession(reader ports.SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := guardRequest(w, r, reader)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), s)))
		})
	}
}

// RequireRole behaves like RequireSession and additionally requires one of roles.
// Super admins always pass.
func RequireRole(reader ports.SessionReader, roles ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := guardRequest(w, r, reader)
			if !ok {
				return
			}

			if !hasRequiredRole(*s.Identity, roles) {
				if IsBrowserRequest(r) {
					showAccessDenied(w, r)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), s)))
		})
	}
}

// guardRequest applies the access decision for one request and writes the response for every
// outcome except render.
func guardRequest(w http.ResponseWriter, r *http.Request, reader ports.SessionReader) (domainauth.Session, bool) {
	s := reader.Snapshot()
	switch session.Guard(s) {
	case session.DecisionRender:
		return s, true
	case session.DecisionPlaceholder:
		writePlaceholder(w, r)
	default:
		if IsBrowserRequest(r) {
			redirectToLogin(w, r)
			break
		}
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
	}
	return domainauth.Session{}, false
}

func writePlaceholder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "1")
	w.Header().Set("Cache-Control", "no-store")
	if IsBrowserRequest(r) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("Loading…\n"))
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusServiceUnavailable,
		ErrCode: "session_loading",
		Err:     errors.New("session is loading"),
	})
}

// hasRequiredRole checks the identity against the allowed roles.
func hasRequiredRole(id domainauth.Identity, allowed []domainauth.Role) bool {
	if id.IsSuperAdmin {
		return true
	}
	return slices.Contains(allowed, id.Role)
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection returns a middleware that detects browser requests vs API requests.
// It sets a context value that can be used by downstream handlers to determine
// whether to return HTML or JSON responses.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isBrowser := isBrowserRequest(r)
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if val := r.Context().Value(browserRequestKey{}); val != nil {
		if isBrowser, ok := val.(bool); ok {
			return isBrowser
		}
	}
	// Fallback to direct detection if middleware wasn't used
	return isBrowserRequest(r)
}

// machinePrefixes are route prefixes that only ever serve JSON or text to programs.
var machinePrefixes = []string{"/api/", "/auth/", "/metrics", "/healthz", "/readyz"} //nolint:gochecknoglobals // read-only

// isBrowserRequest determines if a request is from a browser based on:
// 1. Path prefix - JSON routes are never browser requests
// 2. Accept header - browsers typically accept text/html.
func isBrowserRequest(r *http.Request) bool {
	for _, p := range machinePrefixes {
		if strings.HasPrefix(r.URL.Path, p) {
			return false
		}
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		// No Accept header, assume browser for non-API routes
		return true
	}

	return strings.Contains(accept, "text/html")
}

// redirectToLogin redirects browser requests to the login page with the current URL as redirect_uri.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectParam := url.QueryEscape(safeRedirectPath(r.URL.RequestURI()))
	http.Redirect(w, r, "/login?redirect_uri="+redirectParam, http.StatusSeeOther)
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(candidate, "//") {
		return "/"
	}
	return candidate
}

// showAccessDenied shows an access denied page for browser requests.
func showAccessDenied(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "Access Denied: You don't have permission to access this resource", http.StatusForbidden)
}
