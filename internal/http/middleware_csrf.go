package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

const (
	// DefaultCSRFCookieName is the default name for the CSRF cookie.
	DefaultCSRFCookieName = "frontdesk_csrf"
	// DefaultCSRFFormField is the form field the login and logout forms submit the token in.
	DefaultCSRFFormField = "csrf_token"
	// DefaultCSRFTokenLength is the default length of the CSRF token in bytes.
	DefaultCSRFTokenLength = 32
)

// CSRFConfig holds configuration for CSRF protection middleware.
type CSRFConfig struct {
	CookieName    string
	FormFieldName string
	TokenLength   int
}

// CSRFProtection guards the HTML form routes with the double-submit cookie pattern.
// JSON routes are covered by the application/json requirement in DecodeJSON instead.
// GET, HEAD, OPTIONS, and TRACE requests are exempt from CSRF validation.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCSRFCookieName
	}
	if cfg.FormFieldName == "" {
		cfg.FormFieldName = DefaultCSRFFormField
	}
	if cfg.TokenLength == 0 {
		cfg.TokenLength = DefaultCSRFTokenLength
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := getCSRFToken(r, cfg.CookieName)
			if token == "" {
				var err error
				token, err = generateCSRFToken(cfg.TokenLength)
				if err != nil {
					http.Error(w, "unable to generate CSRF token", http.StatusInternalServerError)
					return
				}
				setCSRFCookie(w, r, cfg.CookieName, token)
			}

			r = r.WithContext(setCSRFTokenInContext(r.Context(), token))

			if requiresCSRFValidation(r.Method) && !validateCSRFToken(r, token, cfg.FormFieldName) {
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresCSRFValidation(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}

func getCSRFToken(r *http.Request, cookieName string) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// generateCSRFToken fails closed rather than falling back to a predictable token.
func generateCSRFToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("csrf token generation failed: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func setCSRFCookie(w http.ResponseWriter, r *http.Request, name, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil || isForwardedHTTPS(r),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   3600 * 12,
	})
}

// isForwardedHTTPS handles comma-separated X-Forwarded-Proto values.
func isForwardedHTTPS(r *http.Request) bool {
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

// validateCSRFToken compares the submitted form field against the cookie in constant time.
func validateCSRFToken(r *http.Request, cookieToken, field string) bool {
	if cookieToken == "" {
		return false
	}
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/x-www-form-urlencoded") &&
		!strings.HasPrefix(contentType, "multipart/form-data") {
		return false
	}
	if err := r.ParseForm(); err != nil {
		return false
	}
	formToken := r.PostFormValue(field)
	return formToken != "" && subtle.ConstantTimeCompare([]byte(formToken), []byte(cookieToken)) == 1
}

type csrfTokenKey struct{}

func setCSRFTokenInContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfTokenKey{}, token)
}

// GetCSRFToken retrieves the CSRF token for embedding in forms.
func GetCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenKey{}).(string)
	return token
}
