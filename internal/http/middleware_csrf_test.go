package httpx

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func csrfHandler() http.Handler {
	return CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(GetCSRFToken(r)))
	}))
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCSRFProtection_GetSetsCookieAndContext(t *testing.T) {
	rec := httptest.NewRecorder()
	csrfHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := rec.Result()
	defer resp.Body.Close()

	cookie := findCookie(resp, DefaultCSRFCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("CSRF cookie not set")
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteStrictMode {
		t.Errorf("unexpected cookie attributes: %+v", cookie)
	}
	if cookie.Secure {
		t.Error("cookie should not be Secure over plain HTTP")
	}
	if rec.Body.String() != cookie.Value {
		t.Errorf("context token %q does not match cookie %q", rec.Body.String(), cookie.Value)
	}
}

func TestCSRFProtection_CookieNotReissuedWhenPresent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "existing"})
	rec := httptest.NewRecorder()
	csrfHandler().ServeHTTP(rec, req)

	resp := rec.Result()
	defer resp.Body.Close()
	if findCookie(resp, DefaultCSRFCookieName) != nil {
		t.Error("cookie should not be reissued")
	}
	if rec.Body.String() != "existing" {
		t.Errorf("expected existing token in context, got %q", rec.Body.String())
	}
}

func TestCSRFProtection_PostWithoutTokenFails(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	csrfHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", rec.Code)
	}
}

func TestCSRFProtection_PostWithValidFormToken(t *testing.T) {
	rec := httptest.NewRecorder()
	csrfHandler().ServeHTTP(rec, formRequest("/logout", url.Values{}))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestCSRFProtection_PostWithMismatchedToken(t *testing.T) {
	form := url.Values{DefaultCSRFFormField: {"forged"}}
	req := httptest.NewRequest(http.MethodPost, "/logout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "real"})
	rec := httptest.NewRecorder()
	csrfHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", rec.Code)
	}
}

func TestCSRFProtection_TokenOnlyAcceptedFromForms(t *testing.T) {
	body := DefaultCSRFFormField + "=real"
	req := httptest.NewRequest(http.MethodPost, "/logout", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/plain")
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "real"})
	rec := httptest.NewRecorder()
	csrfHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403 for non-form body, got %d", rec.Code)
	}
}

func TestCSRFProtection_SecureCookie(t *testing.T) {
	tests := map[string]func(*http.Request){
		"tls":             func(r *http.Request) { r.TLS = &tls.ConnectionState{} },
		"forwarded proto": func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "http, https") },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/login", nil)
			mutate(req)
			rec := httptest.NewRecorder()
			csrfHandler().ServeHTTP(rec, req)

			resp := rec.Result()
			defer resp.Body.Close()
			cookie := findCookie(resp, DefaultCSRFCookieName)
			if cookie == nil || !cookie.Secure {
				t.Fatalf("expected Secure cookie, got %+v", cookie)
			}
		})
	}
}

func TestGetCSRFToken_NoToken(t *testing.T) {
	if token := GetCSRFToken(httptest.NewRequest(http.MethodGet, "/", nil)); token != "" {
		t.Errorf("expected empty token, got %q", token)
	}
}
