package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/target/frontdesk-console/config"
	authmocks "github.com/target/frontdesk-console/internal/mocks/auth"
)

const backendToken = "tok-1"

// fakeBackend imitates the school API closely enough to drive the wired services.
type fakeBackend struct {
	srv *httptest.Server

	mu          sync.Mutex
	yearHeaders []string
	signouts    int
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{}
	user := map[string]any{
		"id":          "u1",
		"username":    "admin",
		"first_name":  "Ada",
		"last_name":   "Admin",
		"role":        "Admin",
		"permissions": []string{"visitors.read"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "secret" {
			writeBackendJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
			return
		}
		writeBackendJSON(w, http.StatusOK, map[string]any{"accessToken": backendToken, "user": user})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+backendToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeBackendJSON(w, http.StatusOK, user)
	})
	mux.HandleFunc("POST /api/auth/signout", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		b.signouts++
		b.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/front-office/visitors", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+backendToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		b.mu.Lock()
		b.yearHeaders = append(b.yearHeaders, r.Header.Get("X-Academic-Year-Id"))
		b.mu.Unlock()
		writeBackendJSON(w, http.StatusOK, map[string]any{
			"content": []map[string]any{{"id": "v1", "visitorName": "Ann Parent"}},
			"page":    map[string]int{"page": 0, "size": 20, "totalElements": 1, "totalPages": 1},
		})
	})

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func writeBackendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) academicYearHeaders() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.yearHeaders...)
}

func (b *fakeBackend) config() *config.AppConfig {
	cfg := &config.AppConfig{
		API: config.APIConfig{
			BaseURL:        b.srv.URL + "/api",
			AcademicYearID: "y1",
			Timeout:        5 * time.Second,
		},
		Session: config.SessionConfig{CredentialPolicy: config.CredentialPolicyKeep},
		HTTP: config.HTTPConfig{
			MetricsEnabled:  true,
			AdminRoles:      []string{"Admin"},
			ShutdownTimeout: 5 * time.Second,
		},
	}
	cfg.Sanitize()
	return cfg
}

func newTestServices(t *testing.T, b *fakeBackend, tokens *authmocks.MemoryTokenStore) ServiceContainer {
	t.Helper()
	services, err := NewServices(ServiceDeps{
		Config:     b.config(),
		Tokens:     tokens,
		HTTPClient: b.srv.Client(),
		Registry:   prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	return services
}
