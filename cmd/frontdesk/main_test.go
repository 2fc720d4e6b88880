package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "cli-token"

type cliBackend struct {
	mu          sync.Mutex
	yearPatches []map[string]any
	deleted     []string
	signouts    int
}

func (b *cliBackend) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer "+testToken {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// setupCLI points the CLI at a fake backend and an isolated credentials file.
func setupCLI(t *testing.T) *cliBackend {
	t.Helper()
	b := &cliBackend{}
	user := map[string]any{
		"id":          "u1",
		"username":    "admin",
		"first_name":  "Ada",
		"last_name":   "Admin",
		"role":        "Admin",
		"permissions": []string{"visitors.read"},
	}
	year := map[string]any{"id": "y1", "name": "2026-27", "isCurrent": true}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"accessToken": testToken, "user": user})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if b.authorized(w, r) {
			writeJSON(w, http.StatusOK, user)
		}
	})
	mux.HandleFunc("POST /api/auth/signout", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		b.signouts++
		b.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/front-office/visitors", func(w http.ResponseWriter, r *http.Request) {
		if b.authorized(w, r) {
			writeJSON(w, http.StatusOK, map[string]any{
				"content": []map[string]any{{"id": "v1", "visitorName": "Ann Parent", "purpose": "Meeting"}},
				"page":    map[string]int{"page": 0, "size": 20, "totalElements": 1, "totalPages": 1},
			})
		}
	})
	mux.HandleFunc("PATCH /api/academic-years/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !b.authorized(w, r) {
			return
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		b.yearPatches = append(b.yearPatches, body)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, year)
	})
	mux.HandleFunc("DELETE /api/academic-years/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !b.authorized(w, r) {
			return
		}
		b.mu.Lock()
		b.deleted = append(b.deleted, r.PathValue("id"))
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("API_URL", srv.URL+"/api")
	t.Setenv("ACADEMIC_SERVICE_URL", "")
	t.Setenv("ACADEMIC_YEAR_ID", "y1")
	t.Setenv("TOKEN_STORE_BACKEND", "file")
	t.Setenv("TOKEN_STORE_FILE", filepath.Join(dir, "credentials.json"))
	t.Setenv("LOG_LEVEL", "error")
	return b
}

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	var in io.Reader = strings.NewReader(stdin)
	code := run(context.Background(), args, in, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRun_Usage(t *testing.T) {
	res := runCLI(t, "")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "Available commands:")

	res = runCLI(t, "", "help")
	assert.Equal(t, exitOK, res.code)
	assert.Contains(t, res.stdout, "assign-roles")

	res = runCLI(t, "", "teleport")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, `unknown command "teleport"`)
}

func TestRun_ProtectedCommandRequiresLogin(t *testing.T) {
	setupCLI(t)

	res := runCLI(t, "", "visitors")

	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, notSignedInMsg)
	assert.Empty(t, res.stdout)
}

func TestRun_StatusWhenAnonymous(t *testing.T) {
	setupCLI(t)

	res := runCLI(t, "", "status")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Not signed in")

	res = runCLI(t, "", "status", "--json")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.JSONEq(t, `{"state":"anonymous","authenticated":false}`, res.stdout)
}

func TestRun_LoginFailure(t *testing.T) {
	setupCLI(t)

	res := runCLI(t, "wrong\n", "login", "--username", "admin", "--password-stdin")

	assert.Equal(t, exitError, res.code)
	assert.True(t, strings.HasPrefix(res.stderr, "login: "), res.stderr)
	assert.Equal(t, exitError, runCLI(t, "", "whoami").code)
}

func TestRun_SessionLifecycle(t *testing.T) {
	b := setupCLI(t)

	res := runCLI(t, "secret\n", "login", "--username", "admin", "--password-stdin")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "Signed in as Ada Admin (Admin)\n", res.stdout)

	// A fresh invocation restores the saved token.
	res = runCLI(t, "", "whoami")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Ada Admin")
	assert.Contains(t, res.stdout, "visitors.read")
	assert.NotContains(t, res.stdout, testToken)

	res = runCLI(t, "", "visitors", "list")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Ann Parent")
	assert.Contains(t, res.stdout, "Page 1 of 1 (1 shown, 1 total)")

	res = runCLI(t, "", "visitors", "--query", "content[0].visitorName")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "\"Ann Parent\"\n", res.stdout)

	res = runCLI(t, "", "visitors", "--query", "content[")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "invalid --query")

	res = runCLI(t, "", "logout")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "Signed out\n", res.stdout)
	assert.Equal(t, 1, b.signouts)

	res = runCLI(t, "", "visitors")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, notSignedInMsg)
}

func TestRun_YearsUpdateSendsOnlyGivenFlags(t *testing.T) {
	b := setupCLI(t)
	require.Equal(t, exitOK, runCLI(t, "secret\n", "login", "--username", "admin", "--password-stdin").code)

	res := runCLI(t, "", "years", "update", "--name", "2026-27", "y1")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "2026-27")

	require.Len(t, b.yearPatches, 1)
	assert.Equal(t, map[string]any{"name": "2026-27"}, b.yearPatches[0])
}

func TestRun_YearsDeleteConfirmation(t *testing.T) {
	b := setupCLI(t)
	require.Equal(t, exitOK, runCLI(t, "secret\n", "login", "--username", "admin", "--password-stdin").code)

	res := runCLI(t, "n\n", "years", "delete", "y1")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Aborted.")
	assert.Empty(t, b.deleted)

	res = runCLI(t, "", "years", "delete", "--yes", "y1")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, []string{"y1"}, b.deleted)

	res = runCLI(t, "", "years", "delete")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "expected exactly one academic year id")
}

func TestRun_UnknownSubcommand(t *testing.T) {
	setupCLI(t)
	require.Equal(t, exitOK, runCLI(t, "secret\n", "login", "--username", "admin", "--password-stdin").code)

	res := runCLI(t, "", "calls", "erase")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "create, get, list")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"r1", "r2"}, splitList(" r1, ,r2 "))
	assert.Nil(t, splitList(""))
}
