package httpx

import (
	"io"
	"net/http"

	"github.com/target/frontdesk-console/internal/ports"
)

const healthResponse = `{"status":"ok"}`

// healthHandler returns a simple 200 OK status for liveness checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

// readyHandler reports 503 until startup hydration has settled the session.
func readyHandler(reader ports.SessionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if reader.Snapshot().IsHydrating() {
			w.Header().Set("Retry-After", "1")
			WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "hydrating"})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
