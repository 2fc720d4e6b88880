package httpx

import (
	"net/http"
	"strconv"

	"github.com/target/frontdesk-console/internal/domain/model"
)

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// pageRequestFromQuery reads page and size. Bounds are enforced by the services so that an
// out-of-range value is reported instead of silently clamped.
func pageRequestFromQuery(r *http.Request) model.PageRequest {
	return model.PageRequest{
		Page: parseIntQuery(r, "page", 0),
		Size: parseIntQuery(r, "size", 0),
	}
}
