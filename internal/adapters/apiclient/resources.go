package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/target/frontdesk-console/internal/domain/model"
	apperrors "github.com/target/frontdesk-console/internal/errors"
	"github.com/target/frontdesk-console/internal/ports"
)

// HeaderAcademicYear scopes front-office calls to one academic year.
const HeaderAcademicYear = "X-Academic-Year-Id"

// ClientConfig configures the resource clients.
type ClientConfig struct {
	// BaseURL serves the admin endpoints.
	BaseURL string
	// AcademicBaseURL serves front-office and academic-year endpoints; defaults to BaseURL.
	AcademicBaseURL string
	// AcademicYearID pins the X-Academic-Year-Id header. Empty means "use the current year".
	AcademicYearID string
	// HTTPClient must attach the bearer token, see AuthorizedHTTPClient.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client groups the resource endpoints the console exposes.
type Client struct {
	api      *requester
	academic *requester

	pinnedYear string

	yearMu       sync.Mutex
	resolvedYear string
}

// NewClient builds the resource client.
func NewClient(cfg ClientConfig) (*Client, error) {
	api, err := newRequester(cfg.BaseURL, cfg.HTTPClient, cfg.Logger)
	if err != nil {
		return nil, err
	}
	academicURL := cfg.AcademicBaseURL
	if strings.TrimSpace(academicURL) == "" {
		academicURL = cfg.BaseURL
	}
	academic, err := newRequester(academicURL, cfg.HTTPClient, cfg.Logger)
	if err != nil {
		return nil, err
	}
	return &Client{
		api:        api,
		academic:   academic,
		pinnedYear: strings.TrimSpace(cfg.AcademicYearID),
	}, nil
}

// academicYearID returns the pinned year or the year the backend marks current.
// The looked-up value is cached until an academic-year write invalidates it.
func (c *Client) academicYearID(ctx context.Context) (string, error) {
	if c.pinnedYear != "" {
		return c.pinnedYear, nil
	}

	c.yearMu.Lock()
	defer c.yearMu.Unlock()
	if c.resolvedYear != "" {
		return c.resolvedYear, nil
	}

	years, err := c.ListAcademicYears(ctx)
	if err != nil {
		return "", err
	}
	current, ok := model.CurrentAcademicYear(years)
	if !ok {
		return "", apperrors.NotFound("No current academic year is set")
	}
	c.resolvedYear = current.ID
	return c.resolvedYear, nil
}

func (c *Client) forgetAcademicYear() {
	c.yearMu.Lock()
	c.resolvedYear = ""
	c.yearMu.Unlock()
}

// frontOffice issues a call scoped to the academic year.
func (c *Client) frontOffice(ctx context.Context, req request, out any, fallback string) error {
	yearID, err := c.academicYearID(ctx)
	if err != nil {
		return err
	}
	if req.header == nil {
		req.header = http.Header{}
	}
	req.header.Set(HeaderAcademicYear, yearID)
	return c.academic.call(ctx, req, out, fallback)
}

func pageQuery(p model.PageRequest) url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	return q
}

func setIfPresent(q url.Values, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		q.Set(key, v)
	}
}

func escapeID(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}

var (
	_ ports.FrontOfficeAPI  = (*Client)(nil)
	_ ports.AcademicYearAPI = (*Client)(nil)
	_ ports.AdminAPI        = (*Client)(nil)
	_ ports.AccountAPI      = (*AuthGateway)(nil)
)
