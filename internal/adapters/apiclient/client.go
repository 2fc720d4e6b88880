// Package apiclient talks to the school REST API: the auth gateway used by the session
// coordinator and the resource clients used by the CLI and console.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/target/frontdesk-console/internal/errors"
	"golang.org/x/net/publicsuffix"
)

const (
	// HeaderRequestID correlates console logs with backend logs.
	HeaderRequestID = "X-Request-Id"

	maxResponseBytes = 4 << 20
	unreachableMsg   = "Unable to reach the server"
)

// NewHTTPClient builds the outbound client shared by the gateway and resource clients.
// It keeps backend cookies for the process lifetime and stamps every request with a request id.
func NewHTTPClient(timeout time.Duration, userAgent string) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Jar:     jar,
		Transport: &requestIDTransport{
			base:      http.DefaultTransport,
			userAgent: strings.TrimSpace(userAgent),
		},
	}, nil
}

type requestIDTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if r.Header.Get(HeaderRequestID) == "" {
		r.Header.Set(HeaderRequestID, uuid.NewString())
	}
	if t.userAgent != "" {
		r.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(r)
}

// requester performs JSON calls against one base URL.
type requester struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func newRequester(baseURL string, client *http.Client, logger *slog.Logger) (*requester, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, errors.New("api base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &requester{baseURL: base, client: client, logger: logger}, nil
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	header http.Header
	bearer string
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool { return r.status >= 200 && r.status < 300 }

// message extracts the backend's human-readable error message, if any.
func (r *response) message() string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(r.body, &payload); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(payload.Error)
}

func (r *response) decode(out any) error {
	if out == nil || len(bytes.TrimSpace(r.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// send returns a response for every status code. Errors are reserved for failures to
// build the request or to reach the server.
func (q *requester) send(ctx context.Context, req request) (*response, error) {
	target := q.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, values := range req.header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	if req.bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.bearer)
	}

	resp, err := q.client.Do(httpReq)
	if err != nil {
		// The authorizing transport reports a missing session as an AppError.
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		q.logger.DebugContext(ctx, "api request failed",
			"method", req.method, "path", req.path, "error", err)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeNetwork, unreachableMsg)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			q.logger.DebugContext(ctx, "close response body", "error", cerr)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeNetwork, unreachableMsg)
	}

	q.logger.DebugContext(ctx, "api request",
		"method", req.method, "path", req.path, "status", resp.StatusCode)
	return &response{status: resp.StatusCode, body: data}, nil
}

// classify maps a non-2xx resource response onto the shared error codes.
func classify(resp *response, fallback string) error {
	msg := resp.message()
	if msg == "" {
		msg = fallback
	}

	var e *apperrors.AppError
	switch resp.status {
	case http.StatusUnauthorized:
		e = apperrors.AuthExpired(msg)
	case http.StatusNotFound:
		e = apperrors.NotFound(msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		e = apperrors.Validation(msg)
	case http.StatusConflict:
		e = apperrors.Conflict(msg)
	default:
		return apperrors.Upstream(msg, resp.status)
	}
	e.Status = resp.status
	return e
}

// call sends req and decodes a 2xx body into out, classifying everything else.
func (q *requester) call(ctx context.Context, req request, out any, fallback string) error {
	resp, err := q.send(ctx, req)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return classify(resp, fallback)
	}
	if err := resp.decode(out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, fallback)
	}
	return nil
}
