// Package session implements the cookie-bearing HTTP session shared by the
// auth and arena clients.
//
// A Session owns a base URL, a cookie jar and a set of default headers that
// are copied onto every request. Each Send performs exactly one JSON round
// trip and reports its outcome as a result.Result; it never retries and never
// panics. Default headers are guarded by a lock, so a Session may be shared
// between goroutines; concurrent writers follow last-writer-wins.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vorldlabs/arenakit/internal/common"
	"github.com/vorldlabs/arenakit/pkg/logging"
	"github.com/vorldlabs/arenakit/pkg/result"
)

// DefaultTimeout bounds a request whose Timeout is left at zero.
const DefaultTimeout = 15 * time.Second

// Session is a reusable HTTP session with default headers and cookies.
type Session struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger

	mu      sync.RWMutex
	headers http.Header
}

// Option customizes a Session.
type Option func(*Session)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is
// attached to a copy of it when it has none.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) {
		if c == nil {
			return
		}
		cp := *c
		if cp.Jar == nil {
			cp.Jar = s.client.Jar
		}
		s.client = &cp
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) {
		s.logger = logging.OrNop(l)
	}
}

// New returns a Session rooted at baseURL. Trailing slashes are dropped so
// paths can always start with "/".
func New(baseURL string, opts ...Option) *Session {
	jar, _ := cookiejar.New(nil)
	s := &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Jar: jar},
		logger:  logging.Nop{},
		headers: http.Header{},
	}
	s.headers.Set(common.ContentTypeHeaderName, common.JSONContentType)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseURL returns the URL every request path is appended to.
func (s *Session) BaseURL() string {
	return s.baseURL
}

// SetHeader sets a default header sent with every request.
func (s *Session) SetHeader(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers.Set(name, value)
}

// DelHeader removes a default header.
func (s *Session) DelHeader(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers.Del(name)
}

// Header returns the current value of a default header.
func (s *Session) Header(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.headers.Get(name)
}

// SetBearerToken attaches "Authorization: Bearer <token>" to every request.
// An empty token removes the header entirely.
func (s *Session) SetBearerToken(token string) {
	if token == "" {
		s.DelHeader(common.AuthorizationHeaderName)
		return
	}
	s.SetHeader(common.AuthorizationHeaderName, common.BearerPrefix+token)
}

// Request describes one JSON round trip.
type Request struct {
	Method string
	// Path is appended to the session base URL as is; callers escape
	// dynamic segments.
	Path string
	// Body is marshaled to JSON when non-nil.
	Body    any
	Timeout time.Duration
	// Fallback labels failures whose body carries no message.
	Fallback string
}

// Send performs r and converts the outcome into a Result.
//
// Transport failures become a failure carrying the raw error text, statuses
// of 400 and above are normalized with result.ExtractError, and successful
// bodies that are not JSON are returned as a {"raw": text} placeholder.
func (s *Session) Send(ctx context.Context, r Request) result.Result {
	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return result.Fail(fmt.Sprintf("encode request body: %v", err))
		}
		body = bytes.NewReader(b)
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := s.baseURL + r.Path
	req, err := http.NewRequestWithContext(ctx, r.Method, url, body)
	if err != nil {
		return result.Fail(err.Error())
	}

	s.mu.RLock()
	req.Header = s.headers.Clone()
	s.mu.RUnlock()

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	s.logger.Debug(ctx, "http request", "method", r.Method, "url", url, "request_id", requestID)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug(ctx, "http transport error", "request_id", requestID, "error", err)
		return result.Fail(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return result.Fail(err.Error())
	}

	s.logger.Debug(ctx, "http response", "request_id", requestID, "status", resp.StatusCode, "bytes", len(raw))

	if resp.StatusCode >= http.StatusBadRequest {
		return result.FailStatus(result.ExtractError(resp.StatusCode, raw, r.Fallback), resp.StatusCode)
	}

	data, err := result.DecodeBodyErr(raw)
	if err != nil {
		s.logger.Debug(ctx, "response body is not JSON, keeping raw text", "request_id", requestID, "error", err)
	}

	res := result.OK(data)
	res.Status = resp.StatusCode
	return res
}
