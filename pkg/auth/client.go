package auth

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/vorldlabs/arenakit/pkg/logging"
	"github.com/vorldlabs/arenakit/pkg/result"
	"github.com/vorldlabs/arenakit/pkg/session"
)

const (
	// AppIDHeader identifies the calling application to the service.
	AppIDHeader = "x-vorld-app-id"

	DefaultTimeout = 15 * time.Second

	LoginPath     = "/auth/login"
	VerifyOTPPath = "/auth/verify-otp"
	ProfilePath   = "/user/profile"
)

// Config carries everything the client needs; nothing is read from the
// environment.
type Config struct {
	BaseURL string
	AppID   string
	// Timeout bounds each call; zero means DefaultTimeout.
	Timeout time.Duration
	// PlaintextPassword disables password hashing in LoginWithEmail.
	PlaintextPassword bool
	Logger            logging.Logger
	HTTPClient        *http.Client
}

// Client talks to the authentication service over one cookie-bearing
// session. It is safe for concurrent use.
type Client struct {
	session   *session.Session
	logger    logging.Logger
	timeout   time.Duration
	plaintext bool

	mu    sync.RWMutex
	token string
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	logger := logging.OrNop(cfg.Logger).With("component", "auth")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	s := session.New(cfg.BaseURL, session.WithHTTPClient(cfg.HTTPClient), session.WithLogger(logger))
	s.SetHeader(AppIDHeader, cfg.AppID)

	return &Client{
		session:   s,
		logger:    logger,
		timeout:   timeout,
		plaintext: cfg.PlaintextPassword,
	}
}

// BaseURL returns the service root every path is appended to.
func (c *Client) BaseURL() string {
	return c.session.BaseURL()
}

// Token returns the bearer token currently attached to requests.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetBearerToken attaches token to all later requests. An empty token
// removes the Authorization header.
func (c *Client) SetBearerToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.session.SetBearerToken(token)
}

// TokenClaims decodes the held token. See ParseClaims.
func (c *Client) TokenClaims() (*TokenClaims, error) {
	return ParseClaims(c.Token())
}

// LoginWithEmail logs in with an email and password. The password is sent
// as its SHA-256 hex digest unless the client was built with
// PlaintextPassword.
func (c *Client) LoginWithEmail(ctx context.Context, email, password string) result.Result {
	toSend := password
	if !c.plaintext {
		toSend = HashPassword(password)
	}
	return c.login(ctx, LoginPath, map[string]string{"email": email, "password": toSend}, "Login failed")
}

// LoginWithCredentials posts an arbitrary payload to path, for backends that
// expect other field names ({"username": ..., "password": ...}). An empty
// path means LoginPath.
func (c *Client) LoginWithCredentials(ctx context.Context, payload map[string]any, path string) result.Result {
	if path == "" {
		path = LoginPath
	}
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	c.logger.Debug(ctx, "login with credentials", "path", path, "payload_keys", keys)
	return c.login(ctx, path, payload, "Login failed")
}

// VerifyOTP submits the one-time code sent to email. An empty path means
// VerifyOTPPath.
func (c *Client) VerifyOTP(ctx context.Context, email, code, path string) result.Result {
	if path == "" {
		path = VerifyOTPPath
	}
	return c.login(ctx, path, map[string]string{"email": email, "otp": code}, "OTP verification failed")
}

// GetProfile fetches the profile of the logged-in user.
func (c *Client) GetProfile(ctx context.Context) result.Result {
	return c.session.Send(ctx, session.Request{
		Method:   http.MethodGet,
		Path:     ProfilePath,
		Timeout:  c.timeout,
		Fallback: "Failed to get profile",
	})
}

// login posts payload and adopts any bearer token found in a successful
// response.
func (c *Client) login(ctx context.Context, path string, payload any, fallback string) result.Result {
	res := c.session.Send(ctx, session.Request{
		Method:   http.MethodPost,
		Path:     path,
		Body:     payload,
		Timeout:  c.timeout,
		Fallback: fallback,
	})
	if !res.Success {
		return res
	}

	if token, ok := DetectToken(res.Data); ok {
		c.logger.Debug(ctx, "bearer token detected in response, setting Authorization header", "path", path)
		c.SetBearerToken(token)
	}
	return res
}
