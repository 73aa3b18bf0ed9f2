package arena

import (
	"context"
	"maps"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/vorldlabs/arenakit/pkg/logging"
	"github.com/vorldlabs/arenakit/pkg/result"
	"github.com/vorldlabs/arenakit/pkg/session"
)

const (
	AppIDHeader  = "X-Vorld-App-ID"
	GameIDHeader = "X-Arena-Arcade-Game-ID"

	// WebsocketURLField is the game state field naming the realtime endpoint.
	WebsocketURLField = "websocketUrl"

	readTimeout  = 15 * time.Second
	writeTimeout = 20 * time.Second
)

// Config carries everything the client needs; nothing is read from the
// environment.
type Config struct {
	BaseAPIURL string
	// SocketURL is the realtime endpoint used when ConnectWebsocket gets none.
	SocketURL   string
	AppID       string
	ArenaGameID string
	UserToken   string
	Logger      logging.Logger
	HTTPClient  *http.Client
	// Transport defaults to SocketIOTransport.
	Transport Transport
}

// Client talks to the arena game service. It is safe for concurrent use.
type Client struct {
	session   *session.Session
	transport Transport
	logger    logging.Logger
	socketURL string
	appID     string

	mu        sync.RWMutex
	token     string
	gameState map[string]any

	connMu sync.Mutex
	conn   Connection
	// connGen increases with every dial and every Disconnect; a dial whose
	// generation is stale when it returns does not install its connection.
	connGen    uint64
	cancelDial context.CancelFunc

	handlersMu sync.RWMutex
	handlers   map[EventKind]Handler
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	logger := logging.OrNop(cfg.Logger).With("component", "arena")

	s := session.New(cfg.BaseAPIURL, session.WithHTTPClient(cfg.HTTPClient), session.WithLogger(logger))
	s.SetHeader(GameIDHeader, cfg.ArenaGameID)
	s.SetHeader(AppIDHeader, cfg.AppID)
	s.SetBearerToken(cfg.UserToken)

	transport := cfg.Transport
	if transport == nil {
		transport = SocketIOTransport{Logger: logger}
	}

	return &Client{
		session:   s,
		transport: transport,
		logger:    logger,
		socketURL: cfg.SocketURL,
		appID:     cfg.AppID,
		token:     cfg.UserToken,
		handlers:  make(map[EventKind]Handler, len(Events)),
	}
}

// SetUserToken replaces the token used for REST calls and for realtime
// connections opened afterwards. An empty token removes the Authorization
// header.
func (c *Client) SetUserToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.session.SetBearerToken(token)
}

// GameState returns a copy of the last game object reported by
// InitializeGame, or nil when no game is initialized.
func (c *Client) GameState() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.gameState)
}

// Connected reports whether a realtime connection is open and accepted.
func (c *Client) Connected() bool {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.conn != nil && c.conn.Connected()
}

// InitializeGame registers a stream with the game service. On success the
// returned game object becomes the current game state, and a websocketUrl
// inside it triggers one ConnectWebsocket call.
func (c *Client) InitializeGame(ctx context.Context, streamURL string) result.Result {
	res := c.session.Send(ctx, session.Request{
		Method:   http.MethodPost,
		Path:     "/games/init",
		Body:     map[string]string{"streamUrl": streamURL},
		Timeout:  writeTimeout,
		Fallback: "Failed to initialize game",
	})
	if !res.Success {
		return res
	}

	var state map[string]any
	if obj, ok := res.Data.(map[string]any); ok {
		state, _ = obj["data"].(map[string]any)
	}

	c.mu.Lock()
	c.gameState = state
	c.mu.Unlock()

	if wsURL, _ := state[WebsocketURLField].(string); wsURL != "" {
		c.ConnectWebsocket(ctx, wsURL)
	}

	if len(state) == 0 {
		return res
	}
	return result.Result{Success: true, Data: maps.Clone(state), Status: res.Status}
}

// ConnectWebsocket opens the realtime connection to wsURL, or to the
// configured SocketURL when wsURL is empty. A connection that is accepted,
// or still waiting for the server to accept it, is reused; a rejected or
// closed one is replaced. The result only says whether the attempt was
// issued without a local error; the server accepts the connection
// asynchronously.
//
// The dial runs without holding the connection lock, so Connected and
// Disconnect never wait for it. Disconnect cancels a dial in flight.
func (c *Client) ConnectWebsocket(ctx context.Context, wsURL string) bool {
	if wsURL == "" {
		wsURL = c.socketURL
	}
	if wsURL == "" {
		c.logger.Warn(ctx, "missing websocket URL")
		return false
	}

	c.connMu.Lock()
	if c.conn != nil && reusable(c.conn) {
		c.connMu.Unlock()
		return true
	}
	stale := c.conn
	c.conn = nil
	if c.cancelDial != nil {
		c.cancelDial()
	}
	c.connGen++
	gen := c.connGen
	dialCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	c.cancelDial = cancel
	c.connMu.Unlock()
	defer cancel()

	if stale != nil {
		_ = stale.Close()
	}

	c.mu.RLock()
	auth := map[string]string{"token": c.token, "appId": c.appID}
	c.mu.RUnlock()

	conn, err := c.transport.Connect(dialCtx, wsURL, auth, c.dispatch)

	c.connMu.Lock()
	current := gen == c.connGen
	if current {
		c.cancelDial = nil
		if err == nil {
			c.conn = conn
		}
	}
	c.connMu.Unlock()

	if err != nil {
		c.logger.Warn(ctx, "socket connect failed", "url", wsURL, "error", err)
		return false
	}
	if !current {
		c.logger.Debug(ctx, "socket connect superseded", "url", wsURL)
		_ = conn.Close()
		return false
	}
	return true
}

// reusable reports whether conn is accepted or still awaiting acceptance.
func reusable(conn Connection) bool {
	if conn.Connected() {
		return true
	}
	if conn.Rejected() {
		return false
	}
	select {
	case <-conn.Done():
		return false
	default:
		return true
	}
}

// GetGameDetails fetches one game.
func (c *Client) GetGameDetails(ctx context.Context, gameID string) result.Result {
	return c.call(ctx, http.MethodGet, "/games/"+url.PathEscape(gameID), nil, readTimeout, "Failed to get game details")
}

// BoostPlayer spends amount on boosting playerID in gameID on behalf of
// username.
func (c *Client) BoostPlayer(ctx context.Context, gameID, playerID string, amount int, username string) result.Result {
	path := "/games/boost/player/" + url.PathEscape(gameID) + "/" + url.PathEscape(playerID)
	body := map[string]any{"amount": amount, "username": username}
	return c.call(ctx, http.MethodPost, path, body, writeTimeout, "Failed to boost player")
}

// UpdateStreamURL moves gameID from oldURL to newURL.
func (c *Client) UpdateStreamURL(ctx context.Context, gameID, newURL, oldURL string) result.Result {
	path := "/games/" + url.PathEscape(gameID) + "/stream-url"
	body := map[string]string{"streamUrl": newURL, "oldStreamUrl": oldURL}
	return c.call(ctx, http.MethodPut, path, body, writeTimeout, "Failed to update stream URL")
}

// GetItemsCatalog lists the items that can be dropped into a game.
func (c *Client) GetItemsCatalog(ctx context.Context) result.Result {
	return c.call(ctx, http.MethodGet, "/items/catalog", nil, readTimeout, "Failed to get items catalog")
}

// DropImmediateItem drops itemID on targetPlayer in gameID.
func (c *Client) DropImmediateItem(ctx context.Context, gameID, itemID, targetPlayer string) result.Result {
	path := "/items/drop/" + url.PathEscape(gameID)
	body := map[string]string{"itemId": itemID, "targetPlayer": targetPlayer}
	return c.call(ctx, http.MethodPost, path, body, writeTimeout, "Failed to drop item")
}

// Disconnect closes the realtime connection if one is open and always
// clears the game state. Close errors are logged, not returned.
func (c *Client) Disconnect() {
	c.connMu.Lock()
	conn := c.conn
	c.conn = nil
	c.connGen++
	if c.cancelDial != nil {
		c.cancelDial()
		c.cancelDial = nil
	}
	c.connMu.Unlock()

	if conn != nil {
		if err := conn.Close(); err != nil {
			c.logger.Warn(context.Background(), "socket close failed", "error", err)
		}
	}

	c.mu.Lock()
	c.gameState = nil
	c.mu.Unlock()
}

func (c *Client) call(ctx context.Context, method, path string, body any, timeout time.Duration, fallback string) result.Result {
	res := c.session.Send(ctx, session.Request{
		Method:   method,
		Path:     path,
		Body:     body,
		Timeout:  timeout,
		Fallback: fallback,
	})
	if !res.Success {
		return res
	}
	return result.Result{Success: true, Data: result.Unwrap(res.Data), Status: res.Status}
}
