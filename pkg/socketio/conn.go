package socketio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"
	"github.com/vorldlabs/arenakit/pkg/logging"
)

var (
	ErrHandshake = errors.New("socket.io handshake failed")
	ErrClosed    = errors.New("socket.io connection closed")
)

const (
	defaultHandshakeTimeout  = 20 * time.Second
	defaultPingInterval      = 25 * time.Second
	defaultPingTimeout       = 20 * time.Second
	defaultReconnectDelay    = 1 * time.Second
	defaultReconnectDelayMax = 5 * time.Second
	reconnectJitterPercent   = 50
	writeTimeout             = 5 * time.Second
)

// EventHandler receives an event name and its first argument.
type EventHandler func(event string, payload json.RawMessage)

// Options configure Dial.
type Options struct {
	// Auth is sent with the namespace CONNECT packet, on every reconnect too.
	Auth   any
	Header http.Header
	Logger logging.Logger
	// OnEvent is called for every EVENT packet.
	OnEvent EventHandler
	// Dialer defaults to websocket.DefaultDialer.
	Dialer *websocket.Dialer

	// DisableReconnect turns off reconnection after the transport is lost.
	DisableReconnect bool
	// ReconnectDelay and ReconnectDelayMax bound the exponential backoff
	// between reconnection attempts. Defaults: 1s and 5s.
	ReconnectDelay    time.Duration
	ReconnectDelayMax time.Duration
	// ReconnectAttempts caps the attempts after one loss; zero means no cap.
	ReconnectAttempts int
}

// engine is one Engine.IO session over one websocket.
type engine struct {
	ws           *websocket.Conn
	sid          string
	pingInterval time.Duration
	pingTimeout  time.Duration
}

// Conn is a Socket.IO connection. After an unexpected transport loss it
// reconnects on its own, with the same auth, until Close is called, the
// server ends the session, or the reconnection budget is spent.
type Conn struct {
	endpoint string
	opts     Options
	logger   logging.Logger

	mu  sync.Mutex
	eng *engine

	writeMu   sync.Mutex
	connected atomic.Bool
	rejected  atomic.Bool
	// final is set when the server ended the session on purpose.
	final     atomic.Bool
	closed    atomic.Bool
	closeOnce sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// Dial opens the websocket, completes the Engine.IO handshake and sends the
// namespace CONNECT. The returned Conn reads in its own goroutine.
func Dial(ctx context.Context, rawURL string, opts Options) (*Conn, error) {
	endpoint, err := EndpointURL(rawURL)
	if err != nil {
		return nil, err
	}

	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = defaultReconnectDelay
	}
	if opts.ReconnectDelayMax <= 0 {
		opts.ReconnectDelayMax = defaultReconnectDelayMax
	}

	c := &Conn{
		endpoint: endpoint,
		opts:     opts,
		logger:   logging.OrNop(opts.Logger).With("component", "socketio"),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultHandshakeTimeout)
		defer cancel()
	}

	eng, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	c.eng = eng

	go c.run(eng)

	return c, nil
}

// open dials one websocket and runs the Engine.IO and namespace handshakes.
func (c *Conn) open(ctx context.Context) (*engine, error) {
	ws, _, err := c.opts.Dialer.DialContext(ctx, c.endpoint, c.opts.Header)
	if err != nil {
		return nil, fmt.Errorf("socket dial: %w", err)
	}

	eng := &engine{ws: ws}
	if err := c.handshake(ctx, eng); err != nil {
		_ = ws.Close()
		return nil, err
	}
	return eng, nil
}

func (c *Conn) handshake(ctx context.Context, eng *engine) error {
	deadline, _ := ctx.Deadline()
	_ = eng.ws.SetReadDeadline(deadline)

	_, msg, err := eng.ws.ReadMessage()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHandshake, err)
	}
	if len(msg) == 0 || msg[0] != engineOpen {
		return fmt.Errorf("%w: unexpected packet %q", ErrHandshake, msg)
	}

	var open openPayload
	if err := json.Unmarshal(msg[1:], &open); err != nil {
		return fmt.Errorf("%w: %v", ErrHandshake, err)
	}
	eng.sid = open.SID
	eng.pingInterval = msDuration(open.PingInterval, defaultPingInterval)
	eng.pingTimeout = msDuration(open.PingTimeout, defaultPingTimeout)

	pkt, err := connectPacket(c.opts.Auth)
	if err != nil {
		return err
	}
	if err := c.writeTo(eng, pkt); err != nil {
		return fmt.Errorf("%w: %v", ErrHandshake, err)
	}
	return nil
}

func msDuration(ms int, def time.Duration) time.Duration {
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

// SID returns the Engine.IO session id of the current transport.
func (c *Conn) SID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.eng == nil {
		return ""
	}
	return c.eng.sid
}

// Connected reports whether the server has acknowledged the namespace and
// the connection is still open.
func (c *Conn) Connected() bool {
	return c.connected.Load() && !c.closed.Load()
}

// Rejected reports whether the server refused the namespace CONNECT. A
// rejected Conn shuts itself down and never reconnects.
func (c *Conn) Rejected() bool {
	return c.rejected.Load()
}

// Done is closed once the connection has shut down for good.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Close sends a Socket.IO DISCONNECT, closes the websocket and stops any
// reconnection in progress. Calling it more than once is safe; later calls
// return nil.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed.Store(true)
		eng := c.eng
		c.mu.Unlock()

		c.connected.Store(false)
		close(c.stop)

		if eng == nil {
			return
		}
		_ = c.writeTo(eng, []byte{engineMessage, packetDisconnect})

		c.writeMu.Lock()
		_ = eng.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeTimeout))
		c.writeMu.Unlock()

		if cerr := eng.ws.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			err = cerr
		}
	})
	return err
}

func (c *Conn) writeTo(eng *engine, p []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = eng.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return eng.ws.WriteMessage(websocket.TextMessage, p)
}

// run reads from eng until the transport ends, then reconnects or shuts
// the Conn down.
func (c *Conn) run(eng *engine) {
	ctx := context.Background()
	defer c.shutdown()

	for {
		c.readLoop(ctx, eng)
		c.connected.Store(false)

		switch {
		case c.closed.Load():
			return
		case c.rejected.Load(), c.final.Load():
			c.logger.Info(ctx, "socket disconnected by server", "sid", eng.sid)
			return
		case c.opts.DisableReconnect:
			c.logger.Info(ctx, "socket disconnected", "sid", eng.sid)
			return
		}

		c.logger.Info(ctx, "socket lost, reconnecting", "sid", eng.sid)
		next, err := c.reconnect()
		if err != nil {
			if !c.closed.Load() {
				c.logger.Warn(ctx, "socket reconnect gave up", "error", err)
			}
			return
		}
		eng = next
		c.logger.Info(ctx, "socket reconnected", "sid", eng.sid)
	}
}

// reconnect opens a new transport with exponential backoff. Close aborts it.
func (c *Conn) reconnect() (*engine, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-c.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	var eng *engine
	err := retry.Do(ctx, c.backoff(), func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, defaultHandshakeTimeout)
		defer cancel()

		e, err := c.open(attemptCtx)
		if err != nil {
			c.logger.Debug(ctx, "socket reconnect attempt failed", "error", err)
			return retry.RetryableError(err)
		}
		eng = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed.Load() {
		_ = eng.ws.Close()
		return nil, ErrClosed
	}
	c.eng = eng
	return eng, nil
}

func (c *Conn) backoff() retry.Backoff {
	b := retry.NewExponential(c.opts.ReconnectDelay)
	b = retry.WithCappedDuration(c.opts.ReconnectDelayMax, b)
	b = retry.WithJitterPercent(reconnectJitterPercent, b)
	if c.opts.ReconnectAttempts > 0 {
		b = retry.WithMaxRetries(uint64(c.opts.ReconnectAttempts), b)
	}
	return b
}

func (c *Conn) shutdown() {
	c.connected.Store(false)

	c.mu.Lock()
	eng := c.eng
	c.mu.Unlock()
	if eng != nil {
		_ = eng.ws.Close()
	}
	close(c.done)
}

func (c *Conn) readLoop(ctx context.Context, eng *engine) {
	for {
		_ = eng.ws.SetReadDeadline(time.Now().Add(eng.pingInterval + eng.pingTimeout))
		_, msg, err := eng.ws.ReadMessage()
		if err != nil {
			if !c.closed.Load() && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn(ctx, "socket read error", "error", err)
			}
			return
		}
		if !c.handleEngine(ctx, eng, msg) {
			return
		}
	}
}

// handleEngine processes one Engine.IO packet and reports whether the
// transport should stay open.
func (c *Conn) handleEngine(ctx context.Context, eng *engine, msg []byte) bool {
	if len(msg) == 0 {
		return true
	}
	switch msg[0] {
	case enginePing:
		pong := append([]byte{enginePong}, msg[1:]...)
		if err := c.writeTo(eng, pong); err != nil {
			c.logger.Warn(ctx, "socket pong failed", "error", err)
			return false
		}
	case engineClose:
		c.final.Store(true)
		return false
	case engineMessage:
		return c.handlePacket(ctx, msg[1:])
	case engineNoop, enginePong:
	default:
		c.logger.Debug(ctx, "socket engine packet ignored", "type", string(msg[0]))
	}
	return true
}

// handlePacket processes one Socket.IO packet and reports whether the
// transport should stay open.
func (c *Conn) handlePacket(ctx context.Context, p []byte) bool {
	if len(p) == 0 {
		return true
	}
	body := stripNamespace(p[1:])

	switch p[0] {
	case packetConnect:
		c.connected.Store(true)
		c.logger.Info(ctx, "socket connected", "sid", c.SID())
	case packetDisconnect:
		c.final.Store(true)
		return false
	case packetConnectError:
		c.rejected.Store(true)
		var e struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &e); err != nil || e.Message == "" {
			e.Message = string(body)
		}
		c.logger.Warn(ctx, "socket connect error", "message", e.Message)
		return false
	case packetEvent:
		name, payload, err := decodeEvent(p[1:])
		if err != nil {
			c.logger.Debug(ctx, "socket event dropped", "error", err)
			return true
		}
		if c.opts.OnEvent != nil {
			c.opts.OnEvent(name, payload)
		}
	case packetAck:
	default:
		c.logger.Debug(ctx, "socket packet ignored", "type", string(p[0]))
	}
	return true
}
