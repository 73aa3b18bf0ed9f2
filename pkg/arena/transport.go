package arena

import (
	"context"
	"encoding/json"

	"github.com/vorldlabs/arenakit/pkg/logging"
	"github.com/vorldlabs/arenakit/pkg/socketio"
)

// Connection is an open realtime connection.
type Connection interface {
	// Connected reports whether the server accepted the connection.
	Connected() bool
	// Rejected reports whether the server refused the connection.
	Rejected() bool
	// Done is closed once the connection has shut down for any reason.
	Done() <-chan struct{}
	Close() error
}

// Transport opens realtime connections. deliver is called for every event
// received, in arrival order.
type Transport interface {
	Connect(ctx context.Context, url string, auth map[string]string, deliver func(event string, payload json.RawMessage)) (Connection, error)
}

// SocketIOTransport is the default Transport, backed by package socketio.
type SocketIOTransport struct {
	Logger logging.Logger
}

func (t SocketIOTransport) Connect(ctx context.Context, url string, auth map[string]string, deliver func(string, json.RawMessage)) (Connection, error) {
	return socketio.Dial(ctx, url, socketio.Options{
		Auth:    auth,
		Logger:  t.Logger,
		OnEvent: deliver,
	})
}
