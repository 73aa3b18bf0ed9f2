package socketio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
)

// Engine.IO packet types.
const (
	engineOpen    byte = '0'
	engineClose   byte = '1'
	enginePing    byte = '2'
	enginePong    byte = '3'
	engineMessage byte = '4'
	engineNoop    byte = '6'
)

// Socket.IO packet types, carried inside Engine.IO messages.
const (
	packetConnect      byte = '0'
	packetDisconnect   byte = '1'
	packetEvent        byte = '2'
	packetAck          byte = '3'
	packetConnectError byte = '4'
)

// DefaultPath is the Engine.IO endpoint used when the URL has no path.
const DefaultPath = "/socket.io/"

type openPayload struct {
	SID          string `json:"sid"`
	PingInterval int    `json:"pingInterval"`
	PingTimeout  int    `json:"pingTimeout"`
}

// EndpointURL turns a server URL into the Engine.IO websocket endpoint.
// http and https become ws and wss; an empty path becomes DefaultPath.
func EndpointURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse socket url: %w", err)
	}
	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported socket url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("socket url %q has no host", raw)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = DefaultPath
	}
	q := u.Query()
	q.Set("EIO", "4")
	q.Set("transport", "websocket")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// connectPacket builds the Engine.IO message carrying a Socket.IO CONNECT
// for the default namespace.
func connectPacket(auth any) ([]byte, error) {
	p := []byte{engineMessage, packetConnect}
	if auth == nil {
		return p, nil
	}
	b, err := json.Marshal(auth)
	if err != nil {
		return nil, fmt.Errorf("encode auth: %w", err)
	}
	return append(p, b...), nil
}

// stripNamespace drops a "/nsp," prefix.
func stripNamespace(p []byte) []byte {
	if len(p) == 0 || p[0] != '/' {
		return p
	}
	if i := bytes.IndexByte(p, ','); i >= 0 {
		return p[i+1:]
	}
	return nil
}

// decodeEvent parses the body of an EVENT packet: an optional ack id
// followed by a JSON array whose first element is the event name.
func decodeEvent(p []byte) (string, json.RawMessage, error) {
	p = stripNamespace(p)
	for len(p) > 0 && p[0] >= '0' && p[0] <= '9' {
		p = p[1:]
	}

	var args []json.RawMessage
	if err := json.Unmarshal(p, &args); err != nil {
		return "", nil, fmt.Errorf("decode event: %w", err)
	}
	if len(args) == 0 {
		return "", nil, fmt.Errorf("decode event: empty argument list")
	}

	var name string
	if err := json.Unmarshal(args[0], &name); err != nil {
		return "", nil, fmt.Errorf("decode event name: %w", err)
	}

	payload := json.RawMessage("null")
	if len(args) > 1 {
		payload = args[1]
	}
	return name, payload, nil
}
