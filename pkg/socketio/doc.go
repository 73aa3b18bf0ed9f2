// Package socketio is a small Socket.IO v4 client that runs over a single
// WebSocket (Engine.IO v4, websocket transport only).
//
// It covers what a subscriber needs: the Engine.IO open handshake, ping/pong
// keepalive, the namespace CONNECT carrying an auth object, and delivery of
// EVENT packets. Each event reaches OnEvent with its name and first argument,
// verbatim, on the connection's read goroutine and in arrival order.
// Emitting events, acknowledgements and binary attachments are not supported.
//
// Dial returns once the WebSocket and Engine.IO handshakes have completed;
// the server acknowledges the namespace asynchronously and Connected reports
// it afterwards.
//
// When the transport drops without a DISCONNECT or Engine.IO close from the
// server, the Conn reconnects with exponential backoff (1s doubling to 5s,
// 50% jitter, unlimited attempts by default) and repeats the namespace
// CONNECT with the same auth. A CONNECT_ERROR is final: the Conn reports
// Rejected, shuts down and closes Done.
package socketio
