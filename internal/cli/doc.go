// Package cli provides the interactive arena command-line client.
//
// It wires configuration, the auth client and the arena game client behind a
// small REPL. Typical flow: log in (hashed password first, plaintext on a 401,
// then an OTP prompt when the service asks for one), initialize a game for a
// stream, and watch realtime events scroll by as "[evt] name: payload" lines.
//
// Key features:
//   - login / otp / profile / token / logout
//   - init, game, boost, stream, catalog, drop
//   - connect / disconnect / state for the realtime connection
//   - config to print the resolved configuration
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
