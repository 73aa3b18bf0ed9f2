// Package arena is a client for the Vorld arena game service.
//
// Client combines REST calls against the game API with a realtime
// connection that delivers server-pushed game events.
//
// REST operations (InitializeGame, GetGameDetails, BoostPlayer,
// UpdateStreamURL, GetItemsCatalog, DropImmediateItem) return a
// result.Result and never panic. Successful bodies are unwrapped from the
// conventional {"data": ...} envelope when present.
//
// InitializeGame keeps the returned game object as the current game state
// and, when it names a websocketUrl, opens the realtime connection to it.
// Disconnect closes the connection and forgets the game state.
//
// Realtime events form a closed set (see Events). Each kind has at most one
// Handler, assigned with On; payloads are forwarded verbatim in arrival order
// on the transport's goroutine.
package arena
