// Package result holds the outcome type returned by every network operation
// of the auth and arena clients, together with the helpers that turn raw HTTP
// responses into that outcome.
//
// # Outcome
//
// Result is a tagged success/failure value. Success is the discriminant:
// Data is only meaningful when it is true and Error only when it is false.
// Results are built with OK, Fail or FailStatus and never mutated afterwards.
//
// # Error normalization
//
// ExtractError renders a failed response as a human-readable string. It looks
// for a message in the JSON body (see MessageFields) and otherwise falls back
// to a truncated copy of the raw text. It never fails.
//
// # Bodies
//
// DecodeBody tolerates malformed JSON by returning a {"raw": text}
// placeholder, and Unwrap strips the conventional {"data": ...} envelope.
package result
