// Package auth is a client for the Vorld authentication service.
//
// # Overview
//
// Client wraps a session.Session and exposes the service endpoints:
//
//   - LoginWithEmail       POST /auth/login with {email, password}
//   - LoginWithCredentials POST {path} with a caller-supplied payload
//   - VerifyOTP            POST /auth/verify-otp with {email, otp}
//   - GetProfile           GET  /user/profile
//
// Every operation returns a result.Result and never panics; transport errors
// and error statuses are reported as failure results.
//
// # Tokens
//
// Successful login and OTP responses are scanned for a bearer token (see
// TokenFields and DetectToken). The first match becomes the client token and
// is attached as "Authorization: Bearer <token>" to all later calls.
// SetBearerToken overrides it; an empty token removes the header.
//
// # Passwords
//
// LoginWithEmail sends the hex SHA-256 digest of the password unless the
// client is configured with PlaintextPassword. Retrying with the other form
// is a caller decision.
package auth
