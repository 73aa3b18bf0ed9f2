package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/vorldlabs/arenakit/internal/common"
	"github.com/vorldlabs/arenakit/pkg/result"
)

var (
	ErrLoginFailed = errors.New("login failed")
	ErrOTPFailed   = errors.New("OTP verification failed")
)

// otpFlags are the login response fields that ask for a second factor.
var otpFlags = []string{"requiresOTP", "requireOtp", "otpRequired"}

// Login prompts for credentials and authenticates.
//
// A hashed password is tried first. When the service rejects it with 401
// the plaintext password is sent once more, since some deployments store
// passwords unhashed. A response flagging an OTP requirement leads to a code
// prompt. The token ends up on both clients.
func (a *App) Login(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, 0, "Enter email", a.config.Email)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.login(ctx, email, string(password))
	if !res.Success {
		a.logger.Info(ctx, "login unsuccessful", "email", email, "status", res.Status)
		return fmt.Errorf("%w: %s", ErrLoginFailed, res.Error)
	}
	a.email = email

	if otpRequired(res.Data) {
		code, err := getSimpleText(a.reader, "Enter OTP code (6 digits)", os.Stdout)
		if err != nil {
			return err
		}
		if err := a.verifyOTP(ctx, code); err != nil {
			return err
		}
	}

	a.adoptToken()
	printlnFn("Login successful")
	return nil
}

func (a *App) login(ctx context.Context, email, password string) result.Result {
	res := a.auth.LoginWithEmail(ctx, email, password)
	if res.Success || res.Status != http.StatusUnauthorized || !a.config.HashPassword {
		return res
	}

	a.logger.Info(ctx, "hashed password rejected, retrying with plaintext")
	return a.auth.LoginWithCredentials(ctx, map[string]any{"email": email, "password": password}, "")
}

// VerifyOTP submits a one-time code for the email used at login.
func (a *App) VerifyOTP(ctx context.Context, args []string) error {
	code, err := a.argOrPrompt(args, 0, "Enter OTP code (6 digits)", "")
	if err != nil {
		return err
	}
	if err := a.verifyOTP(ctx, code); err != nil {
		return err
	}
	a.adoptToken()
	printlnFn("OTP verified")
	return nil
}

func (a *App) verifyOTP(ctx context.Context, code string) error {
	if a.email == "" {
		return fmt.Errorf("%w: no email to verify", common.ErrNotLoggedIn)
	}
	res := a.auth.VerifyOTP(ctx, a.email, code, "")
	if !res.Success {
		return fmt.Errorf("%w: %s", ErrOTPFailed, res.Error)
	}
	return nil
}

// Profile prints the profile of the logged-in user.
func (a *App) Profile(ctx context.Context, _ []string) error {
	return printResult("profile", a.auth.GetProfile(ctx))
}

// Token prints the claims carried by the bearer token. Signatures are not
// checked.
func (a *App) Token(_ context.Context, _ []string) error {
	claims, err := a.auth.TokenClaims()
	if err != nil {
		return err
	}
	printlnFn("subject:", claims.Subject)
	printlnFn("issuer: ", claims.Issuer)
	if !claims.IssuedAt.IsZero() {
		printlnFn("issued: ", claims.IssuedAt.Format(time.RFC3339))
	}
	if !claims.ExpiresAt.IsZero() {
		printlnFn("expires:", claims.ExpiresAt.Format(time.RFC3339), expiredLabel(claims.Expired(time.Now())))
	}
	return nil
}

func expiredLabel(expired bool) string {
	if expired {
		return "(expired)"
	}
	return ""
}

// Logout drops the token from both clients and closes the realtime
// connection.
func (a *App) Logout(_ context.Context, _ []string) error {
	a.auth.SetBearerToken("")
	a.arena.SetUserToken("")
	a.arena.Disconnect()
	a.email = ""
	printlnFn("Logged out")
	return nil
}

// adoptToken hands the token the auth client holds to the game client.
func (a *App) adoptToken() {
	a.arena.SetUserToken(a.auth.Token())
}

// otpRequired looks for a truthy OTP flag at the top level of a login
// response and inside its data envelope.
func otpRequired(data any) bool {
	obj, ok := data.(map[string]any)
	if !ok {
		return false
	}
	if hasOTPFlag(obj) {
		return true
	}
	inner, ok := obj["data"].(map[string]any)
	return ok && hasOTPFlag(inner)
}

func hasOTPFlag(obj map[string]any) bool {
	for _, key := range otpFlags {
		if truthy(obj[key]) {
			return true
		}
	}
	return false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}
