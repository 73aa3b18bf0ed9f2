package cli

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vorldlabs/arenakit/internal/common"
	"github.com/vorldlabs/arenakit/pkg/auth"
	"github.com/vorldlabs/arenakit/pkg/result"
)

func TestLogin_HashedSuccess(t *testing.T) {
	captureOutput(t)
	stubAnswers(t, "secret", "alice@example.org")

	fa := &fakeAuth{emailRes: result.OK(map[string]any{"accessToken": "tok"}), emailTok: "tok"}
	fg := &fakeGame{}
	a := newTestApp(fa, fg)

	require.NoError(t, a.Login(context.Background(), nil))

	require.Len(t, fa.emailCalls, 1)
	assert.Equal(t, loginCall{email: "alice@example.org", password: "secret"}, fa.emailCalls[0])
	assert.Empty(t, fa.credCalls)
	assert.Empty(t, fa.otpCalls)
	assert.Equal(t, "tok", fg.token)
	assert.Equal(t, "alice@example.org", a.email)
}

func TestLogin_PlaintextRetryOn401(t *testing.T) {
	captureOutput(t)
	stubAnswers(t, "secret")

	fa := &fakeAuth{
		emailRes: result.FailStatus("Invalid credentials (status 401)", http.StatusUnauthorized),
		credRes:  result.OK(map[string]any{"token": "plain"}),
		credTok:  "plain",
	}
	fg := &fakeGame{}
	a := newTestApp(fa, fg)

	require.NoError(t, a.Login(context.Background(), []string{"bob@example.org"}))

	require.Len(t, fa.credCalls, 1)
	assert.Equal(t, map[string]any{"email": "bob@example.org", "password": "secret"}, fa.credCalls[0].payload)
	assert.Equal(t, "plain", fg.token)
}

func TestLogin_NoRetry(t *testing.T) {
	tests := []struct {
		name   string
		res    result.Result
		noHash bool
	}{
		{name: "server error", res: result.FailStatus("boom (status 500)", http.StatusInternalServerError)},
		{name: "transport error", res: result.Fail("dial tcp: refused")},
		{name: "already plaintext", res: result.FailStatus("nope (status 401)", http.StatusUnauthorized), noHash: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t)
			stubAnswers(t, "secret")

			fa := &fakeAuth{emailRes: tt.res}
			fg := &fakeGame{}
			a := newTestApp(fa, fg)
			a.config.HashPassword = !tt.noHash

			err := a.Login(context.Background(), []string{"x@example.org"})

			require.ErrorIs(t, err, ErrLoginFailed)
			assert.Contains(t, err.Error(), tt.res.Error)
			assert.Empty(t, fa.credCalls)
			assert.Empty(t, fg.token)
			assert.Empty(t, a.email)
		})
	}
}

func TestLogin_OTPFlow(t *testing.T) {
	for _, body := range []map[string]any{
		{"requiresOTP": true},
		{"requireOtp": "yes"},
		{"data": map[string]any{"otpRequired": 1.0}},
	} {
		captureOutput(t)
		prompts := stubAnswers(t, "secret", "123456")

		fa := &fakeAuth{
			emailRes: result.OK(body),
			otpRes:   result.OK(map[string]any{"data": map[string]any{"accessToken": "otp-tok"}}),
			otpTok:   "otp-tok",
		}
		fg := &fakeGame{}
		a := newTestApp(fa, fg)

		require.NoError(t, a.Login(context.Background(), []string{"c@example.org"}))

		assert.Equal(t, [][2]string{{"c@example.org", "123456"}}, fa.otpCalls)
		assert.Equal(t, "otp-tok", fg.token)
		assert.Len(t, *prompts, 1)
	}
}

func TestLogin_OTPFailure(t *testing.T) {
	captureOutput(t)
	stubAnswers(t, "secret", "000000")

	fa := &fakeAuth{
		emailRes: result.OK(map[string]any{"requiresOTP": true}),
		otpRes:   result.FailStatus("Invalid OTP (status 400)", http.StatusBadRequest),
	}
	a := newTestApp(fa, &fakeGame{})

	err := a.Login(context.Background(), []string{"c@example.org"})
	assert.ErrorIs(t, err, ErrOTPFailed)
}

func TestLogin_DefaultEmailFromConfig(t *testing.T) {
	captureOutput(t)
	prompts := stubAnswers(t, "pw", "")

	fa := &fakeAuth{emailRes: result.OK(map[string]any{})}
	a := newTestApp(fa, &fakeGame{})
	a.config.Email = "env@example.org"

	require.NoError(t, a.Login(context.Background(), nil))

	assert.Equal(t, "env@example.org", fa.emailCalls[0].email)
	assert.Equal(t, []string{"Enter email [env@example.org]"}, *prompts)
}

func TestLogin_EmptyEmail(t *testing.T) {
	captureOutput(t)
	stubAnswers(t, "pw", "")

	fa := &fakeAuth{}
	a := newTestApp(fa, &fakeGame{})

	assert.ErrorIs(t, a.Login(context.Background(), nil), common.ErrEmptyInput)
	assert.Empty(t, fa.emailCalls)
}

func TestVerifyOTP_RequiresEmail(t *testing.T) {
	captureOutput(t)
	a := newTestApp(&fakeAuth{}, &fakeGame{})
	assert.ErrorIs(t, a.VerifyOTP(context.Background(), []string{"1"}), common.ErrNotLoggedIn)
}

func TestProfile(t *testing.T) {
	out := captureOutput(t)
	fa := &fakeAuth{profile: result.OK(map[string]any{"name": "Alice"})}
	a := newTestApp(fa, &fakeGame{})

	require.NoError(t, a.Profile(context.Background(), nil))
	assert.Equal(t, []string{"profile: {\n  \"name\": \"Alice\"\n}"}, *out)

	fa.profile = result.FailStatus("Failed to get profile (status 401)", http.StatusUnauthorized)
	err := a.Profile(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, "profile: Failed to get profile (status 401)", err.Error())
}

func TestToken(t *testing.T) {
	out := captureOutput(t)
	exp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	fa := &fakeAuth{claims: &auth.TokenClaims{Subject: "u1", Issuer: "vorld", ExpiresAt: exp}}
	a := newTestApp(fa, &fakeGame{})

	require.NoError(t, a.Token(context.Background(), nil))
	assert.Contains(t, *out, "subject: u1")
	assert.Contains(t, *out, "expires: 2020-01-02T03:04:05Z (expired)")

	fa.claims, fa.claimsErr = nil, auth.ErrNoToken
	assert.ErrorIs(t, a.Token(context.Background(), nil), auth.ErrNoToken)
}

func TestLogout(t *testing.T) {
	captureOutput(t)
	fa := &fakeAuth{token: "tok"}
	fg := &fakeGame{token: "tok", state: map[string]any{"gameId": "g"}}
	a := newTestApp(fa, fg)
	a.email = "a@b"

	require.NoError(t, a.Logout(context.Background(), nil))

	assert.Empty(t, fa.token)
	assert.Empty(t, fg.token)
	assert.Nil(t, fg.state)
	assert.Empty(t, a.email)
	assert.False(t, a.isLoggedIn())
}

func TestOTPRequired(t *testing.T) {
	assert.False(t, otpRequired(nil))
	assert.False(t, otpRequired([]any{true}))
	assert.False(t, otpRequired(map[string]any{"requiresOTP": false, "otpRequired": ""}))
	assert.False(t, otpRequired(map[string]any{"data": "requiresOTP"}))
	assert.True(t, otpRequired(map[string]any{"otpRequired": true}))
}
