package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/vorldlabs/arenakit/internal/config"
	"github.com/vorldlabs/arenakit/pkg/arena"
	"github.com/vorldlabs/arenakit/pkg/auth"
	"github.com/vorldlabs/arenakit/pkg/logging"
	"github.com/vorldlabs/arenakit/pkg/result"
)

type loginCall struct {
	email, password string
	payload         map[string]any
}

type fakeAuth struct {
	token string

	emailRes  result.Result
	emailTok  string
	credRes   result.Result
	credTok   string
	otpRes    result.Result
	otpTok    string
	profile   result.Result
	claims    *auth.TokenClaims
	claimsErr error

	emailCalls []loginCall
	credCalls  []loginCall
	otpCalls   [][2]string
}

func (f *fakeAuth) LoginWithEmail(_ context.Context, email, password string) result.Result {
	f.emailCalls = append(f.emailCalls, loginCall{email: email, password: password})
	if f.emailRes.Success && f.emailTok != "" {
		f.token = f.emailTok
	}
	return f.emailRes
}

func (f *fakeAuth) LoginWithCredentials(_ context.Context, payload map[string]any, _ string) result.Result {
	f.credCalls = append(f.credCalls, loginCall{payload: payload})
	if f.credRes.Success && f.credTok != "" {
		f.token = f.credTok
	}
	return f.credRes
}

func (f *fakeAuth) VerifyOTP(_ context.Context, email, code, _ string) result.Result {
	f.otpCalls = append(f.otpCalls, [2]string{email, code})
	if f.otpRes.Success && f.otpTok != "" {
		f.token = f.otpTok
	}
	return f.otpRes
}

func (f *fakeAuth) GetProfile(context.Context) result.Result { return f.profile }
func (f *fakeAuth) Token() string                            { return f.token }
func (f *fakeAuth) SetBearerToken(token string)              { f.token = token }
func (f *fakeAuth) TokenClaims() (*auth.TokenClaims, error)  { return f.claims, f.claimsErr }

type fakeGame struct {
	calls     []string
	res       result.Result
	state     map[string]any
	connected bool
	connectOK bool
	token     string
	handlers  map[arena.EventKind]arena.Handler
}

func (f *fakeGame) record(format string, args ...any) result.Result {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.res
}

func (f *fakeGame) InitializeGame(_ context.Context, streamURL string) result.Result {
	return f.record("init %s", streamURL)
}

func (f *fakeGame) ConnectWebsocket(_ context.Context, wsURL string) bool {
	f.record("connect %s", wsURL)
	return f.connectOK
}

func (f *fakeGame) GetGameDetails(_ context.Context, gameID string) result.Result {
	return f.record("game %s", gameID)
}

func (f *fakeGame) BoostPlayer(_ context.Context, gameID, playerID string, amount int, username string) result.Result {
	return f.record("boost %s %s %d %s", gameID, playerID, amount, username)
}

func (f *fakeGame) UpdateStreamURL(_ context.Context, gameID, newURL, oldURL string) result.Result {
	return f.record("stream %s %s %s", gameID, newURL, oldURL)
}

func (f *fakeGame) GetItemsCatalog(context.Context) result.Result { return f.record("catalog") }

func (f *fakeGame) DropImmediateItem(_ context.Context, gameID, itemID, target string) result.Result {
	return f.record("drop %s %s %s", gameID, itemID, target)
}

func (f *fakeGame) Disconnect() {
	f.record("disconnect")
	f.state = nil
	f.connected = false
}

func (f *fakeGame) SetUserToken(token string) { f.token = token }
func (f *fakeGame) GameState() map[string]any { return f.state }
func (f *fakeGame) Connected() bool           { return f.connected }
func (f *fakeGame) On(k arena.EventKind, h arena.Handler) error {
	if !k.Valid() {
		return arena.ErrUnknownEvent
	}
	if f.handlers == nil {
		f.handlers = map[arena.EventKind]arena.Handler{}
	}
	f.handlers[k] = h
	return nil
}

func newTestApp(fa *fakeAuth, fg *fakeGame) *App {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config: cfg,
		auth:   fa,
		arena:  fg,
		logger: logging.Nop{},
		reader: bufio.NewReader(strings.NewReader("")),
	}
}

// captureOutput redirects printlnFn and returns everything printed, one
// entry per call.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

// stubAnswers makes getSimpleText return answers in order and getPassword
// return password.
func stubAnswers(t *testing.T, password string, answers ...string) *[]string {
	t.Helper()
	var prompts []string
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
	return &prompts
}
