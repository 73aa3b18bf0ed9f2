package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vorldlabs/arenakit/internal/common"
	"github.com/vorldlabs/arenakit/pkg/arena"
	"github.com/vorldlabs/arenakit/pkg/result"
)

func TestArenaCommands_Arguments(t *testing.T) {
	tests := []struct {
		name    string
		run     func(a *App) error
		answers []string
		want    string
	}{
		{name: "init", run: func(a *App) error { return a.Init(context.Background(), []string{"https://s/live"}) }, want: "init https://s/live"},
		{name: "init prompts", run: func(a *App) error { return a.Init(context.Background(), nil) }, answers: []string{"https://s/p"}, want: "init https://s/p"},
		{name: "game", run: func(a *App) error { return a.Game(context.Background(), []string{"g9"}) }, want: "game g9"},
		{name: "game defaults to current", run: func(a *App) error { return a.Game(context.Background(), nil) }, answers: []string{""}, want: "game g1"},
		{name: "boost", run: func(a *App) error { return a.Boost(context.Background(), []string{"g1", "p1", "25", "alice"}) }, want: "boost g1 p1 25 alice"},
		{name: "stream", run: func(a *App) error { return a.Stream(context.Background(), []string{"g1", "new", "old"}) }, want: "stream g1 new old"},
		{name: "stream old url from state", run: func(a *App) error { return a.Stream(context.Background(), []string{"g1", "new"}) }, answers: []string{""}, want: "stream g1 new https://s/live"},
		{name: "catalog", run: func(a *App) error { return a.Catalog(context.Background(), nil) }, want: "catalog"},
		{name: "drop", run: func(a *App) error { return a.Drop(context.Background(), []string{"g1", "i1", "bob"}) }, want: "drop g1 i1 bob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t)
			stubAnswers(t, "", tt.answers...)

			fg := &fakeGame{
				res:   result.OK(map[string]any{"ok": true}),
				state: map[string]any{"gameId": "g1", "streamUrl": "https://s/live"},
			}
			a := newTestApp(&fakeAuth{token: "t"}, fg)

			require.NoError(t, tt.run(a))
			assert.Equal(t, []string{tt.want}, fg.calls)
		})
	}
}

func TestBoost_InvalidAmount(t *testing.T) {
	captureOutput(t)
	fg := &fakeGame{}
	a := newTestApp(&fakeAuth{}, fg)

	for _, amount := range []string{"ten", "0", "-5"} {
		err := a.Boost(context.Background(), []string{"g1", "p1", amount, "alice"})
		assert.ErrorIs(t, err, common.ErrInvalidArgument)
	}
	assert.Empty(t, fg.calls)
}

func TestArenaCommands_FailureBecomesError(t *testing.T) {
	captureOutput(t)
	fg := &fakeGame{res: result.FailStatus("Failed to drop item (status 502)", http.StatusBadGateway)}
	a := newTestApp(&fakeAuth{}, fg)

	err := a.Drop(context.Background(), []string{"g", "i", "p"})
	require.Error(t, err)
	assert.Equal(t, "drop: Failed to drop item (status 502)", err.Error())
}

func TestInit_ReportsConnection(t *testing.T) {
	out := captureOutput(t)
	fg := &fakeGame{res: result.OK(map[string]any{"gameId": "g"}), connected: true}
	a := newTestApp(&fakeAuth{}, fg)

	require.NoError(t, a.Init(context.Background(), []string{"s"}))
	assert.Contains(t, *out, "realtime: connected")
}

func TestConnectAndDisconnect(t *testing.T) {
	captureOutput(t)
	fg := &fakeGame{connectOK: true}
	a := newTestApp(&fakeAuth{}, fg)

	require.NoError(t, a.Connect(context.Background(), nil))
	require.NoError(t, a.Connect(context.Background(), []string{"wss://x"}))
	require.NoError(t, a.Disconnect(context.Background(), nil))
	assert.Equal(t, []string{"connect ", "connect wss://x", "disconnect"}, fg.calls)

	fg.connectOK = false
	err := a.Connect(context.Background(), nil)
	assert.ErrorIs(t, err, ErrRealtimeUnavailable)
	assert.ErrorContains(t, err, "configured endpoint")
	assert.ErrorContains(t, a.Connect(context.Background(), []string{"wss://y"}), "wss://y")
}

func TestState(t *testing.T) {
	out := captureOutput(t)
	fg := &fakeGame{}
	a := newTestApp(&fakeAuth{}, fg)

	require.NoError(t, a.State(context.Background(), nil))
	assert.Equal(t, []string{"connected: false", "No game initialized"}, *out)

	*out = nil
	fg.state = map[string]any{"gameId": "g1"}
	fg.connected = true
	require.NoError(t, a.State(context.Background(), nil))
	assert.Equal(t, []string{"connected: true", "state: {\n  \"gameId\": \"g1\"\n}"}, *out)
}

func TestSubscribeEvents_PrintsEveryEvent(t *testing.T) {
	out := captureOutput(t)
	fg := &fakeGame{}
	a := newTestApp(&fakeAuth{}, fg)

	a.subscribeEvents()

	require.Len(t, fg.handlers, len(arena.Events))
	for _, kind := range arena.Events {
		fg.handlers[kind](json.RawMessage(`{"n":1}`))
	}

	require.Len(t, *out, len(arena.Events))
	assert.Equal(t, `[evt] arena_countdown_started: {"n":1}`, (*out)[0])
	assert.Equal(t, `[evt] game_stopped: {"n":1}`, (*out)[len(arena.Events)-1])
}

func TestGetStatus(t *testing.T) {
	fa := &fakeAuth{}
	fg := &fakeGame{}
	a := newTestApp(fa, fg)

	assert.Equal(t, "", a.getStatus())

	fa.token = "t"
	assert.Equal(t, "(anonymous)", a.getStatus())

	a.email = "a@b"
	fg.connected = true
	assert.Equal(t, "(a@b live)", a.getStatus())
}

func TestShowConfig_MasksToken(t *testing.T) {
	out := captureOutput(t)
	a := newTestApp(&fakeAuth{}, &fakeGame{})
	a.config.AccessToken = "abcd1234567890wxyz"

	require.NoError(t, a.ShowConfig(context.Background(), nil))
	assert.Contains(t, *out, "token:        abcd**********wxyz")
	assert.NotContains(t, *out, "token:        abcd1234567890wxyz")
}
