package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/vorldlabs/arenakit/internal/common"
)

// Init registers a stream and reports whether the realtime connection came
// up along with it.
func (a *App) Init(ctx context.Context, args []string) error {
	streamURL, err := a.argOrPrompt(args, 0, "Enter stream URL", "")
	if err != nil {
		return err
	}
	if err := printResult("init", a.arena.InitializeGame(ctx, streamURL)); err != nil {
		return err
	}
	if a.arena.Connected() {
		printlnFn("realtime: connected")
	}
	return nil
}

// Game prints the details of a game, by default the current one.
func (a *App) Game(ctx context.Context, args []string) error {
	gameID, err := a.gameID(args, 0)
	if err != nil {
		return err
	}
	return printResult("game", a.arena.GetGameDetails(ctx, gameID))
}

// Boost spends an amount on a player: boost <gameId> <playerId> <amount> <username>.
func (a *App) Boost(ctx context.Context, args []string) error {
	gameID, err := a.gameID(args, 0)
	if err != nil {
		return err
	}
	playerID, err := a.argOrPrompt(args, 1, "Enter player ID", "")
	if err != nil {
		return err
	}
	rawAmount, err := a.argOrPrompt(args, 2, "Enter amount", "")
	if err != nil {
		return err
	}
	amount, err := strconv.Atoi(rawAmount)
	if err != nil || amount <= 0 {
		return fmt.Errorf("%w: amount %q", common.ErrInvalidArgument, rawAmount)
	}
	username, err := a.argOrPrompt(args, 3, "Enter username", a.email)
	if err != nil {
		return err
	}
	return printResult("boost", a.arena.BoostPlayer(ctx, gameID, playerID, amount, username))
}

// Stream moves a game to a new stream: stream <gameId> <newUrl> <oldUrl>.
func (a *App) Stream(ctx context.Context, args []string) error {
	gameID, err := a.gameID(args, 0)
	if err != nil {
		return err
	}
	newURL, err := a.argOrPrompt(args, 1, "Enter new stream URL", "")
	if err != nil {
		return err
	}
	oldURL, err := a.argOrPrompt(args, 2, "Enter old stream URL", a.stateString("streamUrl"))
	if err != nil {
		return err
	}
	return printResult("stream", a.arena.UpdateStreamURL(ctx, gameID, newURL, oldURL))
}

// Catalog lists the items that can be dropped.
func (a *App) Catalog(ctx context.Context, _ []string) error {
	return printResult("catalog", a.arena.GetItemsCatalog(ctx))
}

// Drop drops an item on a player: drop <gameId> <itemId> <targetPlayer>.
func (a *App) Drop(ctx context.Context, args []string) error {
	gameID, err := a.gameID(args, 0)
	if err != nil {
		return err
	}
	itemID, err := a.argOrPrompt(args, 1, "Enter item ID", "")
	if err != nil {
		return err
	}
	target, err := a.argOrPrompt(args, 2, "Enter target player", "")
	if err != nil {
		return err
	}
	return printResult("drop", a.arena.DropImmediateItem(ctx, gameID, itemID, target))
}

// ErrRealtimeUnavailable is returned by Connect when no connection attempt
// could be issued.
var ErrRealtimeUnavailable = errors.New("realtime connection could not be started")

// Connect opens the realtime connection, to the configured endpoint unless
// a URL is given.
func (a *App) Connect(ctx context.Context, args []string) error {
	wsURL := ""
	if len(args) > 0 {
		wsURL = args[0]
	}
	if !a.arena.ConnectWebsocket(ctx, wsURL) {
		target := wsURL
		if target == "" {
			target = "configured endpoint"
		}
		return fmt.Errorf("%w: %s", ErrRealtimeUnavailable, target)
	}
	printlnFn("realtime: connecting")
	return nil
}

// Disconnect closes the realtime connection and forgets the current game.
func (a *App) Disconnect(_ context.Context, _ []string) error {
	a.arena.Disconnect()
	printlnFn("Disconnected")
	return nil
}

// State prints the current game state and connection status.
func (a *App) State(_ context.Context, _ []string) error {
	printlnFn("connected:", a.arena.Connected())
	state := a.arena.GameState()
	if state == nil {
		printlnFn("No game initialized")
		return nil
	}
	printlnFn("state:", prettyJSON(state))
	return nil
}

// gameID resolves a game id argument, offering the current game's id as
// the default answer.
func (a *App) gameID(args []string, i int) (string, error) {
	return a.argOrPrompt(args, i, "Enter game ID", a.stateString("gameId"))
}

func (a *App) stateString(key string) string {
	s, _ := a.arena.GameState()[key].(string)
	return s
}
