package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vorldlabs/arenakit/internal/config"
	"github.com/vorldlabs/arenakit/pkg/arena"
	"github.com/vorldlabs/arenakit/pkg/auth"
	"github.com/vorldlabs/arenakit/pkg/logging"
	"github.com/vorldlabs/arenakit/pkg/result"
)

// authService is the part of *auth.Client the CLI drives.
type authService interface {
	LoginWithEmail(ctx context.Context, email, password string) result.Result
	LoginWithCredentials(ctx context.Context, payload map[string]any, path string) result.Result
	VerifyOTP(ctx context.Context, email, code, path string) result.Result
	GetProfile(ctx context.Context) result.Result
	Token() string
	SetBearerToken(token string)
	TokenClaims() (*auth.TokenClaims, error)
}

// gameService is the part of *arena.Client the CLI drives.
type gameService interface {
	InitializeGame(ctx context.Context, streamURL string) result.Result
	ConnectWebsocket(ctx context.Context, wsURL string) bool
	GetGameDetails(ctx context.Context, gameID string) result.Result
	BoostPlayer(ctx context.Context, gameID, playerID string, amount int, username string) result.Result
	UpdateStreamURL(ctx context.Context, gameID, newURL, oldURL string) result.Result
	GetItemsCatalog(ctx context.Context) result.Result
	DropImmediateItem(ctx context.Context, gameID, itemID, targetPlayer string) result.Result
	Disconnect()
	SetUserToken(token string)
	GameState() map[string]any
	Connected() bool
	On(kind arena.EventKind, h arena.Handler) error
}

type App struct {
	config *config.Config
	auth   authService
	arena  gameService
	logger logging.Logger
	reader *bufio.Reader
	email  string
}

// NewApp builds both clients from c. A preconfigured access token is
// attached to both right away.
func NewApp(c *config.Config, logger logging.Logger) *App {
	logger = logging.OrNop(logger)

	authClient := auth.New(auth.Config{
		BaseURL:           c.AuthServerURL,
		AppID:             c.AppID,
		Timeout:           c.RequestTimeout,
		PlaintextPassword: !c.HashPassword,
		Logger:            logger,
	})
	if c.AccessToken != "" {
		authClient.SetBearerToken(c.AccessToken)
	}

	arenaClient := arena.New(arena.Config{
		BaseAPIURL:  c.GameAPIURL,
		SocketURL:   c.ArenaServerURL,
		AppID:       c.AppID,
		ArenaGameID: c.ArenaGameID,
		UserToken:   c.AccessToken,
		Logger:      logger,
	})

	a := &App{
		config: c,
		auth:   authClient,
		arena:  arenaClient,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		email:  c.Email,
	}
	a.subscribeEvents()
	return a
}

// Run starts the REPL and closes the realtime connection when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.arena.Disconnect()
	a.Root(ctx)
}

// Root greets the user and blocks in the REPL until exit or EOF.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the Vorld arena CLI (type 'help' for commands)")
	if a.isLoggedIn() {
		printlnFn("Using the configured access token")
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.auth.Token() != ""
}

func (a *App) getStatus() string {
	s := ""
	if a.isLoggedIn() {
		s = "anonymous"
		if a.email != "" {
			s = a.email
		}
	}
	if a.arena.Connected() {
		if s != "" {
			s += " "
		}
		s += "live"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// subscribeEvents prints every realtime event as it arrives.
func (a *App) subscribeEvents() {
	for _, kind := range arena.Events {
		name := kind
		if err := a.arena.On(kind, func(payload json.RawMessage) {
			printlnFn(fmt.Sprintf("[evt] %s: %s", name, payload))
		}); err != nil {
			a.logger.Warn(context.Background(), "event subscription failed", "event", name, "error", err)
		}
	}
}
