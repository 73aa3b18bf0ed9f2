package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Login(ctx context.Context, args []string) error
	VerifyOTP(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Token(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error

	Init(ctx context.Context, args []string) error
	Game(ctx context.Context, args []string) error
	Boost(ctx context.Context, args []string) error
	Stream(ctx context.Context, args []string) error
	Catalog(ctx context.Context, args []string) error
	Drop(ctx context.Context, args []string) error
	Connect(ctx context.Context, args []string) error
	Disconnect(ctx context.Context, args []string) error
	State(ctx context.Context, args []string) error

	ShowConfig(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the arena CLI.
//
// It reads a line from reader, parses the first token as the command and
// the rest as its arguments, and dispatches to methods on 'a'. Missing
// arguments are prompted for by the handlers themselves. The loop exits on
// EOF, when ctx is done, or when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Always:
//	  - help                                     show available commands
//	  - login [email]                            authenticate (OTP prompted if needed)
//	  - config                                   print the resolved configuration
//	  - exit | quit                              leave the program
//
//	Logged in:
//	  - otp [code]                               verify a one-time code
//	  - profile                                  show the user profile
//	  - token                                    show the bearer token claims
//	  - init [streamUrl]                         initialize a game
//	  - game [gameId]                            show game details
//	  - boost [gameId playerId amount user]      boost a player
//	  - stream [gameId newUrl oldUrl]            move a game to another stream
//	  - catalog                                  list droppable items
//	  - drop [gameId itemId target]              drop an item on a player
//	  - connect [url] | disconnect | state       realtime connection
//	  - logout                                   forget the token
//
// Handler errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("arena %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: otp, profile, token, init, game, boost, stream, catalog, drop, connect, disconnect, state, config, logout, exit")
			} else {
				printlnFn("Available commands: login, config, exit")
			}

		case "login":
			cmdErr = a.Login(ctx, args)

		case "config":
			cmdErr = a.ShowConfig(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if !a.isLoggedIn() {
				if _, known := loggedInCommands[cmd]; known {
					printlnFn("Please log in first")
					continue
				}
				printlnFn("Unknown command:", cmd)
				continue
			}
			cmdErr = dispatchLoggedIn(ctx, a, cmd, args)
		}

		if cmdErr != nil {
			printlnFn("error:", cmdErr)
		}
	}
}

var loggedInCommands = map[string]struct{}{
	"otp": {}, "profile": {}, "token": {}, "logout": {},
	"init": {}, "game": {}, "boost": {}, "stream": {}, "catalog": {}, "drop": {},
	"connect": {}, "disconnect": {}, "state": {},
}

func dispatchLoggedIn(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "otp":
		return a.VerifyOTP(ctx, args)
	case "profile":
		return a.Profile(ctx, args)
	case "token":
		return a.Token(ctx, args)
	case "logout":
		return a.Logout(ctx, args)
	case "init":
		return a.Init(ctx, args)
	case "game":
		return a.Game(ctx, args)
	case "boost":
		return a.Boost(ctx, args)
	case "stream":
		return a.Stream(ctx, args)
	case "catalog":
		return a.Catalog(ctx, args)
	case "drop":
		return a.Drop(ctx, args)
	case "connect":
		return a.Connect(ctx, args)
	case "disconnect":
		return a.Disconnect(ctx, args)
	case "state":
		return a.State(ctx, args)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
