package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/vorldlabs/arenakit/internal/flagx"
)

var configFlags = []string{"-a", "-g", "-s", "-app", "-game", "-t", "-no-hash", "-debug", "-log"}

// parseFlags populates Config fields from command-line flags.
//
// Only the flags listed in configFlags are considered; os.Args is filtered
// with flagx.FilterArgs first so the -c and -e stages do not trip the parser.
// Invalid values panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], configFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.AuthServerURL, "a", cfg.AuthServerURL, "auth service base URL")
	fs.StringVar(&cfg.GameAPIURL, "g", cfg.GameAPIURL, "arena REST base URL")
	fs.StringVar(&cfg.ArenaServerURL, "s", cfg.ArenaServerURL, "arena realtime endpoint")
	fs.StringVar(&cfg.AppID, "app", cfg.AppID, "application identifier")
	fs.StringVar(&cfg.ArenaGameID, "game", cfg.ArenaGameID, "arena arcade game identifier")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	noHash := fs.Bool("no-hash", !cfg.HashPassword, "send passwords in plaintext")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	fs.StringVar(&cfg.LogFormat, "log", cfg.LogFormat, "log format: text, json or zap")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Sub-second timeouts from JSON survive unless -t is given explicitly.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	cfg.HashPassword = !*noHash
}
