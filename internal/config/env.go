package config

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvAuthServerURL  = "NEXT_PUBLIC_AUTH_SERVER_URL"
	EnvGameAPIURL     = "NEXT_PUBLIC_GAME_API_URL"
	EnvArenaServerURL = "NEXT_PUBLIC_ARENA_SERVER_URL"
	EnvAppID          = "NEXT_PUBLIC_VORLD_APP_ID"
	EnvArenaGameID    = "NEXT_PUBLIC_ARENA_GAME_ID"
	EnvAccessToken    = "TEST_ACCESS_TOKEN"
	EnvEmail          = "TEST_EMAIL"
	EnvDebug          = "ARENA_DEBUG"
)

// lookupFunc has the shape of os.LookupEnv.
type lookupFunc func(key string) (string, bool)

// parseDotenv overlays cfg with the variables defined in the dotenv file at
// path. The file is read without touching the process environment, so real
// environment variables applied later still win. A missing file is skipped;
// any other read or syntax error panics.
func parseDotenv(cfg *Config, path string) {
	if path == "" {
		return
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		panic(err)
	}
	parseEnv(cfg, func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	})
}

// parseEnv overlays cfg with the non-empty variables lookup knows about.
func parseEnv(cfg *Config, lookup lookupFunc) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	set(&cfg.AuthServerURL, EnvAuthServerURL)
	set(&cfg.GameAPIURL, EnvGameAPIURL)
	set(&cfg.ArenaServerURL, EnvArenaServerURL)
	set(&cfg.AppID, EnvAppID)
	set(&cfg.ArenaGameID, EnvArenaGameID)
	set(&cfg.AccessToken, EnvAccessToken)
	set(&cfg.Email, EnvEmail)

	if v, ok := lookup(EnvDebug); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}
