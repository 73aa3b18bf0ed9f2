package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vorldlabs/arenakit/internal/flagx"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
	LogFormatZap  = "zap"
)

var ErrUnknownLogFormat = errors.New("unknown log format")

// Config holds runtime settings for the arena CLI.
type Config struct {
	AuthServerURL  string
	GameAPIURL     string
	ArenaServerURL string
	AppID          string
	ArenaGameID    string
	AccessToken    string
	Email          string
	HashPassword   bool
	RequestTimeout time.Duration
	Debug          bool
	LogFormat      string
}

// LoadDefaults populates c with the public Vorld endpoints.
func (c *Config) LoadDefaults() {
	c.AuthServerURL = "https://vorld-auth.onrender.com/api"
	c.GameAPIURL = "https://arena.vorld.com/api"
	c.ArenaServerURL = "wss://airdrop-arcade.onrender.com"
	c.HashPassword = true
	c.RequestTimeout = 15 * time.Second
	c.LogFormat = LogFormatText
}

// Validate reports settings no stage can repair on its own.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON, LogFormatZap:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogFormat, c.LogFormat)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// Redacted returns a copy safe to print: the access token keeps only its
// first and last four characters.
func (c Config) Redacted() Config {
	c.AccessToken = mask(c.AccessToken)
	return c
}

func mask(s string) string {
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}

// LoadConfig constructs a Config, applies defaults, then overlays the dotenv
// file, the process environment, JSON and command-line flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseDotenv(cfg, flagx.EnvFileFlags())
	parseEnv(cfg, os.LookupEnv)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
