package config

import (
	"encoding/json"
	"os"

	"github.com/vorldlabs/arenakit/internal/flagx"
	"github.com/vorldlabs/arenakit/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish an absent key from a zero value, so a partial file only
// overrides what it names.
type JsonConfig struct {
	AuthServerURL  *string         `json:"auth_server_url"`
	GameAPIURL     *string         `json:"game_api_url"`
	ArenaServerURL *string         `json:"arena_server_url"`
	AppID          *string         `json:"app_id"`
	ArenaGameID    *string         `json:"arena_game_id"`
	Email          *string         `json:"email"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	HashPassword   *bool           `json:"hash_password"`
	Debug          *bool           `json:"debug"`
	LogFormat      *string         `json:"log_format"`
}

// parseJson overlays cfg with the JSON file named by -c or -config. Without
// either flag nothing happens. Read or unmarshal errors panic.
//
// Access tokens are deliberately not accepted from the file.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc JsonConfig) apply(cfg *Config) {
	setString(&cfg.AuthServerURL, jc.AuthServerURL)
	setString(&cfg.GameAPIURL, jc.GameAPIURL)
	setString(&cfg.ArenaServerURL, jc.ArenaServerURL)
	setString(&cfg.AppID, jc.AppID)
	setString(&cfg.ArenaGameID, jc.ArenaGameID)
	setString(&cfg.Email, jc.Email)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.HashPassword != nil {
		cfg.HashPassword = *jc.HashPassword
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
