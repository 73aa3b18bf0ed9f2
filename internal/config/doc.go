// Package config loads runtime configuration for the arena CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file, -e/-env or ".env" in the working directory. A missing
//     file is not an error.
//  3. The process environment, which wins over the dotenv file.
//  4. Optional JSON file (see parseJson) selected via -c or -config.
//  5. Command-line flags (see parseFlags), which override earlier values.
//
// Environment variables
//
//	NEXT_PUBLIC_AUTH_SERVER_URL   auth service base URL
//	NEXT_PUBLIC_GAME_API_URL      arena REST base URL
//	NEXT_PUBLIC_ARENA_SERVER_URL  arena realtime endpoint
//	NEXT_PUBLIC_VORLD_APP_ID      application identifier
//	NEXT_PUBLIC_ARENA_GAME_ID     arena arcade game identifier
//	TEST_ACCESS_TOKEN             bearer token to start with
//	TEST_EMAIL                    default login email
//	ARENA_DEBUG                   enable debug logging (strconv.ParseBool)
//
// Supported flags
//
//	-a string     auth service base URL
//	-g string     arena REST base URL
//	-s string     arena realtime endpoint
//	-app string   application identifier
//	-game string  arena arcade game identifier
//	-t int        request timeout (seconds)
//	-no-hash      send passwords in plaintext
//	-debug        enable debug logging
//	-log string   log format: text, json or zap
//
// # JSON schema
//
// Durations use timex.Duration, so "15s" and integer nanoseconds both work.
// Absent keys leave earlier values untouched:
//
//	{
//	  "auth_server_url": "https://vorld-auth.onrender.com/api",
//	  "game_api_url": "https://arena.vorld.com/api",
//	  "arena_server_url": "wss://airdrop-arcade.onrender.com",
//	  "app_id": "app",
//	  "arena_game_id": "game",
//	  "request_timeout": "15s",
//	  "hash_password": true,
//	  "debug": false,
//	  "log_format": "text"
//	}
package config
