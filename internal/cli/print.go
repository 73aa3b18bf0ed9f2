package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vorldlabs/arenakit/pkg/result"
)

// printResult shows the data of a successful result and turns a failed one
// into an error labelled with the command.
func printResult(label string, res result.Result) error {
	if !res.Success {
		return fmt.Errorf("%s: %w", label, res.Err())
	}
	printlnFn(label+":", prettyJSON(res.Data))
	return nil
}

func prettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// ShowConfig prints the resolved configuration with the token masked.
func (a *App) ShowConfig(_ context.Context, _ []string) error {
	c := a.config.Redacted()
	printlnFn("auth server: ", c.AuthServerURL)
	printlnFn("game api:    ", c.GameAPIURL)
	printlnFn("arena socket:", c.ArenaServerURL)
	printlnFn("app id:      ", c.AppID)
	printlnFn("arena game:  ", c.ArenaGameID)
	printlnFn("email:       ", c.Email)
	printlnFn("token:       ", c.AccessToken)
	printlnFn("hash:        ", c.HashPassword)
	printlnFn("timeout:     ", c.RequestTimeout)
	printlnFn("log:         ", c.LogFormat, "debug:", c.Debug)
	return nil
}
