package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vorldlabs/arenakit/internal/config"
	"github.com/vorldlabs/arenakit/pkg/logging"
)

// NewLogger builds the logger selected by c.LogFormat. The returned func
// flushes buffered entries and must be called before exit.
func NewLogger(c *config.Config, w io.Writer) (logging.Logger, func(), error) {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}

	switch c.LogFormat {
	case config.LogFormatText, "":
		return logging.NewTextLogger(w, level, false), func() {}, nil
	case config.LogFormatJSON:
		return logging.NewTextLogger(w, level, true), func() {}, nil
	case config.LogFormatZap:
		z := logging.NewZapWriter(w, c.Debug)
		return z, func() { _ = z.Sync() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownLogFormat, c.LogFormat)
	}
}
