package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vorldlabs/arenakit/internal/cli"
	"github.com/vorldlabs/arenakit/internal/config"
)

func main() {

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	logger, flush, err := cli.NewLogger(cfg, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cfg, logger)
	app.Run(ctx)

}
