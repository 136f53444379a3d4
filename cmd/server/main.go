// Command server runs the vocabulary backend HTTP API.
//
// Configuration comes from CONFIG_PATH (default ./config.yaml) with
// environment variable overrides. The process stops cleanly on SIGINT or
// SIGTERM.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/kotoba-app/kotoba-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
