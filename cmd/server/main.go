// Package main implements the entry point for the HanLearn API server,
// the backend for a Mandarin learning web app with structured lessons,
// mini-games, a social feed and private messaging.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.close()

	if err := app.serve(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
