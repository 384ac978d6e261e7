package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/pairscan/cmd/analyzer/cmd"
)

func main() {
	// 1. Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Setup graceful shutdown
	setupSignalHandling(cancel)

	if err := cmd.Execute(ctx); err != nil {
		os.Exit(1)
	}
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
	}()
}
