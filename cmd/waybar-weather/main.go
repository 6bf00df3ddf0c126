package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/i474232898/waybar-weather/internal/cli"
)

func main() {
	// Wait for termination signal between cycles.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCommand(os.Stdout, cli.DefaultClient)
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Errorf("waybar-weather: %v", err)
		stop()
		os.Exit(1)
	}
}
