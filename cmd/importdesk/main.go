package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/vsinha/importdesk/pkg/interfaces/cli/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.Execute(ctx, commands.OpenTracker, os.Args[1:]); err != nil {
		commands.PrintError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
