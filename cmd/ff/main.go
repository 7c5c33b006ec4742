package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"focusflow/internal/cli"
)

func main() {
	// Ctrl+C stops "reminders run" and aborts slow commands
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.DefaultOpener)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
