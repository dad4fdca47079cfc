package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// A long enumeration or a watch loop should stop cleanly on Ctrl-C;
	// the context is checked between remote calls.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	Execute(ctx)
}
