// Dareloop - one dare at a time
//
// A terminal client for Dareloop challenge runs: work through a chain
// of real-world dares against the clock, attach proof, and post the
// finished run to the public feed.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dareloop/dareloop/internal/cli"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
