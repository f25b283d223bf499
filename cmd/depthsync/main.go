package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"depthsync/internal/failure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when the run could not proceed at all (bad configuration,
// missing exiv2, another run holding the lock) and 1 for any other failure.
func exitCode(err error) int {
	if failure.Fatal(err) {
		return 2
	}
	return 1
}
