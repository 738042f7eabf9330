// Command app serves the Great Lakes surf report API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to wire application: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "surf report stopped with error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
