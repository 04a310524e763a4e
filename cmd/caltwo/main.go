// Command caltwo is a button-driven calculator with a long-lived session.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rbright/caltwo/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := app.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
