package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/RassulYunussov/rwsclient/cmd/rwsctl/app"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cmd := app.NewRootCommand()
	cmd.Version = version
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
