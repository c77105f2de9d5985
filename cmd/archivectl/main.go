// Package main runs the archivectl command line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cryals/art-archive/internal/cmd/archivectl"
	"github.com/cryals/art-archive/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := archivectl.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		config.Exitf("archivectl: %v", err)
	}
}
