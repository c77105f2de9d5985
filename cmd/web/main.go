// Package main starts the browser-facing archive desktop.
//
// The process serves the desktop shell, the asset API, thumbnails and sound
// cues, and follows the asset root so cached thumbnails track file changes.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	webcmd "github.com/cryals/art-archive/internal/cmd/web"
	"github.com/cryals/art-archive/internal/platform/config"
)

func main() {
	cfg, err := webcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitCodef(config.ExitUsage, "archive-web: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := webcmd.Run(ctx, cfg); err != nil {
		stop()
		config.Exitf("archive-web: %v", err)
	}
}
