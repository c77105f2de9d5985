// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"

	platformcmd "github.com/cryals/art-archive/internal/platform/cmd"
	"github.com/cryals/art-archive/internal/platform/logging"
	"github.com/cryals/art-archive/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	AssetsDir string `env:"ARCHIVE_ASSETS_DIR"    envDefault:"assets"`
	HTTPAddr  string `env:"ARCHIVE_MCP_HTTP_ADDR" envDefault:"localhost:8091"`
	Transport string `env:"ARCHIVE_MCP_TRANSPORT" envDefault:"stdio"`
	Watch     bool   `env:"ARCHIVE_WATCH"         envDefault:"true"`
	Log       logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "Asset root holding dossier and gallery folders")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "Notify resource subscribers when the asset root changes")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug, info, warn or error")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter. Logs go to stderr so stdio stays clean.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.Log, platformcmd.ServiceMCP)
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	return platformcmd.RunService(ctx, platformcmd.ServiceMCP, platformcmd.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return service.Run(ctx, service.Config{
			AssetsDir: cfg.AssetsDir,
			Transport: service.TransportKind(cfg.Transport),
			HTTPAddr:  cfg.HTTPAddr,
			Watch:     cfg.Watch,
			Logger:    logger,
		})
	})
}
