// Package web parses web command flags and runs the archive desktop server.
package web

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/cryals/art-archive/internal/archive/watch"
	platformcmd "github.com/cryals/art-archive/internal/platform/cmd"
	"github.com/cryals/art-archive/internal/platform/logging"
	"github.com/cryals/art-archive/internal/services/web"
	"github.com/cryals/art-archive/internal/services/web/thumbs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr    string `env:"ARCHIVE_WEB_HTTP_ADDR" envDefault:"localhost:8090"`
	AssetsDir   string `env:"ARCHIVE_ASSETS_DIR"    envDefault:"assets"`
	AppName     string `env:"ARCHIVE_APP_NAME"`
	RedisURL    string `env:"ARCHIVE_REDIS_URL"`
	RedisPrefix string `env:"ARCHIVE_REDIS_PREFIX"  envDefault:"archive:thumbs"`
	Watch       bool   `env:"ARCHIVE_WATCH"         envDefault:"true"`
	Log         logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "Asset root holding dossier and gallery folders")
	fs.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for the shared thumbnail cache (empty keeps thumbnails in memory)")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "Watch the asset root and drop stale thumbnails")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "Log format: json or console")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and, when enabled, the asset watcher.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.Log, platformcmd.ServiceWeb)
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	return platformcmd.RunService(ctx, platformcmd.ServiceWeb, platformcmd.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return serve(ctx, cfg, logger)
	})
}

func serve(ctx context.Context, cfg Config, logger *zap.Logger) error {
	var cache thumbs.Cache
	if url := strings.TrimSpace(cfg.RedisURL); url != "" {
		redisCache, err := thumbs.NewRedisCache(ctx, url, cfg.RedisPrefix)
		if err != nil {
			return fmt.Errorf("init thumbnail cache: %w", err)
		}
		cache = redisCache
	}

	server, err := web.NewServer(web.Config{
		HTTPAddr:   cfg.HTTPAddr,
		AssetsDir:  cfg.AssetsDir,
		AppName:    cfg.AppName,
		ThumbCache: cache,
		Logger:     logger,
	})
	if err != nil {
		if closer, ok := cache.(io.Closer); ok {
			_ = closer.Close()
		}
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	var watcher *watch.Watcher
	if cfg.Watch {
		watcher, err = watch.New(server.Store(), server.InvalidateThumbs, watch.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("init asset watcher: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(gctx)
	})
	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
