package web

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cryals/art-archive/internal/platform/logging"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8090" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8090")
	}
	if cfg.AssetsDir != "assets" {
		t.Fatalf("AssetsDir = %q, want %q", cfg.AssetsDir, "assets")
	}
	if cfg.RedisURL != "" {
		t.Fatalf("RedisURL = %q, want empty", cfg.RedisURL)
	}
	if cfg.RedisPrefix != "archive:thumbs" {
		t.Fatalf("RedisPrefix = %q, want %q", cfg.RedisPrefix, "archive:thumbs")
	}
	if !cfg.Watch {
		t.Fatal("Watch = false, want true")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != logging.FormatJSON {
		t.Fatalf("Log = %+v, want info/json", cfg.Log)
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("ARCHIVE_WEB_HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("ARCHIVE_ASSETS_DIR", "/srv/archive")
	t.Setenv("ARCHIVE_WATCH", "false")
	t.Setenv("ARCHIVE_LOG_FORMAT", "console")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "0.0.0.0:9000" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "0.0.0.0:9000")
	}
	if cfg.AssetsDir != "/srv/archive" {
		t.Fatalf("AssetsDir = %q, want %q", cfg.AssetsDir, "/srv/archive")
	}
	if cfg.Watch {
		t.Fatal("Watch = true, want false")
	}
	if cfg.Log.Format != logging.FormatConsole {
		t.Fatalf("Log.Format = %q, want console", cfg.Log.Format)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ARCHIVE_WEB_HTTP_ADDR", "0.0.0.0:9000")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-http-addr", "127.0.0.1:9002",
		"-assets", "./fixtures",
		"-redis-url", "redis://cache:6379/1",
		"-watch=false",
		"-log-level", "debug",
	})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:9002")
	}
	if cfg.AssetsDir != "./fixtures" {
		t.Fatalf("AssetsDir = %q, want %q", cfg.AssetsDir, "./fixtures")
	}
	if cfg.RedisURL != "redis://cache:6379/1" {
		t.Fatalf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.Watch {
		t.Fatal("Watch = true, want false")
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestParseConfigRejectsUnknownFlag(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	if _, err := ParseConfig(fs, []string{"-bogus"}); err == nil {
		t.Fatal("expected unknown flag error")
	}
}

func testConfig(t *testing.T) Config {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "crime_scene"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "crime_scene", "01.png"), []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return Config{
		HTTPAddr:  "127.0.0.1:0",
		AssetsDir: root,
		Watch:     true,
		Log:       logging.Config{Level: "error", Format: logging.FormatJSON},
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Setenv("ARCHIVE_OTEL_ENDPOINT", "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, testConfig(t))
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRunRejectsBadLogLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.Level = "chatty"
	if err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected log level error")
	}
}

func TestRunRejectsBadRedisURL(t *testing.T) {
	t.Setenv("ARCHIVE_OTEL_ENDPOINT", "")

	cfg := testConfig(t)
	cfg.RedisURL = "not-a-redis-url"
	err := Run(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "thumbnail cache") {
		t.Fatalf("Run() error = %v, want thumbnail cache error", err)
	}
}

func TestRunRejectsEmptyAssetRoot(t *testing.T) {
	t.Setenv("ARCHIVE_OTEL_ENDPOINT", "")

	cfg := testConfig(t)
	cfg.AssetsDir = " "
	err := Run(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "init web server") {
		t.Fatalf("Run() error = %v, want init error", err)
	}
}
