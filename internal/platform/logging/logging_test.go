package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewHonorsLevel(t *testing.T) {
	t.Parallel()

	logger, err := New(Config{Level: "warn", Format: FormatConsole}, "web")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer Sync(logger)

	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info enabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("error disabled at warn level")
	}
}

func TestNewDefaultsToJSON(t *testing.T) {
	t.Parallel()

	logger, err := New(Config{Level: "info"}, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info disabled at info level")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Level: "loud"}, "web"); err == nil {
		t.Fatal("expected level error")
	}
	if _, err := New(Config{Level: "info", Format: "xml"}, "web"); err == nil {
		t.Fatal("expected format error")
	}
}
