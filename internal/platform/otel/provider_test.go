package otel_test

import (
	"context"
	"testing"

	"github.com/cryals/art-archive/internal/platform/otel"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv(otel.EnvEndpoint, "")
	t.Setenv(otel.EnvEnabled, "")

	shutdown, err := otel.Setup(context.Background(), "web")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupNoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv(otel.EnvEndpoint, "http://localhost:4318")
	t.Setenv(otel.EnvEnabled, "FALSE")

	shutdown, err := otel.Setup(context.Background(), "web")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should ignore cancelled context: %v", err)
	}
}

func TestSetupRejectsBadSampleRatio(t *testing.T) {
	t.Setenv(otel.EnvSampleRatio, "often")

	if _, err := otel.Setup(context.Background(), "web"); err == nil {
		t.Fatal("expected parse error for non-numeric sample ratio")
	}
}

func TestSetupWithCreatesProvider(t *testing.T) {
	// 192.0.2.0/24 is reserved for documentation; nothing answers there.
	settings := otel.Settings{Endpoint: "http://192.0.2.1:4318", SampleRatio: 0.5}
	shutdown, err := otel.SetupWith(context.Background(), "mcp", settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSettingsActive(t *testing.T) {
	cases := []struct {
		settings otel.Settings
		want     bool
	}{
		{settings: otel.Settings{}, want: false},
		{settings: otel.Settings{Endpoint: " "}, want: false},
		{settings: otel.Settings{Endpoint: "http://collector:4318"}, want: true},
		{settings: otel.Settings{Endpoint: "http://collector:4318", Enabled: "false"}, want: false},
		{settings: otel.Settings{Endpoint: "http://collector:4318", Enabled: "true"}, want: true},
	}
	for _, tc := range cases {
		if got := tc.settings.Active(); got != tc.want {
			t.Fatalf("Active(%+v) = %v, want %v", tc.settings, got, tc.want)
		}
	}
}

func TestTracerStartsSpans(t *testing.T) {
	_, span := otel.Tracer("archive").Start(context.Background(), "list")
	defer span.End()
	if span == nil {
		t.Fatal("expected span")
	}
}
