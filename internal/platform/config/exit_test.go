package config

import (
	"bytes"
	"testing"
)

func captureExit(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var buf bytes.Buffer
	code := -1
	prevExit, prevStderr := exit, stderr
	exit = func(c int) { code = c }
	stderr = &buf
	t.Cleanup(func() {
		exit, stderr = prevExit, prevStderr
	})
	return &buf, &code
}

func TestExitfWritesMessageAndFails(t *testing.T) {
	buf, code := captureExit(t)

	Exitf("scan archive: %s", "permission denied")

	if *code != ExitFailure {
		t.Fatalf("exit code = %d, want %d", *code, ExitFailure)
	}
	if got := buf.String(); got != "scan archive: permission denied\n" {
		t.Fatalf("stderr = %q", got)
	}
}

func TestExitCodefUsesGivenCode(t *testing.T) {
	buf, code := captureExit(t)

	ExitCodef(ExitUsage, "unknown command %q", "frobnicate")

	if *code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", *code, ExitUsage)
	}
	if got := buf.String(); got != "unknown command \"frobnicate\"\n" {
		t.Fatalf("stderr = %q", got)
	}
}
