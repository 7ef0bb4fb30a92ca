package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelRouting(t *testing.T) {
	var out, errw bytes.Buffer
	log := slog.New(NewHandler(&out, &errw, slog.LevelInfo))

	log.Debug("hidden")
	log.Info("report created", "id", "r1")
	log.Warn("stored session expired")
	log.Error("claim action failed", "claim", "3")

	if strings.Contains(out.String(), "hidden") || strings.Contains(errw.String(), "hidden") {
		t.Error("debug record should be filtered at info level")
	}
	if !strings.Contains(out.String(), "report created") || !strings.Contains(out.String(), "stored session expired") {
		t.Errorf("stdout missing info/warn records:\n%s", out.String())
	}
	if strings.Contains(out.String(), "claim action failed") {
		t.Error("error record leaked to stdout")
	}
	if !strings.Contains(errw.String(), "claim=3") {
		t.Errorf("stderr missing error record:\n%s", errw.String())
	}
}

func TestWithAttrsKeepsRouting(t *testing.T) {
	var out, errw bytes.Buffer
	log := slog.New(NewHandler(&out, &errw, slog.LevelWarn)).With("component", "feed")

	log.Info("dropped")
	log.Error("boom")

	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
	if !strings.Contains(errw.String(), "component=feed") {
		t.Errorf("stderr missing attrs: %q", errw.String())
	}
}

func TestSetupWritesFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "unifind.log")
	var out, errw bytes.Buffer
	cleanup, err := Setup(Options{Level: slog.LevelInfo, Path: path, Stdout: &out, Stderr: &errw})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	slog.Info("server started", "addr", ":5000")
	slog.Error("server error")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	for _, want := range []string{"server started", "server error"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file missing %q", want)
		}
	}
}
