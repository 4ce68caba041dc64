package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test", nil, env(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":3000" || cfg.ClockStart != 8 || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Rules().ClockStart != 8 {
		t.Fatalf("rules clock = %d", cfg.Rules().ClockStart)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "martian.yaml")
	yaml := "addr: \":4000\"\nclock_start: 7\nlog_level: warn\ncors_origins:\n  - http://a.test\n  - http://b.test\ngame_ttl: 10m\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	// file only
	cfg, err := Load("test", []string{"-config", path}, env(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":4000" || cfg.ClockStart != 7 || cfg.LogLevel != "warn" || cfg.GameTTL != 10*time.Minute {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("origins = %v", cfg.CORSOrigins)
	}

	// env beats file, flags beat env
	cfg, err = Load("test", []string{"--config=" + path, "-addr", ":5000"}, env(map[string]string{
		"MARTIAN_ADDR":        ":4500",
		"MARTIAN_CLOCK_START": "9",
		"MARTIAN_DEV":         "true",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":5000" {
		t.Fatalf("addr = %q, want flag value", cfg.Addr)
	}
	if cfg.ClockStart != 9 || !cfg.Dev {
		t.Fatalf("env values not applied: %+v", cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.yaml")
	if err := os.WriteFile(path, []byte("clock_start: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("test", nil, env(map[string]string{"MARTIAN_CONFIG": path}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ClockStart != 7 {
		t.Fatalf("clock = %d, want 7", cfg.ClockStart)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"missing file", []string{"-config", "/does/not/exist.yaml"}, nil},
		{"bad clock env", nil, map[string]string{"MARTIAN_CLOCK_START": "soon"}},
		{"zero clock flag", []string{"-clock", "0"}, nil},
		{"bad level", []string{"-log-level", "loud"}, nil},
		{"unknown flag", []string{"-nope"}, nil},
	}
	for _, tt := range tests {
		if _, err := Load("test", tt.args, env(tt.env)); err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.Dev = true
	cfg.LogLevel = "debug"
	logger, err := cfg.NewLogger()
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	if !logger.Core().Enabled(-1) {
		t.Fatalf("debug level not enabled")
	}
}
