package main

import (
	"log/slog"
	"testing"
)

func TestParseConfigRecordDefaults(t *testing.T) {
	cfg, err := parseConfig([]string{"--record"})
	if err != nil {
		t.Fatalf("parseConfig() error = %v", err)
	}
	if !cfg.record {
		t.Error("record = false, want true")
	}
	if cfg.backend != "adb" {
		t.Errorf("backend = %q, want adb", cfg.backend)
	}
	if cfg.outPath != "touch_commands.json" {
		t.Errorf("outPath = %q, want touch_commands.json", cfg.outPath)
	}
	if cfg.tapThresholdPx != 20 {
		t.Errorf("tapThresholdPx = %v, want 20", cfg.tapThresholdPx)
	}
	if cfg.defaultIntervalMS != 500 {
		t.Errorf("defaultIntervalMS = %d, want 500", cfg.defaultIntervalMS)
	}
	if cfg.logLevel != slog.LevelInfo {
		t.Errorf("logLevel = %v, want info", cfg.logLevel)
	}
}

func TestParseConfigRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"no mode", nil},
		{"two modes", []string{"--record", "--replay", "x.json"}},
		{"all modes", []string{"--record", "--replay", "x.json", "--list-devices", "--show-events"}},
		{"unknown backend", []string{"--record", "--backend", "serial"}},
		{"evdev replay", []string{"--replay", "x.json", "--backend", "evdev"}},
		{"zero threshold", []string{"--record", "--tap-threshold", "0"}},
		{"interval too small", []string{"--record", "--default-interval-ms", "50"}},
		{"interval too large", []string{"--record", "--default-interval-ms", "20000"}},
		{"orientation out of range", []string{"--record", "--orientation", "4"}},
		{"empty out path", []string{"--record", "--out", ""}},
		{"bad log level", []string{"--record", "--log-level", "loud"}},
		{"positional args", []string{"--record", "extra"}},
	}
	for _, tc := range cases {
		if _, err := parseConfig(tc.args); err == nil {
			t.Errorf("%s: parseConfig(%v) expected error, got nil", tc.name, tc.args)
		}
	}
}

func TestParseConfigReplay(t *testing.T) {
	cfg, err := parseConfig([]string{"--replay", "session.json", "--serial", "emulator-5554"})
	if err != nil {
		t.Fatalf("parseConfig() error = %v", err)
	}
	if cfg.replayPath != "session.json" {
		t.Errorf("replayPath = %q, want session.json", cfg.replayPath)
	}
	if cfg.serial != "emulator-5554" {
		t.Errorf("serial = %q, want emulator-5554", cfg.serial)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"warn", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tc := range cases {
		got, err := parseLogLevel(tc.in)
		if err != nil {
			t.Errorf("parseLogLevel(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEvdevGeometry(t *testing.T) {
	cfg := config{screenSize: "1080x1920", orientation: 1}
	geo, err := cfg.evdevGeometry()
	if err != nil {
		t.Fatalf("evdevGeometry() error = %v", err)
	}
	if geo.Width != 1080 || geo.Height != 1920 || geo.Orientation != 1 {
		t.Errorf("evdevGeometry() = %+v, want 1080x1920 orientation 1", geo)
	}

	for _, size := range []string{"", "1080", "ax1920", "1080xb", "0x1920", "1080x-1"} {
		cfg := config{screenSize: size}
		if _, err := cfg.evdevGeometry(); err == nil {
			t.Errorf("evdevGeometry() with size %q expected error, got nil", size)
		}
	}
}
