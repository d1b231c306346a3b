package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_MatchesExpectedSetup(t *testing.T) {
	cfg := Default()
	if cfg.GatewayAddr != "192.168.0.1" || cfg.InternetAddr != "8.8.8.8" {
		t.Fatalf("unexpected default targets: %+v", cfg)
	}
	if cfg.TickInterval != 30*time.Second || cfg.ProbeTimeout != 2*time.Second {
		t.Fatalf("unexpected default timings: %+v", cfg)
	}
	if cfg.HistoryCapacity != 500 {
		t.Fatalf("unexpected default capacity: %d", cfg.HistoryCapacity)
	}
	if cfg.AnomalyPolicy != "gateway_down" {
		t.Fatalf("unexpected default anomaly policy: %q", cfg.AnomalyPolicy)
	}
}

func TestLoad_YAMLFileThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "netstatus.yaml")
	body := `
addr: ":9090"
gateway_addr: "10.0.0.1"
internet_addr: "1.1.1.1"
probe_method: tcp
probe_timeout_seconds: 3
tick_interval_seconds: 60
history_capacity: 250
anomaly_policy: up
alerts:
  enabled: true
  brevo_api_key: key123
  email_from: monitor@example.com
  email_to: me@example.com
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// Env should win over the file.
	t.Setenv("INTERNET_ADDR", "9.9.9.9")
	t.Setenv("TICK_INTERVAL_MS", "45000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.GatewayAddr != "10.0.0.1" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.InternetAddr != "9.9.9.9" {
		t.Fatalf("env should override file, got %q", cfg.InternetAddr)
	}
	if cfg.TickInterval != 45*time.Second {
		t.Fatalf("env interval not applied: %v", cfg.TickInterval)
	}
	if cfg.ProbeTimeout != 3*time.Second || cfg.ProbeMethod != "tcp" {
		t.Fatalf("probe settings wrong: %+v", cfg)
	}
	if cfg.HistoryCapacity != 250 || cfg.AnomalyPolicy != "up" {
		t.Fatalf("history/anomaly wrong: %+v", cfg)
	}
	if !cfg.Alerts.Enabled || cfg.Alerts.BrevoAPIKey != "key123" || cfg.Alerts.EmailTo != "me@example.com" {
		t.Fatalf("alerts block wrong: %+v", cfg.Alerts)
	}
}

func TestLoad_MissingFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestFromEnv_ParsesAndDefaults(t *testing.T) {
	t.Setenv("ADDR", ":7070")
	t.Setenv("PROBE_TIMEOUT_MS", "1500")
	t.Setenv("HISTORY_CAPACITY", "42")
	t.Setenv("ALERTS_ENABLED", "true")

	cfg := FromEnv()
	if cfg.Addr != ":7070" {
		t.Fatalf("addr wrong: %+v", cfg)
	}
	if cfg.ProbeTimeout != 1500*time.Millisecond {
		t.Fatalf("timeout wrong: %v", cfg.ProbeTimeout)
	}
	if cfg.HistoryCapacity != 42 {
		t.Fatalf("capacity wrong: %d", cfg.HistoryCapacity)
	}
	if !cfg.Alerts.Enabled {
		t.Fatalf("alerts should be enabled")
	}

	// ensure defaults don't crash if missing env
	os.Unsetenv("ADDR")
	_ = FromEnv()
}
