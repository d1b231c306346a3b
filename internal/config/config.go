package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Alerts configures the outbound notification transports.
type Alerts struct {
	Enabled      bool   `yaml:"enabled"`
	BrevoAPIKey  string `yaml:"brevo_api_key"`
	EmailFrom    string `yaml:"email_from"`
	EmailTo      string `yaml:"email_to"`
	EmailSubject string `yaml:"email_subject"`
	SlackWebhook string `yaml:"slack_webhook"`
}

type Config struct {
	Addr            string        // HTTP bind address
	LogDir          string        // rotating log directory
	GatewayAddr     string        // LAN gateway/router address
	InternetAddr    string        // remote host proving internet reachability
	ProbeMethod     string        // "icmp" or "tcp"
	ProbeTimeout    time.Duration // per-target probe timeout
	TickInterval    time.Duration // time between check rounds
	HistoryCapacity int           // bounded in-memory window size
	AnomalyPolicy   string        // "gateway_down" or "up" for the (gw down, inet up) case
	HTTPRatePerMin  int           // per-IP request budget, 0 disables limiting
	HTTPRateBurst   int
	Alerts          Alerts
}

// Default mirrors the conventional home-network setup: router at
// 192.168.0.1, Google DNS as the internet witness, a 30s cadence.
func Default() Config {
	return Config{
		Addr:            ":8080",
		LogDir:          "logs",
		GatewayAddr:     "192.168.0.1",
		InternetAddr:    "8.8.8.8",
		ProbeMethod:     "icmp",
		ProbeTimeout:    2 * time.Second,
		TickInterval:    30 * time.Second,
		HistoryCapacity: 500,
		AnomalyPolicy:   "gateway_down",
		HTTPRatePerMin:  120,
		HTTPRateBurst:   60,
	}
}

// fileConfig is the YAML shape; durations are given in seconds.
type fileConfig struct {
	Addr                string `yaml:"addr"`
	LogDir              string `yaml:"log_dir"`
	GatewayAddr         string `yaml:"gateway_addr"`
	InternetAddr        string `yaml:"internet_addr"`
	ProbeMethod         string `yaml:"probe_method"`
	ProbeTimeoutSeconds int    `yaml:"probe_timeout_seconds"`
	TickIntervalSeconds int    `yaml:"tick_interval_seconds"`
	HistoryCapacity     int    `yaml:"history_capacity"`
	AnomalyPolicy       string `yaml:"anomaly_policy"`
	HTTPRatePerMinute   int    `yaml:"http_rate_per_minute"`
	HTTPRateBurst       int    `yaml:"http_rate_burst"`
	Alerts              Alerts `yaml:"alerts"`
}

// Load builds the configuration: defaults, then the YAML file (if path is
// non-empty), then environment overrides. Read once at startup; nothing
// hot-reloads.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
		applyFile(&cfg, fc)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// FromEnv is Load without a file, for callers that configure purely from the
// environment.
func FromEnv() Config {
	cfg, _ := Load("")
	return cfg
}

func applyFile(cfg *Config, fc fileConfig) {
	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.LogDir != "" {
		cfg.LogDir = fc.LogDir
	}
	if fc.GatewayAddr != "" {
		cfg.GatewayAddr = fc.GatewayAddr
	}
	if fc.InternetAddr != "" {
		cfg.InternetAddr = fc.InternetAddr
	}
	if fc.ProbeMethod != "" {
		cfg.ProbeMethod = fc.ProbeMethod
	}
	if fc.ProbeTimeoutSeconds > 0 {
		cfg.ProbeTimeout = time.Duration(fc.ProbeTimeoutSeconds) * time.Second
	}
	if fc.TickIntervalSeconds > 0 {
		cfg.TickInterval = time.Duration(fc.TickIntervalSeconds) * time.Second
	}
	if fc.HistoryCapacity > 0 {
		cfg.HistoryCapacity = fc.HistoryCapacity
	}
	if fc.AnomalyPolicy != "" {
		cfg.AnomalyPolicy = fc.AnomalyPolicy
	}
	if fc.HTTPRatePerMinute > 0 {
		cfg.HTTPRatePerMin = fc.HTTPRatePerMinute
	}
	if fc.HTTPRateBurst > 0 {
		cfg.HTTPRateBurst = fc.HTTPRateBurst
	}
	cfg.Alerts = fc.Alerts
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("GATEWAY_ADDR"); v != "" {
		cfg.GatewayAddr = v
	}
	if v := os.Getenv("INTERNET_ADDR"); v != "" {
		cfg.InternetAddr = v
	}
	if v := os.Getenv("PROBE_METHOD"); v != "" {
		cfg.ProbeMethod = v
	}
	if v := os.Getenv("PROBE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.ProbeTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("TICK_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.TickInterval = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("HISTORY_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryCapacity = n
		}
	}
	if v := os.Getenv("ANOMALY_POLICY"); v != "" {
		cfg.AnomalyPolicy = v
	}
	if v := os.Getenv("HTTP_RATE_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.HTTPRatePerMin = n
		}
	}
	if v := os.Getenv("HTTP_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPRateBurst = n
		}
	}
	if v := os.Getenv("ALERTS_ENABLED"); v != "" {
		cfg.Alerts.Enabled = v == "1" || v == "true"
	}
	if v := os.Getenv("BREVO_API_KEY"); v != "" {
		cfg.Alerts.BrevoAPIKey = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		cfg.Alerts.EmailFrom = v
	}
	if v := os.Getenv("EMAIL_TO"); v != "" {
		cfg.Alerts.EmailTo = v
	}
	if v := os.Getenv("EMAIL_SUBJECT"); v != "" {
		cfg.Alerts.EmailSubject = v
	}
	if v := os.Getenv("SLACK_WEBHOOK"); v != "" {
		cfg.Alerts.SlackWebhook = v
	}
}
