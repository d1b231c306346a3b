// cmd/preflight/main.go
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/drperfidious/netstatus/internal/config"
)

// preflight validates the effective configuration before a deploy: bad
// addresses or half-configured alerts fail here instead of at 3am.
func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	path := os.Getenv("NETSTATUS_CONFIG")
	cfg, err := config.Load(path)
	if err != nil {
		fail(err.Error())
	}

	if cfg.GatewayAddr == "" {
		fail("gateway address is empty.")
	}
	if cfg.InternetAddr == "" {
		fail("internet address is empty.")
	}
	for name, addr := range map[string]string{"gateway": cfg.GatewayAddr, "internet": cfg.InternetAddr} {
		if ip := net.ParseIP(addr); ip == nil {
			warn(name + " address " + addr + " is not an IP literal; DNS will be needed per probe.")
		} else {
			ok(name + "=" + addr)
		}
	}

	if cfg.ProbeMethod != "icmp" && cfg.ProbeMethod != "tcp" {
		fail("probe_method must be icmp or tcp, got " + cfg.ProbeMethod)
	}
	if cfg.ProbeTimeout >= cfg.TickInterval {
		warn(fmt.Sprintf("probe timeout (%s) >= tick interval (%s); ticks may overlap their budget.",
			cfg.ProbeTimeout, cfg.TickInterval))
	}
	if cfg.HistoryCapacity < 10 {
		warn(fmt.Sprintf("history capacity %d is very small; stats will be noisy.", cfg.HistoryCapacity))
	}

	if cfg.Alerts.Enabled {
		if cfg.Alerts.BrevoAPIKey == "" && cfg.Alerts.SlackWebhook == "" {
			fail("alerts enabled but no transport configured (brevo_api_key or slack_webhook).")
		}
		if cfg.Alerts.BrevoAPIKey != "" && (cfg.Alerts.EmailFrom == "" || cfg.Alerts.EmailTo == "") {
			fail("email alerts need both email_from and email_to.")
		}
		ok("alerts configured")
	} else {
		warn("alerts disabled; state transitions will only be logged.")
	}

	ok("preflight passed")
}
