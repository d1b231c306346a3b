package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/drperfidious/netstatus/internal/config"
	"github.com/drperfidious/netstatus/internal/domain"
	"github.com/drperfidious/netstatus/internal/history"
	"github.com/drperfidious/netstatus/internal/httpapi"
	"github.com/drperfidious/netstatus/internal/logging"
	"github.com/drperfidious/netstatus/internal/notify"
	"github.com/drperfidious/netstatus/internal/probe"
	"github.com/drperfidious/netstatus/internal/scheduler"
)

func main() {
	configPath := flag.String("config", os.Getenv("NETSTATUS_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store := history.New(cfg.HistoryCapacity)

	var prober probe.Prober
	switch cfg.ProbeMethod {
	case "tcp":
		prober = probe.NewTCPProber(cfg.ProbeTimeout)
	default:
		prober = probe.NewICMPProber(cfg.ProbeTimeout)
	}

	var notifiers notify.Multi
	if cfg.Alerts.Enabled {
		if e := notify.NewEmail(cfg.Alerts.BrevoAPIKey, cfg.Alerts.EmailFrom, cfg.Alerts.EmailTo, cfg.Alerts.EmailSubject); e != nil {
			notifiers = append(notifiers, e)
		}
		if s := notify.NewSlack(cfg.Alerts.SlackWebhook); s != nil {
			notifiers = append(notifiers, s)
		}
	}
	var notifier notify.Notifier
	if len(notifiers) > 0 {
		notifier = notifiers
	}

	monitor := scheduler.NewMonitor(
		logger,
		prober,
		store,
		notifier,
		cfg.GatewayAddr,
		cfg.InternetAddr,
		cfg.TickInterval,
		cfg.ProbeTimeout,
		domain.AnomalyPolicy(cfg.AnomalyPolicy),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go monitor.Run(ctx)

	api := httpapi.NewServer(logger, store)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.Router(cfg.HTTPRatePerMin, cfg.HTTPRateBurst),
	}

	go func() {
		logger.Info("http_listen", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http_serve_error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info("shutdown_complete")
}
