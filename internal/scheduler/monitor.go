package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/drperfidious/netstatus/internal/domain"
	"github.com/drperfidious/netstatus/internal/history"
	"github.com/drperfidious/netstatus/internal/notify"
	"github.com/drperfidious/netstatus/internal/probe"
)

// Monitor drives the probe-classify-record cycle. One Monitor is the single
// writer of its history store; the web layer only reads snapshots.
type Monitor struct {
	Logger   *zap.Logger
	Prober   probe.Prober
	History  *history.Store
	Notifier notify.Notifier

	Gateway  string
	Internet string
	Interval time.Duration
	Timeout  time.Duration
	Policy   domain.AnomalyPolicy

	// lastState is the change-detection anchor, owned by the monitor rather
	// than shared process state so it can be tested and restarted in
	// isolation. Starts at UNKNOWN.
	lastState domain.ConnectivityState
}

func NewMonitor(
	logger *zap.Logger,
	prober probe.Prober,
	store *history.Store,
	notifier notify.Notifier,
	gateway, internet string,
	interval, timeout time.Duration,
	policy domain.AnomalyPolicy,
) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if policy == "" {
		policy = domain.AnomalyGatewayDown
	}
	return &Monitor{
		Logger:    logger,
		Prober:    prober,
		History:   store,
		Notifier:  notifier,
		Gateway:   gateway,
		Internet:  internet,
		Interval:  interval,
		Timeout:   timeout,
		Policy:    policy,
		lastState: domain.StateUnknown,
	}
}

// LastState reports the state of the most recent completed tick, or UNKNOWN
// before the first one.
func (m *Monitor) LastState() domain.ConnectivityState {
	return m.lastState
}

// Run executes one tick immediately, then one per interval, until ctx is
// cancelled. A failing tick never terminates the loop.
func (m *Monitor) Run(ctx context.Context) {
	m.Logger.Info("monitor_started",
		zap.String("gateway", m.Gateway),
		zap.String("internet", m.Internet),
		zap.Duration("interval", m.Interval),
	)

	t := time.NewTicker(m.Interval)
	defer t.Stop()

	m.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			m.Logger.Info("monitor_stopped")
			return
		case <-t.C:
			m.Tick(ctx)
		}
	}
}

// Tick runs one full probe-classify-record round. Exported so a one-shot
// invocation (CLI, tests) can reuse the exact loop semantics.
func (m *Monitor) Tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.Logger.Error("tick_panic", zap.Any("panic", r))
		}
	}()

	gw, inet := m.probeBoth(ctx)
	now := time.Now().UTC()

	state := domain.Classify(gw.Reachable, inet.Reachable, m.Policy)
	rec := domain.CheckRecord{
		Timestamp:         now,
		GatewayReachable:  gw.Reachable,
		InternetReachable: inet.Reachable,
		GatewayLatencyMS:  gw.LatencyMS,
		InternetLatencyMS: inet.LatencyMS,
		State:             state,
	}

	if err := m.History.Append(rec); err != nil {
		m.Logger.Error("history_append_error", zap.Error(err))
	}

	// One log line per tick: this is the append-only check log.
	m.Logger.Info("check",
		zap.Time("checked_at", now),
		zap.Bool("gateway_reachable", gw.Reachable),
		zap.Bool("internet_reachable", inet.Reachable),
		zap.Float64p("gateway_latency_ms", gw.LatencyMS),
		zap.Float64p("internet_latency_ms", inet.LatencyMS),
		zap.String("state", string(state)),
	)

	if state != m.lastState {
		m.onTransition(ctx, m.lastState, state, now)
		m.lastState = state
	}
}

// probeBoth checks gateway and internet concurrently with a per-target
// timeout and combines the results before classification.
func (m *Monitor) probeBoth(ctx context.Context) (gw, inet probe.Result) {
	var wg sync.WaitGroup
	run := func(target string, out *probe.Result) {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, m.Timeout)
		defer cancel()
		*out = m.Prober.Probe(cctx, target)
	}
	wg.Add(2)
	go run(m.Gateway, &gw)
	go run(m.Internet, &inet)
	wg.Wait()
	return gw, inet
}

func (m *Monitor) onTransition(ctx context.Context, prev, next domain.ConnectivityState, at time.Time) {
	var title, body string
	switch next {
	case domain.StateGatewayDown:
		title = "🔴 Network alert: gateway DOWN"
		body = fmt.Sprintf("Gateway (%s) is not reachable.", m.Gateway)
	case domain.StateInternetDown:
		title = "🟠 Network alert: internet DOWN"
		body = fmt.Sprintf("Gateway OK, but %s is not reachable.", m.Internet)
	case domain.StateUp:
		if prev == domain.StateUnknown {
			// First ever check coming up clean is not a recovery.
			m.Logger.Info("initial_state",
				zap.String("state", string(next)),
				zap.Time("at", at),
			)
			return
		}
		title = "🟢 Network recovered"
		body = "Connectivity restored."
	}

	m.Logger.Warn("state_transition",
		zap.String("previous", string(prev)),
		zap.String("current", string(next)),
		zap.Time("at", at),
	)

	if m.Notifier == nil {
		return
	}
	text := fmt.Sprintf("%s\nPrevious state: %s\nCurrent state: %s\nTime: %s",
		body, prev, next, at.Format(time.RFC3339))
	if err := m.Notifier.Send(ctx, title, text); err != nil {
		m.Logger.Warn("notify_error", zap.Error(err))
	}
}
