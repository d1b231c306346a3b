package stats

import (
	"math"
	"time"

	"github.com/drperfidious/netstatus/internal/domain"
)

// Aggregate summarises a history snapshot. It is recomputed on every query;
// nothing here is cached.
type Aggregate struct {
	TotalChecks       int     `json:"total_checks"`
	UpCount           int     `json:"up_count"`
	GatewayDownCount  int     `json:"gateway_down_count"`
	InternetDownCount int     `json:"internet_down_count"`
	UptimePercent     float64 `json:"uptime_percent"`
}

// Compute derives counts and uptime percentage from a snapshot.
// An empty snapshot yields zeros, not an error.
func Compute(records []domain.CheckRecord) Aggregate {
	var agg Aggregate
	agg.TotalChecks = len(records)
	for _, r := range records {
		switch r.State {
		case domain.StateUp:
			agg.UpCount++
		case domain.StateGatewayDown:
			agg.GatewayDownCount++
		case domain.StateInternetDown:
			agg.InternetDownCount++
		}
	}
	if agg.TotalChecks > 0 {
		agg.UptimePercent = round1(float64(agg.UpCount) / float64(agg.TotalChecks) * 100)
	}
	return agg
}

// Series holds three parallel slices for time-series plotting, oldest first.
// A nil latency marks a failed probe so the chart can render a gap instead
// of a false zero.
type Series struct {
	Labels   []string   `json:"labels"`
	Gateway  []*float64 `json:"gateway_latency_ms"`
	Internet []*float64 `json:"internet_latency_ms"`
}

// ChartSeries extracts the plotting series from a snapshot. The three slices
// always have equal length, matching the snapshot.
func ChartSeries(records []domain.CheckRecord) Series {
	s := Series{
		Labels:   make([]string, 0, len(records)),
		Gateway:  make([]*float64, 0, len(records)),
		Internet: make([]*float64, 0, len(records)),
	}
	for _, r := range records {
		s.Labels = append(s.Labels, r.Timestamp.Format(time.RFC3339))
		s.Gateway = append(s.Gateway, r.GatewayLatencyMS)
		s.Internet = append(s.Internet, r.InternetLatencyMS)
	}
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
