package probe

import "context"

// Result is the outcome of a single reachability check.
//
// LatencyMS is nil whenever the target did not respond; a failed probe never
// reports a latency, so downstream charts can render gaps instead of zeros.
type Result struct {
	Reachable bool
	LatencyMS *float64
}

// Prober performs one reachability check against a host address. A probe
// never returns an error: timeouts and transport failures are normalized to
// an unreachable Result.
type Prober interface {
	Probe(ctx context.Context, target string) Result
}
