package domain

import "time"

// CheckRecord is one completed probe round. Records are immutable once
// created; the state is frozen at creation and never recomputed.
type CheckRecord struct {
	Timestamp         time.Time         `json:"timestamp"`
	GatewayReachable  bool              `json:"gateway_reachable"`
	InternetReachable bool              `json:"internet_reachable"`
	GatewayLatencyMS  *float64          `json:"gateway_latency_ms"`  // nil when the gateway probe failed
	InternetLatencyMS *float64          `json:"internet_latency_ms"` // nil when the internet probe failed
	State             ConnectivityState `json:"state"`
}
