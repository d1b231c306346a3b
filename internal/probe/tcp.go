package probe

import (
	"context"
	"net"
	"strings"
	"time"
)

// TCPProber checks reachability by opening and closing a TCP connection.
// It is the fallback for environments where ICMP sockets are unavailable
// (unprivileged containers, some VPS hosts).
type TCPProber struct {
	Timeout time.Duration
	Port    string // used when the target carries no port; defaults to 53
}

func NewTCPProber(timeout time.Duration) *TCPProber {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &TCPProber{Timeout: timeout, Port: "53"}
}

func (p *TCPProber) Probe(ctx context.Context, target string) Result {
	address := target
	if !strings.Contains(address, ":") {
		port := p.Port
		if port == "" {
			port = "53"
		}
		address = net.JoinHostPort(address, port)
	}

	d := net.Dialer{Timeout: p.Timeout}
	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return Result{}
	}
	lat := time.Since(start).Seconds() * 1000
	_ = conn.Close()
	return Result{Reachable: true, LatencyMS: &lat}
}
