package probe

import (
	"context"
	"time"

	"github.com/go-ping/ping"
)

// ICMPProber checks reachability with a single ICMP echo request.
type ICMPProber struct {
	Timeout    time.Duration
	Privileged bool // raw sockets; false uses unprivileged UDP ping
}

func NewICMPProber(timeout time.Duration) *ICMPProber {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &ICMPProber{Timeout: timeout}
}

func (p *ICMPProber) Probe(ctx context.Context, target string) Result {
	pinger, err := ping.NewPinger(target)
	if err != nil {
		return Result{}
	}
	pinger.Count = 1
	pinger.Timeout = p.Timeout
	pinger.SetPrivileged(p.Privileged)

	if deadline, ok := ctx.Deadline(); ok {
		remain := time.Until(deadline)
		if remain <= 0 {
			return Result{}
		}
		if remain < pinger.Timeout {
			pinger.Timeout = remain
		}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			pinger.Stop()
		case <-done:
		}
	}()

	err = pinger.Run()
	close(done)
	if err != nil {
		return Result{}
	}

	st := pinger.Statistics()
	if st.PacketsRecv == 0 {
		return Result{}
	}
	lat := float64(st.AvgRtt) / float64(time.Millisecond)
	return Result{Reachable: true, LatencyMS: &lat}
}
