package history

import (
	"sync"
	"testing"
	"time"

	"github.com/drperfidious/netstatus/internal/domain"
)

func rec(ts time.Time, state domain.ConnectivityState) domain.CheckRecord {
	up := state == domain.StateUp
	return domain.CheckRecord{
		Timestamp:         ts,
		GatewayReachable:  state != domain.StateGatewayDown,
		InternetReachable: up,
		State:             state,
	}
}

func TestStore_FIFOEviction(t *testing.T) {
	s := New(3)
	base := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)

	states := []domain.ConnectivityState{
		domain.StateUp,
		domain.StateUp,
		domain.StateGatewayDown,
		domain.StateInternetDown,
	}
	for i, st := range states {
		if err := s.Append(rec(base.Add(time.Duration(i)*time.Second), st)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("want len 3, got %d", len(snap))
	}
	// The first UP (base timestamp) must have been evicted.
	if snap[0].Timestamp.Equal(base) {
		t.Fatalf("oldest record was not evicted")
	}
	want := []domain.ConnectivityState{domain.StateUp, domain.StateGatewayDown, domain.StateInternetDown}
	for i, st := range want {
		if snap[i].State != st {
			t.Fatalf("snap[%d] = %s, want %s", i, snap[i].State, st)
		}
	}
}

func TestStore_CapacityNeverExceeded(t *testing.T) {
	s := New(5)
	base := time.Now().UTC()
	for i := 0; i < 50; i++ {
		if err := s.Append(rec(base.Add(time.Duration(i)*time.Second), domain.StateUp)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if s.Len() > 5 {
			t.Fatalf("capacity exceeded: %d", s.Len())
		}
	}
	snap := s.Snapshot()
	for i := 1; i < len(snap); i++ {
		if snap[i].Timestamp.Before(snap[i-1].Timestamp) {
			t.Fatalf("snapshot not time-ordered at %d", i)
		}
	}
}

func TestStore_RejectsOutOfOrderAppend(t *testing.T) {
	s := New(10)
	base := time.Now().UTC()
	if err := s.Append(rec(base, domain.StateUp)); err != nil {
		t.Fatalf("append: %v", err)
	}
	err := s.Append(rec(base.Add(-time.Second), domain.StateUp))
	if err != ErrOutOfOrder {
		t.Fatalf("want ErrOutOfOrder, got %v", err)
	}
	// Equal timestamps are allowed (ties broken by insertion order).
	if err := s.Append(rec(base, domain.StateGatewayDown)); err != nil {
		t.Fatalf("equal timestamp append: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("want 2 records, got %d", s.Len())
	}
}

func TestStore_LatestAndRecent(t *testing.T) {
	s := New(10)
	if _, ok := s.Latest(); ok {
		t.Fatalf("Latest on empty store should report absence")
	}
	if got := s.Recent(50); got != nil {
		t.Fatalf("Recent on empty store should be nil, got %v", got)
	}

	base := time.Now().UTC()
	for i := 0; i < 4; i++ {
		_ = s.Append(rec(base.Add(time.Duration(i)*time.Second), domain.StateUp))
	}
	last, ok := s.Latest()
	if !ok || !last.Timestamp.Equal(base.Add(3*time.Second)) {
		t.Fatalf("unexpected latest: ok=%v rec=%+v", ok, last)
	}

	recent := s.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("want 2 recent, got %d", len(recent))
	}
	if !recent[0].Timestamp.After(recent[1].Timestamp) {
		t.Fatalf("Recent must be newest-first")
	}
	if got := s.Recent(100); len(got) != 4 {
		t.Fatalf("Recent larger than store should clamp, got %d", len(got))
	}
}

func TestStore_SnapshotIsIndependentCopy(t *testing.T) {
	s := New(10)
	base := time.Now().UTC()
	_ = s.Append(rec(base, domain.StateUp))

	snap := s.Snapshot()
	snap[0].State = domain.StateGatewayDown

	latest, _ := s.Latest()
	if latest.State != domain.StateUp {
		t.Fatalf("mutating a snapshot leaked into the store")
	}
}

func TestStore_ConcurrentReadersDuringAppends(t *testing.T) {
	s := New(32)
	base := time.Now().UTC()
	lat := 1.5

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			r := rec(base.Add(time.Duration(i)*time.Millisecond), domain.StateUp)
			r.GatewayLatencyMS = &lat
			r.InternetLatencyMS = &lat
			_ = s.Append(r)
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				for _, r := range s.Snapshot() {
					// An UP record must always carry both latencies; a torn
					// read would surface as a half-populated record.
					if r.State == domain.StateUp && (r.GatewayLatencyMS == nil || r.InternetLatencyMS == nil) {
						t.Errorf("observed partially populated record: %+v", r)
						return
					}
				}
				_, _ = s.Latest()
			}
		}()
	}
	wg.Wait()
	<-done
}
