package report

import (
	"sync"
	"time"
)

// TimingAnalysis describes the interval since the previous snapshot
// from the same client. Automation tends to post at suspiciously
// round intervals.
type TimingAnalysis struct {
	RequestInterval    float64 `json:"request_interval_ms"`
	IntervalPrecision  int     `json:"interval_precision"`
	RequestsPerSecond  float64 `json:"requests_per_second"`
	HasPreviousRequest bool    `json:"has_previous_request"`
}

// TimingTracker stores per-client request timestamps. Injected so
// tests and multi-instance deployments can supply their own backing
// store.
type TimingTracker interface {
	RecordRequest(ip string, timestamp time.Time)
	GetLastRequest(ip string) (time.Time, bool)
}

// MemoryTimingTracker implements TimingTracker in process memory.
type MemoryTimingTracker struct {
	mu           sync.RWMutex
	lastRequests map[string]time.Time
}

func NewMemoryTimingTracker() *MemoryTimingTracker {
	return &MemoryTimingTracker{lastRequests: make(map[string]time.Time)}
}

func (t *MemoryTimingTracker) RecordRequest(ip string, timestamp time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastRequests[ip] = timestamp
}

func (t *MemoryTimingTracker) GetLastRequest(ip string) (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	last, ok := t.lastRequests[ip]
	return last, ok
}

func analyzeTiming(ip string, now time.Time, tracker TimingTracker) TimingAnalysis {
	analysis := TimingAnalysis{}
	if tracker == nil {
		return analysis
	}

	if last, ok := tracker.GetLastRequest(ip); ok {
		interval := now.Sub(last)
		analysis.RequestInterval = float64(interval.Nanoseconds()) / 1e6
		analysis.HasPreviousRequest = true
		if analysis.RequestInterval > 0 {
			analysis.RequestsPerSecond = 1000.0 / analysis.RequestInterval
		}
		analysis.IntervalPrecision = intervalPrecision(interval.Milliseconds())
	}

	tracker.RecordRequest(ip, now)
	return analysis
}

// intervalPrecision reports the largest round millisecond divisor of
// the interval; human traffic almost never lands on exact multiples.
func intervalPrecision(ms int64) int {
	if ms <= 0 {
		return 0
	}
	for _, p := range []int64{1000, 500, 100, 50, 10} {
		if ms%p == 0 {
			return int(p)
		}
	}
	return 0
}
