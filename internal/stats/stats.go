package stats

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	at time.Time
	us int64
}

// Snapshot is a point-in-time aggregate of latency samples, in
// microseconds.
type Snapshot struct {
	Count int     `json:"count"`
	MinUs int64   `json:"min_us"`
	MaxUs int64   `json:"max_us"`
	AvgUs float64 `json:"avg_us"`
	P50Us float64 `json:"p50_us"`
	P95Us float64 `json:"p95_us"`
	P99Us float64 `json:"p99_us"`
}

// Latency tracks recent operation latencies within a rolling window.
type Latency struct {
	mu      sync.Mutex
	samples []sample
	window  time.Duration
}

func NewLatency(window time.Duration) *Latency {
	if window <= 0 {
		window = time.Hour
	}
	return &Latency{
		samples: make([]sample, 0, 256),
		window:  window,
	}
}

// Record adds one sample. Negative durations count as zero.
func (l *Latency) Record(d time.Duration) {
	us := d.Microseconds()
	if us < 0 {
		us = 0
	}
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked(now)
	l.samples = append(l.samples, sample{at: now, us: us})
}

// Time runs fn and records how long it took.
func (l *Latency) Time(fn func()) {
	start := time.Now()
	fn()
	l.Record(time.Since(start))
}

func (l *Latency) Snapshot() Snapshot {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked(now)
	if len(l.samples) == 0 {
		return Snapshot{}
	}

	values := make([]int64, 0, len(l.samples))
	var sum int64
	for _, s := range l.samples {
		values = append(values, s.us)
		sum += s.us
	}
	slices.Sort(values)

	return Snapshot{
		Count: len(values),
		MinUs: values[0],
		MaxUs: values[len(values)-1],
		AvgUs: float64(sum) / float64(len(values)),
		P50Us: percentile(values, 50),
		P95Us: percentile(values, 95),
		P99Us: percentile(values, 99),
	}
}

func (l *Latency) pruneLocked(now time.Time) {
	cutoff := now.Add(-l.window)
	l.samples = slices.DeleteFunc(l.samples, func(s sample) bool {
		return s.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the two closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}

	rank := float64(len(sorted)-1) * pct / 100
	lower := int(rank)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	lo, hi := float64(sorted[lower]), float64(sorted[lower+1])
	return lo + (hi-lo)*(rank-float64(lower))
}
