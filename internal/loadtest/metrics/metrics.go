// Package metrics implements the thread-safe MetricsCollector described in
// spec §4.5: success/failure counters, a latency vector, rolling RPS, and
// ceil-index percentile computation.
package metrics

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/studiowebux/restcli-core/internal/model"
)

// Percentiles is the result of CalculatePercentiles.
type Percentiles struct {
	Min, P50, P90, P95, P99, Max time.Duration
}

// completion records the time a latency sample was appended, used by
// UpdateRPS's trailing-window count.
type completion struct {
	at      time.Time
	latency time.Duration
}

// Collector is a reference-counted-by-convention (pass by pointer) sink
// shared by load-test workers, the sampler task, and the UI's read-only
// snapshot view. Every mutator takes the lock briefly and releases before
// any I/O, matching spec §5's discipline.
type Collector struct {
	mu sync.Mutex

	total, success, failure int64
	errors                  map[string]int64
	completions             []completion
	currentRPS              float64
	startInstant            time.Time
	timeSeries              []model.TimeSeriesDataPoint
}

// New returns an empty Collector anchored at the given start time.
func New(start time.Time) *Collector {
	return &Collector{
		errors:       map[string]int64{},
		startInstant: start,
	}
}

// RecordSuccess increments total & success and appends latency.
func (c *Collector) RecordSuccess(latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total++
	c.success++
	c.completions = append(c.completions, completion{at: time.Now(), latency: latency})
}

// RecordFailure increments total & failure, appends latency, and
// increments errors[kind].
func (c *Collector) RecordFailure(kind string, latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total++
	c.failure++
	c.errors[kind]++
	c.completions = append(c.completions, completion{at: time.Now(), latency: latency})
}

// UpdateRPS recomputes CurrentRPS over the trailing window.
func (c *Collector) UpdateRPS(window time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cutoff := time.Now().Add(-window)
	count := 0
	for i := len(c.completions) - 1; i >= 0; i-- {
		if c.completions[i].at.Before(cutoff) {
			break
		}
		count++
	}
	c.currentRPS = float64(count) / window.Seconds()
}

// Snapshot is an immutable view sufficient for rendering.
type Snapshot struct {
	Total, Success, Failure int64
	Errors                  map[string]int64
	CurrentRPS              float64
	Percentiles             Percentiles
	TimeSeries              []model.TimeSeriesDataPoint
	Elapsed                 time.Duration
}

// Snapshot returns a consistent point-in-time copy safe for lock-free
// reading by the UI.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	latencies := make([]time.Duration, len(c.completions))
	for i, cp := range c.completions {
		latencies[i] = cp.latency
	}
	errs := make(map[string]int64, len(c.errors))
	for k, v := range c.errors {
		errs[k] = v
	}
	snap := Snapshot{
		Total:      c.total,
		Success:    c.success,
		Failure:    c.failure,
		Errors:     errs,
		CurrentRPS: c.currentRPS,
		TimeSeries: append([]model.TimeSeriesDataPoint{}, c.timeSeries...),
		Elapsed:    time.Since(c.startInstant),
	}
	c.mu.Unlock()
	snap.Percentiles = CalculatePercentiles(latencies)
	return snap
}

// AddTimeSeriesPoint computes percentiles over all latencies to date plus
// CurrentRPS, pushes a TimeSeriesDataPoint, and drops the oldest once the
// series exceeds twelve points.
func (c *Collector) AddTimeSeriesPoint() {
	c.mu.Lock()
	latencies := make([]time.Duration, len(c.completions))
	for i, cp := range c.completions {
		latencies[i] = cp.latency
	}
	rps := c.currentRPS
	count := c.total
	elapsed := time.Since(c.startInstant)
	c.mu.Unlock()

	p := CalculatePercentiles(latencies)
	point := model.TimeSeriesDataPoint{
		ElapsedSecs:  elapsed.Seconds(),
		RPS:          rps,
		P50:          p.P50,
		P90:          p.P90,
		P95:          p.P95,
		P99:          p.P99,
		RequestCount: count,
	}

	c.mu.Lock()
	c.timeSeries = append(c.timeSeries, point)
	if len(c.timeSeries) > 12 {
		c.timeSeries = c.timeSeries[len(c.timeSeries)-12:]
	}
	c.mu.Unlock()
}

// CalculatePercentiles sorts a copy of latencies and computes {min, p50,
// p90, p95, p99, max} using the ceiling-index method:
// index = ceil(P/100 * n) - 1, clamped to [0, n-1]. Returns all zeros for
// an empty input.
func CalculatePercentiles(latencies []time.Duration) Percentiles {
	n := len(latencies)
	if n == 0 {
		return Percentiles{}
	}
	sorted := make([]time.Duration, n)
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := func(p float64) time.Duration {
		i := int(math.Ceil(p/100.0*float64(n))) - 1
		if i < 0 {
			i = 0
		}
		if i > n-1 {
			i = n - 1
		}
		return sorted[i]
	}

	return Percentiles{
		Min: sorted[0],
		P50: idx(50),
		P90: idx(90),
		P95: idx(95),
		P99: idx(99),
		Max: sorted[n-1],
	}
}
