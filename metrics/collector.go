// Package metrics implements a small in-process collector used to time the
// RPC-bound parts of a checkpoint run (endpoint latency, per-block header
// fetches). It has no exporter; callers pull a summary at the end of a run.
package metrics

import (
	"sort"
	"sync"
	"time"
)

// Entry is a single recorded data point.
type Entry struct {
	Name      string  // dot-separated metric name (e.g. "fetch.duration_ms")
	Value     float64 // observed value
	Timestamp int64   // unix timestamp of recording
	Type      string  // "gauge" or "histogram"
}

// Collector aggregates timing observations for one checkpoint run. All
// methods are safe for concurrent use, although a run records strictly
// sequentially.
type Collector struct {
	mu     sync.RWMutex
	latest map[string]Entry
	hist   map[string][]float64
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		latest: make(map[string]Entry),
		hist:   make(map[string][]float64),
	}
}

// Record stores a gauge value, replacing any previous value for the name.
func (c *Collector) Record(name string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest[name] = Entry{Name: name, Value: value, Timestamp: time.Now().Unix(), Type: "gauge"}
}

// Observe appends a histogram observation for the name.
func (c *Collector) Observe(name string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest[name] = Entry{Name: name, Value: value, Timestamp: time.Now().Unix(), Type: "histogram"}
	c.hist[name] = append(c.hist[name], value)
}

// Get returns the latest entry for the named metric and whether one exists.
func (c *Collector) Get(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.latest[name]
	return e, ok
}

// Count returns the number of observations recorded for a histogram.
func (c *Collector) Count(name string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.hist[name])
}

// Summary returns a map of metric names to their latest values.
func (c *Collector) Summary() map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make(map[string]float64, len(c.latest))
	for name, e := range c.latest {
		result[name] = e.Value
	}
	return result
}

// Percentile computes the given percentile (0-100) for the named histogram
// using linear interpolation. Returns 0 if no observations exist.
func (c *Collector) Percentile(name string, percentile float64) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	vals := c.hist[name]
	if len(vals) == 0 {
		return 0
	}

	// Work on a sorted copy so internal state is not mutated.
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	if percentile <= 0 {
		return sorted[0]
	}
	if percentile >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := (percentile / 100) * float64(len(sorted)-1)
	lo := int(rank)
	frac := rank - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
