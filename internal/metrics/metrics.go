// Package metrics collects in-process counters and timings for a check run.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Collector collects and manages metrics for one run.
type Collector struct {
	mu        sync.RWMutex
	counters  map[string]int64
	durations map[string]time.Duration
	startTime time.Time
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		counters:  make(map[string]int64),
		durations: make(map[string]time.Duration),
		startTime: time.Now(),
	}
}

// Inc increments a counter by 1.
func (c *Collector) Inc(name string) {
	c.Add(name, 1)
}

// Add adds n to a counter.
func (c *Collector) Add(name string, n int64) {
	c.mu.Lock()
	c.counters[name] += n
	c.mu.Unlock()
}

// Counter returns the current value of a counter.
func (c *Collector) Counter(name string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counters[name]
}

// Observe records a duration under a name, accumulating across calls.
func (c *Collector) Observe(name string, d time.Duration) {
	c.mu.Lock()
	c.durations[name] += d
	c.mu.Unlock()
}

// Time runs fn and records its duration under name.
func (c *Collector) Time(name string, fn func()) {
	start := time.Now()
	fn()
	c.Observe(name, time.Since(start))
}

// Duration returns the accumulated duration for a name.
func (c *Collector) Duration(name string) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.durations[name]
}

// Summary renders all metrics sorted by name, one per line.
func (c *Collector) Summary() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var names []string
	for name := range c.counters {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	fmt.Fprintf(&sb, "uptime=%s\n", time.Since(c.startTime).Round(time.Millisecond))
	for _, name := range names {
		fmt.Fprintf(&sb, "%s=%d\n", name, c.counters[name])
	}

	names = names[:0]
	for name := range c.durations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "%s=%s\n", name, c.durations[name].Round(time.Microsecond))
	}
	return sb.String()
}
