package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Lightweight per-step CPU profiler for tick-level insights.

var (
	mu         sync.Mutex
	stepTotals = make(map[string]time.Duration)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		stepTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears current per-step totals. Call at the start of each step.
func ResetFrame() {
	mu.Lock()
	for k := range stepTotals {
		delete(stepTotals, k)
	}
	mu.Unlock()
}

// Snapshot returns a copy of current per-step totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(stepTotals))
	for k, v := range stepTotals {
		out[k] = v
	}
	return out
}

// SumWithPrefix totals every tracked entry whose name starts with prefix,
// e.g. SumWithPrefix("world.") for the whole world subsystem.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var total time.Duration
	for k, v := range stepTotals {
		if strings.HasPrefix(k, prefix) {
			total += v
		}
	}
	return total
}

// TopN formats the top N durations from the current step totals.
// Example: "world.StreamUpdate:4.2ms, meshing.Build:2.1ms"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ms := float64(list[i].dur.Microseconds()) / 1000.0
		parts = append(parts, list[i].name+":"+strconv.FormatFloat(ms, 'f', 1, 64)+"ms")
	}
	return strings.Join(parts, ", ")
}
