// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Occupancy and event metrics for rings and pools.

package control

import (
	"fmt"
	"sync"
	"time"

	"github.com/momentics/hioload-mem/api"
)

// Event is a countable condition reported by a ring or pool.
type Event int

const (
	EventQueueFull Event = iota
	EventPoolExhausted
	EventContractViolation
	eventCount
)

// String returns the metric name of the event.
func (e Event) String() string {
	switch e {
	case EventQueueFull:
		return "queue_full"
	case EventPoolExhausted:
		return "pool_exhausted"
	case EventContractViolation:
		return "contract_violation"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// EventFor classifies err; false when err is not a ring or pool condition.
func EventFor(err error) (Event, bool) {
	switch api.CodeOf(err) {
	case api.ErrCodeQueueFull:
		return EventQueueFull, true
	case api.ErrCodeResourceExhausted:
		return EventPoolExhausted, true
	case api.ErrCodeEmptyRead, api.ErrCodeInvalidHandle:
		return EventContractViolation, true
	}
	return 0, false
}

// GaugeStats accumulates samples of one gauge.
type GaugeStats struct {
	GaugeState
	HighWater int
	Samples   uint64
}

// Snapshot is a point-in-time copy of a MetricsRegistry.
type Snapshot struct {
	Gauges  map[string]GaugeStats
	Events  map[string]uint64
	Updated time.Time
}

// MetricsRegistry tracks gauge high-water marks and event counts.
type MetricsRegistry struct {
	mu      sync.RWMutex
	gauges  map[string]GaugeStats
	events  [eventCount]uint64
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		gauges: make(map[string]GaugeStats),
	}
}

// Observe records one sample of the named gauge.
func (mr *MetricsRegistry) Observe(name string, st GaugeState) {
	mr.mu.Lock()
	gs := mr.gauges[name]
	gs.GaugeState = st
	gs.HighWater = max(gs.HighWater, st.Size)
	gs.Samples++
	mr.gauges[name] = gs
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Count adds n occurrences of ev.
func (mr *MetricsRegistry) Count(ev Event, n uint64) {
	if ev < 0 || ev >= eventCount || n == 0 {
		return
	}
	mr.mu.Lock()
	mr.events[ev] += n
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Record counts err if it is a ring or pool condition and reports whether it was.
func (mr *MetricsRegistry) Record(err error) bool {
	ev, ok := EventFor(err)
	if ok {
		mr.Count(ev, 1)
	}
	return ok
}

// Gauge returns the accumulated stats for name.
func (mr *MetricsRegistry) Gauge(name string) (GaugeStats, bool) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	gs, ok := mr.gauges[name]
	return gs, ok
}

// Events returns the count for ev.
func (mr *MetricsRegistry) Events(ev Event) uint64 {
	if ev < 0 || ev >= eventCount {
		return 0
	}
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.events[ev]
}

// Snapshot copies the registry.
func (mr *MetricsRegistry) Snapshot() Snapshot {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	s := Snapshot{
		Gauges:  make(map[string]GaugeStats, len(mr.gauges)),
		Events:  make(map[string]uint64, int(eventCount)),
		Updated: mr.updated,
	}
	for k, v := range mr.gauges {
		s.Gauges[k] = v
	}
	for ev := Event(0); ev < eventCount; ev++ {
		s.Events[ev.String()] = mr.events[ev]
	}
	return s
}
