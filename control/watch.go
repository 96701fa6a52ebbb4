// control/watch.go
// Author: momentics <momentics@gmail.com>
//
// Named gauge watcher for rings and pools.

package control

import (
	"sync"

	"github.com/momentics/hioload-mem/api"
)

// GaugeState is one sample of a ring or pool gauge.
type GaugeState struct {
	Size int
	Cap  int
}

// Watcher holds the gauges sampled by Publish.
type Watcher struct {
	mu     sync.RWMutex
	gauges map[string]api.Gauge
}

// NewWatcher creates an empty watcher.
func NewWatcher() *Watcher {
	return &Watcher{gauges: make(map[string]api.Gauge)}
}

// Watch registers g under name, replacing any previous gauge.
func (w *Watcher) Watch(name string, g api.Gauge) {
	w.mu.Lock()
	w.gauges[name] = g
	w.mu.Unlock()
}

// Unwatch stops sampling name.
func (w *Watcher) Unwatch(name string) {
	w.mu.Lock()
	delete(w.gauges, name)
	w.mu.Unlock()
}

// Sample reads every watched gauge once.
func (w *Watcher) Sample() map[string]GaugeState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[string]GaugeState, len(w.gauges))
	for name, g := range w.gauges {
		out[name] = GaugeState{Size: g.Size(), Cap: g.Cap()}
	}
	return out
}

// Publish samples w and folds the result into mr.
func Publish(mr *MetricsRegistry, w *Watcher) {
	for name, st := range w.Sample() {
		mr.Observe(name, st)
	}
}
