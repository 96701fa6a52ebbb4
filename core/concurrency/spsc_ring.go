// File: core/concurrency/spsc_ring.go
// Package concurrency implements lock-free ring buffers.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SPSCRing is a bounded single-producer/single-consumer ring filled in place.
// Producer and consumer state live on separate cache lines; each side caches
// the other side's published position and reloads it only when the ring looks
// full (producer) or empty (consumer).

package concurrency

import (
	"sync/atomic"

	"github.com/containerd/log"
	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/internal/debug"
)

// Ensure compile-time interface compliance.
var _ api.Ring[any] = (*SPSCRing[any])(nil)

// SPSCRing is a fixed-capacity SPSC ring buffer.
//
// head and tail are free-running counts of committed reads and writes. The
// slot indices wrap over capacity+1 slots, so the slot handed out by
// ReserveWriteSlot is never one the consumer may still be reading, even when
// the ring is full.
type SPSCRing[T any] struct {
	_ cpu.CacheLinePad

	// Consumer side.
	head       atomic.Uint64
	readIdx    int
	cachedTail uint64

	_ cpu.CacheLinePad

	// Producer side.
	tail       atomic.Uint64
	writeIdx   int
	cachedHead uint64

	_ cpu.CacheLinePad

	// Immutable after construction.
	data     []T
	capacity uint64
	name     string
}

// RingOption customizes ring construction.
type RingOption func(*ringConfig)

type ringConfig struct {
	name string
}

// WithRingName labels the ring in violation reports.
func WithRingName(name string) RingOption {
	return func(c *ringConfig) {
		c.name = name
	}
}

// NewSPSCRing allocates a ring holding up to capacity committed items.
func NewSPSCRing[T any](capacity int, opts ...RingOption) (*SPSCRing[T], error) {
	if capacity <= 0 {
		return nil, api.Errorf(api.ErrInvalidCapacity, "got %d", capacity)
	}
	var cfg ringConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SPSCRing[T]{
		data:     make([]T, capacity+1),
		capacity: uint64(capacity),
		name:     cfg.name,
	}, nil
}

// ReserveWriteSlot returns the slot at the write index. Producer only.
func (r *SPSCRing[T]) ReserveWriteSlot() *T {
	return &r.data[r.writeIdx]
}

// CommitWrite publishes the reserved slot. If the ring is full it returns
// api.ErrQueueFull and leaves the reserved slot untouched, so the producer may
// retry the commit later. Producer only.
func (r *SPSCRing[T]) CommitWrite() error {
	tail := r.tail.Load()
	if tail-r.cachedHead >= r.capacity {
		r.cachedHead = r.head.Load()
		if tail-r.cachedHead >= r.capacity {
			return api.ErrQueueFull
		}
	}
	r.writeIdx = r.next(r.writeIdx)
	// Release: the slot write happens-before the consumer observing tail+1.
	r.tail.Store(tail + 1)
	return nil
}

// ReserveReadSlot returns the oldest unread slot, or false if the ring is
// empty. Consumer only.
func (r *SPSCRing[T]) ReserveReadSlot() (*T, bool) {
	head := r.head.Load()
	if head == r.cachedTail {
		// Acquire: pairs with the Store in CommitWrite.
		r.cachedTail = r.tail.Load()
		if head == r.cachedTail {
			return nil, false
		}
	}
	return &r.data[r.readIdx], true
}

// CommitRead releases the slot returned by ReserveReadSlot. Calling it on an
// empty ring is a caller bug and yields api.ErrEmptyQueueRead. Consumer only.
func (r *SPSCRing[T]) CommitRead() error {
	head := r.head.Load()
	if head == r.cachedTail {
		r.cachedTail = r.tail.Load()
		if head == r.cachedTail {
			return debug.Violation(api.ErrEmptyQueueRead, log.Fields{
				"ring":     r.name,
				"capacity": r.capacity,
			})
		}
	}
	r.readIdx = r.next(r.readIdx)
	r.head.Store(head + 1)
	return nil
}

// Enqueue copies item into the ring.
func (r *SPSCRing[T]) Enqueue(item T) error {
	*r.ReserveWriteSlot() = item
	return r.CommitWrite()
}

// Dequeue removes and returns the oldest item; ok false if empty.
func (r *SPSCRing[T]) Dequeue() (item T, ok bool) {
	slot, ok := r.ReserveReadSlot()
	if !ok {
		return item, false
	}
	item = *slot
	if err := r.CommitRead(); err != nil {
		return item, false
	}
	return item, true
}

// Size returns the number of committed, unread items. The value is only
// eventually consistent across goroutines; use it for diagnostics.
func (r *SPSCRing[T]) Size() int {
	head := r.head.Load()
	tail := r.tail.Load()
	if tail < head {
		// head advanced between the two loads
		return 0
	}
	n := tail - head
	if n > r.capacity {
		n = r.capacity
	}
	return int(n)
}

// Cap returns the fixed ring capacity.
func (r *SPSCRing[T]) Cap() int {
	return int(r.capacity)
}

func (r *SPSCRing[T]) next(i int) int {
	i++
	if i == len(r.data) {
		i = 0
	}
	return i
}
