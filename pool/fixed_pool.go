// File: pool/fixed_pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity object pool over a pre-allocated slot arena.
// Not safe for concurrent use: give each goroutine its own pool.

package pool

import (
	"fmt"
	"sync/atomic"

	"github.com/containerd/log"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/internal/debug"
)

// Ensure compile-time interface compliance.
var _ api.ObjectPool[any, Handle] = (*FixedPool[any])(nil)

// poolSeq hands out pool identities; 0 is reserved for the zero Handle.
var poolSeq atomic.Uint32

// Handle is an opaque reference to a live object in a FixedPool.
// The zero Handle is never valid.
type Handle struct {
	owner uint32
	index uint32
	gen   uint32
}

// String formats the handle for logs.
func (h Handle) String() string {
	return fmt.Sprintf("handle(pool=%d slot=%d gen=%d)", h.owner, h.index, h.gen)
}

// slot holds either a live value or nothing.
type slot[T any] struct {
	value T
	gen   uint32
	live  bool
}

// FixedPool is a fixed-capacity arena of T values addressed by Handle.
type FixedPool[T any] struct {
	slots   []slot[T]
	cursor  int
	inUse   int
	owner   uint32
	name    string
	destroy func(*T)
}

// NewFixedPool pre-allocates capacity zeroed slots.
func NewFixedPool[T any](capacity int, opts ...Option[T]) (*FixedPool[T], error) {
	if capacity <= 0 {
		return nil, api.Errorf(api.ErrInvalidCapacity, "got %d", capacity)
	}
	p := &FixedPool[T]{
		slots: make([]slot[T], capacity),
		owner: poolSeq.Add(1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Allocate claims the next free slot at or after the scan cursor, runs
// construct on its zeroed value and returns the handle. construct may be nil.
// If construct panics the slot is released before the panic propagates.
// After one full cycle without a free slot it returns api.ErrPoolExhausted.
func (p *FixedPool[T]) Allocate(construct func(*T)) (Handle, error) {
	s, h, err := p.claim()
	if err != nil {
		return h, err
	}
	if construct != nil {
		built := false
		defer func() {
			if !built {
				p.release(s)
			}
		}()
		construct(&s.value)
		built = true
	}
	return h, nil
}

// AllocateValue claims a free slot and copies v into it.
func (p *FixedPool[T]) AllocateValue(v T) (Handle, error) {
	s, h, err := p.claim()
	if err != nil {
		return h, err
	}
	s.value = v
	return h, nil
}

// claim marks the first free slot from the cursor live and moves the cursor
// past it.
func (p *FixedPool[T]) claim() (*slot[T], Handle, error) {
	n := len(p.slots)
	if p.inUse == n {
		return nil, Handle{}, api.ErrPoolExhausted
	}
	i := p.cursor
	for probed := 0; probed < n; probed++ {
		s := &p.slots[i]
		if !s.live {
			s.live = true
			s.gen++
			p.inUse++
			p.cursor = i + 1
			if p.cursor == n {
				p.cursor = 0
			}
			return s, Handle{owner: p.owner, index: uint32(i), gen: s.gen}, nil
		}
		i++
		if i == n {
			i = 0
		}
	}
	return nil, Handle{}, api.ErrPoolExhausted
}

// Get returns the live value referenced by h. The pointer is valid until h is
// deallocated.
func (p *FixedPool[T]) Get(h Handle) (*T, error) {
	s, ok := p.lookup(h)
	if !ok {
		return nil, p.invalid(h, "get")
	}
	return &s.value, nil
}

// Deallocate runs the destructor, clears the slot and marks it free.
// A handle from another pool, a freed handle or a stale handle yields
// api.ErrInvalidHandle and leaves the pool unchanged.
func (p *FixedPool[T]) Deallocate(h Handle) error {
	s, ok := p.lookup(h)
	if !ok {
		return p.invalid(h, "deallocate")
	}
	if p.destroy != nil {
		p.destroy(&s.value)
	}
	p.release(s)
	return nil
}

// release clears s and marks it free.
func (p *FixedPool[T]) release(s *slot[T]) {
	var zero T
	s.value = zero
	s.live = false
	p.inUse--
}

// Size returns the number of live objects.
func (p *FixedPool[T]) Size() int {
	return p.inUse
}

// Cap returns the fixed slot count.
func (p *FixedPool[T]) Cap() int {
	return len(p.slots)
}

func (p *FixedPool[T]) lookup(h Handle) (*slot[T], bool) {
	if h.owner != p.owner || int(h.index) >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, false
	}
	return s, true
}

func (p *FixedPool[T]) invalid(h Handle, op string) error {
	err := api.Errorf(api.ErrInvalidHandle, "%s %s", op, h).
		WithContext("pool", p.name)
	return debug.Violation(err, log.Fields{
		"pool":   p.name,
		"op":     op,
		"handle": h.String(),
	})
}
