// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines the fixed-capacity object pool contract.

package api

// ObjectPool hands out pre-allocated slots addressed by handles of type H.
type ObjectPool[T any, H comparable] interface {
	// Allocate constructs a value in a free slot and returns its handle.
	Allocate(construct func(*T)) (H, error)

	// Get returns the live value referenced by h.
	Get(h H) (*T, error)

	// Deallocate destroys the value and frees its slot.
	Deallocate(h H) error

	Gauge
}
