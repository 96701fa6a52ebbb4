// Package api
// Author: momentics@gmail.com
//
// Single-producer/single-consumer ring contracts.

package api

// SlotRing is a bounded SPSC ring accessed in place.
//
// Exactly one goroutine may call the write pair and exactly one goroutine may
// call the read pair. This is a precondition and is not checked.
type SlotRing[T any] interface {
	// ReserveWriteSlot returns the slot the producer fills next.
	ReserveWriteSlot() *T
	// CommitWrite publishes the reserved slot, or returns ErrQueueFull.
	CommitWrite() error
	// ReserveReadSlot returns the oldest unread slot, false if empty.
	ReserveReadSlot() (*T, bool)
	// CommitRead releases the slot returned by ReserveReadSlot.
	CommitRead() error
	Gauge
}

// Ring adds copying helpers on top of SlotRing.
type Ring[T any] interface {
	SlotRing[T]
	// Enqueue copies item into the ring; ErrQueueFull if no room.
	Enqueue(item T) error
	// Dequeue removes oldest item, returns false if empty.
	Dequeue() (T, bool)
}

// Gauge exposes approximate occupancy for diagnostics.
type Gauge interface {
	// Size returns the current number of items; approximate under concurrency.
	Size() int
	// Cap returns the fixed capacity.
	Cap() int
}
