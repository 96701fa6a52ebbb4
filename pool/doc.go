// Package pool
// Author: momentics <momentics@gmail.com>
//
// Allocation-free object storage for latency-sensitive paths.
// FixedPool pre-allocates a slot arena once; Allocate and Deallocate only
// flip slot state and never touch the Go allocator. Objects are referenced by
// opaque handles so ownership, bounds and double frees can be validated.
// See fixed_pool.go for implementation details.
package pool
