// File: pool/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

// Option customizes FixedPool construction.
type Option[T any] func(*FixedPool[T])

// WithName labels the pool in violation reports and diagnostics.
func WithName[T any](name string) Option[T] {
	return func(p *FixedPool[T]) {
		p.name = name
	}
}

// WithDestructor registers fn to run on a value before its slot is freed.
func WithDestructor[T any](fn func(*T)) Option[T] {
	return func(p *FixedPool[T]) {
		p.destroy = fn
	}
}
