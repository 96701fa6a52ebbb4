// Package harness drives ring and pool primitives in tests and benchmarks.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RunSequence runs one producer and one consumer goroutine over an
// api.SlotRing with randomized scheduling delays. Model is a plain FIFO used
// as the reference when checking randomized operation sequences.
package harness
