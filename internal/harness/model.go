// File: internal/harness/model.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package harness

import "github.com/eapache/queue"

// Model is an unbounded reference FIFO of ints with an optional bound.
type Model struct {
	q     *queue.Queue
	limit int
}

// NewModel returns an empty model that refuses pushes beyond limit.
func NewModel(limit int) *Model {
	return &Model{q: queue.New(), limit: limit}
}

// Push appends v; false when the model is at its limit.
func (m *Model) Push(v int) bool {
	if m.q.Length() >= m.limit {
		return false
	}
	m.q.Add(v)
	return true
}

// Pop removes the oldest value; false when empty.
func (m *Model) Pop() (int, bool) {
	if m.q.Length() == 0 {
		return 0, false
	}
	return m.q.Remove().(int), true
}

// Len returns the number of queued values.
func (m *Model) Len() int {
	return m.q.Length()
}
