// File: internal/debug/report.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package debug

import (
	"sync/atomic"

	"github.com/containerd/log"
)

var violations atomic.Uint64

// Violation records a caller bug. It panics when Fatal, otherwise logs err
// with fields and returns it so callers can write `return debug.Violation(...)`.
func Violation(err error, fields log.Fields) error {
	violations.Add(1)
	if Fatal {
		panic(err)
	}
	log.L.WithError(err).WithFields(fields).Error("contract violation")
	return err
}

// Violations returns the number of violations reported by this process.
func Violations() uint64 {
	return violations.Load()
}
