// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_stub.go) guarded by build tags.

package affinity

import (
	"fmt"
	"runtime"
)

// SetAffinity pins the current OS thread to a given logical CPU.
// The caller must hold runtime.LockOSThread, otherwise the goroutine may
// migrate off the pinned thread. On unsupported platforms returns an error.
func SetAffinity(cpuID int) error {
	if cpuID < 0 {
		return fmt.Errorf("affinity: invalid cpu %d", cpuID)
	}
	return setAffinityPlatform(cpuID)
}

// Pin locks the calling goroutine to its OS thread and pins that thread to
// cpuID. The returned func undoes the lock; it is safe to call on error.
// The thread keeps its affinity after unpin, so goroutines that should not
// leave a pinned thread behind exit without calling it.
func Pin(cpuID int) (unpin func(), err error) {
	runtime.LockOSThread()
	if err := SetAffinity(cpuID); err != nil {
		return runtime.UnlockOSThread, err
	}
	return runtime.UnlockOSThread, nil
}
