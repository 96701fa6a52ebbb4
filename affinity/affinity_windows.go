//go:build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows-specific implementation for setting thread CPU affinity.

package affinity

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var procSetThreadAffinityMask = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetThreadAffinityMask")

// setAffinityPlatform sets the calling thread's affinity mask to a single CPU.
// Only the first processor group is addressable through the mask.
func setAffinityPlatform(cpuID int) error {
	if cpuID >= int(unsafe.Sizeof(uintptr(0)))*8 {
		return fmt.Errorf("affinity: cpu %d outside the thread affinity mask", cpuID)
	}
	thread, err := windows.GetCurrentThread()
	if err != nil {
		return fmt.Errorf("affinity: GetCurrentThread: %w", err)
	}
	prev, _, err := procSetThreadAffinityMask.Call(uintptr(thread), uintptr(1)<<cpuID)
	if prev == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask cpu %d: %w", cpuID, err)
	}
	return nil
}
