//go:build debug

package debug

// Fatal is true when violations panic.
const Fatal = true
