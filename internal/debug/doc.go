// Package debug reports contract violations of the ring and pool primitives.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Built with -tags debug, a violation panics at the call site. Otherwise it is
// logged with structured fields and the caller receives the error unchanged.
package debug
