// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime diagnostics for rings and pools.
//
// Provides concurrent-safe state handling primitives including:
//   - A Watcher sampling named ring and pool gauges
//   - A metrics registry tracking occupancy high-water marks
//   - Counters for back-pressure and contract-violation events
//
// Sampling runs on the goroutine calling Sample or Publish. Ring gauges are
// safe to read from anywhere; pool gauges must be read by the pool's owner.
package control
