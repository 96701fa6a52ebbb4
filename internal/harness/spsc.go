// File: internal/harness/spsc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package harness

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/momentics/hioload-mem/api"
)

// Config tunes RunSequence.
type Config struct {
	// Items is the number of integers pushed, 0..Items-1.
	Items int
	// MaxDelay bounds the random pause injected before an operation.
	// Zero means only runtime.Gosched is used.
	MaxDelay time.Duration
	// DelayEvery injects a pause on roughly one operation in DelayEvery.
	DelayEvery int
	// Seed seeds both sides' random sources.
	Seed int64
}

// RunSequence pushes 0..cfg.Items-1 through r from one goroutine and drains it
// from another, returning what the consumer observed in order. It returns
// early with ctx.Err() if ctx is done first.
func RunSequence(ctx context.Context, r api.SlotRing[int], cfg Config) ([]int, error) {
	if cfg.DelayEvery <= 0 {
		cfg.DelayEvery = 64
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prodErr := make(chan error, 1)
	go func() {
		rnd := rand.New(rand.NewSource(cfg.Seed))
		for i := 0; i < cfg.Items; i++ {
			pause(rnd, cfg)
			*r.ReserveWriteSlot() = i
			for {
				err := r.CommitWrite()
				if err == nil {
					break
				}
				if !errors.Is(err, api.ErrQueueFull) {
					prodErr <- fmt.Errorf("commit write %d: %w", i, err)
					return
				}
				if ctx.Err() != nil {
					prodErr <- ctx.Err()
					return
				}
				runtime.Gosched()
			}
		}
		prodErr <- nil
	}()

	rnd := rand.New(rand.NewSource(cfg.Seed + 1))
	got := make([]int, 0, cfg.Items)
	for len(got) < cfg.Items {
		pause(rnd, cfg)
		slot, ok := r.ReserveReadSlot()
		if !ok {
			select {
			case <-ctx.Done():
				return got, ctx.Err()
			case err := <-prodErr:
				if err != nil {
					return got, err
				}
				// Producer finished; keep draining what it published.
				prodErr <- nil
			default:
			}
			runtime.Gosched()
			continue
		}
		got = append(got, *slot)
		if err := r.CommitRead(); err != nil {
			return got, fmt.Errorf("commit read: %w", err)
		}
	}
	if err := <-prodErr; err != nil {
		return got, err
	}
	return got, nil
}

func pause(rnd *rand.Rand, cfg Config) {
	if rnd.Intn(cfg.DelayEvery) != 0 {
		return
	}
	if cfg.MaxDelay <= 0 {
		runtime.Gosched()
		return
	}
	time.Sleep(time.Duration(rnd.Int63n(int64(cfg.MaxDelay))))
}
