package concurrency

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/internal/harness"
)

func TestSPSCRing_InvalidCapacity(t *testing.T) {
	for _, c := range []int{0, -1, -1024} {
		r, err := NewSPSCRing[int](c)
		assert.Nil(t, r)
		assert.ErrorIs(t, err, api.ErrInvalidCapacity)
	}
}

func TestSPSCRing_FullRejectsCommit(t *testing.T) {
	for _, n := range []int{1, 2, 3, 16} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			r, err := NewSPSCRing[int](n)
			require.NoError(t, err)
			for i := 0; i < n; i++ {
				*r.ReserveWriteSlot() = i
				require.NoError(t, r.CommitWrite())
			}
			require.Equal(t, n, r.Size())

			*r.ReserveWriteSlot() = -1
			require.ErrorIs(t, r.CommitWrite(), api.ErrQueueFull)
			require.Equal(t, n, r.Size())

			// Unread data survives the rejected write.
			for i := 0; i < n; i++ {
				v, ok := r.Dequeue()
				require.True(t, ok)
				require.Equal(t, i, v)
			}
			_, ok := r.Dequeue()
			require.False(t, ok)
		})
	}
}

func TestSPSCRing_RetryCommitAfterFull(t *testing.T) {
	r, err := NewSPSCRing[string](2)
	require.NoError(t, err)
	require.NoError(t, r.Enqueue("a"))
	require.NoError(t, r.Enqueue("b"))

	*r.ReserveWriteSlot() = "c"
	require.ErrorIs(t, r.CommitWrite(), api.ErrQueueFull)

	v, ok := r.Dequeue()
	require.True(t, ok)
	require.Equal(t, "a", v)

	// The reserved slot kept its contents; committing again publishes it.
	require.NoError(t, r.CommitWrite())
	for _, want := range []string{"b", "c"} {
		v, ok := r.Dequeue()
		require.True(t, ok)
		require.Equal(t, want, v)
	}
}

func TestSPSCRing_FIFO(t *testing.T) {
	r, err := NewSPSCRing[int](16)
	require.NoError(t, err)
	for round := 0; round < 5; round++ {
		k := 1 + round*3
		for i := 0; i < k; i++ {
			slot := r.ReserveWriteSlot()
			*slot = round*100 + i
			require.NoError(t, r.CommitWrite())
		}
		for i := 0; i < k; i++ {
			slot, ok := r.ReserveReadSlot()
			require.True(t, ok)
			require.Equal(t, round*100+i, *slot)
			require.NoError(t, r.CommitRead())
		}
		_, ok := r.ReserveReadSlot()
		require.False(t, ok)
	}
}

func TestSPSCRing_CapacityOne(t *testing.T) {
	r, err := NewSPSCRing[int](1)
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		require.NoError(t, r.Enqueue(i))
		require.Equal(t, 1, r.Size())
		require.ErrorIs(t, r.Enqueue(-1), api.ErrQueueFull)

		v, ok := r.Dequeue()
		require.True(t, ok)
		require.Equal(t, i, v)
		require.Equal(t, 0, r.Size())
		_, ok = r.ReserveReadSlot()
		require.False(t, ok)
	}
}

func TestSPSCRing_CommitReadOnEmpty(t *testing.T) {
	r, err := NewSPSCRing[int](4, WithRingName("md"))
	require.NoError(t, err)
	defer func() {
		// Under -tags debug the violation panics.
		if p := recover(); p != nil {
			perr, ok := p.(error)
			require.True(t, ok)
			require.ErrorIs(t, perr, api.ErrEmptyQueueRead)
		}
	}()
	err = r.CommitRead()
	require.ErrorIs(t, err, api.ErrEmptyQueueRead)
	assert.True(t, api.IsContractViolation(err))

	// State is untouched: the ring still works.
	require.NoError(t, r.Enqueue(7))
	v, ok := r.Dequeue()
	require.True(t, ok)
	require.Equal(t, 7, v)
}

// TestSPSCRing_ModelBased checks random single-goroutine operation sequences
// against a reference FIFO.
func TestSPSCRing_ModelBased(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		capacity := 1 + rnd.Intn(64)
		r, err := NewSPSCRing[int](capacity)
		require.NoError(t, err)
		m := harness.NewModel(capacity)

		for i := 0; i < 5000; i++ {
			switch rnd.Intn(2) {
			case 0:
				val := rnd.Intn(100000)
				err := r.Enqueue(val)
				if m.Push(val) {
					require.NoError(t, err)
				} else {
					require.ErrorIs(t, err, api.ErrQueueFull)
				}
			case 1:
				got, ok := r.Dequeue()
				want, wantOK := m.Pop()
				require.Equal(t, wantOK, ok)
				require.Equal(t, want, got)
			}
			require.Equal(t, m.Len(), r.Size(), "seed %d op %d", seed, i)
		}
	}
}

func TestSPSCRing_ConcurrentSequence(t *testing.T) {
	for _, capacity := range []int{1, 2, 16, 1024} {
		for _, items := range []int{10, 10_000} {
			t.Run(fmt.Sprintf("cap=%d/items=%d", capacity, items), func(t *testing.T) {
				r, err := NewSPSCRing[int](capacity)
				require.NoError(t, err)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				got, err := harness.RunSequence(ctx, r, harness.Config{
					Items:      items,
					MaxDelay:   20 * time.Microsecond,
					DelayEvery: 97,
					Seed:       int64(capacity*31 + items),
				})
				require.NoError(t, err)
				require.Len(t, got, items)
				for i, v := range got {
					if v != i {
						t.Fatalf("position %d: got %d", i, v)
					}
				}
				require.Equal(t, 0, r.Size())
			})
		}
	}
}

func TestSPSCRing_SizeBounds(t *testing.T) {
	r, err := NewSPSCRing[int](8)
	require.NoError(t, err)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20000; i++ {
			for errors.Is(r.Enqueue(i), api.ErrQueueFull) {
				runtime.Gosched()
			}
		}
	}()
	seen := 0
	for seen < 20000 {
		if _, ok := r.Dequeue(); ok {
			seen++
		}
		if s := r.Size(); s < 0 || s > r.Cap() {
			t.Fatalf("size out of bounds: %d", s)
		}
	}
	<-done
}

func TestSPSCRing_SteadyStateDoesNotAllocate(t *testing.T) {
	type quote struct {
		Bid, Ask int64
		Seq      uint64
	}
	r, err := NewSPSCRing[quote](4)
	require.NoError(t, err)
	seq := uint64(0)
	allocs := testing.AllocsPerRun(1000, func() {
		q := r.ReserveWriteSlot()
		q.Seq = seq
		if err := r.CommitWrite(); err != nil {
			t.Fatal(err)
		}
		got, ok := r.ReserveReadSlot()
		if !ok || got.Seq != seq {
			t.Fatalf("read %v %v", got, ok)
		}
		if err := r.CommitRead(); err != nil {
			t.Fatal(err)
		}
		seq++
	})
	assert.Zero(t, allocs)
}
