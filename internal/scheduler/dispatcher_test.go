//go:build unit

package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront/internal/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects task invocations across goroutines.
type recorder struct {
	mu    sync.Mutex
	names []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.names)
}

func TestDispatcherRunsTasksInOrder(t *testing.T) {
	rec := &recorder{}
	d := scheduler.NewPeriodicDispatcher(10*time.Millisecond,
		scheduler.Task{Name: "first", Run: func(ctx context.Context) error {
			rec.add("first")
			return nil
		}},
		scheduler.Task{Name: "second", Run: func(ctx context.Context) error {
			rec.add("second")
			return nil
		}},
	)

	d.Start(context.Background())
	defer d.Stop()

	require.Eventually(t, func() bool {
		return rec.count() >= 4
	}, time.Second, 5*time.Millisecond)

	names := rec.snapshot()
	assert.Equal(t, "first", names[0])
	assert.Equal(t, "second", names[1])
	assert.Equal(t, "first", names[2])
	assert.Equal(t, "second", names[3])
}

func TestDispatcherContinuesAfterTaskFailure(t *testing.T) {
	rec := &recorder{}
	d := scheduler.NewPeriodicDispatcher(10*time.Millisecond,
		scheduler.Task{Name: "failing", Run: func(ctx context.Context) error {
			return errors.New("boom")
		}},
		scheduler.Task{Name: "survivor", Run: func(ctx context.Context) error {
			rec.add("survivor")
			return nil
		}},
	)

	d.Start(context.Background())
	defer d.Stop()

	require.Eventually(t, func() bool {
		return rec.count() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestDispatcherSkipsOverlappingTicks(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{}, 1)
	rec := &recorder{}

	d := scheduler.NewPeriodicDispatcher(10*time.Millisecond,
		scheduler.Task{Name: "slow", Run: func(ctx context.Context) error {
			rec.add("slow")
			select {
			case started <- struct{}{}:
			default:
			}
			<-block
			return nil
		}},
	)

	d.Start(context.Background())

	// First tick begins, then several intervals pass while it is blocked.
	<-started
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, rec.count())

	close(block)
	d.Stop()
}

func TestDispatcherStopIsIdempotent(t *testing.T) {
	d := scheduler.NewPeriodicDispatcher(time.Hour,
		scheduler.Task{Name: "noop", Run: func(ctx context.Context) error { return nil }},
	)

	d.Start(context.Background())
	d.Start(context.Background()) // second Start is a no-op
	d.Stop()
	d.Stop() // second Stop must not block or panic
}
