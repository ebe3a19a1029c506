package suspense

import (
	"container/heap"
	"context"
	"time"
)

// Loop is a real-time Scheduler drained by Run on the calling goroutine.
// Schedule must only be called before Run or from tasks it runs.
type Loop struct {
	start time.Time
	seq   uint64
	queue taskQueue
}

// NewLoop returns an empty loop whose clock starts now.
func NewLoop() *Loop {
	return &Loop{start: time.Now()}
}

// Schedule implements Scheduler.
func (l *Loop) Schedule(delay time.Duration, task func()) {
	if delay < 0 {
		delay = 0
	}
	l.seq++
	heap.Push(&l.queue, scheduledTask{due: time.Since(l.start) + delay, seq: l.seq, task: task})
}

// Run executes tasks as they come due until none are left or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for l.queue.Len() > 0 {
		next := l.queue[0]
		if wait := next.due - time.Since(l.start); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		heap.Pop(&l.queue)
		next.task()
	}
	return nil
}
