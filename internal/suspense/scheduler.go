package suspense

import (
	"container/heap"
	"time"
)

// Scheduler runs deferred tasks on a single logical event loop. Tasks run
// one at a time, ordered by due time and then by scheduling order.
type Scheduler interface {
	Schedule(delay time.Duration, task func())
}

type scheduledTask struct {
	due  time.Duration
	seq  uint64
	task func()
}

type taskQueue []scheduledTask

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(scheduledTask)) }

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// VirtualClock is a Scheduler with a manual clock, for tests and replays.
type VirtualClock struct {
	now   time.Duration
	seq   uint64
	queue taskQueue
}

// NewVirtualClock returns a clock at time zero.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{}
}

// Schedule implements Scheduler.
func (c *VirtualClock) Schedule(delay time.Duration, task func()) {
	if delay < 0 {
		delay = 0
	}
	c.seq++
	heap.Push(&c.queue, scheduledTask{due: c.now + delay, seq: c.seq, task: task})
}

// Now returns the elapsed virtual time.
func (c *VirtualClock) Now() time.Duration {
	return c.now
}

// Pending returns the number of queued tasks.
func (c *VirtualClock) Pending() int {
	return c.queue.Len()
}

// Step advances to the next task and runs it. It returns false when nothing
// is queued.
func (c *VirtualClock) Step() bool {
	if c.queue.Len() == 0 {
		return false
	}
	next := heap.Pop(&c.queue).(scheduledTask)
	c.now = next.due
	next.task()
	return true
}

// RunUntilIdle runs tasks until the queue drains and returns how many ran.
func (c *VirtualClock) RunUntilIdle() int {
	n := 0
	for c.Step() {
		n++
	}
	return n
}
