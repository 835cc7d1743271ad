// Package scheduler serializes every timed and requested piece of game work
// onto one logical event queue.
//
// A Loop owns a priority queue of tasks ordered by (fire time, scheduling
// order) and a logical clock. Time only moves when Advance or AdvanceTo is
// called: tests drive it directly, production drives it from a Driver.
// Requests from other goroutines enter through Do, which runs under the same
// serialization as task callbacks.
package scheduler

import (
	"container/heap"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Task is a scheduled callback. A periodic task reschedules itself after
// each run until cancelled.
type Task struct {
	at     time.Time
	seq    uint64
	period time.Duration
	fn     func(now time.Time)
	index  int
	done   bool
	loop   *Loop
}

// At returns the next fire time.
func (t *Task) At() time.Time { return t.at }

// Cancel removes the task from the queue. Cancelling a finished or already
// cancelled task is a no-op.
//
// Precondition: called from a task callback or inside Do.
func (t *Task) Cancel() {
	if t.done {
		return
	}
	t.done = true
	if t.index >= 0 {
		heap.Remove(&t.loop.queue, t.index)
	}
}

// Active reports whether the task will still fire.
func (t *Task) Active() bool { return !t.done }

// Loop is the serialized event queue.
//
// Invariant: at most one callback (task or Do) runs at any time, and tasks
// run in (fire time, scheduling order) order.
type Loop struct {
	mu    sync.Mutex
	now   atomic.Int64
	loc   *time.Location
	queue taskHeap
	seq   uint64
}

// NewLoop creates a Loop whose logical clock starts at start.
func NewLoop(start time.Time) *Loop {
	l := &Loop{loc: start.Location()}
	l.now.Store(start.UnixNano())
	return l
}

// Now returns the logical time. Safe to call from any goroutine.
func (l *Loop) Now() time.Time {
	return time.Unix(0, l.now.Load()).In(l.loc)
}

// Do runs fn under the loop's serialization and returns its result.
func (l *Loop) Do(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}

// After schedules fn to run once, d after the current logical time.
//
// Precondition: called from a task callback or inside Do; d >= 0.
func (l *Loop) After(d time.Duration, fn func(now time.Time)) *Task {
	return l.schedule(l.Now().Add(d), 0, fn)
}

// Every schedules fn to run every period, first at now+period.
//
// Precondition: called from a task callback or inside Do; period > 0.
func (l *Loop) Every(period time.Duration, fn func(now time.Time)) *Task {
	if period <= 0 {
		panic(fmt.Sprintf("scheduler: Every called with period %s", period))
	}
	return l.schedule(l.Now().Add(period), period, fn)
}

func (l *Loop) schedule(at time.Time, period time.Duration, fn func(now time.Time)) *Task {
	l.seq++
	t := &Task{at: at, seq: l.seq, period: period, fn: fn, loop: l, index: -1}
	heap.Push(&l.queue, t)
	return t
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.Len()
}

// Advance moves logical time forward by d, running every task due on the way.
//
// Precondition: not called from a task callback or inside Do.
// Postcondition: returns the number of callbacks run.
func (l *Loop) Advance(d time.Duration) int {
	return l.AdvanceTo(l.Now().Add(d))
}

// AdvanceTo moves logical time to target, running every task whose fire time
// is <= target in order. Time never moves backwards.
//
// Precondition: not called from a task callback or inside Do.
// Postcondition: returns the number of callbacks run.
func (l *Loop) AdvanceTo(target time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	ran := 0
	for l.queue.Len() > 0 {
		next := l.queue[0]
		if next.at.After(target) {
			break
		}
		heap.Pop(&l.queue)
		fired := next.at
		if fired.UnixNano() > l.now.Load() {
			l.now.Store(fired.UnixNano())
		}
		if next.period > 0 {
			l.seq++
			next.at = fired.Add(next.period)
			next.seq = l.seq
			heap.Push(&l.queue, next)
		} else {
			next.done = true
		}
		next.fn(fired)
		ran++
	}
	if target.UnixNano() > l.now.Load() {
		l.now.Store(target.UnixNano())
	}
	return ran
}

// taskHeap orders tasks by fire time, then scheduling order.
type taskHeap []*Task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if !h[i].at.Equal(h[j].at) {
		return h[i].at.Before(h[j].at)
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*Task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
