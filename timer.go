package gesture

import (
	"container/heap"
	"time"
)

// timerTag distinguishes the independent deadlines one recognizer may hold.
type timerTag uint8

const (
	timerDeadline  timerTag = iota // long-press duration
	timerTapWindow                 // gap allowed between taps of a multi-tap
	timerRepeat                    // long-press repeat
	timerSequence                  // gap allowed between sequence steps
)

type timerEntry struct {
	at    time.Duration
	seq   uint64
	owner Handle
	tag   timerTag
	fn    func()
	index int
}

type timerHeap []*timerEntry

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	e := x.(*timerEntry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

type timerKey struct {
	owner Handle
	tag   timerTag
}

// timerQueue is the single delay queue owned by the engine. Timers fire as
// ordinary callbacks from Advance, never during another event's processing.
// Cancelling everything a recognizer scheduled is one CancelAll call.
type timerQueue struct {
	h     timerHeap
	byKey map[timerKey]*timerEntry
	seq   uint64
}

// Schedule arms fn to run at the given time, replacing any timer the owner
// already holds under the same tag.
func (q *timerQueue) Schedule(owner Handle, tag timerTag, at time.Duration, fn func()) {
	if q.byKey == nil {
		q.byKey = make(map[timerKey]*timerEntry)
	}
	q.Cancel(owner, tag)
	q.seq++
	e := &timerEntry{at: at, seq: q.seq, owner: owner, tag: tag, fn: fn}
	heap.Push(&q.h, e)
	q.byKey[timerKey{owner, tag}] = e
}

// Cancel disarms the owner's timer under tag, if any.
func (q *timerQueue) Cancel(owner Handle, tag timerTag) {
	k := timerKey{owner, tag}
	e, ok := q.byKey[k]
	if !ok {
		return
	}
	delete(q.byKey, k)
	if e.index >= 0 {
		heap.Remove(&q.h, e.index)
	}
}

// CancelAll disarms every timer the owner holds.
func (q *timerQueue) CancelAll(owner Handle) {
	for _, tag := range [...]timerTag{timerDeadline, timerTapWindow, timerRepeat, timerSequence} {
		q.Cancel(owner, tag)
	}
}

// Pending reports whether the owner holds a timer under tag.
func (q *timerQueue) Pending(owner Handle, tag timerTag) bool {
	_, ok := q.byKey[timerKey{owner, tag}]
	return ok
}

// Advance fires, in deadline order, every timer due at or before now.
// Callbacks may schedule or cancel timers; newly armed timers that are
// already due fire in the same call.
func (q *timerQueue) Advance(now time.Duration) int {
	fired := 0
	for len(q.h) > 0 && q.h[0].at <= now {
		e := heap.Pop(&q.h).(*timerEntry)
		delete(q.byKey, timerKey{e.owner, e.tag})
		e.fn()
		fired++
	}
	return fired
}

// Next returns the earliest deadline.
func (q *timerQueue) Next() (time.Duration, bool) {
	if len(q.h) == 0 {
		return 0, false
	}
	return q.h[0].at, true
}

// Len returns the number of armed timers.
func (q *timerQueue) Len() int { return len(q.h) }
