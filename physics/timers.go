package physics

import (
	"container/heap"
	"time"
)

// Token identifies a scheduled callback. Zero is never issued.
type Token uint64

type timer struct {
	token    Token
	due      time.Duration
	interval time.Duration
	fn       func()
	seq      uint64
	index    int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due == h[j].due {
		return h[i].seq < h[j].seq
	}
	return h[i].due < h[j].due
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// timers is a virtual clock driven by Advance. Callbacks run synchronously
// inside Advance, in deadline order.
type timers struct {
	now     time.Duration
	queue   timerHeap
	byToken map[Token]*timer
	next    Token
	seq     uint64
}

func newTimers() timers {
	return timers{byToken: make(map[Token]*timer)}
}

// Now returns the time elapsed on the virtual clock.
func (t *timers) Now() time.Duration {
	return t.now
}

// ScheduleOnce runs fn once after d.
func (t *timers) ScheduleOnce(d time.Duration, fn func()) Token {
	return t.schedule(d, 0, fn)
}

// SchedulePeriodic runs fn every interval until cancelled. Non-positive
// intervals are clamped to one millisecond.
func (t *timers) SchedulePeriodic(interval time.Duration, fn func()) Token {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return t.schedule(interval, interval, fn)
}

func (t *timers) schedule(d, interval time.Duration, fn func()) Token {
	if d < 0 {
		d = 0
	}
	if t.byToken == nil {
		t.byToken = make(map[Token]*timer)
	}
	t.next++
	t.seq++
	tm := &timer{token: t.next, due: t.now + d, interval: interval, fn: fn, seq: t.seq}
	heap.Push(&t.queue, tm)
	t.byToken[tm.token] = tm
	return tm.token
}

// Cancel stops tok. Cancelling an unknown or fired token is a no-op.
func (t *timers) Cancel(tok Token) {
	tm, ok := t.byToken[tok]
	if !ok {
		return
	}
	delete(t.byToken, tok)
	if tm.index >= 0 {
		heap.Remove(&t.queue, tm.index)
	}
}

// Pending returns the number of live timers.
func (t *timers) Pending() int {
	return len(t.byToken)
}

// Advance moves the clock forward by dt and fires every timer that comes
// due, including ones scheduled by callbacks within the window.
func (t *timers) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := t.now + dt
	for len(t.queue) > 0 && t.queue[0].due <= target {
		tm := heap.Pop(&t.queue).(*timer)
		t.now = tm.due
		if tm.interval > 0 {
			tm.due += tm.interval
			t.seq++
			tm.seq = t.seq
			heap.Push(&t.queue, tm)
		} else {
			delete(t.byToken, tm.token)
		}
		if tm.fn != nil {
			tm.fn()
		}
	}
	t.now = target
}
