package world

import (
	"container/heap"
	"math"
)

// EventID identifies a scheduled callback so it can be cancelled.
type EventID uint64

type scheduledEvent struct {
	id    EventID
	fire  int64  // Tick the callback runs on
	seq   uint64 // Insertion order, breaks ties between equal fire ticks
	fn    func()
	index int
}

type eventQueue []*scheduledEvent

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].fire != q[j].fire {
		return q[i].fire < q[j].fire
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue) Push(x any) {
	ev := x.(*scheduledEvent)
	ev.index = len(*q)
	*q = append(*q, ev)
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	ev.index = -1
	*q = old[:n-1]
	return ev
}

// Scheduler runs one-shot callbacks on the tick path. Events are keyed by
// (fire tick, insertion order) and polled once per tick, so callbacks never
// run concurrently with the simulation and can be cancelled before they fire.
type Scheduler struct {
	tickRate int
	now      int64
	seq      uint64
	nextID   EventID
	queue    eventQueue
	byID     map[EventID]*scheduledEvent
}

// NewScheduler creates a scheduler converting seconds at the given tick rate.
func NewScheduler(tickRate int) *Scheduler {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Scheduler{
		tickRate: tickRate,
		byID:     make(map[EventID]*scheduledEvent),
	}
}

// Now returns the current tick.
func (s *Scheduler) Now() int64 {
	return s.now
}

// Ticks converts a duration in seconds to whole ticks, rounding up.
// Every delay is at least one tick: a callback never runs on the tick that
// scheduled it.
func (s *Scheduler) Ticks(seconds float64) int64 {
	n := int64(math.Ceil(seconds*float64(s.tickRate) - 1e-9))
	if n < 1 {
		n = 1
	}
	return n
}

// After schedules fn to run the given number of seconds from now.
func (s *Scheduler) After(seconds float64, fn func()) EventID {
	return s.AfterTicks(s.Ticks(seconds), fn)
}

// AfterTicks schedules fn to run n ticks from now (minimum one).
func (s *Scheduler) AfterTicks(n int64, fn func()) EventID {
	if n < 1 {
		n = 1
	}
	s.nextID++
	s.seq++
	ev := &scheduledEvent{
		id:   s.nextID,
		fire: s.now + n,
		seq:  s.seq,
		fn:   fn,
	}
	heap.Push(&s.queue, ev)
	s.byID[ev.id] = ev
	return ev.id
}

// Cancel removes a pending event. It returns false if the event already
// fired, was already cancelled, or never existed.
func (s *Scheduler) Cancel(id EventID) bool {
	ev, ok := s.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, ev.index)
	delete(s.byID, id)
	return true
}

// Pending reports whether an event is still queued.
func (s *Scheduler) Pending(id EventID) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of queued events.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Advance moves to the next tick and runs every event due on it, in order.
// Callbacks may schedule or cancel other events; anything they schedule
// lands on a later tick. It returns the number of callbacks run.
func (s *Scheduler) Advance() int {
	s.now++
	ran := 0
	for len(s.queue) > 0 && s.queue[0].fire <= s.now {
		ev := heap.Pop(&s.queue).(*scheduledEvent)
		delete(s.byID, ev.id)
		ev.fn()
		ran++
	}
	return ran
}
