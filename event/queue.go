package event

import (
	"github.com/ezrec/ucalc/critical"
)

const (
	// QUEUE_DEFAULT_CAPACITY is the capacity used when none is set.
	QUEUE_DEFAULT_CAPACITY = 16
)

// Policy selects what Push does when the queue is full.
type Policy uint8

const (
	OVERFLOW_DROP_OLDEST = Policy(0) // Discard the oldest queued event.
	OVERFLOW_DROP_NEWEST = Policy(1) // Discard the pushed event.
	OVERFLOW_FAULT       = Policy(2) // Panic with ErrQueueFull.
)

func (policy Policy) String() string {
	switch policy {
	case OVERFLOW_DROP_OLDEST:
		return "drop-oldest"
	case OVERFLOW_DROP_NEWEST:
		return "drop-newest"
	case OVERFLOW_FAULT:
		return "fault"
	}
	return "unknown"
}

// Queue is a fixed capacity FIFO of events shared between the interrupt
// handler, which pushes at the tail, and the main context, which pops at the
// head.
//
// Push runs only inside the interrupt handler, where the hardware already
// holds off the interrupt. Pop runs only in the main context and requires an
// open critical section guard.
type Queue struct {
	Capacity int    // Capacity in events.
	Policy   Policy // Overflow policy.
	Dropped  int    // Events discarded by the overflow policy.

	readIndex  int
	writeIndex int
	size       int
	data       []Event
}

// Reset empties the queue and allocates its storage.
func (q *Queue) Reset() {
	if q.Capacity <= 0 {
		q.Capacity = QUEUE_DEFAULT_CAPACITY
	}

	q.readIndex = 0
	q.writeIndex = 0
	q.size = 0
	q.Dropped = 0
	q.data = make([]Event, q.Capacity)
}

// Push appends an event at the tail. Interrupt context only.
func (q *Queue) Push(ev Event) (err error) {
	if q.data == nil {
		q.Reset()
	}

	if q.size == q.Capacity {
		switch q.Policy {
		case OVERFLOW_DROP_NEWEST:
			q.Dropped++
			err = ErrQueueFull
			return
		case OVERFLOW_FAULT:
			panic(ErrQueueFull)
		default:
			q.Dropped++
			q.advance()
		}
	}

	q.data[q.writeIndex] = ev
	q.writeIndex++
	if q.writeIndex == q.Capacity {
		q.writeIndex = 0
	}
	q.size++

	return
}

// Pop removes the event at the head: the oldest by arrival. Main context
// only, with g open.
func (q *Queue) Pop(g *critical.Guard) (ev Event, ok bool) {
	if !g.Open() {
		panic(ErrUnguarded)
	}

	if q.size == 0 {
		return
	}

	ev = q.data[q.readIndex]
	ok = true
	q.advance()

	return
}

// Len returns the number of queued events. Main context only, with g open.
func (q *Queue) Len(g *critical.Guard) int {
	if !g.Open() {
		panic(ErrUnguarded)
	}

	return q.size
}

func (q *Queue) advance() {
	q.readIndex++
	if q.readIndex == q.Capacity {
		q.readIndex = 0
	}
	q.size--
}
