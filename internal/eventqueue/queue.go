package eventqueue

import "container/heap"

// innerHeap implements heap.Interface over *Event, ordered by time, then
// the fixed kind order, then insertion sequence.
type innerHeap []*Event

func (h innerHeap) Len() int { return len(h) }

func (h innerHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	if ra, rb := kindOrder[a.Kind], kindOrder[b.Kind]; ra != rb {
		return ra < rb
	}
	return a.seq < b.seq
}

func (h innerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *innerHeap) Push(x any) {
	e := x.(*Event)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *innerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Queue is the kernel's event schedule: a min-heap keyed by
// (time, kind, insertion order).
type Queue struct {
	h       innerHeap
	nextSeq int64
}

// New returns an empty queue.
func New() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push schedules e, stamping it with the next insertion sequence number.
func (q *Queue) Push(e *Event) {
	e.seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.h, e)
}

// Pop removes and returns the earliest event, or nil if the queue is
// empty.
func (q *Queue) Pop() *Event {
	if q.h.Len() == 0 {
		return nil
	}
	return heap.Pop(&q.h).(*Event)
}

// Len returns the number of pending events.
func (q *Queue) Len() int { return q.h.Len() }

// Peek returns the earliest event without removing it, or nil if empty.
func (q *Queue) Peek() *Event {
	if q.h.Len() == 0 {
		return nil
	}
	return q.h[0]
}
