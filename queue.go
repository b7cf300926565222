package voronoi

// QueueHandle is a stable reference to an event pushed onto an EventQueue.
// It remains valid until the event it names is popped or removed; removing
// through a stale handle (one whose event already fired or was already
// removed) is a safe no-op, per spec.md §4.5/§9.
type QueueHandle = Key[queueSlot]

type queueSlot struct {
	event   Event
	heapPos int
}

// EventQueue is a min-heap over event Y, exposing a per-insertion handle
// usable to cancel the event later (the "false alarm" circle-event
// removal spec.md §4.6 relies on). Modeled on the teacher's nodeQueue
// (bubbleUp/trickleDown over a slice), generalized so each element also
// knows its own position in the heap, making Remove(handle) O(log n)
// instead of an O(n) linear scan for the matching entry.
type EventQueue struct {
	pool *Pool[queueSlot]
	heap []QueueHandle
}

// NewEventQueue returns an empty event queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{pool: NewPool[queueSlot]()}
}

// Len returns the number of events currently queued.
func (q *EventQueue) Len() int {
	return len(q.heap)
}

// Push inserts event and returns a handle that can later be passed to
// Remove to cancel it.
func (q *EventQueue) Push(event Event) QueueHandle {
	pos := len(q.heap)
	h := q.pool.Insert(queueSlot{event: event, heapPos: pos})
	q.heap = append(q.heap, h)
	q.siftUp(pos)
	return h
}

// Pop removes and returns the event with the smallest Y, or reports false
// if the queue is empty.
func (q *EventQueue) Pop() (Event, bool) {
	if len(q.heap) == 0 {
		return Event{}, false
	}
	top := q.heap[0]
	ev := q.pool.MustGet(top).event
	q.Remove(top)
	return ev, true
}

// Remove cancels the event named by h. No-op if h refers to a slot whose
// event has already been popped or previously removed: this is the
// expected, non-error path for circle-event false alarms.
func (q *EventQueue) Remove(h QueueHandle) {
	slot, ok := q.pool.Get(h)
	if !ok {
		return
	}
	pos := slot.heapPos
	lastIdx := len(q.heap) - 1
	if pos != lastIdx {
		q.heap[pos] = q.heap[lastIdx]
		q.setHeapPos(q.heap[pos], pos)
	}
	q.heap = q.heap[:lastIdx]
	q.pool.Remove(h)
	if pos < len(q.heap) {
		q.siftDown(pos)
		q.siftUp(pos)
	}
}

func (q *EventQueue) setHeapPos(h QueueHandle, pos int) {
	s := q.pool.MustGet(h)
	s.heapPos = pos
	q.pool.MustSet(h, s)
}

func (q *EventQueue) eventAt(i int) Event {
	return q.pool.MustGet(q.heap[i]).event
}

func (q *EventQueue) less(i, j int) bool {
	return q.eventAt(i).Y < q.eventAt(j).Y
}

func (q *EventQueue) swap(i, j int) {
	q.heap[i], q.heap[j] = q.heap[j], q.heap[i]
	q.setHeapPos(q.heap[i], i)
	q.setHeapPos(q.heap[j], j)
}

func (q *EventQueue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !q.less(i, parent) {
			return
		}
		q.swap(i, parent)
		i = parent
	}
}

func (q *EventQueue) siftDown(i int) {
	n := len(q.heap)
	for {
		left := 2*i + 1
		right := 2*i + 2
		smallest := i
		if left < n && q.less(left, smallest) {
			smallest = left
		}
		if right < n && q.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			return
		}
		q.swap(i, smallest)
		i = smallest
	}
}
