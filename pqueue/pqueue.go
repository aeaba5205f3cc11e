// Package pqueue implements a binary min-heap priority queue over arbitrary
// entries.  The queue never looks inside an entry; all ordering decisions go
// through the comparison function supplied at construction.
//
// A Queue is not safe for concurrent use.
//
package pqueue

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// InitialCapacity is the backing capacity of a freshly created Queue.
const InitialCapacity = 10

// Error is the type of errors returned by this package.
type Error string

func (e Error) Error() string { return "pqueue: " + string(e) }

// ErrEmpty is returned when reading from a Queue with no entries.
const ErrEmpty = Error("queue is empty")

// Queue is a min-heap of entries of type T.
type Queue[T any] struct {
	h entryHeap[T]
}

// New returns an empty Queue ordered by compare, which returns a negative
// number if a sorts before b, zero if they are equivalent, and a positive
// number otherwise.  compare must implement a strict weak ordering.  New
// panics if compare is nil.
func New[T any](compare func(a, b T) int) *Queue[T] {
	assert.Assertf(compare != nil, "pqueue.New: compare function is nil")
	q := &Queue[T]{}
	q.h.compare = compare
	q.h.list = make([]T, 0, InitialCapacity)
	return q
}

// Len returns the number of entries in the queue.
func (q *Queue[T]) Len() int {
	return len(q.h.list)
}

// Cap returns the capacity of the backing storage.
func (q *Queue[T]) Cap() int {
	return cap(q.h.list)
}

// Insert adds x to the queue.  The backing storage doubles when full.
func (q *Queue[T]) Insert(x T) {
	heap.Push(&q.h, x)
}

// ExtractMin removes and returns the minimum entry.  Among entries that
// compare equal, which one is returned first is unspecified.
func (q *Queue[T]) ExtractMin() (T, error) {
	if len(q.h.list) == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return heap.Pop(&q.h).(T), nil
}

// Peek returns the minimum entry without removing it.
func (q *Queue[T]) Peek() (T, error) {
	if len(q.h.list) == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return q.h.list[0], nil
}

// Destroy releases the backing storage.  Entries still in the queue are
// dropped from it but otherwise untouched; they belong to the caller.  The
// Queue may be reused afterward.
func (q *Queue[T]) Destroy() {
	q.h.list = nil
}

// type entryHeap {{{

type entryHeap[T any] struct {
	list    []T
	compare func(a, b T) int
}

func (h *entryHeap[T]) Len() int {
	return len(h.list)
}

func (h *entryHeap[T]) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *entryHeap[T]) Less(i, j int) bool {
	return h.compare(h.list[i], h.list[j]) < 0
}

func (h *entryHeap[T]) Push(x interface{}) {
	n := len(h.list)
	if n == cap(h.list) {
		newCap := 2 * n
		if newCap == 0 {
			newCap = InitialCapacity
		}
		grown := make([]T, n, newCap)
		copy(grown, h.list)
		h.list = grown
	}
	h.list = append(h.list, x.(T))
}

func (h *entryHeap[T]) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	var zero T
	h.list[last] = zero
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*entryHeap[int])(nil)

// }}}
