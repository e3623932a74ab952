// Package queue implements FIFO work lists used by grammar analysis.
package queue

const minSize = 4

// Queue is a ring buffer of items. Zero value is not usable, use New.
type Queue[T any] struct {
	items []T
	head  int
	count int
	zero  T
}

func New[T any](items ...T) *Queue[T] {
	size := minSize
	for size < len(items) {
		size <<= 1
	}
	q := &Queue[T]{items: make([]T, size), count: len(items)}
	copy(q.items, items)
	return q
}

func (q *Queue[T]) IsEmpty() bool {
	return q.count == 0
}

func (q *Queue[T]) Len() int {
	return q.count
}

// Items returns queued items from first to last without removing them.
func (q *Queue[T]) Items() []T {
	result := make([]T, q.count)
	mask := len(q.items) - 1
	for i := range result {
		result[i] = q.items[(q.head+i)&mask]
	}
	return result
}

func (q *Queue[T]) Append(item T) *Queue[T] {
	if q.count == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.count)&(len(q.items)-1)] = item
	q.count++
	return q
}

// First removes and returns the first item, false if the queue is empty.
func (q *Queue[T]) First() (T, bool) {
	if q.count == 0 {
		return q.zero, false
	}

	result := q.items[q.head]
	q.items[q.head] = q.zero
	q.head = (q.head + 1) & (len(q.items) - 1)
	q.count--
	return result, true
}

func (q *Queue[T]) grow() {
	items := q.Items()
	q.items = make([]T, len(q.items)<<1)
	copy(q.items, items)
	q.head = 0
}
