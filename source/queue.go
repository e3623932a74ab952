package source

import (
	"github.com/ava12/lagrum/internal/queue"
)

// Queue holds current source with read position and pending sources.
// Used to read several grammar descriptions as a single stream of tokens.
type Queue struct {
	source  *Source
	pos     int
	pending *queue.Queue[*Source]
}

func NewQueue() *Queue {
	return &Queue{pending: queue.New[*Source]()}
}

// Append adds s to the end of the queue. Empty sources are skipped unless the queue is empty.
func (q *Queue) Append(s *Source) *Queue {
	switch {
	case q.source == nil:
		q.source = s
		q.pos = 0
	case s.Len() == 0:
	case q.source.Len() == 0 && q.pending.IsEmpty():
		q.source = s
		q.pos = 0
	default:
		q.pending.Append(s)
	}
	return q
}

// Source returns current source or nil if nothing was appended.
func (q *Queue) Source() *Source {
	return q.source
}

func (q *Queue) Pos() int {
	return q.pos
}

// SourcePos returns current position record.
func (q *Queue) SourcePos() Pos {
	return NewPos(q.source, q.pos)
}

// ContentPos returns current source content and read position.
func (q *Queue) ContentPos() (string, int) {
	if q.source == nil {
		return "", 0
	}
	return q.source.Content(), q.pos
}

// IsEmpty returns true if current source is exhausted and there are no pending sources.
func (q *Queue) IsEmpty() bool {
	return q.pending.IsEmpty() && (q.source == nil || q.pos >= q.source.Len())
}

// Skip advances read position within current source.
func (q *Queue) Skip(size int) {
	if q.source == nil || size <= 0 {
		return
	}
	q.pos = min(q.pos+size, q.source.Len())
}

// NextSource discards current source and makes the next pending one current.
// Returns false and sets current source to nil if there are no pending sources.
func (q *Queue) NextSource() bool {
	s, has := q.pending.First()
	q.source = s
	q.pos = 0
	return has
}
