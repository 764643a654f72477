package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/CircleMosaic/internal/model"
)

// ErrCapacityExceeded is returned when a fill needs more queue slots than
// the configured capacity. It signals a radius/capacity mismatch in the
// configuration; the pass must stop rather than truncate the fill.
var ErrCapacityExceeded = errors.New("flood fill queue capacity exceeded")

const initialQueueSize = 64

// PointQueue is a FIFO ring buffer of points driving the breadth-first fill.
// With a zero limit it grows on demand; otherwise Push fails once limit
// points are queued.
type PointQueue struct {
	points []model.Point
	start  int
	size   int
	limit  int
}

// NewPointQueue creates a queue. limit 0 means unbounded.
func NewPointQueue(limit int) *PointQueue {
	n := initialQueueSize
	if limit > 0 && limit < n {
		n = limit
	}
	return &PointQueue{
		points: make([]model.Point, n),
		limit:  limit,
	}
}

// Reset empties the queue, keeping its storage.
func (q *PointQueue) Reset() {
	q.start = 0
	q.size = 0
}

// Len returns the number of queued points.
func (q *PointQueue) Len() int { return q.size }

// Empty reports whether the queue has no points.
func (q *PointQueue) Empty() bool { return q.size == 0 }

// Full reports whether a Push would fail.
func (q *PointQueue) Full() bool { return q.limit > 0 && q.size >= q.limit }

// Push appends p.
func (q *PointQueue) Push(p model.Point) error {
	if q.Full() {
		return fmt.Errorf("%w: limit %d", ErrCapacityExceeded, q.limit)
	}
	if q.size == len(q.points) {
		q.grow()
	}
	q.points[(q.start+q.size)%len(q.points)] = p
	q.size++
	return nil
}

// Pop removes and returns the oldest point. The queue must not be empty.
func (q *PointQueue) Pop() model.Point {
	p := q.points[q.start]
	q.start = (q.start + 1) % len(q.points)
	q.size--
	return p
}

func (q *PointQueue) grow() {
	n := len(q.points) * 2
	if q.limit > 0 && n > q.limit {
		n = q.limit
	}
	points := make([]model.Point, n)
	for k := 0; k < q.size; k++ {
		points[k] = q.points[(q.start+k)%len(q.points)]
	}
	q.points = points
	q.start = 0
}
