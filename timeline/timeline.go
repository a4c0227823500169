// Package timeline stores keyframes as a time-ordered dense slice.
//
// A point's neighbours are the adjacent indices, so walking a timeline is
// plain index arithmetic that can be bounds-checked. Once a controller
// attaches (Seal), the timeline is read-only and may be shared.
package timeline

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"sort"
	"sync/atomic"

	"keyframe/vmath"
)

var (
	ErrEmpty         = errors.New("timeline: empty")
	ErrDuplicateTime = errors.New("timeline: duplicate keyframe time")
	ErrInvalidTime   = errors.New("timeline: time must be finite")
	ErrSealed        = errors.New("timeline: sealed")
)

// Point is a keyframe: the value anchored at Time
type Point struct {
	Time  float64
	Value vmath.Vec2
}

// Timeline is an ordered keyframe store. The zero value is an empty timeline.
type Timeline struct {
	points []Point
	sealed atomic.Bool
}

func New() *Timeline {
	return &Timeline{}
}

// Insert adds a keyframe, keeping points strictly ordered by time, and
// returns the index the point landed at. Indices of later points shift by
// one when a point is spliced in front of them.
//
// Two keyframes at the same time would leave a zero-length segment, so an
// equal time is rejected with ErrDuplicateTime.
func (tl *Timeline) Insert(time float64, value vmath.Vec2) (int, error) {
	if tl.sealed.Load() {
		return -1, ErrSealed
	}
	if math.IsNaN(time) || math.IsInf(time, 0) {
		return -1, fmt.Errorf("%w: %v", ErrInvalidTime, time)
	}

	p := Point{Time: time, Value: value}
	n := len(tl.points)

	// Common case: keyframes authored in order
	if n == 0 || time > tl.points[n-1].Time {
		tl.points = append(tl.points, p)
		return n, nil
	}

	// First point strictly later than time; the point before it is the predecessor
	i := sort.Search(n, func(i int) bool { return tl.points[i].Time > time })
	if i > 0 && tl.points[i-1].Time == time {
		return -1, fmt.Errorf("%w: %v", ErrDuplicateTime, time)
	}

	tl.points = append(tl.points, Point{})
	copy(tl.points[i+1:], tl.points[i:n])
	tl.points[i] = p
	return i, nil
}

// MustInsert is Insert for statically known keyframes; it panics on error
func (tl *Timeline) MustInsert(time float64, value vmath.Vec2) int {
	i, err := tl.Insert(time, value)
	if err != nil {
		panic(err)
	}
	return i
}

func (tl *Timeline) Len() int { return len(tl.points) }

func (tl *Timeline) First() (Point, error) {
	if len(tl.points) == 0 {
		return Point{}, ErrEmpty
	}
	return tl.points[0], nil
}

func (tl *Timeline) Last() (Point, error) {
	if len(tl.points) == 0 {
		return Point{}, ErrEmpty
	}
	return tl.points[len(tl.points)-1], nil
}

// At returns the i-th point. It panics when i is out of range, like a slice index.
func (tl *Timeline) At(i int) Point {
	return tl.points[i]
}

// Points iterates keyframes in time order
func (tl *Timeline) Points() iter.Seq2[int, Point] {
	return func(yield func(int, Point) bool) {
		for i, p := range tl.points {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Duration is last.Time - first.Time, zero for fewer than two points
func (tl *Timeline) Duration() float64 {
	if len(tl.points) < 2 {
		return 0
	}
	return tl.points[len(tl.points)-1].Time - tl.points[0].Time
}

// Contains reports whether time lies in [first.Time, last.Time]
func (tl *Timeline) Contains(time float64) bool {
	if len(tl.points) == 0 {
		return false
	}
	return time >= tl.points[0].Time && time <= tl.points[len(tl.points)-1].Time
}

// Seal freezes the timeline. Subsequent inserts fail with ErrSealed.
func (tl *Timeline) Seal() { tl.sealed.Store(true) }

func (tl *Timeline) Sealed() bool { return tl.sealed.Load() }
