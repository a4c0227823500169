package anim

import (
	"fmt"
	"strings"

	"keyframe/vmath"
)

// Strategy defines how keyframe deltas compose into the accumulated base and
// how a segment is interpolated. The only implementations are Linear and
// Spherical.
type Strategy interface {
	// Combine folds delta into base when the cursor enters a segment
	Combine(base, delta vmath.Vec2) vmath.Vec2
	// Uncombine is the inverse of Combine, used when the cursor walks back
	Uncombine(base, delta vmath.Vec2) vmath.Vec2
	// Segment is the partial delta at fraction t of a segment
	Segment(delta vmath.Vec2, t float64) vmath.Vec2
	// Check rejects keyframe values the strategy cannot compose
	Check(delta vmath.Vec2) error

	String() string
	strategy()
}

var (
	// Linear accumulates by vector addition (position, scale)
	Linear Strategy = linear{}
	// Spherical accumulates by complex multiplication (rotation)
	Spherical Strategy = spherical{}
)

type linear struct{}

func (linear) Combine(base, delta vmath.Vec2) vmath.Vec2   { return base.Add(delta) }
func (linear) Uncombine(base, delta vmath.Vec2) vmath.Vec2 { return base.Sub(delta) }

func (linear) Segment(delta vmath.Vec2, t float64) vmath.Vec2 {
	return vmath.Lerp(vmath.Zero, delta, t)
}

func (linear) Check(delta vmath.Vec2) error {
	if !delta.IsFinite() {
		return fmt.Errorf("non-finite delta %v", delta)
	}
	return nil
}

func (linear) String() string { return "linear" }
func (linear) strategy()      {}

type spherical struct{}

func (spherical) Combine(base, delta vmath.Vec2) vmath.Vec2 { return base.ComplexMul(delta) }

// Uncombine cannot fail for deltas that passed Check
func (spherical) Uncombine(base, delta vmath.Vec2) vmath.Vec2 {
	v, _ := base.ComplexDiv(delta)
	return v
}

// Segment rotates from identity toward delta
func (spherical) Segment(delta vmath.Vec2, t float64) vmath.Vec2 {
	v, _ := vmath.Slerp(vmath.Identity, delta, t)
	return v
}

func (spherical) Check(delta vmath.Vec2) error {
	if !delta.IsFinite() {
		return fmt.Errorf("non-finite delta %v", delta)
	}
	if delta.Len() < vmath.Epsilon {
		return fmt.Errorf("%w: zero-magnitude rotation %v", vmath.ErrDegenerateRotation, delta)
	}
	return nil
}

func (spherical) String() string { return "spherical" }
func (spherical) strategy()      {}

// ParseStrategy maps "linear"/"lerp" and "spherical"/"slerp" to a Strategy
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "lerp":
		return Linear, nil
	case "spherical", "slerp":
		return Spherical, nil
	}
	return nil, fmt.Errorf("unknown strategy %q", s)
}
