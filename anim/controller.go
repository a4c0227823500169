package anim

import (
	"errors"
	"fmt"

	"keyframe/timeline"
	"keyframe/vmath"
)

var ErrEmptyTimeline = errors.New("anim: empty timeline")

// State is the controller's mutable part, threaded through Evaluate by the caller.
//
// Cursor is the index of the active segment's left keyframe. Base is the
// initial value combined with the values of keyframes 1..Cursor. Value is the
// most recent in-range result.
type State struct {
	Cursor int
	Base   vmath.Vec2
	Value  vmath.Vec2
}

// Sample is the outcome of one Evaluate call
type Sample struct {
	Value vmath.Vec2
	// InRange is false when the query time fell outside the timeline and
	// Value is the last in-range result
	InRange bool
	// Crossed is the number of combine/uncombine steps the catch-up walk took
	Crossed int
}

// Controller evaluates one timeline with one strategy. It holds no per-query
// state, so a single Controller may serve any number of States.
type Controller struct {
	tl       *timeline.Timeline
	strategy Strategy
	initial  vmath.Vec2
}

// NewController validates tl against strategy and seals it. Keyframe 0 only
// anchors time; its value never enters the base.
func NewController(tl *timeline.Timeline, strategy Strategy, initial vmath.Vec2) (*Controller, error) {
	if strategy == nil {
		strategy = Linear
	}
	if err := Validate(tl, strategy); err != nil {
		return nil, err
	}
	tl.Seal()

	return &Controller{
		tl:       tl,
		strategy: strategy,
		initial:  initial,
	}, nil
}

// Validate reports whether NewController would accept tl with strategy,
// without sealing it
func Validate(tl *timeline.Timeline, strategy Strategy) error {
	if tl == nil || tl.Len() == 0 {
		return ErrEmptyTimeline
	}
	if strategy == nil {
		strategy = Linear
	}
	for i, p := range tl.Points() {
		if i == 0 {
			continue
		}
		if err := strategy.Check(p.Value); err != nil {
			return fmt.Errorf("keyframe %d at t=%v: %w", i, p.Time, err)
		}
	}
	return nil
}

func (c *Controller) Timeline() *timeline.Timeline { return c.tl }
func (c *Controller) Strategy() Strategy           { return c.strategy }
func (c *Controller) Initial() vmath.Vec2          { return c.initial }

// Start returns the state positioned on the first segment
func (c *Controller) Start() State {
	return State{Cursor: 0, Base: c.initial, Value: c.initial}
}

// Evaluate returns the interpolated value at time and the state to pass to
// the next call. Work is proportional to the number of keyframes between
// the previous query and this one.
func (c *Controller) Evaluate(s State, time float64) (State, Sample) {
	n := c.tl.Len()
	first, last := c.tl.At(0), c.tl.At(n-1)

	// Also rejects NaN
	if !(time >= first.Time && time <= last.Time) {
		return s, Sample{Value: s.Value}
	}
	if n == 1 {
		s.Value = s.Base
		return s, Sample{Value: s.Value, InRange: true}
	}

	// States from another controller or a longer timeline
	if s.Cursor < 0 || s.Cursor > n-2 {
		s = c.Start()
	}

	crossed := 0
	for time < c.tl.At(s.Cursor).Time {
		s.Base = c.strategy.Uncombine(s.Base, c.tl.At(s.Cursor).Value)
		s.Cursor--
		crossed++
	}
	for time > c.tl.At(s.Cursor+1).Time {
		s.Cursor++
		s.Base = c.strategy.Combine(s.Base, c.tl.At(s.Cursor).Value)
		crossed++
	}

	left, right := c.tl.At(s.Cursor), c.tl.At(s.Cursor+1)
	t := (time - left.Time) / (right.Time - left.Time)
	s.Value = c.strategy.Combine(s.Base, c.strategy.Segment(right.Value, t))

	return s, Sample{Value: s.Value, InRange: true, Crossed: crossed}
}

// Channel owns a Controller together with its State for callers that drive a
// single clock. Not safe for concurrent use.
type Channel struct {
	ctrl  *Controller
	state State
	last  Sample
}

func NewChannel(tl *timeline.Timeline, strategy Strategy, initial vmath.Vec2) (*Channel, error) {
	ctrl, err := NewController(tl, strategy, initial)
	if err != nil {
		return nil, err
	}
	return &Channel{ctrl: ctrl, state: ctrl.Start(), last: Sample{Value: initial}}, nil
}

// Evaluate advances the channel to time. ok is false when time is outside the
// timeline and the previous value was returned.
func (ch *Channel) Evaluate(time float64) (v vmath.Vec2, ok bool) {
	ch.state, ch.last = ch.ctrl.Evaluate(ch.state, time)
	return ch.last.Value, ch.last.InRange
}

func (ch *Channel) Value() vmath.Vec2       { return ch.state.Value }
func (ch *Channel) State() State            { return ch.state }
func (ch *Channel) Last() Sample            { return ch.last }
func (ch *Channel) Controller() *Controller { return ch.ctrl }

// Reset rewinds to the first segment and the initial value
func (ch *Channel) Reset() {
	ch.state = ch.ctrl.Start()
	ch.last = Sample{Value: ch.state.Value}
}
