package anim

import (
	"fmt"
	"math"
	"time"

	"keyframe/timeline"
	"keyframe/vmath"
)

// Animation groups the timelines for each transform channel. A nil timeline
// leaves that channel of the target untouched.
type Animation struct {
	Position *timeline.Timeline
	Rotation *timeline.Timeline
	Scale    *timeline.Timeline
}

// Frame reports what one tick evaluated. Samples of unanimated channels are zero.
type Frame struct {
	Elapsed float64
	// Backward is set when playback or a seek moved time toward zero.
	// A loop wrap under forward playback is not backward.
	Backward bool
	Position Sample
	Rotation Sample
	Scale    Sample
}

// Crossed is the total number of keyframes crossed across channels
func (f Frame) Crossed() int {
	return f.Position.Crossed + f.Rotation.Crossed + f.Scale.Crossed
}

// Animator drives an Animation from a wall clock and writes in-range values
// into its target. Timeline times are seconds since Start.
type Animator struct {
	// Loop wraps elapsed time into [0, Duration)
	Loop bool

	target  *Transform2
	initial Transform2

	position *Channel
	rotation *Channel
	scale    *Channel

	duration  float64
	timeScale float64

	running bool
	anchor  time.Time // wall time at which elapsed == offset
	offset  float64
	lastNow time.Time
	last    Frame
}

// NewAnimator attaches a to target. Position and scale accumulate linearly,
// rotation spherically; the target's current values are the initial values.
func NewAnimator(a Animation, target *Transform2) (*Animator, error) {
	if target == nil {
		return nil, fmt.Errorf("animator: nil target")
	}
	an := &Animator{
		target:    target,
		initial:   *target,
		timeScale: 1,
	}

	// Attaching seals, so every channel is checked before any is attached
	checks := []struct {
		name string
		tl   *timeline.Timeline
		s    Strategy
	}{
		{"position", a.Position, Linear},
		{"rotation", a.Rotation, Spherical},
		{"scale", a.Scale, Linear},
	}
	for _, c := range checks {
		if c.tl == nil {
			continue
		}
		if err := Validate(c.tl, c.s); err != nil {
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
	}

	var err error
	if an.position, err = attach(a.Position, Linear, target.Position); err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	if an.rotation, err = attach(a.Rotation, Spherical, target.Rotation); err != nil {
		return nil, fmt.Errorf("rotation: %w", err)
	}
	if an.scale, err = attach(a.Scale, Linear, target.Scale); err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}

	for _, tl := range []*timeline.Timeline{a.Position, a.Rotation, a.Scale} {
		if tl == nil {
			continue
		}
		last, _ := tl.Last()
		an.duration = math.Max(an.duration, last.Time)
	}
	return an, nil
}

func attach(tl *timeline.Timeline, s Strategy, initial vmath.Vec2) (*Channel, error) {
	if tl == nil {
		return nil, nil
	}
	return NewChannel(tl, s, initial)
}

// Duration is the latest keyframe time over all channels
func (a *Animator) Duration() float64  { return a.duration }
func (a *Animator) Running() bool      { return a.running }
func (a *Animator) Elapsed() float64   { return a.last.Elapsed }
func (a *Animator) Last() Frame        { return a.last }
func (a *Animator) TimeScale() float64 { return a.timeScale }

// Start restarts from elapsed zero and restores the target's initial values
func (a *Animator) Start(now time.Time) {
	*a.target = a.initial
	for _, ch := range a.channels() {
		ch.Reset()
	}
	a.anchor, a.lastNow, a.offset = now, now, 0
	a.last = Frame{}
	a.running = true
}

// Stop pauses at the current elapsed time
func (a *Animator) Stop() {
	if !a.running {
		return
	}
	a.offset = a.clock(a.lastNow)
	a.running = false
}

// Resume continues from where Stop paused
func (a *Animator) Resume(now time.Time) {
	if a.running {
		return
	}
	a.anchor, a.lastNow = now, now
	a.running = true
}

// SetTimeScale changes playback speed without jumping the elapsed time.
// Negative scales play backward.
func (a *Animator) SetTimeScale(s float64) {
	if a.running {
		a.offset = a.clock(a.lastNow)
		a.anchor = a.lastNow
	}
	a.timeScale = s
}

// Tick evaluates all channels at the wall time now. While stopped it
// returns the previous frame.
func (a *Animator) Tick(now time.Time) Frame {
	if !a.running {
		return a.last
	}
	a.lastNow = now
	return a.evaluate(a.clock(now), a.timeScale < 0)
}

// Seek jumps to elapsed seconds at wall time now and evaluates there;
// playback continues from it
func (a *Animator) Seek(now time.Time, elapsed float64) Frame {
	a.offset = elapsed
	backward := elapsed < a.last.Elapsed
	a.anchor, a.lastNow = now, now
	return a.evaluate(elapsed, backward)
}

func (a *Animator) clock(now time.Time) float64 {
	return a.offset + now.Sub(a.anchor).Seconds()*a.timeScale
}

func (a *Animator) evaluate(elapsed float64, backward bool) Frame {
	if a.Loop && a.duration > 0 {
		elapsed = math.Mod(elapsed, a.duration)
		if elapsed < 0 {
			elapsed += a.duration
		}
	}

	f := Frame{Elapsed: elapsed, Backward: backward}
	if a.position != nil {
		f.Position = apply(a.position, elapsed, &a.target.Position)
	}
	if a.rotation != nil {
		f.Rotation = apply(a.rotation, elapsed, &a.target.Rotation)
	}
	if a.scale != nil {
		f.Scale = apply(a.scale, elapsed, &a.target.Scale)
	}
	a.last = f
	return f
}

func apply(ch *Channel, elapsed float64, dst *vmath.Vec2) Sample {
	if v, ok := ch.Evaluate(elapsed); ok {
		*dst = v
	}
	return ch.Last()
}

func (a *Animator) channels() []*Channel {
	out := make([]*Channel, 0, 3)
	for _, ch := range []*Channel{a.position, a.rotation, a.scale} {
		if ch != nil {
			out = append(out, ch)
		}
	}
	return out
}
