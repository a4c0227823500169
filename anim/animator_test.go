package anim

import (
	"errors"
	"math"
	"testing"
	"time"

	"keyframe/timeline"
	"keyframe/vmath"
)

func sec(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }

func newTestAnimator(t *testing.T) (*Animator, *Transform2) {
	t.Helper()
	deg := math.Pi / 180

	position := build(t, pt(0, 0, 0), pt(2, 250, 0), pt(4, -250, 0))
	rotation := build(t, pt(0, 1, 0), timeline.Point{Time: 10, Value: vmath.FromAngle(45 * deg)})
	scale := build(t, pt(0, 0, 0), pt(4, 2, 2), pt(8, -2, -2))

	target := NewTransform2()
	a, err := NewAnimator(Animation{Position: position, Rotation: rotation, Scale: scale}, &target)
	if err != nil {
		t.Fatalf("NewAnimator: %v", err)
	}
	return a, &target
}

func TestAnimatorTick(t *testing.T) {
	a, target := newTestAnimator(t)
	if a.Duration() != 10 {
		t.Errorf("Expected duration 10, got %v", a.Duration())
	}

	t0 := time.Unix(1000, 0)
	if f := a.Tick(t0); f != (Frame{}) {
		t.Errorf("Expected no evaluation before Start, got %+v", f)
	}

	a.Start(t0)
	f := a.Tick(t0.Add(sec(3)))
	if math.Abs(f.Elapsed-3) > tol {
		t.Errorf("Expected elapsed 3, got %v", f.Elapsed)
	}
	if !target.Position.ApproxEqual(vmath.Vec2{X: 125}, tol) {
		t.Errorf("Expected position (125,0), got %v", target.Position)
	}
	// initial scale (1,1) plus three quarters of (2,2)
	if !target.Scale.ApproxEqual(vmath.Vec2{X: 2.5, Y: 2.5}, tol) {
		t.Errorf("Expected scale (2.5,2.5), got %v", target.Scale)
	}
	if f.Position.Crossed != 1 || f.Crossed() != 1 {
		t.Errorf("Expected one keyframe crossed, got %+v", f)
	}

	// past the position timeline: position holds, rotation keeps going
	f = a.Tick(t0.Add(sec(5)))
	if f.Position.InRange {
		t.Error("Expected position out of range at t=5")
	}
	if !target.Position.ApproxEqual(vmath.Vec2{X: 125}, tol) {
		t.Errorf("Expected position held at (125,0), got %v", target.Position)
	}
	if !target.Rotation.ApproxEqual(vmath.FromAngle(22.5*math.Pi/180), 1e-9) {
		t.Errorf("Expected rotation 22.5°, got %v", target.Rotation)
	}
}

func TestAnimatorStopResume(t *testing.T) {
	a, _ := newTestAnimator(t)
	t0 := time.Unix(0, 0)
	a.Start(t0)
	a.Tick(t0.Add(sec(1)))
	a.Stop()
	if a.Running() {
		t.Fatal("Expected animator stopped")
	}

	if f := a.Tick(t0.Add(sec(7))); math.Abs(f.Elapsed-1) > tol {
		t.Errorf("Expected frozen elapsed 1 while stopped, got %v", f.Elapsed)
	}

	a.Resume(t0.Add(sec(20)))
	if f := a.Tick(t0.Add(sec(21))); math.Abs(f.Elapsed-2) > tol {
		t.Errorf("Expected elapsed 2 after resume, got %v", f.Elapsed)
	}
}

func TestAnimatorLoopAndSeek(t *testing.T) {
	a, target := newTestAnimator(t)
	a.Loop = true
	t0 := time.Unix(0, 0)
	a.Start(t0)

	a.Tick(t0.Add(sec(3.5)))
	a.Tick(t0.Add(sec(7.5)))
	f := a.Tick(t0.Add(sec(11)))
	if math.Abs(f.Elapsed-1) > 1e-6 {
		t.Errorf("Expected wrapped elapsed 1, got %v", f.Elapsed)
	}
	if !target.Position.ApproxEqual(vmath.Vec2{X: 125}, 1e-6) {
		t.Errorf("Expected position (125,0) after wrap, got %v", target.Position)
	}
	if f.Position.Crossed != 1 || f.Scale.Crossed != 1 {
		t.Errorf("Expected position and scale to walk back one keyframe, got %+v", f)
	}

	f = a.Seek(t0.Add(sec(11)), 6)
	if !target.Scale.ApproxEqual(vmath.Vec2{X: 2, Y: 2}, tol) {
		t.Errorf("Expected scale (2,2) at t=6, got %v", target.Scale)
	}
	if f.Elapsed != 6 {
		t.Errorf("Expected elapsed 6, got %v", f.Elapsed)
	}
	if f = a.Tick(t0.Add(sec(12))); math.Abs(f.Elapsed-7) > 1e-6 {
		t.Errorf("Expected playback to continue from seek, got %v", f.Elapsed)
	}
}

func TestAnimatorScrubWithoutTick(t *testing.T) {
	a, _ := newTestAnimator(t)
	t0 := time.Unix(0, 0)
	a.Start(t0)
	a.Tick(t0.Add(sec(1)))

	// two seconds of scrubbing at 2x with no Tick in between
	now := t0.Add(sec(1))
	for i := 1; i <= 60; i++ {
		now = t0.Add(sec(1 + float64(i)/60))
		a.Seek(now, a.Elapsed()+2.0/60)
	}
	target := a.Elapsed()
	if math.Abs(target-3) > 1e-6 {
		t.Fatalf("Expected scrubbed elapsed 3, got %v", target)
	}

	if f := a.Tick(now.Add(sec(1))); math.Abs(f.Elapsed-(target+1)) > 1e-6 {
		t.Errorf("Expected elapsed %v one second after the last seek, got %v", target+1, f.Elapsed)
	}
}

func TestAnimatorFrameDirection(t *testing.T) {
	tests := []struct {
		name      string
		timeScale float64
		ticks     []float64
		want      bool
	}{
		{"Forward", 1, []float64{1, 3}, false},
		{"Forward across loop wrap", 1, []float64{9, 11}, false},
		{"Backward", -1, []float64{1, 3}, true},
		{"Backward across loop wrap", -1, []float64{4, 6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAnimator(t)
			a.Loop = true
			t0 := time.Unix(0, 0)
			a.Start(t0)
			if tt.timeScale < 0 {
				a.Seek(t0, 5)
			}
			a.SetTimeScale(tt.timeScale)
			var f Frame
			for _, s := range tt.ticks {
				f = a.Tick(t0.Add(sec(s)))
			}
			if f.Backward != tt.want {
				t.Errorf("Expected backward %v, got %v (elapsed %v)", tt.want, f.Backward, f.Elapsed)
			}
		})
	}

	a, _ := newTestAnimator(t)
	t0 := time.Unix(0, 0)
	a.Start(t0)
	if f := a.Seek(t0, 3); f.Backward {
		t.Error("Expected forward seek to report forward")
	}
	if f := a.Seek(t0, 1); !f.Backward {
		t.Error("Expected backward seek to report backward")
	}
}

func TestAnimatorTimeScale(t *testing.T) {
	a, _ := newTestAnimator(t)
	t0 := time.Unix(0, 0)
	a.Start(t0)
	a.Tick(t0.Add(sec(2)))
	a.SetTimeScale(-0.5)
	if f := a.Tick(t0.Add(sec(4))); math.Abs(f.Elapsed-1) > 1e-6 {
		t.Errorf("Expected elapsed 1 playing backward at half speed, got %v", f.Elapsed)
	}
	if a.TimeScale() != -0.5 {
		t.Errorf("Expected time scale -0.5, got %v", a.TimeScale())
	}
}

func TestAnimatorRestartRestoresTarget(t *testing.T) {
	a, target := newTestAnimator(t)
	t0 := time.Unix(0, 0)
	a.Start(t0)
	a.Tick(t0.Add(sec(3)))
	a.Start(t0.Add(sec(3)))
	if *target != NewTransform2() {
		t.Errorf("Expected identity transform after restart, got %+v", *target)
	}
}

func TestAnimatorPartialAnimation(t *testing.T) {
	target := NewTransform2()
	target.Position = vmath.Vec2{X: 5, Y: 5}
	a, err := NewAnimator(Animation{Scale: build(t, pt(0, 0, 0), pt(1, 1, 0))}, &target)
	if err != nil {
		t.Fatalf("NewAnimator: %v", err)
	}
	a.Start(time.Unix(0, 0))
	f := a.Seek(time.Unix(0, 0), 1)
	if target.Position != (vmath.Vec2{X: 5, Y: 5}) {
		t.Errorf("Expected position untouched, got %v", target.Position)
	}
	if target.Scale != (vmath.Vec2{X: 2, Y: 1}) {
		t.Errorf("Expected scale (2,1), got %v", target.Scale)
	}
	if f.Position != (Sample{}) {
		t.Errorf("Expected zero sample for unanimated channel, got %+v", f.Position)
	}
}

func TestNewAnimatorErrors(t *testing.T) {
	if _, err := NewAnimator(Animation{}, nil); err == nil {
		t.Error("Expected error for nil target")
	}
	target := NewTransform2()
	if _, err := NewAnimator(Animation{Position: timeline.New()}, &target); err == nil {
		t.Error("Expected error for empty position timeline")
	}
}

func TestNewAnimatorFailureLeavesTimelinesOpen(t *testing.T) {
	position := build(t, pt(0, 0, 0), pt(1, 10, 0))
	rotation := build(t, pt(0, 1, 0), pt(1, 0, 0))
	target := NewTransform2()

	_, err := NewAnimator(Animation{Position: position, Rotation: rotation}, &target)
	if !errors.Is(err, vmath.ErrDegenerateRotation) {
		t.Fatalf("Expected ErrDegenerateRotation, got %v", err)
	}
	if position.Sealed() || rotation.Sealed() {
		t.Errorf("Expected timelines unsealed after failed attach, got position=%v rotation=%v", position.Sealed(), rotation.Sealed())
	}
	if _, err := position.Insert(2, vmath.Vec2{X: 1}); err != nil {
		t.Errorf("Expected position timeline still editable, got %v", err)
	}
}
