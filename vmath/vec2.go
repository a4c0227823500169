package vmath

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the magnitude below which a length or denominator is treated as zero
const Epsilon = 1e-9

var (
	// ErrDivideByZero is returned by division helpers when the divisor is zero
	ErrDivideByZero = errors.New("vmath: divide by zero")
	// ErrDegenerateRotation is returned when an angle or rotation is undefined for the operands
	ErrDegenerateRotation = errors.New("vmath: degenerate rotation")
)

// Vec2 is a simple 2D vector.
type Vec2 struct{ X, Y float64 }

// Zero is the origin; Identity is the unit complex number 1+0i (no rotation).
var (
	Zero     = Vec2{}
	Identity = Vec2{1, 0}
)

func (a Vec2) Add(b Vec2) Vec2    { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2    { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Mul(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Len() float64       { return math.Hypot(a.X, a.Y) }
func (a Vec2) Perp() Vec2         { return Vec2{-a.Y, a.X} }

func (a Vec2) Norm() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{0, 0}
	}
	return Vec2{a.X / l, a.Y / l}
}

// Div divides both components by s. Callers must not rely on infinities:
// a zero divisor yields ErrDivideByZero and the receiver unchanged.
func (a Vec2) Div(s float64) (Vec2, error) {
	if s == 0 {
		return a, ErrDivideByZero
	}
	return Vec2{a.X / s, a.Y / s}, nil
}

// AddAssign adds b into a and returns a for chaining
func (a *Vec2) AddAssign(b Vec2) *Vec2 {
	a.X += b.X
	a.Y += b.Y
	return a
}

// SubAssign subtracts b from a and returns a for chaining
func (a *Vec2) SubAssign(b Vec2) *Vec2 {
	a.X -= b.X
	a.Y -= b.Y
	return a
}

// MulAssign scales a in place
func (a *Vec2) MulAssign(s float64) *Vec2 {
	a.X *= s
	a.Y *= s
	return a
}

// ApproxEqual reports whether both components differ by at most tol
func (a Vec2) ApproxEqual(b Vec2, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// IsFinite reports whether neither component is NaN or infinite
func (a Vec2) IsFinite() bool {
	return !math.IsNaN(a.X) && !math.IsNaN(a.Y) && !math.IsInf(a.X, 0) && !math.IsInf(a.Y, 0)
}

// Mgl converts to a mathgl vector
func (a Vec2) Mgl() mgl64.Vec2 { return mgl64.Vec2{a.X, a.Y} }

// FromMgl converts from a mathgl vector
func FromMgl(v mgl64.Vec2) Vec2 { return Vec2{v.X(), v.Y()} }
