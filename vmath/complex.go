package vmath

import "math"

// Rotations are encoded as complex numbers x+iy. A unit-magnitude vector
// (cos θ, sin θ) rotates by θ when multiplied in.

// FromAngle returns the unit rotation for angle radians
func FromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// Angle returns the argument of a in radians, in (-π, π]
func (a Vec2) Angle() float64 {
	return math.Atan2(a.Y, a.X)
}

// Conj returns the complex conjugate
func (a Vec2) Conj() Vec2 { return Vec2{a.X, -a.Y} }

// ComplexMul composes rotation b onto a
func (a Vec2) ComplexMul(b Vec2) Vec2 {
	return Vec2{
		a.X*b.X - a.Y*b.Y,
		a.X*b.Y + b.X*a.Y,
	}
}

// ComplexDiv undoes ComplexMul: a * conj(b) / |b|².
func (a Vec2) ComplexDiv(b Vec2) (Vec2, error) {
	d := b.Dot(b)
	if d < Epsilon*Epsilon {
		return a, ErrDivideByZero
	}
	return a.ComplexMul(b.Conj()).Div(d)
}

// Rotate rotates v around pivot by the unit rotation r
func Rotate(r, pivot, v Vec2) Vec2 {
	return v.Sub(pivot).ComplexMul(r).Add(pivot)
}
