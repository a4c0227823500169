package vmath

import "math"

// AngleBetween returns the unsigned angle between a and b in [0, π].
// Zero-length operands have no direction and yield ErrDegenerateRotation.
func AngleBetween(a, b Vec2) (float64, error) {
	la, lb := a.Len(), b.Len()
	if la < Epsilon || lb < Epsilon {
		return 0, ErrDegenerateRotation
	}
	c := a.Dot(b) / (la * lb)
	// rounding can push |c| slightly past 1
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c), nil
}

// Lerp returns a + (b-a)*t. t is not clamped.
func Lerp(a, b Vec2, t float64) Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// Slerp interpolates along the arc from a to b, treating both as complex
// numbers. sin(angle) vanishes at both ends of the angle range, so:
//   - angle ≈ 0 falls back to Lerp, which is exact for parallel operands
//   - angle ≈ π rotates a counter-clockwise by t·π, lerping the magnitude
//
// A zero-length operand returns ErrDegenerateRotation.
func Slerp(a, b Vec2, t float64) (Vec2, error) {
	angle, err := AngleBetween(a, b)
	if err != nil {
		return Lerp(a, b, t), err
	}

	s := math.Sin(angle)
	if math.Abs(s) < Epsilon {
		if angle < math.Pi/2 {
			return Lerp(a, b, t), nil
		}
		la, lb := a.Len(), b.Len()
		mag := la + (lb-la)*t
		return a.Mul(mag / la).ComplexMul(FromAngle(t * math.Pi)), nil
	}

	v := a.Mul(math.Sin((1-t)*angle)).Add(b.Mul(math.Sin(t * angle)))
	return v.Div(s)
}
