package anim

import (
	"github.com/go-gl/mathgl/mgl64"

	"keyframe/vmath"
)

// Transform2 is a 2D transform. Rotation is a unit complex number.
type Transform2 struct {
	Position vmath.Vec2
	Rotation vmath.Vec2
	Scale    vmath.Vec2
}

// NewTransform2 returns the identity transform
func NewTransform2() Transform2 {
	return Transform2{
		Position: vmath.Zero,
		Rotation: vmath.Identity,
		Scale:    vmath.Vec2{X: 1, Y: 1},
	}
}

// Matrix returns the homogeneous matrix applying scale, then rotation, then translation
func (t Transform2) Matrix() mgl64.Mat3 {
	translate := mgl64.Translate2D(t.Position.X, t.Position.Y)
	rotate := mgl64.HomogRotate2D(t.Rotation.Angle())
	scale := mgl64.Scale2D(t.Scale.X, t.Scale.Y)
	return translate.Mul3(rotate).Mul3(scale)
}

// Apply maps a local-space point through the transform
func (t Transform2) Apply(p vmath.Vec2) vmath.Vec2 {
	return vmath.FromMgl(t.Matrix().Mul3x1(p.Mgl().Vec3(1)).Vec2())
}
