package planar

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a rigid motion of the plane: a rotation by Angle (radians,
// counter-clockwise) followed by a translation.
type Transform struct {
	Position mgl64.Vec2
	Angle    float64
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{}
}

func TransformFromParts(position mgl64.Vec2, angle float64) Transform {
	return Transform{Position: position, Angle: angle}
}

// Rotation is the rotation matrix of the transform.
func (t Transform) Rotation() mgl64.Mat2 {
	return mgl64.Rotate2D(t.Angle)
}

func (t Transform) TransformPoint(point mgl64.Vec2) mgl64.Vec2 {
	return t.Rotation().Mul2x1(point).Add(t.Position)
}

func (t Transform) TransformVector(vector mgl64.Vec2) mgl64.Vec2 {
	return t.Rotation().Mul2x1(vector)
}

func (t Transform) InverseTransformPoint(point mgl64.Vec2) mgl64.Vec2 {
	return t.Rotation().Transpose().Mul2x1(point.Sub(t.Position))
}

func (t Transform) InverseTransformVector(vector mgl64.Vec2) mgl64.Vec2 {
	return t.Rotation().Transpose().Mul2x1(vector)
}

func (t Transform) Inverse() Transform {
	return Transform{
		Position: mgl64.Rotate2D(-t.Angle).Mul2x1(t.Position.Mul(-1)),
		Angle:    -t.Angle,
	}
}

// Mul composes two transforms: the result applies other first, then t.
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		Position: t.TransformPoint(other.Position),
		Angle:    t.Angle + other.Angle,
	}
}

// ApproxEqual compares positions and angles (modulo a full turn) within threshold.
func (t Transform) ApproxEqual(other Transform, threshold float64) bool {
	diff := math.Remainder(t.Angle-other.Angle, 2*math.Pi)
	return t.Position.ApproxEqualThreshold(other.Position, threshold) && math.Abs(diff) <= threshold
}
