package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a rigid motion in 3D space: a rotation followed by a translation.
// Rotation must be a unit quaternion. There is no scaling component.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// TransformFromParts builds a transform from a translation and a unit rotation.
func TransformFromParts(position mgl64.Vec3, rotation mgl64.Quat) Transform {
	return Transform{Position: position, Rotation: rotation}
}

// TransformPoint maps a local point to world space (rotation + translation).
func (t Transform) TransformPoint(point mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(point).Add(t.Position)
}

// TransformVector maps a local vector to world space. Translation does not apply.
func (t Transform) TransformVector(vector mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(vector)
}

// InverseTransformPoint maps a world point to local space.
func (t Transform) InverseTransformPoint(point mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Conjugate().Rotate(point.Sub(t.Position))
}

// InverseTransformVector maps a world vector to local space.
func (t Transform) InverseTransformVector(vector mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Conjugate().Rotate(vector)
}

// Inverse returns the transform undoing t.
func (t Transform) Inverse() Transform {
	inverseRotation := t.Rotation.Conjugate()
	return Transform{
		Position: inverseRotation.Rotate(t.Position.Mul(-1)),
		Rotation: inverseRotation,
	}
}

// Mul composes two transforms: the result applies other first, then t.
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		Position: t.TransformPoint(other.Position),
		Rotation: t.Rotation.Mul(other.Rotation).Normalize(),
	}
}

// ApproxEqual compares positions and rotations within threshold.
// q and -q describe the same rotation and are considered equal.
func (t Transform) ApproxEqual(other Transform, threshold float64) bool {
	if !t.Position.ApproxEqualThreshold(other.Position, threshold) {
		return false
	}
	return t.Rotation.ApproxEqualThreshold(other.Rotation, threshold) ||
		t.Rotation.ApproxEqualThreshold(other.Rotation.Scale(-1), threshold)
}
