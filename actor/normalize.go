package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultEpsilon is the float64 machine epsilon.
const DefaultEpsilon = 0x1p-52

// Epsilon is the length at or below which a vector is treated as having no direction.
// It may be overridden once at start-up; queries read it without synchronization.
var Epsilon = DefaultEpsilon

// TryNormalize returns v scaled to unit length and its original length.
// The last result is false when the length is not greater than eps (or is NaN),
// in which case the returned vector is zero.
func TryNormalize(v mgl64.Vec3, eps float64) (mgl64.Vec3, float64, bool) {
	length := v.Len()
	if !(length > eps) || math.IsInf(length, 0) {
		return mgl64.Vec3{}, length, false
	}
	return v.Mul(1.0 / length), length, true
}

// TangentBasis returns two unit vectors orthogonal to normal and to each other.
// normal must be of unit length.
func TangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	var tangent1 mgl64.Vec3
	if math.Abs(normal.X()) > 0.9 {
		tangent1 = mgl64.Vec3{0, 1, 0}
	} else {
		tangent1 = mgl64.Vec3{1, 0, 0}
	}

	tangent1 = tangent1.Sub(normal.Mul(tangent1.Dot(normal))).Normalize()
	tangent2 := normal.Cross(tangent1).Normalize()

	return tangent1, tangent2
}
