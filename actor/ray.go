package actor

import "github.com/go-gl/mathgl/mgl64"

// Ray is a half-line starting at Origin. Direction need not be unit length:
// times of impact are expressed in multiples of Direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// PointAt returns Origin + Direction*t.
func (r Ray) PointAt(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// InverseTransformBy maps a world-space ray to the local space of t.
func (r Ray) InverseTransformBy(t Transform) Ray {
	return Ray{
		Origin:    t.InverseTransformPoint(r.Origin),
		Direction: t.InverseTransformVector(r.Direction),
	}
}

// RayIntersection describes where a ray first meets a shape.
type RayIntersection struct {
	// Toi is the ray parameter of the hit point.
	Toi float64
	// Normal is the outward surface normal at the hit point. It is zero when a solid
	// query starts inside the shape.
	Normal  mgl64.Vec3
	Feature FeatureID
}
