package actor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// SupportMap is the only primitive a generic convex algorithm needs from a shape.
// LocalSupportPoint returns the point of the shape, in its local space, that is the
// farthest along direction. direction may have any length, including zero.
type SupportMap interface {
	LocalSupportPoint(direction mgl64.Vec3) mgl64.Vec3
}

// Shape is a support-mapped convex shape that can be bounded in world space.
type Shape interface {
	SupportMap
	AABB(transform Transform) AABB
}

// SupportPoint returns the world-space support point of shape placed at transform.
func SupportPoint(transform Transform, shape SupportMap, direction mgl64.Vec3) mgl64.Vec3 {
	// 1. direction into local space (inverse rotation)
	localDirection := transform.InverseTransformVector(direction)

	// 2. support in local space
	localSupport := shape.LocalSupportPoint(localDirection)

	// 3. back to world space (rotation + translation)
	return transform.TransformPoint(localSupport)
}

// Box represents an oriented box collision shape
// The box is defined by its half-extents (half-width, half-height, half-depth)
type Box struct {
	HalfExtents mgl64.Vec3
}

func (b Box) AABB(transform Transform) AABB {
	// Les 8 coins de la boîte en espace local
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()
	corners := [8]mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{-hx, +hy, -hz},
		{+hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{-hx, +hy, +hz},
		{+hx, +hy, +hz},
	}

	for i := range corners {
		corners[i] = transform.TransformPoint(corners[i])
	}

	return AABBFromPoints(corners[:]...)
}

func (b Box) LocalSupportPoint(direction mgl64.Vec3) mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	if direction.X() < 0 {
		hx = -hx
	}
	if direction.Y() < 0 {
		hy = -hy
	}
	if direction.Z() < 0 {
		hz = -hz
	}

	return mgl64.Vec3{hx, hy, hz}
}

// Sphere represents a spherical collision shape centered on its local origin
type Sphere struct {
	Radius float64
}

// AABB is not affected by rotation, only by position
func (s Sphere) AABB(transform Transform) AABB {
	return AABB{Min: transform.Position, Max: transform.Position}.Loosened(s.Radius)
}

// LocalSupportPoint falls back to +Y when direction has no usable length.
func (s Sphere) LocalSupportPoint(direction mgl64.Vec3) mgl64.Vec3 {
	dir, _, ok := TryNormalize(direction, Epsilon)
	if !ok {
		dir = mgl64.Vec3{0, 1, 0}
	}
	return dir.Mul(s.Radius)
}
