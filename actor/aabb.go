package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// AABBFromPoints returns the smallest box containing every given point.
// An empty call returns the zero box.
func AABBFromPoints(points ...mgl64.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min[0] = math.Min(min[0], p[0])
		min[1] = math.Min(min[1], p[1])
		min[2] = math.Min(min[2], p[2])

		max[0] = math.Max(max[0], p[0])
		max[1] = math.Max(max[1], p[1])
		max[2] = math.Max(max[2], p[2])
	}

	return AABB{Min: min, Max: max}
}

// Loosened grows the box by margin on every axis.
func (a AABB) Loosened(margin float64) AABB {
	m := mgl64.Vec3{margin, margin, margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}

// Merged returns the smallest box containing both a and other.
func (a AABB) Merged(other AABB) AABB {
	return AABBFromPoints(a.Min, a.Max, other.Min, other.Max)
}

// Center is the midpoint of the box.
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// HalfExtents is half the size of the box on each axis.
func (a AABB) HalfExtents() mgl64.Vec3 {
	return a.Max.Sub(a.Min).Mul(0.5)
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}
