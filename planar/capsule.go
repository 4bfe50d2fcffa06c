// Package planar is the two-dimensional capsule: a segment of the plane swept by a
// disk. It mirrors the root package API with mgl64.Vec2 geometry.
//
// Ray casts run the same GJK ray cast as the 3D capsule, with the shape embedded in
// the z = 0 plane.
package planar

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/capsule/actor"
	"github.com/akmonengine/capsule/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrNegativeRadius = errors.New("capsule radius is negative")
	ErrNonFinite      = errors.New("capsule has a non-finite component")
)

// SurfaceFeature is the feature reported by every query.
var SurfaceFeature = actor.FeatureFace(0)

type Capsule struct {
	Segment Segment
	Radius  float64
}

func New(a, b mgl64.Vec2, radius float64) Capsule {
	return Capsule{Segment: NewSegment(a, b), Radius: radius}
}

// NewX creates a capsule centered on the origin and aligned with the x axis.
func NewX(halfHeight, radius float64) Capsule {
	b := mgl64.Vec2{halfHeight, 0}
	return New(b.Mul(-1), b, radius)
}

// NewY creates a capsule centered on the origin and aligned with the y axis.
func NewY(halfHeight, radius float64) Capsule {
	b := mgl64.Vec2{0, halfHeight}
	return New(b.Mul(-1), b, radius)
}

func (c Capsule) Validate() error {
	for _, v := range [...]float64{c.Segment.A.X(), c.Segment.A.Y(), c.Segment.B.X(), c.Segment.B.Y(), c.Radius} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", ErrNonFinite, c)
		}
	}
	if c.Radius < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeRadius, c.Radius)
	}
	return nil
}

func (c Capsule) Height() float64 {
	return c.Segment.Length()
}

func (c Capsule) HalfHeight() float64 {
	return c.Height() / 2
}

func (c Capsule) Center() mgl64.Vec2 {
	return c.Segment.A.Add(c.Segment.B).Mul(0.5)
}

func (c Capsule) AABB(transform Transform) AABB {
	a := transform.TransformPoint(c.Segment.A)
	b := transform.TransformPoint(c.Segment.B)
	return AABBFromPoints(a, b).Loosened(c.Radius)
}

func (c Capsule) TransformBy(transform Transform) Capsule {
	return Capsule{Segment: c.Segment.TransformBy(transform), Radius: c.Radius}
}

// RotationWrtY returns the angle r such that rotating Y by r gives a vector collinear
// with B - A, after flipping the direction into y >= 0. It is 0 for a degenerate segment.
func (c Capsule) RotationWrtY() float64 {
	dir := c.Segment.ScaledDirection()
	if dir.Y() < 0 {
		dir = dir.Mul(-1)
	}
	// atan2(perp(Y, dir), dot(Y, dir))
	return math.Atan2(-dir.X(), dir.Y())
}

func (c Capsule) TransformWrtY() Transform {
	return TransformFromParts(c.Center(), c.RotationWrtY())
}

func (c Capsule) LocalSupportPoint(direction mgl64.Vec2) mgl64.Vec2 {
	dir, _, ok := tryNormalize(direction, actor.Epsilon)
	if !ok {
		dir = yAxis
	}
	return c.LocalSupportPointToward(dir)
}

func (c Capsule) LocalSupportPointToward(dir mgl64.Vec2) mgl64.Vec2 {
	if dir.Dot(c.Segment.A) > dir.Dot(c.Segment.B) {
		return c.Segment.A.Add(dir.Mul(c.Radius))
	}
	return c.Segment.B.Add(dir.Mul(c.Radius))
}

func (c Capsule) SupportPoint(transform Transform, direction mgl64.Vec2) mgl64.Vec2 {
	local := c.LocalSupportPoint(transform.InverseTransformVector(direction))
	return transform.TransformPoint(local)
}

// lifted exposes a planar capsule as a 3D support map lying in the z = 0 plane.
type lifted struct {
	capsule Capsule
}

func (l lifted) LocalSupportPoint(direction mgl64.Vec3) mgl64.Vec3 {
	return l.capsule.LocalSupportPoint(direction.Vec2()).Vec3(0)
}

// CastRay returns the first hit of a world-space ray on the capsule placed at
// transform, if it happens at most at maxToi.
func (c Capsule) CastRay(transform Transform, ray Ray, maxToi float64, solid bool) (RayIntersection, bool) {
	localRay := ray.InverseTransformBy(transform)

	simplex := gjk.VoronoiSimplexPool.Get().(*gjk.VoronoiSimplex)
	defer gjk.VoronoiSimplexPool.Put(simplex)

	hit, ok := gjk.CastRay(actor.NewTransform(), lifted{capsule: c}, simplex, localRay.lift(), maxToi, solid)
	if !ok {
		return RayIntersection{}, false
	}

	normal := hit.Normal.Vec2()
	if normal != (mgl64.Vec2{}) {
		normal = c.localNormal(localRay.PointAt(hit.Toi), normal)
	}

	return RayIntersection{
		Toi:     hit.Toi,
		Normal:  transform.TransformVector(normal),
		Feature: SurfaceFeature,
	}, true
}

// localNormal is the outward normal at a local surface point, or approx when the point
// lies on the segment.
func (c Capsule) localNormal(point, approx mgl64.Vec2) mgl64.Vec2 {
	proj := c.Segment.ProjectLocalPoint(point)
	n, dist, ok := tryNormalize(point.Sub(proj.Point), actor.Epsilon)
	if !ok || dist < c.Radius/2 {
		return approx
	}
	return n
}

// ProjectPoint returns the point of the capsule placed at transform closest to a
// world-space point, and whether that point was inside the capsule. A point exactly
// on the segment is pushed along the segment normal when solid is false.
func (c Capsule) ProjectPoint(transform Transform, point mgl64.Vec2, solid bool) PointProjection {
	proj := c.Segment.ProjectPoint(transform, point, solid)

	if dir, dist, ok := tryNormalize(point.Sub(proj.Point), actor.Epsilon); ok {
		inside := dist <= c.Radius
		if solid && inside {
			return PointProjection{Point: point, IsInside: true}
		}
		return PointProjection{Point: proj.Point.Add(dir.Mul(c.Radius)), IsInside: inside}
	}

	if solid {
		return PointProjection{Point: point, IsInside: true}
	}

	return PointProjection{
		Point:    proj.Point.Add(c.axisOffsetDirection(transform).Mul(c.Radius)),
		IsInside: true,
	}
}

// axisOffsetDirection is the segment normal in world space, or +Y when the segment is
// a point.
func (c Capsule) axisOffsetDirection(transform Transform) mgl64.Vec2 {
	n, ok := c.Segment.Normal()
	if !ok {
		return yAxis
	}
	return transform.TransformVector(n)
}

func (c Capsule) ProjectPointWithFeature(transform Transform, point mgl64.Vec2) (PointProjection, actor.FeatureID) {
	return c.ProjectPoint(transform, point, false), SurfaceFeature
}

func (c Capsule) ContainsPoint(transform Transform, point mgl64.Vec2) bool {
	return c.ProjectPoint(transform, point, true).IsInside
}

// DistanceToPoint mirrors the 3D capsule: hollow distances of interior points are negative.
func (c Capsule) DistanceToPoint(transform Transform, point mgl64.Vec2, solid bool) float64 {
	proj := c.ProjectPoint(transform, point, solid)
	dist := point.Sub(proj.Point).Len()
	if !solid && proj.IsInside {
		return -dist
	}
	return dist
}
