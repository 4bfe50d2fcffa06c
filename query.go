package capsule

import (
	"github.com/akmonengine/capsule/actor"
	"github.com/akmonengine/capsule/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// SurfaceFeature is the feature reported by every query: caps and side are not told apart.
var SurfaceFeature = actor.FeatureFace(0)

var _ actor.Shape = Capsule{}

// LocalSupportPoint returns the point of the capsule farthest along direction, in
// local space. A direction too short to be normalized is replaced by +Y.
func (c Capsule) LocalSupportPoint(direction mgl64.Vec3) mgl64.Vec3 {
	dir, _, ok := actor.TryNormalize(direction, actor.Epsilon)
	if !ok {
		dir = yAxis
	}
	return c.LocalSupportPointToward(dir)
}

// LocalSupportPointToward is LocalSupportPoint for a direction already of unit length.
// On a tie between the endpoints, B is used.
func (c Capsule) LocalSupportPointToward(dir mgl64.Vec3) mgl64.Vec3 {
	if dir.Dot(c.Segment.A) > dir.Dot(c.Segment.B) {
		return c.Segment.A.Add(dir.Mul(c.Radius))
	}
	return c.Segment.B.Add(dir.Mul(c.Radius))
}

// SupportPoint returns the world-space support point of the capsule placed at transform.
func (c Capsule) SupportPoint(transform actor.Transform, direction mgl64.Vec3) mgl64.Vec3 {
	return actor.SupportPoint(transform, c, direction)
}

// CastRay returns the first hit of a world-space ray on the capsule placed at
// transform, if it happens at most at maxToi. The normal is in world space.
//
// With solid set, a ray starting inside hits at time 0 (with a zero normal); otherwise
// it hits where it leaves the capsule.
func (c Capsule) CastRay(transform actor.Transform, ray actor.Ray, maxToi float64, solid bool) (actor.RayIntersection, bool) {
	localRay := ray.InverseTransformBy(transform)

	simplex := gjk.VoronoiSimplexPool.Get().(*gjk.VoronoiSimplex)
	defer gjk.VoronoiSimplexPool.Put(simplex)

	hit, ok := gjk.CastRay(actor.NewTransform(), c, simplex, localRay, maxToi, solid)
	if !ok {
		return actor.RayIntersection{}, false
	}

	if hit.Normal != (mgl64.Vec3{}) {
		hit.Normal = c.localNormal(localRay.PointAt(hit.Toi), hit.Normal)
	}
	hit.Normal = transform.TransformVector(hit.Normal)
	hit.Feature = SurfaceFeature
	return hit, true
}

// localNormal is the outward normal at a local surface point: the direction from the
// closest point of the segment. approx is kept when the point lies on the segment.
func (c Capsule) localNormal(point, approx mgl64.Vec3) mgl64.Vec3 {
	proj := c.Segment.ProjectLocalPoint(point)
	n, dist, ok := actor.TryNormalize(point.Sub(proj.Point), actor.Epsilon)
	if !ok || dist < c.Radius/2 {
		return approx
	}
	return n
}

// IntersectsRay reports whether the ray reaches the solid capsule before maxToi.
func (c Capsule) IntersectsRay(transform actor.Transform, ray actor.Ray, maxToi float64) bool {
	_, ok := c.CastRay(transform, ray, maxToi, true)
	return ok
}

// ProjectPoint returns the point of the capsule placed at transform closest to a
// world-space point, and whether that point was inside the capsule.
//
// With solid set, interior points (including points on the segment) are their own
// projection. Otherwise they are pushed to the surface; a point exactly on the segment
// is pushed along a fixed direction orthogonal to it.
func (c Capsule) ProjectPoint(transform actor.Transform, point mgl64.Vec3, solid bool) actor.PointProjection {
	proj := c.Segment.ProjectPoint(transform, point, solid)

	if dir, dist, ok := actor.TryNormalize(point.Sub(proj.Point), actor.Epsilon); ok {
		inside := dist <= c.Radius
		if solid && inside {
			return actor.PointProjection{Point: point, IsInside: true}
		}
		return actor.PointProjection{Point: proj.Point.Add(dir.Mul(c.Radius)), IsInside: inside}
	}

	if solid {
		return actor.PointProjection{Point: point, IsInside: true}
	}

	return actor.PointProjection{
		Point:    proj.Point.Add(c.axisOffsetDirection(transform).Mul(c.Radius)),
		IsInside: true,
	}
}

// axisOffsetDirection is the world direction used to leave the segment when the
// query point lies on it: the first tangent of the segment direction, or +Y when the
// segment is a point.
func (c Capsule) axisOffsetDirection(transform actor.Transform) mgl64.Vec3 {
	basis, ok := c.Segment.OrthonormalBasis()
	if !ok {
		return yAxis
	}
	return transform.TransformVector(basis[0])
}

// ProjectPointWithFeature is the hollow projection along with the feature it lies on.
func (c Capsule) ProjectPointWithFeature(transform actor.Transform, point mgl64.Vec3) (actor.PointProjection, actor.FeatureID) {
	return c.ProjectPoint(transform, point, false), SurfaceFeature
}

// ContainsPoint reports whether a world-space point lies in the solid capsule.
func (c Capsule) ContainsPoint(transform actor.Transform, point mgl64.Vec3) bool {
	return c.ProjectPoint(transform, point, true).IsInside
}

// DistanceToPoint is the distance between a world-space point and the capsule.
// Solid: 0 for interior points. Hollow: negative for interior points, measured to the
// surface.
func (c Capsule) DistanceToPoint(transform actor.Transform, point mgl64.Vec3, solid bool) float64 {
	proj := c.ProjectPoint(transform, point, solid)
	dist := point.Sub(proj.Point).Len()
	if !solid && proj.IsInside {
		return -dist
	}
	return dist
}

// Intersects reports whether the capsule placed at transform overlaps another
// support-mapped shape.
func (c Capsule) Intersects(transform actor.Transform, other actor.SupportMap, otherTransform actor.Transform) bool {
	simplex := gjk.SimplexPool.Get().(*gjk.Simplex)
	defer gjk.SimplexPool.Put(simplex)
	simplex.Reset()

	return gjk.Intersect(
		gjk.Body{Transform: transform, Shape: c},
		gjk.Body{Transform: otherTransform, Shape: other},
		simplex,
	)
}
