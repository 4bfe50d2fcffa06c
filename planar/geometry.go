package planar

import (
	"math"

	"github.com/akmonengine/capsule/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var yAxis = mgl64.Vec2{0, 1}

// tryNormalize is the 2D counterpart of actor.TryNormalize.
func tryNormalize(v mgl64.Vec2, eps float64) (mgl64.Vec2, float64, bool) {
	length := v.Len()
	if !(length > eps) || math.IsInf(length, 0) {
		return mgl64.Vec2{}, length, false
	}
	return v.Mul(1.0 / length), length, true
}

// AABB represents an axis-aligned bounding rectangle
type AABB struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

func AABBFromPoints(points ...mgl64.Vec2) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min[0] = math.Min(min[0], p[0])
		min[1] = math.Min(min[1], p[1])
		max[0] = math.Max(max[0], p[0])
		max[1] = math.Max(max[1], p[1])
	}

	return AABB{Min: min, Max: max}
}

func (a AABB) Loosened(margin float64) AABB {
	m := mgl64.Vec2{margin, margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}

func (a AABB) ContainsPoint(point mgl64.Vec2) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y()
}

// Ray is a half-line starting at Origin; times of impact are multiples of Direction.
type Ray struct {
	Origin    mgl64.Vec2
	Direction mgl64.Vec2
}

func NewRay(origin, direction mgl64.Vec2) Ray {
	return Ray{Origin: origin, Direction: direction}
}

func (r Ray) PointAt(t float64) mgl64.Vec2 {
	return r.Origin.Add(r.Direction.Mul(t))
}

func (r Ray) InverseTransformBy(t Transform) Ray {
	return Ray{
		Origin:    t.InverseTransformPoint(r.Origin),
		Direction: t.InverseTransformVector(r.Direction),
	}
}

// lift embeds the ray in the z = 0 plane of 3D space.
func (r Ray) lift() actor.Ray {
	return actor.NewRay(r.Origin.Vec3(0), r.Direction.Vec3(0))
}

type RayIntersection struct {
	Toi     float64
	Normal  mgl64.Vec2
	Feature actor.FeatureID
}

type PointProjection struct {
	Point    mgl64.Vec2
	IsInside bool
}

// Segment is the straight line segment between A and B. A == B is allowed.
type Segment struct {
	A mgl64.Vec2
	B mgl64.Vec2
}

func NewSegment(a, b mgl64.Vec2) Segment {
	return Segment{A: a, B: b}
}

func (s Segment) ScaledDirection() mgl64.Vec2 {
	return s.B.Sub(s.A)
}

func (s Segment) Length() float64 {
	return s.ScaledDirection().Len()
}

func (s Segment) Direction() (mgl64.Vec2, bool) {
	dir, _, ok := tryNormalize(s.ScaledDirection(), actor.Epsilon)
	return dir, ok
}

// Normal is the unit vector (dir.y, -dir.x), on the right of A -> B. It is undefined
// (false) for a degenerate segment.
func (s Segment) Normal() (mgl64.Vec2, bool) {
	dir := s.ScaledDirection()
	n, _, ok := tryNormalize(mgl64.Vec2{dir.Y(), -dir.X()}, actor.Epsilon)
	return n, ok
}

func (s Segment) TransformBy(t Transform) Segment {
	return Segment{A: t.TransformPoint(s.A), B: t.TransformPoint(s.B)}
}

func (s Segment) ProjectLocalPoint(point mgl64.Vec2) PointProjection {
	ab := s.ScaledDirection()
	abAp := ab.Dot(point.Sub(s.A))
	sqLen := ab.LenSqr()

	var proj mgl64.Vec2
	switch {
	case abAp <= 0:
		proj = s.A
	case abAp >= sqLen:
		proj = s.B
	default:
		proj = s.A.Add(ab.Mul(abAp / sqLen))
	}

	return PointProjection{Point: proj, IsInside: proj.ApproxEqual(point)}
}

// ProjectPoint projects a world-space point on the segment placed at t.
func (s Segment) ProjectPoint(t Transform, point mgl64.Vec2, solid bool) PointProjection {
	proj := s.ProjectLocalPoint(t.InverseTransformPoint(point))
	proj.Point = t.TransformPoint(proj.Point)
	return proj
}
