package actor

import "github.com/go-gl/mathgl/mgl64"

// Segment is the straight line segment between A and B. A == B is allowed.
type Segment struct {
	A mgl64.Vec3
	B mgl64.Vec3
}

func NewSegment(a, b mgl64.Vec3) Segment {
	return Segment{A: a, B: b}
}

// ScaledDirection is B - A.
func (s Segment) ScaledDirection() mgl64.Vec3 {
	return s.B.Sub(s.A)
}

func (s Segment) Length() float64 {
	return s.ScaledDirection().Len()
}

// Direction is the unit vector from A to B. It is undefined (false) when the
// segment degenerates to a point.
func (s Segment) Direction() (mgl64.Vec3, bool) {
	dir, _, ok := TryNormalize(s.ScaledDirection(), Epsilon)
	return dir, ok
}

// OrthonormalBasis returns two unit vectors spanning the plane orthogonal to the
// segment direction. It is undefined (false) for a degenerate segment.
func (s Segment) OrthonormalBasis() ([2]mgl64.Vec3, bool) {
	dir, ok := s.Direction()
	if !ok {
		return [2]mgl64.Vec3{}, false
	}
	t1, t2 := TangentBasis(dir)
	return [2]mgl64.Vec3{t1, t2}, true
}

func (s Segment) TransformBy(t Transform) Segment {
	return Segment{A: t.TransformPoint(s.A), B: t.TransformPoint(s.B)}
}

// ProjectLocalPoint returns the point of the segment closest to point.
// IsInside reports whether point lies on the segment itself.
func (s Segment) ProjectLocalPoint(point mgl64.Vec3) PointProjection {
	ab := s.ScaledDirection()
	ap := point.Sub(s.A)
	abAp := ab.Dot(ap)
	sqLen := ab.LenSqr()

	var proj mgl64.Vec3
	switch {
	case abAp <= 0:
		proj = s.A
	case abAp >= sqLen:
		proj = s.B
	default:
		// sqLen > abAp > 0 here, the division is safe
		proj = s.A.Add(ab.Mul(abAp / sqLen))
	}

	return PointProjection{Point: proj, IsInside: proj.ApproxEqual(point)}
}

// ProjectPoint projects a world-space point on the segment placed at t.
// A segment has no interior, solid is accepted for symmetry with other shapes.
func (s Segment) ProjectPoint(t Transform, point mgl64.Vec3, solid bool) PointProjection {
	proj := s.ProjectLocalPoint(t.InverseTransformPoint(point))
	proj.Point = t.TransformPoint(proj.Point)
	return proj
}
