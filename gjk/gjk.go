// Package gjk implements Gilbert-Johnson-Keerthi (GJK) based queries on support-mapped
// convex shapes.
//
// Intersect detects whether two convex shapes overlap by testing if their Minkowski
// difference contains the origin. CastRay finds where a ray first meets a convex shape
// by refining a simplex of support points while marching the ray origin forward.
//
// Both only ever call actor.SupportMap.LocalSupportPoint on the shapes they receive.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
//   - Van den Bergen: "Ray Casting against General Convex Objects with Application to
//     Continuous Collision Detection" (2004)
package gjk

import (
	"sync"

	"github.com/akmonengine/capsule/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Simplex represents a set of 1-4 points in the Minkowski difference space.
// The simplex evolves during GJK iterations, always containing the most recent support points.
// Size progression: 1 point → 2 points (line) → 3 points (triangle) → 4 points (tetrahedron)
type Simplex struct {
	Points [4]mgl64.Vec3
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

// MaxIterations bounds the refinement loops of Intersect and CastRay.
const MaxIterations = 64

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex{}
	},
}

// Body is a support-mapped shape placed in the world.
type Body struct {
	Transform actor.Transform
	Shape     actor.SupportMap
}

// MinkowskiSupport computes a support point in the Minkowski difference (A - B).
//
// The Minkowski difference A - B is the set of all vectors (a - b) where a ∈ A and b ∈ B.
// For collision detection, we only need the extreme points (support points) in any direction.
//
// Returns:
//
//	Support point: furthestPoint(A, direction) - furthestPoint(B, -direction)
func MinkowskiSupport(a, b Body, direction mgl64.Vec3) mgl64.Vec3 {
	supportA := actor.SupportPoint(a.Transform, a.Shape, direction)
	supportB := actor.SupportPoint(b.Transform, b.Shape, direction.Mul(-1))
	return supportA.Sub(supportB)
}

// Intersect reports whether two posed convex shapes overlap.
//
// Algorithm overview:
//  1. Start with initial search direction (toward B from A)
//  2. Get first support point in Minkowski difference
//  3. Iteratively refine simplex toward origin
//  4. If origin is contained → overlap
//  5. If can't reach origin → separated
//
// The simplex is modified in place; on overlap it holds the final tetrahedron (or the
// degenerate feature that touched the origin).
func Intersect(a, b Body, simplex *Simplex) bool {
	// Starting toward the other shape typically reduces iterations
	direction := b.Transform.Position.Sub(a.Transform.Position)
	if direction.LenSqr() < 1e-8 {
		direction = mgl64.Vec3{1, 0, 0} // Fallback if positions are identical
	}

	simplex.Points[0] = MinkowskiSupport(a, b, direction)
	simplex.Count = 1

	direction = simplex.Points[0].Mul(-1)

	// First support point at the origin: shapes are touching
	if direction.LenSqr() < 1e-16 {
		return true
	}

	for i := 0; i < MaxIterations; i++ {
		newPoint := MinkowskiSupport(a, b, direction)

		// The new point does not pass the origin in the search direction:
		// the origin cannot be reached, the shapes are separated.
		if newPoint.Dot(direction) <= 0 {
			return false
		}

		simplex.Points[simplex.Count] = newPoint
		simplex.Count++

		// Reduces the simplex to its feature closest to the origin and updates direction
		if containsOrigin(simplex, &direction) {
			return true
		}
	}

	// Failed to converge, may indicate numerical issues
	return false
}

// containsOrigin reduces the simplex to the feature closest to the origin and points
// direction at the origin from that feature. Only a tetrahedron can enclose the origin,
// degenerate simplices touching the origin are reported as contained as well.
func containsOrigin(simplex *Simplex, direction *mgl64.Vec3) bool {
	switch simplex.Count {
	case 2:
		return line(simplex, direction)
	case 3:
		return triangle(simplex, direction)
	case 4:
		return tetrahedron(simplex, direction)
	}
	return false
}

// setSimplex overwrites the simplex with points, oldest first.
func setSimplex(simplex *Simplex, points ...mgl64.Vec3) {
	simplex.Count = copy(simplex.Points[:], points)
}

// line keeps either the newest point a or the edge ab.
func line(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[1] // newest
	b := simplex.Points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	if ab.LenSqr() < 1e-8 {
		if ao.LenSqr() < 1e-8 {
			return true
		}
		setSimplex(simplex, a)
		*direction = ao
		return false
	}

	// origin behind a
	if ab.Dot(ao) <= 0 {
		setSimplex(simplex, a)
		*direction = ao
		return false
	}

	abPerp := ab.Cross(ao).Cross(ab)
	if abPerp.LenSqr() < 1e-8 {
		// origin on the segment
		return true
	}

	*direction = abPerp
	return false
}

// triangle keeps the edge or face whose Voronoi region holds the origin and orients
// the face so that direction points from it toward the origin.
func triangle(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[2] // newest
	b := simplex.Points[1]
	c := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)
	abc := ab.Cross(ac)

	// collinear points, drop the oldest
	if abc.LenSqr() < 1e-10 {
		setSimplex(simplex, b, a)
		return line(simplex, direction)
	}

	if ab.Cross(abc).Dot(ao) > 0 {
		setSimplex(simplex, b, a)
		*direction = ab.Cross(ao).Cross(ab)
		return false
	}

	if abc.Cross(ac).Dot(ao) > 0 {
		setSimplex(simplex, c, a)
		*direction = ac.Cross(ao).Cross(ac)
		return false
	}

	if abc.Dot(ao) > 0 {
		*direction = abc
	} else {
		setSimplex(simplex, a, c, b)
		*direction = abc.Mul(-1)
	}

	return false
}

// tetrahedron encloses the origin when no face separates it from the opposite vertex.
// Otherwise the simplex falls back to the first face the origin lies outside of.
func tetrahedron(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[3] // newest
	b := simplex.Points[2]
	c := simplex.Points[1]
	d := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	// face normals, flipped to point away from the opposite vertex
	abc := outward(ab.Cross(ac), ad)
	acd := outward(ac.Cross(ad), ab)
	adb := outward(ad.Cross(ab), ac)

	if abc.LenSqr() < 1e-10 || acd.LenSqr() < 1e-10 || adb.LenSqr() < 1e-10 {
		setSimplex(simplex, c, b, a)
		return triangle(simplex, direction)
	}

	switch {
	case abc.Dot(ao) > 0:
		setSimplex(simplex, c, b, a)
	case acd.Dot(ao) > 0:
		setSimplex(simplex, d, c, a)
	case adb.Dot(ao) > 0:
		setSimplex(simplex, b, d, a)
	default:
		return true
	}

	return triangle(simplex, direction)
}

func outward(normal, toOpposite mgl64.Vec3) mgl64.Vec3 {
	if normal.Dot(toOpposite) > 0 {
		return normal.Mul(-1)
	}
	return normal
}
