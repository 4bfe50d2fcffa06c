package gjk

import (
	"github.com/akmonengine/capsule/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// rayCastIterations bounds the refinement loop of CastRay.
	rayCastIterations = 2 * MaxIterations

	// relTolerance is the squared distance, relative to the simplex size or to the
	// magnitude of the ray point, under which the ray point is considered on the shape.
	relTolerance = 100 * actor.DefaultEpsilon

	// looseTolerance is accepted when the iteration budget runs out.
	looseTolerance = 1e-8

	// exitMargin pushes the restart point of hollow casts strictly outside the shape.
	exitMargin = 1e-3
)

// CastRay computes the first intersection between a ray and a convex shape placed at
// transform, both given in world space. It returns false when the ray misses the shape
// or only reaches it past maxToi.
//
// When solid is true, a ray starting inside the shape hits at time 0 with a zero
// normal. When solid is false, the ray has to reach the boundary: from inside, the exit
// point is reported.
//
// The simplex is reset before use and can be reused across calls.
func CastRay(transform actor.Transform, shape actor.SupportMap, simplex *VoronoiSimplex, ray actor.Ray, maxToi float64, solid bool) (actor.RayIntersection, bool) {
	local := ray.InverseTransformBy(transform)

	toi, normal, ok := castLocalRay(shape, simplex, local, maxToi)
	if !ok {
		return actor.RayIntersection{}, false
	}

	if !solid && toi == 0 {
		toi, normal, ok = castFromInside(shape, simplex, local)
		if !ok || toi > maxToi {
			return actor.RayIntersection{}, false
		}
	}

	return actor.RayIntersection{
		Toi:     toi,
		Normal:  transform.TransformVector(normal),
		Feature: actor.FeatureID{},
	}, true
}

// castFromInside restarts the cast beyond the far side of the shape, in the reversed
// direction, and converts the result back into a parameter of the original ray.
func castFromInside(shape actor.SupportMap, simplex *VoronoiSimplex, ray actor.Ray) (float64, mgl64.Vec3, bool) {
	dir, length, ok := actor.TryNormalize(ray.Direction, actor.Epsilon)
	if !ok {
		// a ray that does not move never leaves the shape
		return 0, mgl64.Vec3{}, false
	}

	far := shape.LocalSupportPoint(dir)
	shift := (far.Sub(ray.Origin).Dot(dir) + exitMargin) / length

	reversed := actor.Ray{
		Origin:    ray.PointAt(shift),
		Direction: ray.Direction.Mul(-1),
	}

	toi, normal, ok := castLocalRay(shape, simplex, reversed, shift)
	if !ok {
		return 0, mgl64.Vec3{}, false
	}
	return shift - toi, normal, true
}

// castLocalRay is the GJK ray cast: x marches along the ray onto successive support
// planes separating it from the shape, while the simplex of x - p tracks the distance
// between x and the shape. The hit is found when that distance vanishes.
func castLocalRay(shape actor.SupportMap, simplex *VoronoiSimplex, ray actor.Ray, maxToi float64) (float64, mgl64.Vec3, bool) {
	simplex.Reset()

	toi := 0.0
	x := ray.Origin
	var normal mgl64.Vec3

	simplex.add(shape.LocalSupportPoint(ray.Direction.Mul(-1)))
	v := simplex.closest(x)

	converged := false
	for i := 0; i < rayCastIterations; i++ {
		if v.LenSqr() <= relTolerance*max(simplex.maxLenSqr(x), x.LenSqr()) {
			converged = true
			break
		}

		p := shape.LocalSupportPoint(v)
		vw := v.Dot(x.Sub(p))
		prevLenSqr := v.LenSqr()
		if vw > 0 {
			vr := v.Dot(ray.Direction)
			if vr >= 0 {
				// the support plane separates the ray from the shape
				return 0, mgl64.Vec3{}, false
			}

			toi -= vw / vr
			if toi > maxToi {
				return 0, mgl64.Vec3{}, false
			}
			x = ray.PointAt(toi)
			normal = v
		}

		if !simplex.add(p) && vw <= 0 {
			// no new support point and no progress along the ray
			converged = true
			break
		}

		v = simplex.closest(x)
		if vw <= 0 && v.LenSqr() >= prevLenSqr {
			// x did not move, so the distance must shrink: the simplex is degenerate
			simplex.Reset()
			simplex.add(p)
			v = simplex.closest(x)
		}
		if simplex.Count == len(simplex.Points) {
			// the origin is enclosed
			converged = true
			break
		}
	}

	if !converged && v.LenSqr() > looseTolerance*max(simplex.maxLenSqr(x), x.LenSqr()) {
		return 0, mgl64.Vec3{}, false
	}

	if toi == 0 {
		return 0, mgl64.Vec3{}, true
	}

	n, _, ok := actor.TryNormalize(normal, 0)
	if !ok {
		return toi, mgl64.Vec3{}, true
	}
	return toi, n, true
}
