package gjk

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// VoronoiSimplex is the workspace of CastRay. It stores up to four support points of
// the shape; the simplex itself is made of their offsets to the current ray point, and
// is reduced after each step to the smallest feature holding its point closest to the
// origin (its Voronoi region).
type VoronoiSimplex struct {
	Points [4]mgl64.Vec3
	Count  int
}

func NewVoronoiSimplex() *VoronoiSimplex {
	return &VoronoiSimplex{}
}

func (s *VoronoiSimplex) Reset() {
	s.Count = 0
}

var VoronoiSimplexPool = sync.Pool{
	New: func() interface{} {
		return NewVoronoiSimplex()
	},
}

// add appends a support point. It returns false, leaving the simplex untouched, when
// the point is already a vertex or the simplex is full.
func (s *VoronoiSimplex) add(point mgl64.Vec3) bool {
	if s.Count == len(s.Points) {
		return false
	}
	for i := 0; i < s.Count; i++ {
		if s.Points[i].ApproxEqualThreshold(point, 1e-12) {
			return false
		}
	}
	s.Points[s.Count] = point
	s.Count++
	return true
}

// maxLenSqr is the largest squared distance between x and a vertex.
func (s *VoronoiSimplex) maxLenSqr(x mgl64.Vec3) float64 {
	max := 0.0
	for i := 0; i < s.Count; i++ {
		max = math.Max(max, x.Sub(s.Points[i]).LenSqr())
	}
	return max
}

// reduction is the closest point of a sub-simplex to the origin and the vertices,
// by index, that support it.
type reduction struct {
	point   mgl64.Vec3
	indices [4]int
	count   int
}

func reduced(point mgl64.Vec3, indices ...int) reduction {
	r := reduction{point: point}
	r.count = copy(r.indices[:], indices)
	return r
}

// closest returns the point of conv{x - p} closest to the origin and drops every
// vertex that does not support it.
func (s *VoronoiSimplex) closest(x mgl64.Vec3) mgl64.Vec3 {
	var y [4]mgl64.Vec3
	for i := 0; i < s.Count; i++ {
		y[i] = x.Sub(s.Points[i])
	}

	var r reduction
	switch s.Count {
	case 0:
		return x
	case 1:
		r = reduced(y[0], 0)
	case 2:
		r = closestOnSegment(&y, 0, 1)
	case 3:
		r = closestOnTriangle(&y, 0, 1, 2)
	default:
		r = closestOnTetrahedron(&y)
	}

	var kept [4]mgl64.Vec3
	for i := 0; i < r.count; i++ {
		kept[i] = s.Points[r.indices[i]]
	}
	s.Points = kept
	s.Count = r.count

	return r.point
}

func closestOnSegment(y *[4]mgl64.Vec3, i, j int) reduction {
	a, b := y[i], y[j]
	ab := b.Sub(a)
	sqLen := ab.LenSqr()
	if sqLen == 0 {
		return reduced(a, i)
	}

	t := -a.Dot(ab) / sqLen
	switch {
	case t <= 0:
		return reduced(a, i)
	case t >= 1:
		return reduced(b, j)
	}
	return reduced(a.Add(ab.Mul(t)), i, j)
}

// closestOnTriangle follows Ericson, "Real-Time Collision Detection" §5.1.5, with the
// query point at the origin.
func closestOnTriangle(y *[4]mgl64.Vec3, i, j, k int) reduction {
	a, b, c := y[i], y[j], y[k]
	ab := b.Sub(a)
	ac := c.Sub(a)

	ap := a.Mul(-1)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return reduced(a, i)
	}

	bp := b.Mul(-1)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return reduced(b, j)
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		t := d1 / (d1 - d3)
		return reduced(a.Add(ab.Mul(t)), i, j)
	}

	cp := c.Mul(-1)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return reduced(c, k)
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		t := d2 / (d2 - d6)
		return reduced(a.Add(ac.Mul(t)), i, k)
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		t := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return reduced(b.Add(c.Sub(b).Mul(t)), j, k)
	}

	sum := va + vb + vc
	if sum <= 0 {
		// flat triangle: the best edge wins
		return nearest(
			closestOnSegment(y, i, j),
			closestOnSegment(y, j, k),
			closestOnSegment(y, i, k),
		)
	}

	v := vb / sum
	w := vc / sum
	return reduced(a.Add(ab.Mul(v)).Add(ac.Mul(w)), i, j, k)
}

// closestOnTetrahedron follows Ericson §5.1.6: the origin is enclosed when no face
// separates it from the opposite vertex, otherwise the closest face wins. All four faces
// are measured since the side tests are unreliable on sliver tetrahedra.
func closestOnTetrahedron(y *[4]mgl64.Vec3) reduction {
	enclosed := true
	for _, f := range tetrahedronFaces {
		if originOutsideFace(y[f[0]], y[f[1]], y[f[2]], y[f[3]]) {
			enclosed = false
			break
		}
	}
	if enclosed {
		return reduced(mgl64.Vec3{}, 0, 1, 2, 3)
	}

	best := reduction{count: -1}
	for _, f := range tetrahedronFaces {
		r := closestOnTriangle(y, f[0], f[1], f[2])
		if best.count < 0 || r.point.LenSqr() < best.point.LenSqr() {
			best = r
		}
	}
	return best
}

// tetrahedronFaces lists each face followed by the opposite vertex.
var tetrahedronFaces = [4][4]int{
	{0, 1, 2, 3},
	{0, 2, 3, 1},
	{0, 3, 1, 2},
	{1, 3, 2, 0},
}

// originOutsideFace reports whether the plane abc separates the origin from d.
// A flat tetrahedron has no reliable side, every face is then a candidate.
func originOutsideFace(a, b, c, d mgl64.Vec3) bool {
	n := b.Sub(a).Cross(c.Sub(a))
	ad := d.Sub(a)
	signD := ad.Dot(n)
	if math.Abs(signD) <= 1e-10*n.Len()*ad.Len() {
		return true
	}
	signO := a.Mul(-1).Dot(n)
	return signO*signD < 0
}

func nearest(candidates ...reduction) reduction {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.point.LenSqr() < best.point.LenSqr() {
			best = c
		}
	}
	return best
}
