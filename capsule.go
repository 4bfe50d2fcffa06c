// Package capsule implements a capsule collision shape: the set of points within
// Radius of a segment. It answers the queries a generic collision pipeline needs from
// a convex primitive: support points, ray casts and point projections.
//
// Capsule values are immutable; every query is a pure function of its arguments and
// can run concurrently on the same value.
package capsule

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/capsule/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrNegativeRadius = errors.New("capsule radius is negative")
	ErrNonFinite      = errors.New("capsule has a non-finite component")
)

var yAxis = mgl64.Vec3{0, 1, 0}

// Capsule is a segment swept by a ball. A degenerate segment (A == B) makes a sphere.
type Capsule struct {
	Segment actor.Segment
	Radius  float64
}

// New creates the capsule around the segment [a, b].
func New(a, b mgl64.Vec3, radius float64) Capsule {
	return Capsule{Segment: actor.NewSegment(a, b), Radius: radius}
}

// NewX creates a capsule centered on the origin and aligned with the x axis.
func NewX(halfHeight, radius float64) Capsule {
	return newAligned(mgl64.Vec3{1, 0, 0}, halfHeight, radius)
}

// NewY creates a capsule centered on the origin and aligned with the y axis.
func NewY(halfHeight, radius float64) Capsule {
	return newAligned(yAxis, halfHeight, radius)
}

// NewZ creates a capsule centered on the origin and aligned with the z axis.
func NewZ(halfHeight, radius float64) Capsule {
	return newAligned(mgl64.Vec3{0, 0, 1}, halfHeight, radius)
}

func newAligned(axis mgl64.Vec3, halfHeight, radius float64) Capsule {
	b := axis.Mul(halfHeight)
	return New(b.Mul(-1), b, radius)
}

// Validate reports capsules that cannot describe a solid: a negative radius or any
// NaN or infinite component.
func (c Capsule) Validate() error {
	for _, v := range [...]float64{
		c.Segment.A.X(), c.Segment.A.Y(), c.Segment.A.Z(),
		c.Segment.B.X(), c.Segment.B.Y(), c.Segment.B.Z(),
		c.Radius,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", ErrNonFinite, c)
		}
	}
	if c.Radius < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeRadius, c.Radius)
	}
	return nil
}

// Height is the length of the segment, caps excluded.
func (c Capsule) Height() float64 {
	return c.Segment.Length()
}

func (c Capsule) HalfHeight() float64 {
	return c.Height() / 2
}

// Center is the midpoint of the segment.
func (c Capsule) Center() mgl64.Vec3 {
	return c.Segment.A.Add(c.Segment.B).Mul(0.5)
}

// AABB bounds the capsule placed at transform: the box of both transformed endpoints,
// grown by the radius.
func (c Capsule) AABB(transform actor.Transform) actor.AABB {
	a := transform.TransformPoint(c.Segment.A)
	b := transform.TransformPoint(c.Segment.B)
	return actor.AABBFromPoints(a, b).Loosened(c.Radius)
}

// TransformBy returns the capsule with both endpoints moved by transform.
func (c Capsule) TransformBy(transform actor.Transform) Capsule {
	return Capsule{Segment: c.Segment.TransformBy(transform), Radius: c.Radius}
}

// RotationWrtY returns the rotation r such that r * Y is collinear with B - A.
// The direction is first flipped into the y >= 0 half-space so the result does not
// depend on the endpoint order. A degenerate segment gives the identity.
func (c Capsule) RotationWrtY() mgl64.Quat {
	dir := c.Segment.ScaledDirection()
	if dir.Y() < 0 {
		dir = dir.Mul(-1)
	}
	return rotationBetween(yAxis, dir)
}

// TransformWrtY returns the transform t such that t * Y is collinear with B - A and
// t * origin is the center of the capsule.
func (c Capsule) TransformWrtY() actor.Transform {
	return actor.TransformFromParts(c.Center(), c.RotationWrtY())
}

// rotationBetween returns the shortest rotation taking the unit vector from onto the
// direction of to. It is the identity whenever the rotation axis is undefined: to is
// zero, parallel or antiparallel to from.
func rotationBetween(from, to mgl64.Vec3) mgl64.Quat {
	to, _, ok := actor.TryNormalize(to, actor.Epsilon)
	if !ok {
		return mgl64.QuatIdent()
	}

	axis, sin, ok := actor.TryNormalize(from.Cross(to), actor.Epsilon)
	if !ok {
		return mgl64.QuatIdent()
	}

	return mgl64.QuatRotate(math.Atan2(sin, from.Dot(to)), axis)
}
