package actor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

type FeatureKind uint8

const (
	FeatureKindUnknown FeatureKind = iota
	FeatureKindVertex
	FeatureKindEdge
	FeatureKindFace
)

// FeatureID tags the part of a shape boundary a query result lies on.
type FeatureID struct {
	Kind  FeatureKind
	Index uint32
}

func FeatureVertex(index uint32) FeatureID {
	return FeatureID{Kind: FeatureKindVertex, Index: index}
}

func FeatureEdge(index uint32) FeatureID {
	return FeatureID{Kind: FeatureKindEdge, Index: index}
}

func FeatureFace(index uint32) FeatureID {
	return FeatureID{Kind: FeatureKindFace, Index: index}
}

func (f FeatureID) String() string {
	switch f.Kind {
	case FeatureKindVertex:
		return fmt.Sprintf("vertex(%d)", f.Index)
	case FeatureKindEdge:
		return fmt.Sprintf("edge(%d)", f.Index)
	case FeatureKindFace:
		return fmt.Sprintf("face(%d)", f.Index)
	}
	return "unknown"
}

// PointProjection is the result of projecting a point on a shape.
type PointProjection struct {
	Point    mgl64.Vec3
	IsInside bool
}
