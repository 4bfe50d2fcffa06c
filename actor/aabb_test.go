package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestAABBFromPoints(t *testing.T) {
	tests := []struct {
		name     string
		points   []mgl64.Vec3
		expected AABB
	}{
		{"no point", nil, AABB{}},
		{"single point", []mgl64.Vec3{{1, -2, 3}}, AABB{Min: mgl64.Vec3{1, -2, 3}, Max: mgl64.Vec3{1, -2, 3}}},
		{
			"segment endpoints in any order",
			[]mgl64.Vec3{{1, -1, 4}, {-2, 3, 0}},
			AABB{Min: mgl64.Vec3{-2, -1, 0}, Max: mgl64.Vec3{1, 3, 4}},
		},
		{
			"cloud",
			[]mgl64.Vec3{{0, 0, 0}, {5, -1, 2}, {-3, 7, 1}, {2, 2, -6}},
			AABB{Min: mgl64.Vec3{-3, -1, -6}, Max: mgl64.Vec3{5, 7, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AABBFromPoints(tt.points...))
		})
	}
}

func TestAABBLoosened(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec3{-1, 0, 2}, Max: mgl64.Vec3{1, 0, 2}}.Loosened(0.5)

	assert.Equal(t, mgl64.Vec3{-1.5, -0.5, 1.5}, aabb.Min)
	assert.Equal(t, mgl64.Vec3{1.5, 0.5, 2.5}, aabb.Max)
	assert.Equal(t, mgl64.Vec3{0, 0, 2}, aabb.Center())
	assert.Equal(t, mgl64.Vec3{1.5, 0.5, 0.5}, aabb.HalfExtents())
}

func TestAABBMerged(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
	b := AABB{Min: mgl64.Vec3{-2, 0.5, 0.5}, Max: mgl64.Vec3{0.5, 3, 0.5}}

	merged := a.Merged(b)
	assert.Equal(t, AABB{Min: mgl64.Vec3{-2, 0, 0}, Max: mgl64.Vec3{1, 3, 1}}, merged)
	for _, corner := range []mgl64.Vec3{a.Min, a.Max, b.Min, b.Max} {
		assert.True(t, merged.ContainsPoint(corner), "corner %v", corner)
	}
	assert.False(t, a.ContainsPoint(merged.Min))
}

func TestAABBOverlaps(t *testing.T) {
	unit := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name     string
		other    AABB
		expected bool
	}{
		{"separated on X", AABB{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{3, 1, 1}}, false},
		{"separated on Y", AABB{Min: mgl64.Vec3{0, -2, 0}, Max: mgl64.Vec3{1, -1, 1}}, false},
		{"separated on Z", AABB{Min: mgl64.Vec3{0, 0, 2}, Max: mgl64.Vec3{1, 1, 3}}, false},
		{"overlapping", AABB{Min: mgl64.Vec3{0.5, 0.5, 0.5}, Max: mgl64.Vec3{2, 2, 2}}, true},
		{"face touching", AABB{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{2, 1, 1}}, true},
		{"corner touching", AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{2, 2, 2}}, true},
		{"contained", AABB{Min: mgl64.Vec3{0.25, 0.25, 0.25}, Max: mgl64.Vec3{0.75, 0.75, 0.75}}, true},
		{"zero volume inside", AABB{Min: mgl64.Vec3{0.5, 0.5, 0.5}, Max: mgl64.Vec3{0.5, 0.5, 0.5}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, unit.Overlaps(tt.other))
			// symmetry
			assert.Equal(t, tt.expected, tt.other.Overlaps(unit))
		})
	}
}

func TestAABBContainsPoint(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 2, 2}}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected bool
	}{
		{"Center point", mgl64.Vec3{1, 1, 1}, true},
		{"Min corner", mgl64.Vec3{0, 0, 0}, true},
		{"Max corner", mgl64.Vec3{2, 2, 2}, true},
		{"Outside (X too large)", mgl64.Vec3{3, 1, 1}, false},
		{"Outside (X too small)", mgl64.Vec3{-1, 1, 1}, false},
		{"Outside (Y too large)", mgl64.Vec3{1, 3, 1}, false},
		{"Outside (Z too small)", mgl64.Vec3{1, 1, -1}, false},
		{"Edge point (X)", mgl64.Vec3{2, 1, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := aabb.ContainsPoint(tt.point)
			if result != tt.expected {
				t.Errorf("ContainsPoint(%v) = %v, expected %v", tt.point, result, tt.expected)
			}
		})
	}
}
