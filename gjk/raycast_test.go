package gjk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/akmonengine/capsule/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastRay_Sphere(t *testing.T) {
	sphere := actor.Sphere{Radius: 1}

	tests := []struct {
		name           string
		ray            actor.Ray
		expectedToi    float64
		expectedNormal mgl64.Vec3
	}{
		{
			name:           "head-on from above",
			ray:            actor.NewRay(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0}),
			expectedToi:    4,
			expectedNormal: mgl64.Vec3{0, 1, 0},
		},
		{
			name:           "non unit direction",
			ray:            actor.NewRay(mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{2, 0, 0}),
			expectedToi:    2,
			expectedNormal: mgl64.Vec3{-1, 0, 0},
		},
		{
			name:           "off-center",
			ray:            actor.NewRay(mgl64.Vec3{0.5, 5, 0}, mgl64.Vec3{0, -1, 0}),
			expectedToi:    5 - math.Sqrt(0.75),
			expectedNormal: mgl64.Vec3{0.5, math.Sqrt(0.75), 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := CastRay(actor.NewTransform(), sphere, NewVoronoiSimplex(), tt.ray, math.MaxFloat64, true)
			require.True(t, ok, "ray should hit")

			assert.InDelta(t, tt.expectedToi, hit.Toi, 1e-5)
			// the normal comes from the last support plane, it is only as close as the
			// sphere surface is flat between the final support points
			assert.True(t, vec3Equal(hit.Normal, tt.expectedNormal, 1e-3), "normal = %v, want %v", hit.Normal, tt.expectedNormal)
			assert.InDelta(t, 1.0, hit.Normal.Len(), 1e-12)
			assert.Equal(t, actor.FeatureID{}, hit.Feature)
		})
	}
}

func TestCastRay_Misses(t *testing.T) {
	sphere := actor.Sphere{Radius: 1}

	tests := []struct {
		name   string
		ray    actor.Ray
		maxToi float64
	}{
		{"parallel", actor.NewRay(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{1, 0, 0}), math.MaxFloat64},
		{"pointing away", actor.NewRay(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 1, 0}), math.MaxFloat64},
		{"passing beside", actor.NewRay(mgl64.Vec3{1.5, 5, 0}, mgl64.Vec3{0, -1, 0}), math.MaxFloat64},
		{"beyond max toi", actor.NewRay(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0}), 3},
		{"zero direction outside", actor.NewRay(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{}), math.MaxFloat64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, solid := range []bool{true, false} {
				_, ok := CastRay(actor.NewTransform(), sphere, NewVoronoiSimplex(), tt.ray, tt.maxToi, solid)
				assert.False(t, ok, "solid=%v", solid)
			}
		})
	}
}

func TestCastRay_Box(t *testing.T) {
	box := actor.Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	ray := actor.NewRay(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0})

	hit, ok := CastRay(actor.NewTransform(), box, NewVoronoiSimplex(), ray, math.MaxFloat64, true)
	require.True(t, ok)
	assert.InDelta(t, 4.0, hit.Toi, 1e-9)
	assert.True(t, vec3Equal(hit.Normal, mgl64.Vec3{0, 1, 0}, 1e-9), "normal = %v", hit.Normal)
}

func TestCastRay_WithTransform(t *testing.T) {
	box := actor.Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	transform := actor.TransformFromParts(
		mgl64.Vec3{10, 0, 0},
		mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 0, 1}),
	)
	ray := actor.NewRay(mgl64.Vec3{10, 5, 0}, mgl64.Vec3{0, -1, 0})

	hit, ok := CastRay(transform, box, NewVoronoiSimplex(), ray, math.MaxFloat64, true)
	require.True(t, ok)
	assert.InDelta(t, 4.0, hit.Toi, 1e-6)
	assert.True(t, vec3Equal(hit.Normal, mgl64.Vec3{0, 1, 0}, 1e-6), "world normal = %v", hit.Normal)
}

func TestCastRay_FromInside(t *testing.T) {
	sphere := actor.Sphere{Radius: 1}

	t.Run("solid hits immediately", func(t *testing.T) {
		ray := actor.NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0})

		hit, ok := CastRay(actor.NewTransform(), sphere, NewVoronoiSimplex(), ray, math.MaxFloat64, true)
		require.True(t, ok)
		assert.Equal(t, 0.0, hit.Toi)
		assert.Equal(t, mgl64.Vec3{}, hit.Normal)
	})

	t.Run("hollow reports the exit point", func(t *testing.T) {
		ray := actor.NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0})

		hit, ok := CastRay(actor.NewTransform(), sphere, NewVoronoiSimplex(), ray, math.MaxFloat64, false)
		require.True(t, ok)
		assert.InDelta(t, 1.0, hit.Toi, 1e-6)
		assert.True(t, vec3Equal(hit.Normal, mgl64.Vec3{1, 0, 0}, 1e-6), "normal = %v", hit.Normal)
	})

	t.Run("hollow exit toi follows the direction length", func(t *testing.T) {
		ray := actor.NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 4})

		hit, ok := CastRay(actor.NewTransform(), sphere, NewVoronoiSimplex(), ray, math.MaxFloat64, false)
		require.True(t, ok)
		assert.InDelta(t, 0.25, hit.Toi, 1e-6)
		assert.True(t, vec3Equal(hit.Normal, mgl64.Vec3{0, 0, 1}, 1e-6), "normal = %v", hit.Normal)
	})

	t.Run("hollow exit beyond max toi", func(t *testing.T) {
		ray := actor.NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0})

		_, ok := CastRay(actor.NewTransform(), sphere, NewVoronoiSimplex(), ray, 0.5, false)
		assert.False(t, ok)
	})

	t.Run("hollow with zero direction", func(t *testing.T) {
		ray := actor.NewRay(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{})

		_, ok := CastRay(actor.NewTransform(), sphere, NewVoronoiSimplex(), ray, math.MaxFloat64, false)
		assert.False(t, ok)

		hit, ok := CastRay(actor.NewTransform(), sphere, NewVoronoiSimplex(), ray, math.MaxFloat64, true)
		require.True(t, ok)
		assert.Equal(t, 0.0, hit.Toi)
	})
}

func TestCastRay_ReusesSimplex(t *testing.T) {
	sphere := actor.Sphere{Radius: 1}
	simplex := VoronoiSimplexPool.Get().(*VoronoiSimplex)
	defer VoronoiSimplexPool.Put(simplex)

	ray := actor.NewRay(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -1, 0})
	first, ok := CastRay(actor.NewTransform(), sphere, simplex, ray, math.MaxFloat64, true)
	require.True(t, ok)

	second, ok := CastRay(actor.NewTransform(), sphere, simplex, ray, math.MaxFloat64, true)
	require.True(t, ok)
	assert.Equal(t, first, second)
}

// sphereCrossings solves |o + t*d - center| = r, entry first.
func sphereCrossings(ray actor.Ray, center mgl64.Vec3, radius float64) (float64, float64) {
	oc := ray.Origin.Sub(center)
	a := ray.Direction.LenSqr()
	b := 2 * ray.Direction.Dot(oc)
	c := oc.LenSqr() - radius*radius
	root := math.Sqrt(b*b - 4*a*c)
	return (-b - root) / (2 * a), (-b + root) / (2 * a)
}

func randomVec3(rng *rand.Rand, scale float64) mgl64.Vec3 {
	return mgl64.Vec3{
		(rng.Float64()*2 - 1) * scale,
		(rng.Float64()*2 - 1) * scale,
		(rng.Float64()*2 - 1) * scale,
	}
}

func randomUnit(rng *rand.Rand) mgl64.Vec3 {
	for {
		v := randomVec3(rng, 1)
		if l := v.Len(); l > 0.1 && l <= 1 {
			return v.Mul(1 / l)
		}
	}
}

func TestCastRay_RandomSpheres(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	simplex := NewVoronoiSimplex()

	for i := 0; i < 1000; i++ {
		radius := 0.2 + rng.Float64()*2
		sphere := actor.Sphere{Radius: radius}
		center := randomVec3(rng, 10)
		transform := actor.TransformFromParts(center, mgl64.QuatRotate(rng.Float64()*math.Pi, randomUnit(rng)))
		inner := center.Add(randomUnit(rng).Mul(radius * 0.5 * rng.Float64()))

		// solid: from outside toward an inner point
		origin := center.Add(randomUnit(rng).Mul(radius + 0.005 + rng.Float64()*5))
		ray := actor.NewRay(origin, inner.Sub(origin).Mul(0.5+rng.Float64()))
		entry, _ := sphereCrossings(ray, center, radius)

		hit, ok := CastRay(transform, sphere, simplex, ray, 100, true)
		require.True(t, ok, "case %d: %v", i, ray)
		assert.InDelta(t, entry*ray.Direction.Len(), hit.Toi*ray.Direction.Len(), 1e-4, "case %d", i)
		assert.InDelta(t, 1.0, hit.Normal.Len(), 1e-9, "case %d", i)

		// hollow: from the inner point, out through the surface
		ray = actor.NewRay(inner, randomUnit(rng).Mul(0.5+rng.Float64()))
		_, exit := sphereCrossings(ray, center, radius)

		hit, ok = CastRay(transform, sphere, simplex, ray, 100, false)
		require.True(t, ok, "case %d: %v", i, ray)
		assert.InDelta(t, exit*ray.Direction.Len(), hit.Toi*ray.Direction.Len(), 1e-4, "case %d", i)
		assert.Greater(t, hit.Normal.Dot(ray.Direction), 0.0, "case %d", i)
	}
}
