package capsule

import (
	"sync"

	"github.com/akmonengine/capsule/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_WORKERS = 1

// RayHit pairs a ray cast result with whether the ray hit at all.
type RayHit struct {
	actor.RayIntersection
	Hit bool
}

// ProjectPoints projects every point on the capsule, spreading the work over workers
// goroutines. Results are in input order.
func ProjectPoints(c Capsule, transform actor.Transform, points []mgl64.Vec3, solid bool, workers int) []actor.PointProjection {
	results := make([]actor.PointProjection, len(points))
	task(workers, points, results, func(point mgl64.Vec3) actor.PointProjection {
		return c.ProjectPoint(transform, point, solid)
	})
	return results
}

// CastRays casts every ray on the capsule, spreading the work over workers
// goroutines. Results are in input order.
func CastRays(c Capsule, transform actor.Transform, rays []actor.Ray, maxToi float64, solid bool, workers int) []RayHit {
	results := make([]RayHit, len(rays))
	task(workers, rays, results, func(ray actor.Ray) RayHit {
		hit, ok := c.CastRay(transform, ray, maxToi, solid)
		return RayHit{RayIntersection: hit, Hit: ok}
	})
	return results
}

// task splits data in contiguous chunks, one per worker; results[i] receives fn(data[i]).
func task[T, R any](workersCount int, data []T, results []R, fn func(data T) R) {
	workersCount = max(DEFAULT_WORKERS, workersCount)

	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start, end := workerID*chunkSize, min((workerID+1)*chunkSize, dataSize)
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				results[i] = fn(data[i])
			}
		}(start, end)
	}
	wg.Wait()
}
