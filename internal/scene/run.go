package scene

import (
	"github.com/akmonengine/capsule"
	"github.com/akmonengine/capsule/actor"
	"github.com/akmonengine/capsule/internal/log"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Report holds the answers to every query of a scene, in scene order.
type Report struct {
	Scene    string
	Capsules []CapsuleReport
	// Bounds encloses every capsule of the scene. It is the zero box for an empty scene.
	Bounds actor.AABB
}

type CapsuleReport struct {
	Name     string
	AABB     actor.AABB
	Support  []mgl64.Vec3
	Rays     []capsule.RayHit
	Points   []actor.PointProjection
	Features []actor.FeatureID
}

// Run evaluates a validated scene and logs each answer on logger.
func Run(s *Scene, logger *zap.Logger) (Report, error) {
	logger = logger.With(zap.String("scene", s.Name))
	report := Report{Scene: s.Name, Capsules: make([]CapsuleReport, 0, len(s.Capsules))}

	for _, cfg := range s.Capsules {
		c, err := cfg.Capsule()
		if err != nil {
			return report, err
		}
		transform, err := cfg.Pose.Transform()
		if err != nil {
			return report, err
		}

		capsuleLogger := logger.With(zap.String("capsule", cfg.Name))
		r := CapsuleReport{Name: cfg.Name, AABB: c.AABB(transform)}
		capsuleLogger.Debug("capsule",
			log.Vec3("a", c.Segment.A),
			log.Vec3("b", c.Segment.B),
			zap.Float64("radius", c.Radius),
			log.Vec3("aabb_min", r.AABB.Min),
			log.Vec3("aabb_max", r.AABB.Max),
		)

		for _, d := range cfg.Support {
			dir, _ := vec3(d)
			point := c.SupportPoint(transform, dir)
			r.Support = append(r.Support, point)
			capsuleLogger.Info("support", log.Vec3("direction", dir), log.Vec3("point", point))
		}

		if len(cfg.Rays.Casts) > 0 {
			rays := make([]actor.Ray, len(cfg.Rays.Casts))
			for i, rc := range cfg.Rays.Casts {
				rays[i], _ = rc.Ray()
			}
			r.Rays = capsule.CastRays(c, transform, rays, cfg.Rays.MaxToi, cfg.Rays.Solid, s.Workers)
			for i, hit := range r.Rays {
				if !hit.Hit {
					capsuleLogger.Info("ray missed", log.Vec3("origin", rays[i].Origin), log.Vec3("direction", rays[i].Direction))
					continue
				}
				capsuleLogger.Info("ray hit",
					log.Vec3("origin", rays[i].Origin),
					log.Vec3("direction", rays[i].Direction),
					zap.Float64("toi", hit.Toi),
					log.Vec3("normal", hit.Normal),
				)
			}
		}

		if len(cfg.Points.At) > 0 {
			points := make([]mgl64.Vec3, len(cfg.Points.At))
			for i, p := range cfg.Points.At {
				points[i], _ = vec3(p)
			}
			r.Points = capsule.ProjectPoints(c, transform, points, cfg.Points.Solid, s.Workers)
			for i, proj := range r.Points {
				r.Features = append(r.Features, capsule.SurfaceFeature)
				capsuleLogger.Info("projection",
					log.Vec3("point", points[i]),
					log.Vec3("projection", proj.Point),
					zap.Bool("inside", proj.IsInside),
					zap.Stringer("feature", capsule.SurfaceFeature),
				)
			}
		}

		if len(report.Capsules) == 0 {
			report.Bounds = r.AABB
		} else {
			report.Bounds = report.Bounds.Merged(r.AABB)
		}
		report.Capsules = append(report.Capsules, r)
	}

	logger.Info("scene bounds",
		zap.Int("capsules", len(report.Capsules)),
		log.Vec3("center", report.Bounds.Center()),
		log.Vec3("half_extents", report.Bounds.HalfExtents()),
	)

	return report, nil
}
