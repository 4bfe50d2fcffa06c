// Package scene loads capsule query scenes from YAML and evaluates them.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/akmonengine/capsule"
	"github.com/akmonengine/capsule/actor"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScene = errors.New("invalid scene")

// Scene is a set of capsules, each with the queries to run against it.
type Scene struct {
	Name     string          `yaml:"name"`
	Workers  int             `yaml:"workers"`
	Capsules []CapsuleConfig `yaml:"capsules"`
}

// CapsuleConfig describes a capsule either by its endpoints (A, B) or by an axis
// ("x", "y", "z") and a half height. Radius is shared by both forms.
type CapsuleConfig struct {
	Name       string    `yaml:"name"`
	A          []float64 `yaml:"a,omitempty"`
	B          []float64 `yaml:"b,omitempty"`
	Axis       string    `yaml:"axis,omitempty"`
	HalfHeight float64   `yaml:"half_height,omitempty"`
	Radius     float64   `yaml:"radius"`
	Pose       Pose      `yaml:"pose"`

	Support [][]float64 `yaml:"support,omitempty"`
	Rays    RayQueries  `yaml:"rays,omitempty"`
	Points  PointQuery  `yaml:"points,omitempty"`
}

// Pose places a capsule: a rotation of Angle degrees around Axis, then a translation.
type Pose struct {
	Position []float64 `yaml:"position,omitempty"`
	Axis     []float64 `yaml:"axis,omitempty"`
	Angle    float64   `yaml:"angle,omitempty"`
}

type RayQueries struct {
	MaxToi float64   `yaml:"max_toi"`
	Solid  bool      `yaml:"solid"`
	Casts  []RayCast `yaml:"casts"`
}

type RayCast struct {
	Origin    []float64 `yaml:"origin"`
	Direction []float64 `yaml:"direction"`
}

type PointQuery struct {
	Solid bool        `yaml:"solid"`
	At    [][]float64 `yaml:"at"`
}

// Load decodes a scene from YAML and validates it.
func Load(r io.Reader) (*Scene, error) {
	var s Scene
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile is Load on the content of a file.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Validate checks every capsule and query of the scene.
func (s *Scene) Validate() error {
	if s.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidScene, s.Workers)
	}
	for i, c := range s.Capsules {
		if err := c.validate(); err != nil {
			return fmt.Errorf("%w: capsule %d (%s): %w", ErrInvalidScene, i, c.Name, err)
		}
	}
	return nil
}

func (c CapsuleConfig) validate() error {
	built, err := c.Capsule()
	if err != nil {
		return err
	}
	if err := built.Validate(); err != nil {
		return err
	}
	if _, err := c.Pose.Transform(); err != nil {
		return fmt.Errorf("pose: %w", err)
	}
	for i, d := range c.Support {
		if _, err := vec3(d); err != nil {
			return fmt.Errorf("support %d: %w", i, err)
		}
	}
	if len(c.Rays.Casts) > 0 && c.Rays.MaxToi < 0 {
		return fmt.Errorf("rays: max_toi must not be negative, got %v", c.Rays.MaxToi)
	}
	for i, r := range c.Rays.Casts {
		if _, err := r.Ray(); err != nil {
			return fmt.Errorf("ray %d: %w", i, err)
		}
	}
	for i, p := range c.Points.At {
		if _, err := vec3(p); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}
	return nil
}

// Capsule builds the capsule value described by c.
func (c CapsuleConfig) Capsule() (capsule.Capsule, error) {
	switch c.Axis {
	case "x":
		return capsule.NewX(c.HalfHeight, c.Radius), nil
	case "y":
		return capsule.NewY(c.HalfHeight, c.Radius), nil
	case "z":
		return capsule.NewZ(c.HalfHeight, c.Radius), nil
	case "":
	default:
		return capsule.Capsule{}, fmt.Errorf("unknown axis %q", c.Axis)
	}

	a, err := vec3(c.A)
	if err != nil {
		return capsule.Capsule{}, fmt.Errorf("endpoint a: %w", err)
	}
	b, err := vec3(c.B)
	if err != nil {
		return capsule.Capsule{}, fmt.Errorf("endpoint b: %w", err)
	}
	return capsule.New(a, b, c.Radius), nil
}

// Transform builds the rigid transform of the pose. Missing fields mean identity.
func (p Pose) Transform() (actor.Transform, error) {
	t := actor.NewTransform()

	if p.Position != nil {
		position, err := vec3(p.Position)
		if err != nil {
			return t, fmt.Errorf("position: %w", err)
		}
		t.Position = position
	}

	if p.Angle != 0 {
		axis, err := vec3(p.Axis)
		if err != nil {
			return t, fmt.Errorf("axis: %w", err)
		}
		unit, _, ok := actor.TryNormalize(axis, actor.Epsilon)
		if !ok {
			return t, errors.New("rotation axis has no direction")
		}
		t.Rotation = mgl64.QuatRotate(mgl64.DegToRad(p.Angle), unit)
	}

	return t, nil
}

func (r RayCast) Ray() (actor.Ray, error) {
	origin, err := vec3(r.Origin)
	if err != nil {
		return actor.Ray{}, fmt.Errorf("origin: %w", err)
	}
	direction, err := vec3(r.Direction)
	if err != nil {
		return actor.Ray{}, fmt.Errorf("direction: %w", err)
	}
	return actor.NewRay(origin, direction), nil
}

func vec3(values []float64) (mgl64.Vec3, error) {
	if len(values) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(values))
	}
	return mgl64.Vec3{values[0], values[1], values[2]}, nil
}
