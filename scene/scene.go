// Package scene loads a TOML description of posed shapes, points and rays and
// evaluates every query of the overlap kernel over it.
package scene

import (
	"os"
	"strings"

	"github.com/akmonengine/overlap/shape"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

var (
	ErrUnknownKind   = errors.New("unknown shape kind")
	ErrInvalidShape  = errors.New("invalid shape")
	ErrInvalidRay    = errors.New("invalid ray")
	ErrDuplicateName = errors.New("duplicate name")
)

// Entry is a named shape of the scene
type Entry struct {
	Name  string
	Shape shape.Shape
}

type Point struct {
	Name     string
	Position mgl32.Vec3
}

// Ray is a named ray query. A nil MaxT uses the ceiling of the evaluation
// options; Line tests the whole line through the ray instead.
type Ray struct {
	Name string
	Ray  shape.Ray
	MaxT *float32
	Line bool
}

type Scene struct {
	Shapes []Entry
	Points []Point
	Rays   []Ray
}

type shapeConfig struct {
	Name        string       `toml:"name"`
	Kind        string       `toml:"kind"`
	Position    mgl32.Vec3   `toml:"position"`
	Rotation    mgl32.Vec3   `toml:"rotation"`
	Radius      float32      `toml:"radius"`
	Min         mgl32.Vec3   `toml:"min"`
	Max         mgl32.Vec3   `toml:"max"`
	HalfExtents mgl32.Vec3   `toml:"half_extents"`
	Normal      mgl32.Vec3   `toml:"normal"`
	Vertices    []mgl32.Vec3 `toml:"vertices"`
	Points      []mgl32.Vec3 `toml:"points"`
	Faces       [][3]int     `toml:"faces"`
}

type pointConfig struct {
	Name     string     `toml:"name"`
	Position mgl32.Vec3 `toml:"position"`
}

type rayConfig struct {
	Name      string     `toml:"name"`
	Origin    mgl32.Vec3 `toml:"origin"`
	Direction mgl32.Vec3 `toml:"direction"`
	MaxT      *float32   `toml:"max_t"`
	Line      bool       `toml:"line"`
}

type document struct {
	Shapes []shapeConfig `toml:"shape"`
	Points []pointConfig `toml:"point"`
	Rays   []rayConfig   `toml:"ray"`
}

// Load reads and parses the scene file at path
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene %s", path)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load scene %s", path)
	}
	return s, nil
}

// Parse decodes a TOML scene. Entries without a name receive one derived
// from a random UUID; names must be unique within each section.
func Parse(data []byte) (*Scene, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode scene")
	}

	s := &Scene{
		Shapes: make([]Entry, 0, len(doc.Shapes)),
		Points: make([]Point, 0, len(doc.Points)),
		Rays:   make([]Ray, 0, len(doc.Rays)),
	}

	names := make(map[string]bool)
	for i, config := range doc.Shapes {
		name := entryName(config.Name, config.Kind)
		if names[name] {
			return nil, errors.Wrapf(ErrDuplicateName, "shape %d (%s)", i, name)
		}
		names[name] = true

		sh, err := config.build()
		if err != nil {
			return nil, errors.Wrapf(err, "shape %d (%s)", i, name)
		}
		s.Shapes = append(s.Shapes, Entry{Name: name, Shape: sh})
	}

	clear(names)
	for i, config := range doc.Points {
		name := entryName(config.Name, "point")
		if names[name] {
			return nil, errors.Wrapf(ErrDuplicateName, "point %d (%s)", i, name)
		}
		names[name] = true

		if !shape.IsFinite(config.Position) {
			return nil, errors.Wrapf(shape.ErrInvalidCoordinate, "point %d (%s)", i, name)
		}
		s.Points = append(s.Points, Point{Name: name, Position: config.Position})
	}

	clear(names)
	for i, config := range doc.Rays {
		name := entryName(config.Name, "ray")
		if names[name] {
			return nil, errors.Wrapf(ErrDuplicateName, "ray %d (%s)", i, name)
		}
		names[name] = true

		ray := shape.NewRay(config.Origin, config.Direction)
		if !ray.IsValid() {
			return nil, errors.Wrapf(ErrInvalidRay, "ray %d (%s)", i, name)
		}
		if config.MaxT != nil && !(*config.MaxT >= 0) {
			return nil, errors.Wrapf(ErrInvalidRay, "ray %d (%s): max_t %v", i, name, *config.MaxT)
		}
		s.Rays = append(s.Rays, Ray{Name: name, Ray: ray, MaxT: config.MaxT, Line: config.Line})
	}

	return s, nil
}

func entryName(name, prefix string) string {
	if name != "" {
		return name
	}
	return prefix + "-" + uuid.NewString()[:8]
}

// ParseKind maps a kind name, case insensitive, to its shape.Kind
func ParseKind(name string) (shape.Kind, error) {
	for k := shape.Kind(0); int(k) < shape.KindCount; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", name)
}

func (c shapeConfig) build() (shape.Shape, error) {
	kind, err := ParseKind(c.Kind)
	if err != nil {
		return nil, err
	}

	pose := shape.AxisAnglePose(c.Position, c.Rotation)

	var s shape.Shape
	switch kind {
	case shape.KindSphere:
		s = shape.Sphere{Radius: c.Radius, Pose: pose}
	case shape.KindAABB:
		s = shape.NewAABB(c.Min, c.Max).Translated(c.Position)
	case shape.KindOBB:
		s = shape.OBB{HalfExtents: c.HalfExtents, Pose: pose}
	case shape.KindPlane:
		normal := c.Normal
		if l := normal.Len(); l > 0 {
			normal = normal.Mul(1 / l)
		}
		s = shape.Plane{Normal: normal, Pose: pose}
	case shape.KindTriangle:
		if len(c.Vertices) != 3 {
			return nil, errors.Wrapf(ErrInvalidShape, "triangle needs 3 vertices, got %d", len(c.Vertices))
		}
		s = shape.Triangle{A: c.Vertices[0], B: c.Vertices[1], C: c.Vertices[2], Pose: pose}
	case shape.KindFrustum:
		frustum, err := shape.FrustumFromConvexMesh(c.Points, c.Faces, pose)
		if err != nil {
			return nil, err
		}
		s = frustum
	}

	if !s.IsValid() {
		return nil, errors.Wrapf(ErrInvalidShape, "%s", kind)
	}
	return s, nil
}
