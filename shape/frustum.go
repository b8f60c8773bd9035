package shape

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// FacePlane is a bounding plane of a convex polyhedron: points x with
// Normal·x <= Offset are on the inner side. Normal is unit length.
type FacePlane struct {
	Normal mgl32.Vec3
	Offset float32
}

// SignedDistance is positive outside the face, negative inside
func (f FacePlane) SignedDistance(point mgl32.Vec3) float32 {
	return f.Normal.Dot(point) - f.Offset
}

// ConvexPolyhedron is the local geometry of a convex solid, validated once at
// construction and never modified afterwards.
type ConvexPolyhedron struct {
	vertices  []mgl32.Vec3
	triangles [][3]int
	planes    []FacePlane
	edges     []mgl32.Vec3
	centroid  mgl32.Vec3
	scale     float32
}

// NewConvexPolyhedron builds a convex solid from its points and triangular
// faces. The triangles must tile a closed surface; their normals are oriented
// away from the interior, so the winding of each triangle is free.
// Non-convex, flat or open meshes are rejected.
func NewConvexPolyhedron(points []mgl32.Vec3, faces [][3]int) (*ConvexPolyhedron, error) {
	if len(points) < 4 {
		return nil, errors.Wrapf(ErrTooFewPoints, "got %d", len(points))
	}
	if len(faces) < 4 {
		return nil, errors.Wrapf(ErrTooFewFaces, "got %d", len(faces))
	}

	for i, p := range points {
		if !finite(p) {
			return nil, errors.Wrapf(ErrInvalidCoordinate, "point %d", i)
		}
	}

	used := make([]bool, len(points))
	for f, tri := range faces {
		for _, idx := range tri {
			if idx < 0 || idx >= len(points) {
				return nil, errors.Wrapf(ErrIndexOutOfRange, "face %d references %d", f, idx)
			}
			used[idx] = true
		}
	}

	// Points no face references are ignored, they must not move the centroid
	var centroid mgl32.Vec3
	var scale float32
	count := 0
	for i, p := range points {
		if !used[i] {
			continue
		}
		centroid = centroid.Add(p)
		scale = max(scale, MaxAbs(p))
		count++
	}
	centroid = centroid.Mul(1 / float32(count))
	tolerance := Tolerance(scale) * 10

	// Every undirected edge of a closed 2-manifold is shared by two triangles.
	type edgeKey struct{ a, b int }
	edgeUses := make(map[edgeKey]int, len(faces)*3/2)

	planes := make([]FacePlane, 0, len(faces))
	for f, tri := range faces {
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			return nil, errors.Wrapf(ErrDegenerateFace, "face %d repeats a vertex", f)
		}

		a, b, c := points[tri[0]], points[tri[1]], points[tri[2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		length := normal.Len()
		if length <= tolerance*tolerance {
			return nil, errors.Wrapf(ErrDegenerateFace, "face %d", f)
		}
		normal = normal.Mul(1 / length)

		offset := normal.Dot(a)
		distance := normal.Dot(centroid) - offset
		if Abs(distance) <= tolerance {
			// The centroid lies on this face plane: either every point is
			// coplanar or the mesh wraps around in a non-convex way.
			if flat(points, used, normal, offset, tolerance) {
				return nil, errors.Wrapf(ErrFlat, "all points lie in the plane of face %d", f)
			}
			return nil, errors.Wrapf(ErrNotConvex, "centroid lies on face %d", f)
		}
		if distance > 0 {
			normal = normal.Mul(-1)
			offset = -offset
		}

		planes = appendPlane(planes, FacePlane{Normal: normal, Offset: offset}, tolerance)

		for i := 0; i < 3; i++ {
			u, v := tri[i], tri[(i+1)%3]
			if u > v {
				u, v = v, u
			}
			edgeUses[edgeKey{u, v}]++
		}
	}

	for key, uses := range edgeUses {
		if uses != 2 {
			return nil, errors.Wrapf(ErrNotClosed, "edge %d-%d is shared by %d faces", key.a, key.b, uses)
		}
	}

	for f, plane := range planes {
		for i, p := range points {
			if !used[i] {
				continue
			}
			if plane.SignedDistance(p) > tolerance {
				return nil, errors.Wrapf(ErrNotConvex, "point %d lies outside face plane %d", i, f)
			}
		}
	}

	edges := make([]mgl32.Vec3, 0, len(edgeUses))
	for key := range edgeUses {
		direction := points[key.b].Sub(points[key.a])
		edges = appendDirection(edges, direction)
	}

	vertices := make([]mgl32.Vec3, 0, len(points))
	for i, p := range points {
		if used[i] {
			vertices = append(vertices, p)
		}
	}

	triangles := make([][3]int, len(faces))
	copy(triangles, faces)

	return &ConvexPolyhedron{
		vertices:  vertices,
		triangles: triangles,
		planes:    planes,
		edges:     edges,
		centroid:  centroid,
		scale:     scale,
	}, nil
}

func flat(points []mgl32.Vec3, used []bool, normal mgl32.Vec3, offset, tolerance float32) bool {
	for i, p := range points {
		if used[i] && Abs(normal.Dot(p)-offset) > tolerance {
			return false
		}
	}
	return true
}

// appendPlane merges coplanar triangles into a single face plane
func appendPlane(planes []FacePlane, plane FacePlane, tolerance float32) []FacePlane {
	for _, existing := range planes {
		if existing.Normal.Dot(plane.Normal) >= 1-Epsilon*10 && Abs(existing.Offset-plane.Offset) <= tolerance {
			return planes
		}
	}
	return append(planes, plane)
}

// appendDirection keeps one unit direction per family of parallel edges
func appendDirection(directions []mgl32.Vec3, direction mgl32.Vec3) []mgl32.Vec3 {
	length := direction.Len()
	if length == 0 {
		return directions
	}
	direction = direction.Mul(1 / length)
	for _, existing := range directions {
		if Abs(existing.Dot(direction)) >= 1-Epsilon*10 {
			return directions
		}
	}
	return append(directions, direction)
}

// Vertices returns the local vertices referenced by the faces
func (c *ConvexPolyhedron) Vertices() []mgl32.Vec3 {
	return c.vertices
}

// Triangles returns the face triangles as given at construction
func (c *ConvexPolyhedron) Triangles() [][3]int {
	return c.triangles
}

// Planes returns the distinct local face planes, normals pointing outward
func (c *ConvexPolyhedron) Planes() []FacePlane {
	return c.planes
}

// EdgeDirections returns one local unit direction per family of parallel edges
func (c *ConvexPolyhedron) EdgeDirections() []mgl32.Vec3 {
	return c.edges
}

// Centroid returns the average of the vertices, an interior point
func (c *ConvexPolyhedron) Centroid() mgl32.Vec3 {
	return c.centroid
}

// Scale returns the largest absolute coordinate among the vertices
func (c *ConvexPolyhedron) Scale() float32 {
	return c.scale
}

// Frustum is a convex polyhedron placed by a pose. Despite the name it
// accepts any convex solid built by NewConvexPolyhedron.
type Frustum struct {
	Polyhedron *ConvexPolyhedron
	Pose       Pose
}

// NewFrustum places an already validated polyhedron
func NewFrustum(polyhedron *ConvexPolyhedron, pose Pose) Frustum {
	return Frustum{Polyhedron: polyhedron, Pose: pose}
}

// FrustumFromConvexMesh validates the mesh and places it with pose
func FrustumFromConvexMesh(points []mgl32.Vec3, faces [][3]int, pose Pose) (Frustum, error) {
	polyhedron, err := NewConvexPolyhedron(points, faces)
	if err != nil {
		return Frustum{}, err
	}
	return NewFrustum(polyhedron, pose), nil
}

func (f Frustum) Kind() Kind { return KindFrustum }

func (f Frustum) IsValid() bool {
	return f.Polyhedron != nil && f.Pose.IsFinite()
}

// Vertices returns the world-space vertices
func (f Frustum) Vertices() []mgl32.Vec3 {
	local := f.Polyhedron.vertices
	world := make([]mgl32.Vec3, len(local))
	for i, v := range local {
		world[i] = f.Pose.TransformPoint(v)
	}
	return world
}

// Planes returns the world-space face planes
func (f Frustum) Planes() []FacePlane {
	local := f.Polyhedron.planes
	world := make([]FacePlane, len(local))
	for i, p := range local {
		normal := f.Pose.TransformVector(p.Normal)
		world[i] = FacePlane{
			Normal: normal,
			Offset: p.Offset + normal.Dot(f.Pose.Translation),
		}
	}
	return world
}

// EdgeDirections returns the world-space unit edge directions
func (f Frustum) EdgeDirections() []mgl32.Vec3 {
	local := f.Polyhedron.edges
	world := make([]mgl32.Vec3, len(local))
	for i, e := range local {
		world[i] = f.Pose.TransformVector(e)
	}
	return world
}

// Center returns the world-space centroid
func (f Frustum) Center() mgl32.Vec3 {
	return f.Pose.TransformPoint(f.Polyhedron.centroid)
}

// Scale returns a magnitude representative of the world coordinates
func (f Frustum) Scale() float32 {
	return f.Polyhedron.scale + MaxAbs(f.Pose.Translation)
}

// Support returns the vertex farthest along direction
func (f Frustum) Support(direction mgl32.Vec3) mgl32.Vec3 {
	local := f.Pose.InverseTransformVector(direction)
	vertices := f.Polyhedron.vertices
	best := vertices[0]
	bestDot := best.Dot(local)
	for _, v := range vertices[1:] {
		if d := v.Dot(local); d > bestDot {
			best, bestDot = v, d
		}
	}
	return f.Pose.TransformPoint(best)
}

// ContainsPoint reports whether point is inside every face half-space
func (f Frustum) ContainsPoint(point mgl32.Vec3) bool {
	local := f.Pose.InverseTransformPoint(point)
	tolerance := Tolerance(f.Polyhedron.scale + MaxAbs(local))
	for _, plane := range f.Polyhedron.planes {
		if !(plane.SignedDistance(local) <= tolerance) {
			return false
		}
	}
	return true
}
