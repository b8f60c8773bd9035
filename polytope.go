package overlap

import (
	"github.com/akmonengine/overlap/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// polytope is the world-space description a convex solid needs for the
// generic separating axis test: its vertices, the normals of its faces and
// the directions of its edges. Flat solids list the normals of their rims
// as faces so the candidate axes stay complete.
type polytope struct {
	vertices []mgl32.Vec3
	normals  []mgl32.Vec3
	edges    []mgl32.Vec3
}

func boxPolytope(b shape.OBB) polytope {
	vertices := b.Vertices()
	axes := b.Axes()
	return polytope{
		vertices: vertices[:],
		normals:  axes[:],
		edges:    axes[:],
	}
}

func trianglePolytope(t shape.Triangle) polytope {
	v := t.Vertices()

	edges := make([]mgl32.Vec3, 0, 4)
	for i := range v {
		if e, ok := unit(v[(i+1)%3].Sub(v[i])); ok {
			edges = append(edges, e)
		}
	}

	normals := make([]mgl32.Vec3, 0, 4)
	if n, ok := unit(v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))); ok {
		normals = append(normals, n)
		for _, e := range edges {
			normals = append(normals, n.Cross(e))
		}
		edges = append(edges, n)
	}

	return polytope{
		vertices: v[:],
		normals:  normals,
		edges:    edges,
	}
}

func unit(v mgl32.Vec3) (mgl32.Vec3, bool) {
	length := v.Len()
	if length == 0 || !validScalar(length) {
		return v, false
	}
	return v.Mul(1 / length), true
}

func frustumPolytope(f shape.Frustum) polytope {
	planes := f.Planes()
	normals := make([]mgl32.Vec3, len(planes))
	for i, p := range planes {
		normals[i] = p.Normal
	}

	return polytope{
		vertices: f.Vertices(),
		normals:  normals,
		edges:    f.EdgeDirections(),
	}
}

func (p polytope) project(axis mgl32.Vec3) (float32, float32) {
	lo := p.vertices[0].Dot(axis)
	hi := lo
	for _, v := range p.vertices[1:] {
		d := v.Dot(axis)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo, hi
}

func (p polytope) scale() float32 {
	var scale float32
	for _, v := range p.vertices {
		scale = max(scale, shape.MaxAbs(v))
	}
	return scale
}

// polytopesIntersect runs the separating axis test over the face normals of
// both solids and the cross products of every pair of edges. It is exact for
// convex polytopes.
func polytopesIntersect(a, b polytope) bool {
	tol := tolerance(a.scale(), b.scale())

	separatedOn := func(axis mgl32.Vec3) bool {
		length := axis.Len()
		// Degenerate axes cannot separate
		if length <= shape.Epsilon {
			return false
		}
		axis = axis.Mul(1 / length)

		loA, hiA := a.project(axis)
		loB, hiB := b.project(axis)
		return hiA+tol < loB || hiB+tol < loA
	}

	for _, n := range a.normals {
		if separatedOn(n) {
			return false
		}
	}
	for _, n := range b.normals {
		if separatedOn(n) {
			return false
		}
	}

	for _, ea := range a.edges {
		for _, eb := range b.edges {
			if separatedOn(ea.Cross(eb)) {
				return false
			}
		}
	}
	return true
}

// AABBFrustum runs the polytope SAT between the box and the polyhedron
func AABBFrustum(a shape.AABB, frustum shape.Frustum) bool {
	if !a.IsValid() {
		return false
	}
	return OBBFrustum(a.OBB(), frustum)
}

func OBBFrustum(b shape.OBB, frustum shape.Frustum) bool {
	if !b.IsValid() || !frustum.IsValid() {
		return false
	}
	return polytopesIntersect(boxPolytope(b), frustumPolytope(frustum))
}

func TriangleFrustum(triangle shape.Triangle, frustum shape.Frustum) bool {
	if !triangle.IsValid() || !frustum.IsValid() {
		return false
	}
	return polytopesIntersect(trianglePolytope(triangle), frustumPolytope(frustum))
}

func FrustumFrustum(a, b shape.Frustum) bool {
	if !a.IsValid() || !b.IsValid() {
		return false
	}
	return polytopesIntersect(frustumPolytope(a), frustumPolytope(b))
}
