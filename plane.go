package overlap

import (
	"github.com/akmonengine/overlap/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// straddles reports whether signed distances are not all strictly on the
// same side of zero
func straddles(distances []float32, tol float32) bool {
	lo, hi := distances[0], distances[0]
	for _, d := range distances[1:] {
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo <= tol && hi >= -tol
}

// PlanePlane: non-parallel planes always meet, parallel ones only when they
// coincide.
func PlanePlane(a, b shape.Plane) bool {
	if !a.IsValid() || !b.IsValid() {
		return false
	}

	if a.WorldNormal().Cross(b.WorldNormal()).Len() > shape.Epsilon {
		return true
	}
	distance := a.SignedDistance(b.Point())
	return shape.Abs(distance) <= tolerance(shape.MaxAbs(a.Point()), shape.MaxAbs(b.Point()))
}

// PlaneTriangle evaluates the signed distance of the three vertices: the
// triangle meets the plane unless they are all strictly on one side.
func PlaneTriangle(plane shape.Plane, triangle shape.Triangle) bool {
	if !plane.IsValid() || !triangle.IsValid() {
		return false
	}

	v := triangle.Vertices()
	return planeStraddles(plane, v[:])
}

// PlaneFrustum evaluates the signed distance of every polyhedron vertex
func PlaneFrustum(plane shape.Plane, frustum shape.Frustum) bool {
	if !plane.IsValid() || !frustum.IsValid() {
		return false
	}

	return planeStraddles(plane, frustum.Vertices())
}

func planeStraddles(plane shape.Plane, vertices []mgl32.Vec3) bool {
	normal := plane.WorldNormal()
	point := plane.Point()

	scale := shape.MaxAbs(point)
	distances := make([]float32, len(vertices))
	for i, v := range vertices {
		distances[i] = normal.Dot(v.Sub(point))
		scale = max(scale, shape.MaxAbs(v))
	}
	return straddles(distances, tolerance(scale))
}
