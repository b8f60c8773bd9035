package overlap

import (
	"github.com/akmonengine/overlap/gjk"
	"github.com/akmonengine/overlap/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// TriangleTriangle is Möller's interval overlap test. Each triangle is
// classified against the plane of the other, then both are projected on the
// line where the two planes meet and their intervals compared.
// Coplanar and zero-area triangles are decided by their exact distance.
func TriangleTriangle(a, b shape.Triangle) bool {
	if !a.IsValid() || !b.IsValid() {
		return false
	}

	v := a.Vertices()
	u := b.Vertices()
	scale := max(
		shape.MaxAbs(v[0]), shape.MaxAbs(v[1]), shape.MaxAbs(v[2]),
		shape.MaxAbs(u[0]), shape.MaxAbs(u[1]), shape.MaxAbs(u[2]),
	)
	tol := tolerance(scale)

	if a.IsDegenerate() || b.IsDegenerate() {
		return gjk.Intersects(a, b, tol)
	}

	n2 := u[1].Sub(u[0]).Cross(u[2].Sub(u[0])).Normalize()
	dv, side := planeDistances(n2, u[0], v, tol)
	if side != 0 {
		return false
	}

	n1 := v[1].Sub(v[0]).Cross(v[2].Sub(v[0])).Normalize()
	du, side := planeDistances(n1, v[0], u, tol)
	if side != 0 {
		return false
	}

	direction := n1.Cross(n2)
	if direction.Len() <= shape.Epsilon || dv == [3]float32{} || du == [3]float32{} {
		return gjk.Intersects(a, b, tol)
	}

	// Project on the coordinate axis closest to the intersection line
	axis := 0
	if shape.Abs(direction[1]) > shape.Abs(direction[axis]) {
		axis = 1
	}
	if shape.Abs(direction[2]) > shape.Abs(direction[axis]) {
		axis = 2
	}

	lo1, hi1 := interval([3]float32{v[0][axis], v[1][axis], v[2][axis]}, dv)
	lo2, hi2 := interval([3]float32{u[0][axis], u[1][axis], u[2][axis]}, du)
	return max(lo1, lo2) <= min(hi1, hi2)+tol
}

// planeDistances returns the signed distances of the vertices to the plane
// through point with unit normal, snapped to zero within tol, and the common
// strict side of all three (0 when they do not share one).
func planeDistances(normal, point mgl32.Vec3, vertices [3]mgl32.Vec3, tol float32) ([3]float32, int) {
	var distances [3]float32
	positive, negative := 0, 0

	for i, v := range vertices {
		d := normal.Dot(v.Sub(point))
		switch {
		case d > tol:
			positive++
		case d < -tol:
			negative++
		default:
			d = 0
		}
		distances[i] = d
	}

	switch {
	case positive == 3:
		return distances, 1
	case negative == 3:
		return distances, -1
	}
	return distances, 0
}

// interval returns the segment a triangle cuts on the intersection line,
// given the vertex projections on that line and their plane distances.
// The isolated vertex is the one alone on its side of the plane.
func interval(p, d [3]float32) (float32, float32) {
	var isolated int
	switch {
	case d[0]*d[1] > 0:
		isolated = 2
	case d[0]*d[2] > 0:
		isolated = 1
	case d[1]*d[2] > 0 || d[0] != 0:
		isolated = 0
	case d[1] != 0:
		isolated = 1
	default:
		isolated = 2
	}

	i, j := (isolated+1)%3, (isolated+2)%3
	t1 := p[isolated] + (p[i]-p[isolated])*d[isolated]/(d[isolated]-d[i])
	t2 := p[isolated] + (p[j]-p[isolated])*d[isolated]/(d[isolated]-d[j])
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return t1, t2
}
