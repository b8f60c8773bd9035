package overlap

import (
	"github.com/akmonengine/overlap/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// box is the centered cuboid form shared by AABB and OBB in the SAT tests
type box struct {
	center      mgl32.Vec3
	axes        [3]mgl32.Vec3
	halfExtents mgl32.Vec3
}

func boxOf(b shape.OBB) box {
	return box{center: b.Center(), axes: b.Axes(), halfExtents: b.HalfExtents}
}

// projectedRadius is the half-length of the box projected onto axis
func (b box) projectedRadius(axis mgl32.Vec3) float32 {
	return b.halfExtents[0]*shape.Abs(b.axes[0].Dot(axis)) +
		b.halfExtents[1]*shape.Abs(b.axes[1].Dot(axis)) +
		b.halfExtents[2]*shape.Abs(b.axes[2].Dot(axis))
}

func (b box) scale() float32 {
	return max(shape.MaxAbs(b.center), shape.MaxAbs(b.halfExtents))
}

// AABBAABB checks the interval overlap on the three world axes
func AABBAABB(a, b shape.AABB) bool {
	if !a.IsValid() || !b.IsValid() {
		return false
	}

	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		tol := tolerance(aMin[i], aMax[i], bMin[i], bMax[i])
		if aMin[i] > bMax[i]+tol || bMin[i] > aMax[i]+tol {
			return false
		}
	}
	return true
}

// AABBOBB runs the box-box SAT with the AABB seen as an unrotated OBB
func AABBOBB(a shape.AABB, b shape.OBB) bool {
	if !a.IsValid() {
		return false
	}
	return OBBOBB(a.OBB(), b)
}

// OBBOBB runs the separating axis test over the 15 candidate axes: the 3
// face normals of each box and the 9 cross products of their edges.
func OBBOBB(a, b shape.OBB) bool {
	if !a.IsValid() || !b.IsValid() {
		return false
	}

	return !boxesSeparated(boxOf(a), boxOf(b))
}

func boxesSeparated(a, b box) bool {
	offset := b.center.Sub(a.center)
	tol := tolerance(a.scale(), b.scale())

	separatedOn := func(axis mgl32.Vec3) bool {
		distance := shape.Abs(offset.Dot(axis))
		return distance > a.projectedRadius(axis)+b.projectedRadius(axis)+tol
	}

	for i := 0; i < 3; i++ {
		if separatedOn(a.axes[i]) || separatedOn(b.axes[i]) {
			return true
		}
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := a.axes[i].Cross(b.axes[j])
			length := axis.Len()
			// Parallel edges give no new axis
			if length <= shape.Epsilon {
				continue
			}
			if separatedOn(axis.Mul(1 / length)) {
				return true
			}
		}
	}
	return false
}

// AABBPlane compares the box extent projected on the plane normal with the
// distance from the box center to the plane
func AABBPlane(a shape.AABB, plane shape.Plane) bool {
	if !a.IsValid() {
		return false
	}
	return OBBPlane(a.OBB(), plane)
}

func OBBPlane(b shape.OBB, plane shape.Plane) bool {
	if !b.IsValid() || !plane.IsValid() {
		return false
	}

	normal := plane.WorldNormal()
	extent := b.ProjectedRadius(normal)
	distance := shape.Abs(normal.Dot(b.Center().Sub(plane.Point())))
	return distance <= extent+tolerance(boxOf(b).scale(), shape.MaxAbs(plane.Point()))
}

// AABBTriangle runs the 13-axis box-triangle SAT
func AABBTriangle(a shape.AABB, triangle shape.Triangle) bool {
	if !a.IsValid() {
		return false
	}
	return OBBTriangle(a.OBB(), triangle)
}

// OBBTriangle moves the triangle into the box frame and runs the separating
// axis test over the 3 box normals, the triangle normal and the 9 cross
// products of box and triangle edges.
func OBBTriangle(b shape.OBB, triangle shape.Triangle) bool {
	if !b.IsValid() || !triangle.IsValid() {
		return false
	}

	world := triangle.Vertices()
	var v [3]mgl32.Vec3
	for i := range world {
		v[i] = b.Pose.InverseTransformPoint(world[i])
	}

	he := b.HalfExtents
	scale := max(shape.MaxAbs(he), shape.MaxAbs(v[0]), shape.MaxAbs(v[1]), shape.MaxAbs(v[2]))
	tol := tolerance(scale)

	separatedOn := func(axis mgl32.Vec3) bool {
		p0, p1, p2 := v[0].Dot(axis), v[1].Dot(axis), v[2].Dot(axis)
		r := he[0]*shape.Abs(axis[0]) + he[1]*shape.Abs(axis[1]) + he[2]*shape.Abs(axis[2])
		return min(p0, p1, p2) > r+tol || max(p0, p1, p2) < -r-tol
	}

	// Box face normals are the local axes
	for i := 0; i < 3; i++ {
		var axis mgl32.Vec3
		axis[i] = 1
		if separatedOn(axis) {
			return false
		}
	}

	edges := [3]mgl32.Vec3{v[1].Sub(v[0]), v[2].Sub(v[1]), v[0].Sub(v[2])}

	normal := edges[0].Cross(v[2].Sub(v[0]))
	if length := normal.Len(); length > shape.Epsilon*edges[0].Len()*edges[2].Len() {
		if separatedOn(normal.Mul(1 / length)) {
			return false
		}
	}

	for i := 0; i < 3; i++ {
		var boxAxis mgl32.Vec3
		boxAxis[i] = 1
		for _, edge := range edges {
			axis := boxAxis.Cross(edge)
			length := axis.Len()
			if length <= shape.Epsilon*edge.Len() || length == 0 {
				continue
			}
			if separatedOn(axis.Mul(1 / length)) {
				return false
			}
		}
	}
	return true
}
