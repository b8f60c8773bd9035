package overlap

import (
	"github.com/akmonengine/overlap/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// PointInSphere reports whether point lies inside the sphere, boundary included
func PointInSphere(point mgl32.Vec3, sphere shape.Sphere) bool {
	if !shape.IsFinite(point) || !sphere.IsValid() {
		return false
	}

	center := sphere.Center()
	distance := point.Sub(center).Len()
	return distance <= sphere.Radius+tolerance(sphere.Radius, shape.MaxAbs(center), shape.MaxAbs(point))
}

// PointInAABB reports whether point lies inside the box, boundary included
func PointInAABB(point mgl32.Vec3, box shape.AABB) bool {
	if !shape.IsFinite(point) || !box.IsValid() {
		return false
	}

	lo, hi := box.Min(), box.Max()
	for i := 0; i < 3; i++ {
		tol := tolerance(lo[i], hi[i])
		if point[i] < lo[i]-tol || point[i] > hi[i]+tol {
			return false
		}
	}
	return true
}

// PointInOBB maps point into the box frame and checks each local coordinate
// against the half-extents, boundary included
func PointInOBB(point mgl32.Vec3, box shape.OBB) bool {
	if !shape.IsFinite(point) || !box.IsValid() {
		return false
	}

	local := box.Pose.InverseTransformPoint(point)
	for i := 0; i < 3; i++ {
		if shape.Abs(local[i]) > box.HalfExtents[i]+tolerance(box.HalfExtents[i], local[i]) {
			return false
		}
	}
	return true
}

// PointInPlane reports whether point lies on the plane surface
func PointInPlane(point mgl32.Vec3, plane shape.Plane) bool {
	if !shape.IsFinite(point) || !plane.IsValid() {
		return false
	}

	distance := plane.SignedDistance(point)
	return shape.Abs(distance) <= tolerance(shape.MaxAbs(point), shape.MaxAbs(plane.Point()))
}

// PointInTriangle reports whether point lies on the triangle
func PointInTriangle(point mgl32.Vec3, triangle shape.Triangle) bool {
	if !shape.IsFinite(point) || !triangle.IsValid() {
		return false
	}

	v := triangle.Vertices()
	closest := closestPointOnTriangle(point, v[0], v[1], v[2])
	scale := max(shape.MaxAbs(point), shape.MaxAbs(v[0]), shape.MaxAbs(v[1]), shape.MaxAbs(v[2]))
	return closest.Sub(point).Len() <= tolerance(scale)
}

// PointInFrustum reports whether point lies inside every face half-space of
// the polyhedron
func PointInFrustum(point mgl32.Vec3, frustum shape.Frustum) bool {
	if !shape.IsFinite(point) || !frustum.IsValid() {
		return false
	}

	return frustum.ContainsPoint(point)
}
