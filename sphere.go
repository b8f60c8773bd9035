package overlap

import (
	"github.com/akmonengine/overlap/gjk"
	"github.com/akmonengine/overlap/shape"
)

// SphereSphere compares the center distance with the sum of the radii
func SphereSphere(a, b shape.Sphere) bool {
	if !a.IsValid() || !b.IsValid() {
		return false
	}

	radii := a.Radius + b.Radius
	distance := a.Center().Sub(b.Center()).Len()
	return distance <= radii+tolerance(radii, shape.MaxAbs(a.Center()), shape.MaxAbs(b.Center()))
}

// SphereAABB clamps the sphere center to the box and compares the distance to
// that closest point with the radius
func SphereAABB(sphere shape.Sphere, box shape.AABB) bool {
	if !sphere.IsValid() || !box.IsValid() {
		return false
	}

	center := sphere.Center()
	closest := clampVec(center, box.Min(), box.Max())
	distance := closest.Sub(center).Len()
	return distance <= sphere.Radius+tolerance(sphere.Radius, shape.MaxAbs(center), shape.MaxAbs(box.Center()))
}

// SphereOBB clamps the sphere center, mapped into the box frame, to the
// half-extents
func SphereOBB(sphere shape.Sphere, box shape.OBB) bool {
	if !sphere.IsValid() || !box.IsValid() {
		return false
	}

	local := box.Pose.InverseTransformPoint(sphere.Center())
	closest := clampVec(local, box.HalfExtents.Mul(-1), box.HalfExtents)
	distance := closest.Sub(local).Len()
	return distance <= sphere.Radius+tolerance(sphere.Radius, shape.MaxAbs(local), shape.MaxAbs(box.HalfExtents))
}

// SpherePlane compares the distance from the center to the plane with the radius
func SpherePlane(sphere shape.Sphere, plane shape.Plane) bool {
	if !sphere.IsValid() || !plane.IsValid() {
		return false
	}

	distance := shape.Abs(plane.SignedDistance(sphere.Center()))
	return distance <= sphere.Radius+tolerance(sphere.Radius, shape.MaxAbs(sphere.Center()), shape.MaxAbs(plane.Point()))
}

// SphereTriangle compares the distance from the center to the closest point
// of the triangle with the radius
func SphereTriangle(sphere shape.Sphere, triangle shape.Triangle) bool {
	if !sphere.IsValid() || !triangle.IsValid() {
		return false
	}

	center := sphere.Center()
	v := triangle.Vertices()
	closest := closestPointOnTriangle(center, v[0], v[1], v[2])
	scale := max(sphere.Radius, shape.MaxAbs(center), shape.MaxAbs(v[0]), shape.MaxAbs(v[1]), shape.MaxAbs(v[2]))
	return closest.Sub(center).Len() <= sphere.Radius+tolerance(scale)
}

// SphereFrustum rejects the sphere when it lies entirely outside one face
// plane, then measures the exact distance from the center to the polyhedron.
func SphereFrustum(sphere shape.Sphere, frustum shape.Frustum) bool {
	if !sphere.IsValid() || !frustum.IsValid() {
		return false
	}

	center := sphere.Center()
	tol := tolerance(sphere.Radius, shape.MaxAbs(center), frustum.Scale())
	for _, plane := range frustum.Planes() {
		if plane.SignedDistance(center) > sphere.Radius+tol {
			return false
		}
	}

	if frustum.ContainsPoint(center) {
		return true
	}
	return gjk.Intersects(shape.Point(center), frustum, sphere.Radius+tol)
}
