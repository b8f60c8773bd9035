package overlap

import (
	"math"

	"github.com/akmonengine/overlap/shape"
	"github.com/go-gl/mathgl/mgl32"
)

func validRay(ray shape.Ray, maxT float32) bool {
	return ray.IsValid() && !math.IsNaN(float64(maxT)) && maxT >= 0
}

// RaySphere solves |O + tD - C|² = r² for a root in [0, maxT].
// A ray starting inside the sphere hits at t = 0. The quadratic is solved
// along the unit direction, the root is then compared with maxT·|D|.
func RaySphere(ray shape.Ray, sphere shape.Sphere, maxT float32) bool {
	if !validRay(ray, maxT) || !sphere.IsValid() {
		return false
	}

	m := ray.Origin.Sub(sphere.Center())
	r := sphere.Radius + tolerance(sphere.Radius, shape.MaxAbs(sphere.Center()), shape.MaxAbs(ray.Origin))

	direction, length := ray.UnitDirection()
	b := m.Dot(direction)
	c := m.Dot(m) - r*r

	// Origin inside
	if c <= 0 {
		return true
	}
	// Outside and pointing away
	if b > 0 {
		return false
	}

	discriminant := b*b - c
	if discriminant < 0 {
		return false
	}

	t := -b - shape.Sqrt(discriminant)
	return t <= maxT*length
}

// slab clips [tMin, tMax] against lo <= origin + t*direction <= hi on one
// axis. A zero direction component keeps the interval only when the origin
// lies within the slab.
func slab(origin, direction, lo, hi, tMin, tMax float32) (float32, float32, bool) {
	if direction == 0 {
		return tMin, tMax, origin >= lo && origin <= hi
	}

	t1 := (lo - origin) / direction
	t2 := (hi - origin) / direction
	if t1 > t2 {
		t1, t2 = t2, t1
	}

	tMin = max(tMin, t1)
	tMax = min(tMax, t2)
	return tMin, tMax, tMin <= tMax
}

// raySlabs runs the slab method of a ray against the box [lo, hi]
func raySlabs(origin, direction, lo, hi mgl32.Vec3, maxT float32) bool {
	tMin, tMax := float32(0), maxT
	ok := true

	for i := 0; i < 3; i++ {
		tol := tolerance(lo[i], hi[i])
		tMin, tMax, ok = slab(origin[i], direction[i], lo[i]-tol, hi[i]+tol, tMin, tMax)
		if !ok {
			return false
		}
	}
	return true
}

// RayAABB is the slab test against the world-space corners
func RayAABB(ray shape.Ray, box shape.AABB, maxT float32) bool {
	if !validRay(ray, maxT) || !box.IsValid() {
		return false
	}

	return raySlabs(ray.Origin, ray.Direction, box.Min(), box.Max(), maxT)
}

// RayOBB maps the ray into the box frame and runs the slab test against the
// local half-extents
func RayOBB(ray shape.Ray, box shape.OBB, maxT float32) bool {
	if !validRay(ray, maxT) || !box.IsValid() {
		return false
	}

	origin := box.Pose.InverseTransformPoint(ray.Origin)
	direction := box.Pose.InverseTransformVector(ray.Direction)
	return raySlabs(origin, direction, box.HalfExtents.Mul(-1), box.HalfExtents, maxT)
}

// RayTriangle is the Möller–Trumbore test. Both faces count as hits.
// A ray lying in the triangle plane is tested against the edges in that
// plane; zero-area triangles are never hit.
func RayTriangle(ray shape.Ray, triangle shape.Triangle, maxT float32) bool {
	if !validRay(ray, maxT) || !triangle.IsValid() || triangle.IsDegenerate() {
		return false
	}

	v := triangle.Vertices()
	e1 := v[1].Sub(v[0])
	e2 := v[2].Sub(v[0])
	p := ray.Direction.Cross(e2)
	determinant := e1.Dot(p)

	scale := max(shape.MaxAbs(ray.Origin), shape.MaxAbs(v[0]), shape.MaxAbs(v[1]), shape.MaxAbs(v[2]))
	if shape.Abs(determinant) <= shape.Epsilon*ray.Direction.Len()*e1.Len()*e2.Len() {
		return coplanarRayTriangle(ray, v, maxT, scale)
	}

	inverse := 1 / determinant
	s := ray.Origin.Sub(v[0])
	u := s.Dot(p) * inverse
	if u < -shape.Epsilon || u > 1+shape.Epsilon {
		return false
	}

	q := s.Cross(e1)
	w := ray.Direction.Dot(q) * inverse
	if w < -shape.Epsilon || u+w > 1+shape.Epsilon {
		return false
	}

	t := e2.Dot(q) * inverse
	tTolerance := tolerance(scale) / ray.Direction.Len()
	return t >= -tTolerance && t <= maxT+tTolerance
}

// coplanarRayTriangle handles a ray parallel to the triangle plane: it hits
// only when it lies in the plane and starts inside or crosses an edge.
func coplanarRayTriangle(ray shape.Ray, v [3]mgl32.Vec3, maxT, scale float32) bool {
	normal := v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
	unit := normal.Normalize()
	tol := tolerance(scale)

	if shape.Abs(unit.Dot(ray.Origin.Sub(v[0]))) > tol {
		return false
	}
	if closestPointOnTriangle(ray.Origin, v[0], v[1], v[2]).Sub(ray.Origin).Len() <= tol {
		return true
	}

	for i := 0; i < 3; i++ {
		a, b := v[i], v[(i+1)%3]
		edge := b.Sub(a)
		denominator := ray.Direction.Cross(edge).Dot(unit)
		if denominator == 0 {
			continue
		}

		w := a.Sub(ray.Origin)
		t := w.Cross(edge).Dot(unit) / denominator
		s := w.Cross(ray.Direction).Dot(unit) / denominator
		if t >= 0 && t <= maxT && s >= -shape.Epsilon && s <= 1+shape.Epsilon {
			return true
		}
	}
	return false
}

// RayPlane reports whether the ray meets the plane surface within [0, maxT]
func RayPlane(ray shape.Ray, plane shape.Plane, maxT float32) bool {
	if !validRay(ray, maxT) || !plane.IsValid() {
		return false
	}

	normal := plane.WorldNormal()
	distance := normal.Dot(ray.Origin.Sub(plane.Point()))
	if shape.Abs(distance) <= tolerance(shape.MaxAbs(ray.Origin), shape.MaxAbs(plane.Point())) {
		return true
	}

	rate := normal.Dot(ray.Direction)
	if rate == 0 {
		return false
	}

	t := -distance / rate
	return t >= 0 && t <= maxT
}

// RayFrustum clips the ray parameter interval against every face half-space
func RayFrustum(ray shape.Ray, frustum shape.Frustum, maxT float32) bool {
	if !validRay(ray, maxT) || !frustum.IsValid() {
		return false
	}

	tMin, tMax := float32(0), maxT
	tol := tolerance(frustum.Scale(), shape.MaxAbs(ray.Origin))

	for _, plane := range frustum.Planes() {
		distance := plane.SignedDistance(ray.Origin) - tol
		rate := plane.Normal.Dot(ray.Direction)

		if rate == 0 {
			if distance > 0 {
				return false
			}
			continue
		}

		t := -distance / rate
		if rate < 0 {
			tMin = max(tMin, t)
		} else {
			tMax = min(tMax, t)
		}
		if tMin > tMax {
			return false
		}
	}
	return true
}

// LineSphere tests the undirected line through the ray: it hits when the ray
// or its reverse does.
func LineSphere(line shape.Ray, sphere shape.Sphere) bool {
	return RaySphere(line, sphere, lineLength) || RaySphere(line.Reversed(), sphere, lineLength)
}

func LineAABB(line shape.Ray, box shape.AABB) bool {
	return RayAABB(line, box, lineLength) || RayAABB(line.Reversed(), box, lineLength)
}

func LineOBB(line shape.Ray, box shape.OBB) bool {
	return RayOBB(line, box, lineLength) || RayOBB(line.Reversed(), box, lineLength)
}

func LineTriangle(line shape.Ray, triangle shape.Triangle) bool {
	return RayTriangle(line, triangle, lineLength) || RayTriangle(line.Reversed(), triangle, lineLength)
}

func LinePlane(line shape.Ray, plane shape.Plane) bool {
	return RayPlane(line, plane, lineLength) || RayPlane(line.Reversed(), plane, lineLength)
}

func LineFrustum(line shape.Ray, frustum shape.Frustum) bool {
	return RayFrustum(line, frustum, lineLength) || RayFrustum(line.Reversed(), frustum, lineLength)
}
