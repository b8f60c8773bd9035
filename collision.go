// Package overlap answers yes/no intersection and containment queries between
// posed 3D primitives: points, rays and lines, spheres, axis-aligned and
// oriented boxes, planes, triangles and convex polyhedra.
//
// Every query is a pure predicate over immutable shape values. Boundaries are
// inclusive: touching shapes intersect. Invalid numeric input (NaN or infinite
// coordinates, negative radius or half-extents, zero ray direction) gives false.
//
// The typed functions (SphereOBB, RayTriangle...) can be called directly when
// the kinds are known; Intersects, PointIn, RayIntersects and LineIntersects
// dispatch on the runtime kind of a shape.Shape.
package overlap

import (
	"github.com/akmonengine/overlap/shape"
	"github.com/go-gl/mathgl/mgl32"
)

type pairTest func(a, b shape.Shape) bool

type pairTable [shape.KindCount][shape.KindCount]pairTest

// pairTests holds one test per ordered pair of kinds. Each test is registered
// once and mirrored to its transpose, so Intersects is symmetric by
// construction.
var pairTests = newPairTable()

func newPairTable() *pairTable {
	table := &pairTable{}

	register(table, SphereSphere)
	register(table, SphereAABB)
	register(table, SphereOBB)
	register(table, SpherePlane)
	register(table, SphereTriangle)
	register(table, SphereFrustum)

	register(table, AABBAABB)
	register(table, AABBOBB)
	register(table, AABBPlane)
	register(table, AABBTriangle)
	register(table, AABBFrustum)

	register(table, OBBOBB)
	register(table, OBBPlane)
	register(table, OBBTriangle)
	register(table, OBBFrustum)

	register(table, PlanePlane)
	register(table, PlaneTriangle)
	register(table, PlaneFrustum)

	register(table, TriangleTriangle)
	register(table, TriangleFrustum)

	register(table, FrustumFrustum)

	return table
}

func register[A, B shape.Shape](table *pairTable, test func(A, B) bool) {
	var a A
	var b B

	table[a.Kind()][b.Kind()] = func(x, y shape.Shape) bool {
		first, ok := x.(A)
		if !ok {
			return false
		}
		second, ok := y.(B)
		if !ok {
			return false
		}
		return test(first, second)
	}

	if a.Kind() != b.Kind() {
		table[b.Kind()][a.Kind()] = func(x, y shape.Shape) bool {
			return table[a.Kind()][b.Kind()](y, x)
		}
	}
}

// resolve turns pointers to shapes into values so both forms dispatch the same
func resolve(s shape.Shape) shape.Shape {
	switch v := s.(type) {
	case *shape.Sphere:
		if v != nil {
			return *v
		}
	case *shape.AABB:
		if v != nil {
			return *v
		}
	case *shape.OBB:
		if v != nil {
			return *v
		}
	case *shape.Plane:
		if v != nil {
			return *v
		}
	case *shape.Triangle:
		if v != nil {
			return *v
		}
	case *shape.Frustum:
		if v != nil {
			return *v
		}
	default:
		return s
	}
	return nil
}

func kindOf(s shape.Shape) (shape.Kind, bool) {
	if s == nil {
		return 0, false
	}
	kind := s.Kind()
	return kind, kind >= 0 && int(kind) < shape.KindCount
}

// Intersects reports whether two posed shapes touch or overlap, whatever
// their kinds. The result does not depend on the argument order.
func Intersects(a, b shape.Shape) bool {
	a, b = resolve(a), resolve(b)

	kindA, ok := kindOf(a)
	if !ok {
		return false
	}
	kindB, ok := kindOf(b)
	if !ok {
		return false
	}

	return pairTests[kindA][kindB](a, b)
}

// PointIn reports whether point lies in s, boundary included. For planes and
// triangles this means lying on the surface.
func PointIn(point mgl32.Vec3, s shape.Shape) bool {
	switch v := resolve(s).(type) {
	case shape.Sphere:
		return PointInSphere(point, v)
	case shape.AABB:
		return PointInAABB(point, v)
	case shape.OBB:
		return PointInOBB(point, v)
	case shape.Plane:
		return PointInPlane(point, v)
	case shape.Triangle:
		return PointInTriangle(point, v)
	case shape.Frustum:
		return PointInFrustum(point, v)
	}
	return false
}

// RayIntersects reports whether ray hits s for a parameter t in [0, maxT]
func RayIntersects(ray shape.Ray, s shape.Shape, maxT float32) bool {
	switch v := resolve(s).(type) {
	case shape.Sphere:
		return RaySphere(ray, v, maxT)
	case shape.AABB:
		return RayAABB(ray, v, maxT)
	case shape.OBB:
		return RayOBB(ray, v, maxT)
	case shape.Plane:
		return RayPlane(ray, v, maxT)
	case shape.Triangle:
		return RayTriangle(ray, v, maxT)
	case shape.Frustum:
		return RayFrustum(ray, v, maxT)
	}
	return false
}

// LineIntersects reports whether the undirected line through line.Origin
// along line.Direction hits s
func LineIntersects(line shape.Ray, s shape.Shape) bool {
	return RayIntersects(line, s, lineLength) || RayIntersects(line.Reversed(), s, lineLength)
}
