package shape

import "github.com/go-gl/mathgl/mgl32"

// Bounds returns the world-space AABB enclosing s, grown by the tolerance
// of its scale so that touching shapes keep overlapping bounds.
// Planes are unbounded and invalid shapes have no bounds: both report false.
func Bounds(s Shape) (AABB, bool) {
	if s == nil || !s.IsValid() {
		return AABB{}, false
	}

	var box AABB
	switch v := s.(type) {
	case Sphere:
		box = NewAABBFromCenter(v.Center(), mgl32.Vec3{v.Radius, v.Radius, v.Radius})
	case AABB:
		box = v
	case OBB:
		box = NewAABBFromCenter(v.Center(), mgl32.Vec3{
			v.ProjectedRadius(mgl32.Vec3{1, 0, 0}),
			v.ProjectedRadius(mgl32.Vec3{0, 1, 0}),
			v.ProjectedRadius(mgl32.Vec3{0, 0, 1}),
		})
	case Triangle:
		vertices := v.Vertices()
		box = NewAABBFromPoints(vertices[:]...)
	case Frustum:
		box = NewAABBFromPoints(v.Vertices()...)
	default:
		return AABB{}, false
	}

	margin := Tolerance(max(MaxAbs(box.center), MaxAbs(box.halfExtents)))
	box.halfExtents = box.halfExtents.Add(mgl32.Vec3{margin, margin, margin})
	return box, true
}
