package shape

import "github.com/go-gl/mathgl/mgl32"

// AABB represents an axis-aligned box. It stores the centered cuboid form
// (center + half-extents); the min/max corners are derived on demand.
type AABB struct {
	center      mgl32.Vec3
	halfExtents mgl32.Vec3
}

// NewAABB builds a box from two opposite corners. The corners are ordered
// componentwise, so min <= max holds whatever the argument order.
func NewAABB(mins, maxs mgl32.Vec3) AABB {
	lo := componentMin(mins, maxs)
	hi := componentMax(mins, maxs)
	halfExtents := hi.Sub(lo).Mul(0.5)

	return AABB{
		center:      lo.Add(halfExtents),
		halfExtents: halfExtents,
	}
}

// NewAABBFromCenter builds a box from its center and half-extents.
// Negative half-extents are folded to their absolute value.
func NewAABBFromCenter(center, halfExtents mgl32.Vec3) AABB {
	return AABB{
		center:      center,
		halfExtents: mgl32.Vec3{Abs(halfExtents[0]), Abs(halfExtents[1]), Abs(halfExtents[2])},
	}
}

// NewAABBFromPoints returns the smallest box enclosing every point
func NewAABBFromPoints(points ...mgl32.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = componentMin(lo, p)
		hi = componentMax(hi, p)
	}

	return NewAABB(lo, hi)
}

func (a AABB) Kind() Kind { return KindAABB }

func (a AABB) IsValid() bool {
	return finite(a.center) && finite(a.halfExtents) && nonNegative(a.halfExtents)
}

// Min returns the minimum corner
func (a AABB) Min() mgl32.Vec3 {
	return a.center.Sub(a.halfExtents)
}

// Max returns the maximum corner
func (a AABB) Max() mgl32.Vec3 {
	return a.center.Add(a.halfExtents)
}

// Center returns the world-space center
func (a AABB) Center() mgl32.Vec3 {
	return a.center
}

// HalfExtents returns the half size along each world axis
func (a AABB) HalfExtents() mgl32.Vec3 {
	return a.halfExtents
}

// Pose returns the identity-aligned pose centered on the box
func (a AABB) Pose() Pose {
	return Pose{Translation: a.center, Rotation: mgl32.QuatIdent()}
}

// OBB returns the same box as an oriented box with no rotation
func (a AABB) OBB() OBB {
	return OBB{HalfExtents: a.halfExtents, Pose: a.Pose()}
}

// Translated returns the box moved by offset
func (a AABB) Translated(offset mgl32.Vec3) AABB {
	return AABB{center: a.center.Add(offset), halfExtents: a.halfExtents}
}

// Support returns the corner farthest along direction
func (a AABB) Support(direction mgl32.Vec3) mgl32.Vec3 {
	corner := a.center
	for i := 0; i < 3; i++ {
		if direction[i] < 0 {
			corner[i] -= a.halfExtents[i]
		} else {
			corner[i] += a.halfExtents[i]
		}
	}
	return corner
}

// ContainsPoint checks if a point is inside the AABB, boundary included
func (a AABB) ContainsPoint(point mgl32.Vec3) bool {
	lo, hi := a.Min(), a.Max()
	return point.X() >= lo.X() && point.X() <= hi.X() &&
		point.Y() >= lo.Y() && point.Y() <= hi.Y() &&
		point.Z() >= lo.Z() && point.Z() <= hi.Z()
}

// Overlaps checks if two AABBs overlap, touching faces included
func (a AABB) Overlaps(other AABB) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := other.Min(), other.Max()

	// AABBs overlap if they overlap on all three axes
	return aMax.X() >= bMin.X() && aMin.X() <= bMax.X() &&
		aMax.Y() >= bMin.Y() && aMin.Y() <= bMax.Y() &&
		aMax.Z() >= bMin.Z() && aMin.Z() <= bMax.Z()
}
