package shape

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Kind identifies the primitive behind a Shape
type Kind int

const (
	KindSphere Kind = iota
	KindAABB
	KindOBB
	KindPlane
	KindTriangle
	KindFrustum

	// KindCount is the number of primitive kinds
	KindCount = int(KindFrustum) + 1
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindAABB:
		return "aabb"
	case KindOBB:
		return "obb"
	case KindPlane:
		return "plane"
	case KindTriangle:
		return "triangle"
	case KindFrustum:
		return "frustum"
	}
	return "unknown"
}

// Shape is implemented by every posed primitive of the package.
// The set is closed: Sphere, AABB, OBB, Plane, Triangle and Frustum.
type Shape interface {
	Kind() Kind
	// IsValid reports whether the numeric data is finite and within range
	// (non-negative radius and half-extents, unit-able normal...)
	IsValid() bool
}

// Sphere is a ball of the given radius centered on the pose translation
type Sphere struct {
	Radius float32
	Pose   Pose
}

// NewSphere places a sphere of the given radius at center
func NewSphere(center mgl32.Vec3, radius float32) Sphere {
	return Sphere{Radius: radius, Pose: Pose{Translation: center, Rotation: mgl32.QuatIdent()}}
}

func (s Sphere) Kind() Kind { return KindSphere }

func (s Sphere) IsValid() bool {
	return finiteScalar(s.Radius) && s.Radius >= 0 && s.Pose.IsFinite()
}

// Center returns the world-space center
func (s Sphere) Center() mgl32.Vec3 {
	return s.Pose.Translation
}

// Support returns the farthest point of the sphere along direction
func (s Sphere) Support(direction mgl32.Vec3) mgl32.Vec3 {
	length := direction.Len()
	if length == 0 {
		return s.Center()
	}
	return s.Center().Add(direction.Mul(s.Radius / length))
}

// OBB is an oriented box: half-extents along the local axes, placed by Pose.
// A zero half-extent flattens the box into a rectangle, segment or point.
type OBB struct {
	HalfExtents mgl32.Vec3
	Pose        Pose
}

// NewOBB builds an oriented box centered on center with the given rotation
func NewOBB(center mgl32.Vec3, rotation mgl32.Quat, halfExtents mgl32.Vec3) OBB {
	return OBB{HalfExtents: halfExtents, Pose: NewPose(center, rotation)}
}

// NewOBBAxisAngle builds an oriented box whose rotation is given as a
// rotation vector (axis scaled by the angle in radians)
func NewOBBAxisAngle(center, rotation, halfExtents mgl32.Vec3) OBB {
	return OBB{HalfExtents: halfExtents, Pose: AxisAnglePose(center, rotation)}
}

func (b OBB) Kind() Kind { return KindOBB }

func (b OBB) IsValid() bool {
	return finite(b.HalfExtents) && nonNegative(b.HalfExtents) && b.Pose.IsFinite()
}

// Center returns the world-space center
func (b OBB) Center() mgl32.Vec3 {
	return b.Pose.Translation
}

// Axes returns the box axes in world space
func (b OBB) Axes() [3]mgl32.Vec3 {
	return b.Pose.Axes()
}

// Vertices returns the 8 world-space corners
func (b OBB) Vertices() [8]mgl32.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()
	corners := [8]mgl32.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{-hx, +hy, -hz},
		{+hx, +hy, -hz},
		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{-hx, +hy, +hz},
		{+hx, +hy, +hz},
	}
	for i := range corners {
		corners[i] = b.Pose.TransformPoint(corners[i])
	}

	return corners
}

// Support returns the corner of the box farthest along direction
func (b OBB) Support(direction mgl32.Vec3) mgl32.Vec3 {
	local := b.Pose.InverseTransformVector(direction)
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	if local.X() < 0 {
		hx = -hx
	}
	if local.Y() < 0 {
		hy = -hy
	}
	if local.Z() < 0 {
		hz = -hz
	}

	return b.Pose.TransformPoint(mgl32.Vec3{hx, hy, hz})
}

// ProjectedRadius returns the half-length of the box projected onto axis
func (b OBB) ProjectedRadius(axis mgl32.Vec3) float32 {
	axes := b.Axes()
	return b.HalfExtents.X()*Abs(axes[0].Dot(axis)) +
		b.HalfExtents.Y()*Abs(axes[1].Dot(axis)) +
		b.HalfExtents.Z()*Abs(axes[2].Dot(axis))
}

// Plane is the set of points through the pose translation orthogonal to the
// normal rotated by the pose. Normal is given in local space.
type Plane struct {
	Normal mgl32.Vec3
	Pose   Pose
}

// NewPlane builds a plane through point with the given normal.
// The normal is normalized.
func NewPlane(point, normal mgl32.Vec3) Plane {
	if l := normal.Len(); l > 0 {
		normal = normal.Mul(1 / l)
	}
	return Plane{Normal: normal, Pose: Pose{Translation: point, Rotation: mgl32.QuatIdent()}}
}

func (p Plane) Kind() Kind { return KindPlane }

func (p Plane) IsValid() bool {
	return finite(p.Normal) && p.Normal.LenSqr() > 0 && p.Pose.IsFinite()
}

// Point returns a world-space point of the plane
func (p Plane) Point() mgl32.Vec3 {
	return p.Pose.Translation
}

// WorldNormal returns the unit normal in world space
func (p Plane) WorldNormal() mgl32.Vec3 {
	n := p.Pose.TransformVector(p.Normal)
	if l := n.Len(); l > 0 && l != 1 {
		n = n.Mul(1 / l)
	}
	return n
}

// SignedDistance returns the distance from point to the plane, positive on
// the side the normal points to
func (p Plane) SignedDistance(point mgl32.Vec3) float32 {
	return p.WorldNormal().Dot(point.Sub(p.Point()))
}

// Triangle is three local vertices placed by Pose
type Triangle struct {
	A, B, C mgl32.Vec3
	Pose    Pose
}

// NewTriangle builds a triangle from world-space vertices
func NewTriangle(a, b, c mgl32.Vec3) Triangle {
	return Triangle{A: a, B: b, C: c, Pose: IdentityPose()}
}

func (t Triangle) Kind() Kind { return KindTriangle }

func (t Triangle) IsValid() bool {
	return finite(t.A) && finite(t.B) && finite(t.C) && t.Pose.IsFinite()
}

// Vertices returns the world-space vertices
func (t Triangle) Vertices() [3]mgl32.Vec3 {
	return [3]mgl32.Vec3{
		t.Pose.TransformPoint(t.A),
		t.Pose.TransformPoint(t.B),
		t.Pose.TransformPoint(t.C),
	}
}

// Normal returns the (non normalized) world-space normal, following the
// A, B, C winding. Its length is twice the triangle area.
func (t Triangle) Normal() mgl32.Vec3 {
	v := t.Vertices()
	return v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
}

// IsDegenerate reports whether the vertices are collinear (zero area)
func (t Triangle) IsDegenerate() bool {
	v := t.Vertices()
	e0 := v[1].Sub(v[0])
	e1 := v[2].Sub(v[0])
	return e0.Cross(e1).Len() <= Epsilon*e0.Len()*e1.Len()
}

// Support returns the vertex farthest along direction
func (t Triangle) Support(direction mgl32.Vec3) mgl32.Vec3 {
	v := t.Vertices()
	best := v[0]
	bestDot := best.Dot(direction)
	for _, p := range v[1:] {
		if d := p.Dot(direction); d > bestDot {
			best, bestDot = p, d
		}
	}
	return best
}

// Ray is a half-line starting at Origin following Direction.
// Direction does not need to be normalized but must not be zero.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay builds a ray
func NewRay(origin, direction mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// IsValid reports whether the ray has finite data and a non-zero direction
func (r Ray) IsValid() bool {
	return finite(r.Origin) && finite(r.Direction) && r.Direction != (mgl32.Vec3{})
}

// UnitDirection returns the normalized direction and the length of
// Direction. Components are rescaled first so that neither overflows nor
// underflows for any finite non-zero direction.
func (r Ray) UnitDirection() (mgl32.Vec3, float32) {
	largest := MaxAbs(r.Direction)
	scaled := mgl32.Vec3{r.Direction[0] / largest, r.Direction[1] / largest, r.Direction[2] / largest}
	length := scaled.Len()
	return scaled.Mul(1 / length), largest * length
}

// Reversed returns the ray with the same origin and the opposite direction
func (r Ray) Reversed() Ray {
	return Ray{Origin: r.Origin, Direction: r.Direction.Mul(-1)}
}

// PointAt returns the point at parameter t
func (r Ray) PointAt(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Point is a single world-space position exposing a support mapping, so it
// can take part in support-based queries.
type Point mgl32.Vec3

// Support returns the point itself whatever the direction
func (p Point) Support(direction mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3(p)
}
