package shape

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is a rigid transform (rotation then translation) placing a shape's
// local geometry in world space.
// The zero value is the identity pose.
type Pose struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// IdentityPose returns the pose that leaves every point in place
func IdentityPose() Pose {
	return Pose{
		Translation: mgl32.Vec3{0, 0, 0},
		Rotation:    mgl32.QuatIdent(),
	}
}

// NewPose builds a pose from a translation and a rotation.
// The rotation is normalized so it stays a unit quaternion.
func NewPose(translation mgl32.Vec3, rotation mgl32.Quat) Pose {
	if rotation.Len() == 0 {
		rotation = mgl32.QuatIdent()
	}

	return Pose{
		Translation: translation,
		Rotation:    rotation.Normalize(),
	}
}

// TranslationPose returns a pure translation
func TranslationPose(x, y, z float32) Pose {
	return Pose{
		Translation: mgl32.Vec3{x, y, z},
		Rotation:    mgl32.QuatIdent(),
	}
}

// AxisAnglePose builds a pose from a translation and a rotation vector whose
// direction is the rotation axis and whose length is the angle in radians.
// A zero rotation vector gives no rotation.
func AxisAnglePose(translation, rotation mgl32.Vec3) Pose {
	angle := rotation.Len()
	if angle == 0 {
		return Pose{Translation: translation, Rotation: mgl32.QuatIdent()}
	}

	return Pose{
		Translation: translation,
		Rotation:    mgl32.QuatRotate(angle, rotation.Mul(1/angle)),
	}
}

func (p Pose) rotation() mgl32.Quat {
	if p.Rotation == (mgl32.Quat{}) {
		return mgl32.QuatIdent()
	}
	return p.Rotation
}

// Compose returns the pose equivalent to applying other first, then p.
func (p Pose) Compose(other Pose) Pose {
	rotation := p.rotation()

	return Pose{
		Translation: rotation.Rotate(other.Translation).Add(p.Translation),
		Rotation:    rotation.Mul(other.rotation()).Normalize(),
	}
}

// Inverse returns the pose mapping world coordinates back into local ones.
// The rotation is orthonormal, so its inverse is its conjugate.
func (p Pose) Inverse() Pose {
	inverse := p.rotation().Conjugate()

	return Pose{
		Translation: inverse.Rotate(p.Translation).Mul(-1),
		Rotation:    inverse,
	}
}

// Translated returns a copy of p moved by offset in world space
func (p Pose) Translated(offset mgl32.Vec3) Pose {
	return Pose{
		Translation: p.Translation.Add(offset),
		Rotation:    p.rotation(),
	}
}

// TransformPoint maps a local point to world space
func (p Pose) TransformPoint(point mgl32.Vec3) mgl32.Vec3 {
	return p.rotation().Rotate(point).Add(p.Translation)
}

// TransformVector maps a local direction to world space (no translation)
func (p Pose) TransformVector(vector mgl32.Vec3) mgl32.Vec3 {
	return p.rotation().Rotate(vector)
}

// InverseTransformPoint maps a world point into the local frame
func (p Pose) InverseTransformPoint(point mgl32.Vec3) mgl32.Vec3 {
	return p.rotation().Conjugate().Rotate(point.Sub(p.Translation))
}

// InverseTransformVector maps a world direction into the local frame
func (p Pose) InverseTransformVector(vector mgl32.Vec3) mgl32.Vec3 {
	return p.rotation().Conjugate().Rotate(vector)
}

// Matrix returns the rotation as a 3x3 matrix. Column i is the local axis i
// expressed in world space.
func (p Pose) Matrix() mgl32.Mat3 {
	return p.rotation().Mat4().Mat3()
}

// Axes returns the three local axes expressed in world space
func (p Pose) Axes() [3]mgl32.Vec3 {
	m := p.Matrix()
	return [3]mgl32.Vec3{m.Col(0), m.Col(1), m.Col(2)}
}

// IsFinite reports whether every component of the pose is a finite number
func (p Pose) IsFinite() bool {
	q := p.rotation()
	return finite(p.Translation) && finite(q.V) && finiteScalar(q.W)
}
