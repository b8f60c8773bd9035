package shape

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindSphere, "sphere"},
		{KindAABB, "aabb"},
		{KindOBB, "obb"},
		{KindPlane, "plane"},
		{KindTriangle, "triangle"},
		{KindFrustum, "frustum"},
		{Kind(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.expected)
		}
	}
}

// =============================================================================
// Sphere Tests
// =============================================================================

func TestSphere_Support(t *testing.T) {
	sphere := NewSphere(mgl32.Vec3{1, 0, 0}, 2)

	if got := sphere.Support(mgl32.Vec3{0, 5, 0}); !vecNear(got, mgl32.Vec3{1, 2, 0}, 1e-6) {
		t.Errorf("Expected (1,2,0), got %v", got)
	}
	if got := sphere.Support(mgl32.Vec3{}); got != sphere.Center() {
		t.Errorf("Zero direction should return the center, got %v", got)
	}
}

func TestSphere_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		sphere   Sphere
		expected bool
	}{
		{"unit", NewSphere(mgl32.Vec3{}, 1), true},
		{"zero radius", NewSphere(mgl32.Vec3{}, 0), true},
		{"negative radius", NewSphere(mgl32.Vec3{}, -1), false},
		{"NaN radius", NewSphere(mgl32.Vec3{}, float32(math.NaN())), false},
		{"infinite center", NewSphere(mgl32.Vec3{float32(math.Inf(1)), 0, 0}, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sphere.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

// =============================================================================
// OBB Tests
// =============================================================================

func TestOBB_SupportAndVertices(t *testing.T) {
	box := NewOBBAxisAngle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, math.Pi / 4}, mgl32.Vec3{1, 1, 1})

	// The box corner (1,1,z) is rotated onto the Y axis
	support := box.Support(mgl32.Vec3{0, 1, 0})
	if Abs(support.Y()-float32(math.Sqrt2)) > 1e-5 {
		t.Errorf("Expected support height sqrt(2), got %v", support.Y())
	}

	for _, v := range box.Vertices() {
		if v.Y() > support.Y()+1e-5 {
			t.Errorf("Vertex %v goes beyond the support point %v", v, support)
		}
	}
}

func TestOBB_ProjectedRadius(t *testing.T) {
	box := NewOBB(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 2, 3})

	if got := box.ProjectedRadius(mgl32.Vec3{0, 1, 0}); got != 2 {
		t.Errorf("Expected 2 along Y, got %v", got)
	}
	if got := box.ProjectedRadius(mgl32.Vec3{1, 0, 0}); got != 1 {
		t.Errorf("Expected 1 along X, got %v", got)
	}
}

func TestOBB_IsValid(t *testing.T) {
	if !NewOBB(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{0, 0, 0}).IsValid() {
		t.Error("Zero half-extents describe a point and should be valid")
	}
	if NewOBB(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, -1, 1}).IsValid() {
		t.Error("Negative half-extents should be invalid")
	}
}

// =============================================================================
// Plane Tests
// =============================================================================

func TestPlane_SignedDistance(t *testing.T) {
	plane := NewPlane(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 2, 0})

	tests := []struct {
		point    mgl32.Vec3
		expected float32
	}{
		{mgl32.Vec3{5, 1, 5}, 0},
		{mgl32.Vec3{0, 3, 0}, 2},
		{mgl32.Vec3{0, -1, 0}, -2},
	}

	for _, tt := range tests {
		if got := plane.SignedDistance(tt.point); Abs(got-tt.expected) > 1e-6 {
			t.Errorf("SignedDistance(%v) = %v, want %v", tt.point, got, tt.expected)
		}
	}
}

func TestPlane_RotatedNormal(t *testing.T) {
	plane := Plane{
		Normal: mgl32.Vec3{0, 1, 0},
		Pose:   AxisAnglePose(mgl32.Vec3{}, mgl32.Vec3{0, 0, -math.Pi / 2}),
	}

	if got := plane.WorldNormal(); !vecNear(got, mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("Expected world normal (1,0,0), got %v", got)
	}
}

func TestPlane_IsValid(t *testing.T) {
	if (Plane{Normal: mgl32.Vec3{}}).IsValid() {
		t.Error("Zero normal should be invalid")
	}
	if !NewPlane(mgl32.Vec3{}, mgl32.Vec3{0, 0, 3}).IsValid() {
		t.Error("Non unit normal should be normalized and valid")
	}
}

// =============================================================================
// Triangle Tests
// =============================================================================

func TestTriangle_Degenerate(t *testing.T) {
	tests := []struct {
		name     string
		triangle Triangle
		expected bool
	}{
		{"regular", NewTriangle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}), false},
		{"collinear", NewTriangle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{2, 2, 2}), true},
		{"single point", NewTriangle(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.triangle.IsDegenerate(); got != tt.expected {
				t.Errorf("IsDegenerate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTriangle_PosedVertices(t *testing.T) {
	triangle := Triangle{
		A:    mgl32.Vec3{0, 0, 0},
		B:    mgl32.Vec3{1, 0, 0},
		C:    mgl32.Vec3{0, 1, 0},
		Pose: TranslationPose(0, 0, 2),
	}

	vertices := triangle.Vertices()
	if vertices[1] != (mgl32.Vec3{1, 0, 2}) {
		t.Errorf("Expected B at (1,0,2), got %v", vertices[1])
	}
	if got := triangle.Normal(); got != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("Expected normal (0,0,1), got %v", got)
	}
	if got := triangle.Support(mgl32.Vec3{0, 1, 0}); got != (mgl32.Vec3{0, 1, 2}) {
		t.Errorf("Expected support (0,1,2), got %v", got)
	}
}

// =============================================================================
// Ray Tests
// =============================================================================

func TestRay(t *testing.T) {
	ray := NewRay(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 2, 0})

	if got := ray.PointAt(1.5); got != (mgl32.Vec3{1, 3, 0}) {
		t.Errorf("Expected (1,3,0), got %v", got)
	}
	if got := ray.Reversed().Direction; got != (mgl32.Vec3{0, -2, 0}) {
		t.Errorf("Expected reversed direction (0,-2,0), got %v", got)
	}
	if !ray.IsValid() {
		t.Error("Ray should be valid")
	}
	if NewRay(mgl32.Vec3{}, mgl32.Vec3{}).IsValid() {
		t.Error("Ray with zero direction should be invalid")
	}
	if !NewRay(mgl32.Vec3{}, mgl32.Vec3{1e-30, 0, 0}).IsValid() {
		t.Error("Ray with a tiny direction should be valid")
	}
}

func TestRay_UnitDirection(t *testing.T) {
	tests := []struct {
		name      string
		direction mgl32.Vec3
		unit      mgl32.Vec3
		length    float32
	}{
		{"axis", mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, 1, 0}, 2},
		{"diagonal", mgl32.Vec3{3, 0, -4}, mgl32.Vec3{0.6, 0, -0.8}, 5},
		{"tiny", mgl32.Vec3{-1e-30, 0, 0}, mgl32.Vec3{-1, 0, 0}, 1e-30},
		{"huge", mgl32.Vec3{0, 0, 1e30}, mgl32.Vec3{0, 0, 1}, 1e30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, length := NewRay(mgl32.Vec3{}, tt.direction).UnitDirection()
			if !vecNear(unit, tt.unit, 1e-6) {
				t.Errorf("Expected unit direction %v, got %v", tt.unit, unit)
			}
			if Abs(length-tt.length) > tt.length*1e-6 {
				t.Errorf("Expected length %v, got %v", tt.length, length)
			}
		})
	}
}
