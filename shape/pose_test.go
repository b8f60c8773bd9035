package shape

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// vecNear compares vectors component by component within an absolute tolerance
func vecNear(got, want mgl32.Vec3, tolerance float32) bool {
	for i := range got {
		if Abs(got[i]-want[i]) > tolerance {
			return false
		}
	}
	return true
}

// =============================================================================
// Pose Tests
// =============================================================================

func TestPose_ZeroValueIsIdentity(t *testing.T) {
	var pose Pose
	point := mgl32.Vec3{1, 2, 3}

	if got := pose.TransformPoint(point); !vecNear(got, point, 1e-6) {
		t.Errorf("Zero pose should leave points in place, got %v", got)
	}
	if got := pose.InverseTransformPoint(point); !vecNear(got, point, 1e-6) {
		t.Errorf("Zero pose inverse should leave points in place, got %v", got)
	}
	if !pose.IsFinite() {
		t.Error("Zero pose should be finite")
	}
}

func TestPose_TransformPoint(t *testing.T) {
	tests := []struct {
		name     string
		pose     Pose
		point    mgl32.Vec3
		expected mgl32.Vec3
	}{
		{
			name:     "translation only",
			pose:     TranslationPose(1, 2, 3),
			point:    mgl32.Vec3{1, 1, 1},
			expected: mgl32.Vec3{2, 3, 4},
		},
		{
			name:     "quarter turn around Z",
			pose:     AxisAnglePose(mgl32.Vec3{}, mgl32.Vec3{0, 0, math.Pi / 2}),
			point:    mgl32.Vec3{1, 0, 0},
			expected: mgl32.Vec3{0, 1, 0},
		},
		{
			name:     "rotation then translation",
			pose:     AxisAnglePose(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, math.Pi, 0}),
			point:    mgl32.Vec3{1, 0, 0},
			expected: mgl32.Vec3{-1, 0, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pose.TransformPoint(tt.point)
			if !vecNear(got, tt.expected, 1e-5) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}

			back := tt.pose.InverseTransformPoint(got)
			if !vecNear(back, tt.point, 1e-5) {
				t.Errorf("Round trip should give %v, got %v", tt.point, back)
			}
		})
	}
}

func TestPose_ComposeAndInverse(t *testing.T) {
	a := AxisAnglePose(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0.3, -0.2, 0.9})
	b := AxisAnglePose(mgl32.Vec3{-4, 0, 2}, mgl32.Vec3{1, 1, 0})
	point := mgl32.Vec3{0.5, -1.5, 2}

	composed := a.Compose(b).TransformPoint(point)
	sequential := a.TransformPoint(b.TransformPoint(point))
	if !vecNear(composed, sequential, 1e-5) {
		t.Errorf("Compose should apply other first: %v vs %v", composed, sequential)
	}

	identity := a.Compose(a.Inverse())
	if got := identity.TransformPoint(point); !vecNear(got, point, 1e-5) {
		t.Errorf("Pose composed with its inverse should be identity, got %v", got)
	}
}

func TestPose_NewPoseNormalizesRotation(t *testing.T) {
	pose := NewPose(mgl32.Vec3{}, mgl32.Quat{W: 2})
	if got := pose.Rotation.Len(); Abs(got-1) > 1e-6 {
		t.Errorf("Rotation should be normalized, length %v", got)
	}

	pose = NewPose(mgl32.Vec3{}, mgl32.Quat{})
	if pose.Rotation != mgl32.QuatIdent() {
		t.Errorf("Zero quaternion should fall back to identity, got %v", pose.Rotation)
	}
}

func TestPose_Axes(t *testing.T) {
	pose := AxisAnglePose(mgl32.Vec3{}, mgl32.Vec3{0, 0, math.Pi / 2})
	axes := pose.Axes()

	expected := [3]mgl32.Vec3{{0, 1, 0}, {-1, 0, 0}, {0, 0, 1}}
	for i := range axes {
		if !vecNear(axes[i], expected[i], 1e-5) {
			t.Errorf("Axis %d: expected %v, got %v", i, expected[i], axes[i])
		}
	}
}

func TestPose_IsFinite(t *testing.T) {
	nan := float32(math.NaN())
	if (Pose{Translation: mgl32.Vec3{nan, 0, 0}}).IsFinite() {
		t.Error("NaN translation should not be finite")
	}
	if (Pose{Rotation: mgl32.Quat{W: float32(math.Inf(1))}}).IsFinite() {
		t.Error("Infinite rotation should not be finite")
	}
}

// =============================================================================
// Tolerance Tests
// =============================================================================

func TestTolerance(t *testing.T) {
	tests := []struct {
		scale    float32
		expected float32
	}{
		{0, Epsilon},
		{0.5, Epsilon},
		{-10, Epsilon * 10},
		{1000, Epsilon * 1000},
		{float32(math.NaN()), Epsilon},
	}

	for _, tt := range tests {
		if got := Tolerance(tt.scale); got != tt.expected {
			t.Errorf("Tolerance(%v) = %v, want %v", tt.scale, got, tt.expected)
		}
	}
}
