package overlap

import (
	"math"
	"testing"

	"github.com/akmonengine/overlap/gjk"
	"github.com/akmonengine/overlap/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// Test helper functions

func unitTriangle(pose shape.Pose) shape.Triangle {
	return shape.Triangle{
		A:    mgl32.Vec3{0, 0, 0},
		B:    mgl32.Vec3{1, 0, 0},
		C:    mgl32.Vec3{0, 1, 0},
		Pose: pose,
	}
}

func upPlane(pose shape.Pose) shape.Plane {
	return shape.Plane{Normal: mgl32.Vec3{0, 1, 0}, Pose: pose}
}

func unitSphere(pose shape.Pose) shape.Sphere {
	return shape.Sphere{Radius: 1, Pose: pose}
}

func rotation(x, y, z float32) shape.Pose {
	return shape.AxisAnglePose(mgl32.Vec3{}, mgl32.Vec3{x, y, z})
}

// createFrustum builds the near/far quad pair used by the reference vectors:
// a near face at z=0 and a larger far face at z=-5.
func createFrustum(t testing.TB, pose shape.Pose) shape.Frustum {
	t.Helper()

	points := []mgl32.Vec3{
		{2, 1, 0}, {-2, 1, 0}, {-2, -1, 0}, {2, -1, 0},
		{3, 2, -5}, {-3, 2, -5}, {-3, -2, -5}, {3, -2, -5},
	}
	faces := [][3]int{
		{0, 1, 2}, {2, 3, 0},
		{4, 5, 6}, {6, 7, 4},
		{0, 1, 5}, {5, 4, 0},
		{3, 2, 6}, {6, 7, 3},
		{1, 5, 6}, {6, 2, 1},
		{0, 4, 7}, {7, 3, 0},
	}

	frustum, err := shape.FrustumFromConvexMesh(points, faces, pose)
	if err != nil {
		t.Fatalf("Failed to build frustum: %v", err)
	}
	return frustum
}

// sampleShapes returns one shape of each kind, placed around the origin
func sampleShapes(t testing.TB) []shape.Shape {
	return []shape.Shape{
		shape.NewSphere(mgl32.Vec3{0.5, 0, 0}, 1),
		shape.NewAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{0, 1, 0.5}),
		shape.NewOBBAxisAngle(mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{0.3, 0.2, 0.1}, mgl32.Vec3{1, 0.5, 0.5}),
		upPlane(shape.TranslationPose(0, 0.25, 0)),
		unitTriangle(rotation(0.4, 0, 0)),
		createFrustum(t, shape.TranslationPose(0, 0, 1)),
	}
}

// =============================================================================
// Dispatcher Tests
// =============================================================================

func TestIntersects_EveryPairIsRegistered(t *testing.T) {
	for a := 0; a < shape.KindCount; a++ {
		for b := 0; b < shape.KindCount; b++ {
			if pairTests[a][b] == nil {
				t.Errorf("No test registered for %v - %v", shape.Kind(a), shape.Kind(b))
			}
		}
	}
}

func TestIntersects_Symmetry(t *testing.T) {
	shapes := sampleShapes(t)
	offsets := []mgl32.Vec3{{0, 0, 0}, {1.5, 0, 0}, {0, 2, -1}, {3, 3, 3}, {-0.5, -2, 4}}

	for _, a := range shapes {
		for _, b := range shapes {
			for _, offset := range offsets {
				moved := translate(b, offset)
				if Intersects(a, moved) != Intersects(moved, a) {
					t.Errorf("%v - %v at offset %v is not symmetric", a.Kind(), b.Kind(), offset)
				}
			}
		}
	}
}

func TestIntersects_TranslationInvariance(t *testing.T) {
	shapes := sampleShapes(t)
	shift := mgl32.Vec3{10, -20, 5}

	for _, a := range shapes {
		for _, b := range shapes {
			before := Intersects(a, b)
			after := Intersects(translate(a, shift), translate(b, shift))
			if before != after {
				t.Errorf("%v - %v changed from %v to %v after translation", a.Kind(), b.Kind(), before, after)
			}
		}
	}
}

func TestIntersects_MonotonicSeparation(t *testing.T) {
	shapes := sampleShapes(t)
	direction := mgl32.Vec3{0.6, 0.3, 0.74}.Normalize()

	for _, a := range shapes {
		for _, b := range shapes {
			// Planes are unbounded: moving along a direction crossing them never separates
			if a.Kind() == shape.KindPlane || b.Kind() == shape.KindPlane {
				continue
			}

			separated := false
			for step := 0; step <= 60; step++ {
				moved := translate(b, direction.Mul(float32(step)*0.25))
				hit := Intersects(a, moved)
				if separated && hit {
					t.Errorf("%v - %v intersect again at step %d", a.Kind(), b.Kind(), step)
					break
				}
				if !hit {
					separated = true
				}
			}
			if !separated {
				t.Errorf("%v - %v never separated", a.Kind(), b.Kind())
			}
		}
	}
}

func TestIntersects_Pointers(t *testing.T) {
	sphere := shape.NewSphere(mgl32.Vec3{}, 1)
	box := shape.NewAABB(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{2, 2, 2})

	if !Intersects(&sphere, &box) {
		t.Error("Pointers to shapes should dispatch like values")
	}

	var missing *shape.Sphere
	if Intersects(missing, box) {
		t.Error("Nil shape should not intersect")
	}
	if Intersects(nil, box) {
		t.Error("Nil interface should not intersect")
	}
}

func TestIntersects_InvalidInput(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	valid := shape.NewSphere(mgl32.Vec3{}, 1)

	invalid := []shape.Shape{
		shape.NewSphere(mgl32.Vec3{nan, 0, 0}, 1),
		shape.NewSphere(mgl32.Vec3{}, -1),
		shape.NewAABB(mgl32.Vec3{inf, 0, 0}, mgl32.Vec3{1, 1, 1}),
		shape.NewOBB(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, -1, 1}),
		shape.Plane{Normal: mgl32.Vec3{}},
		shape.NewTriangle(mgl32.Vec3{nan, nan, nan}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}),
		shape.Frustum{},
	}

	for _, s := range invalid {
		if Intersects(valid, s) || Intersects(s, valid) {
			t.Errorf("Invalid %v should never intersect", s.Kind())
		}
	}
}

// Cross-check every box and polytope pair decided by SAT against the GJK distance
func TestIntersects_SATAgreesWithGJK(t *testing.T) {
	convex := []shape.Shape{
		shape.NewAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 0.5, 1}),
		shape.NewOBBAxisAngle(mgl32.Vec3{}, mgl32.Vec3{0.7, -0.4, 0.2}, mgl32.Vec3{1, 0.5, 0.75}),
		unitTriangle(rotation(0.3, 0.9, 0)),
		createFrustum(t, rotation(0, 0.5, 0.2)),
	}
	offsets := []mgl32.Vec3{
		{0, 0, 0}, {1.2, 0.4, 0}, {2.1, 0, 0.3}, {0, 2.5, 0}, {1.5, 1.5, 1.5},
		{-3, 0.2, -1}, {0.3, -1.8, 2.2}, {4, 4, -4},
	}

	for _, a := range convex {
		for _, b := range convex {
			for _, offset := range offsets {
				moved := translate(b, offset)
				distance := gjk.Distance(a.(gjk.Convex), moved.(gjk.Convex))

				// Skip configurations too close to contact for both methods to agree
				if distance > 0 && distance < 1e-3 {
					continue
				}
				expected := distance == 0
				if got := Intersects(a, moved); got != expected {
					t.Errorf("%v - %v at %v: SAT says %v, GJK distance %v", a.Kind(), b.Kind(), offset, got, distance)
				}
			}
		}
	}
}

func translate(s shape.Shape, offset mgl32.Vec3) shape.Shape {
	switch v := s.(type) {
	case shape.Sphere:
		v.Pose = v.Pose.Translated(offset)
		return v
	case shape.AABB:
		return v.Translated(offset)
	case shape.OBB:
		v.Pose = v.Pose.Translated(offset)
		return v
	case shape.Plane:
		v.Pose = v.Pose.Translated(offset)
		return v
	case shape.Triangle:
		v.Pose = v.Pose.Translated(offset)
		return v
	case shape.Frustum:
		v.Pose = v.Pose.Translated(offset)
		return v
	}
	return s
}

// =============================================================================
// Point, ray and line dispatch
// =============================================================================

func TestPointIn_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		shape    shape.Shape
		point    mgl32.Vec3
		expected bool
	}{
		{"sphere", shape.NewSphere(mgl32.Vec3{}, 2), mgl32.Vec3{0, 2, 0}, true},
		{"aabb", shape.NewAABB(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}), mgl32.Vec3{0, 0, 0}, true},
		{"obb", shape.NewOBBAxisAngle(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}), mgl32.Vec3{}, true},
		{"plane", upPlane(shape.IdentityPose()), mgl32.Vec3{4, 0, -3}, true},
		{"triangle", unitTriangle(shape.IdentityPose()), mgl32.Vec3{2, 2, 0}, false},
		{"frustum", createFrustum(t, shape.IdentityPose()), mgl32.Vec3{0, 0, -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointIn(tt.point, tt.shape); got != tt.expected {
				t.Errorf("PointIn(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestRayIntersects_Dispatch(t *testing.T) {
	ray := shape.NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})

	for _, s := range sampleShapes(t) {
		if s.Kind() == shape.KindPlane {
			continue
		}
		if !RayIntersects(ray, s, 100) {
			t.Errorf("Ray down the Z axis should hit the sample %v", s.Kind())
		}
		if RayIntersects(ray, s, 0) && !PointIn(ray.Origin, s) {
			t.Errorf("Zero length ray should only hit the %v containing its origin", s.Kind())
		}
	}
}

func TestLineIntersects_Dispatch(t *testing.T) {
	// Pointing away from every sample: only the line form reaches them
	line := shape.NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1})

	for _, s := range sampleShapes(t) {
		if s.Kind() == shape.KindPlane {
			continue
		}
		if RayIntersects(line, s, lineLength) {
			t.Errorf("Ray pointing away should miss the sample %v", s.Kind())
		}
		if !LineIntersects(line, s) {
			t.Errorf("Line should hit the sample %v", s.Kind())
		}
	}
}
