package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the relative tolerance used by every boundary comparison of the
// kernel. It is a few ULPs of a float32 around 1.
const Epsilon float32 = 1e-6

// Tolerance scales Epsilon to the magnitude of the quantities being compared.
// Magnitudes below 1 use the absolute Epsilon.
func Tolerance(scale float32) float32 {
	scale = Abs(scale)
	if scale < 1 || !finiteScalar(scale) {
		return Epsilon
	}
	return Epsilon * scale
}

// Abs returns |x| for a float32
func Abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

// Sqrt returns the square root of a float32
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// MaxAbs returns the largest absolute component of v
func MaxAbs(v mgl32.Vec3) float32 {
	return max(Abs(v[0]), Abs(v[1]), Abs(v[2]))
}

// IsFinite reports whether every component of every vector is finite
func IsFinite(vectors ...mgl32.Vec3) bool {
	for _, v := range vectors {
		if !finite(v) {
			return false
		}
	}
	return true
}

func finite(v mgl32.Vec3) bool {
	return finiteScalar(v[0]) && finiteScalar(v[1]) && finiteScalar(v[2])
}

func finiteScalar(x float32) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}

func nonNegative(v mgl32.Vec3) bool {
	return v[0] >= 0 && v[1] >= 0 && v[2] >= 0
}

func componentMin(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])}
}

func componentMax(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])}
}

func signOf(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}
