package overlap

import (
	"math"

	"github.com/akmonengine/overlap/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// lineLength is the ray ceiling used by line queries in each direction
const lineLength = math.MaxFloat32

// tolerance returns the boundary tolerance for quantities of the magnitude of
// the largest absolute value given
func tolerance(magnitudes ...float32) float32 {
	var scale float32
	for _, m := range magnitudes {
		scale = max(scale, shape.Abs(m))
	}
	return shape.Tolerance(scale)
}

func validScalar(x float32) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}

func clamp(x, lo, hi float32) float32 {
	return max(lo, min(x, hi))
}

func clampVec(v, lo, hi mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		clamp(v[0], lo[0], hi[0]),
		clamp(v[1], lo[1], hi[1]),
		clamp(v[2], lo[2], hi[2]),
	}
}

// closestPointOnSegment returns the point of [a, b] closest to p
func closestPointOnSegment(p, a, b mgl32.Vec3) mgl32.Vec3 {
	ab := b.Sub(a)
	denominator := ab.LenSqr()
	if denominator == 0 {
		return a
	}
	t := clamp(p.Sub(a).Dot(ab)/denominator, 0, 1)
	return a.Add(ab.Mul(t))
}

// closestPointOnTriangle returns the point of triangle abc closest to p.
// Zero-area triangles fall back to the closest of their three edges.
func closestPointOnTriangle(p, a, b, c mgl32.Vec3) mgl32.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)

	if ab.Cross(ac).LenSqr() <= shape.Epsilon*shape.Epsilon*ab.LenSqr()*ac.LenSqr() {
		best := closestPointOnSegment(p, a, b)
		for _, candidate := range []mgl32.Vec3{closestPointOnSegment(p, b, c), closestPointOnSegment(p, a, c)} {
			if candidate.Sub(p).LenSqr() < best.Sub(p).LenSqr() {
				best = candidate
			}
		}
		return best
	}

	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return a.Add(ab.Mul(d1 / (d1 - d3)))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return a.Add(ac.Mul(d2 / (d2 - d6)))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	denominator := 1 / (va + vb + vc)
	return a.Add(ab.Mul(vb * denominator)).Add(ac.Mul(vc * denominator))
}
