// Package gjk implements the distance form of the Gilbert-Johnson-Keerthi (GJK) algorithm.
//
// GJK measures the distance between two convex shapes as the distance from the origin to
// their Minkowski difference. It only needs a support mapping for each shape, so it serves
// every pair of convex primitives whose closed-form test would be too involved, and it is
// used as an independent cross-check of the separating axis tests.
//
// The shapes expose float32 support points; the simplex itself is kept in float64 so the
// sub-simplex reductions do not lose the precision the support points carry.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
//   - Ericson: "Real-Time Collision Detection" (2005), chapter 5.1
package gjk

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	maxIterations = 64

	// relativeTolerance stops the iterations once the lower bound on the distance is
	// within this fraction of the upper bound
	relativeTolerance = 1e-6

	// containmentTolerance is the squared length under which the closest point is
	// considered to be the origin itself
	containmentTolerance = 1e-14
)

// Convex is any convex set described by its support mapping: the point of the set
// farthest along a direction. The direction does not need to be normalized.
type Convex interface {
	Support(direction mgl32.Vec3) mgl32.Vec3
}

// Simplex represents a set of 1-4 points in the Minkowski difference space.
// Size progression: 1 point → 2 points (segment) → 3 points (triangle) → 4 points (tetrahedron).
// After each reduction it only keeps the points supporting the closest feature to the origin.
type Simplex struct {
	Points [4]mgl64.Vec3
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

func (s *Simplex) contains(point mgl64.Vec3) bool {
	for i := 0; i < s.Count; i++ {
		if s.Points[i].ApproxEqualThreshold(point, 1e-12) {
			return true
		}
	}
	return false
}

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex{}
	},
}

// MinkowskiSupport computes a support point in the Minkowski difference (A - B).
//
// Returns:
//
//	Support point: furthestPoint(A, direction) - furthestPoint(B, -direction)
func MinkowskiSupport(a, b Convex, direction mgl64.Vec3) mgl64.Vec3 {
	d := mgl32.Vec3{float32(direction[0]), float32(direction[1]), float32(direction[2])}
	supportA := a.Support(d)
	supportB := b.Support(d.Mul(-1))
	return toVec64(supportA).Sub(toVec64(supportB))
}

// Distance returns the Euclidean distance between two convex shapes, 0 when they
// overlap or touch.
//
// Algorithm overview:
//  1. v is the point of the current simplex closest to the origin
//  2. w is the support point of A - B in direction -v
//  3. |v|² - v·w bounds the error on the distance; stop once it is small enough
//  4. Otherwise add w to the simplex and reduce it to the feature closest to the origin
//  5. A full tetrahedron containing the origin means the shapes overlap
func Distance(a, b Convex) float64 {
	simplex := SimplexPool.Get().(*Simplex)
	defer SimplexPool.Put(simplex)

	return DistanceWithSimplex(a, b, simplex)
}

// DistanceWithSimplex is Distance using a caller-provided simplex. The simplex is reset
// first and holds the final reduced simplex on return.
func DistanceWithSimplex(a, b Convex, simplex *Simplex) float64 {
	simplex.Reset()

	v := MinkowskiSupport(a, b, mgl64.Vec3{1, 0, 0})
	simplex.Points[0] = v
	simplex.Count = 1

	vv := v.LenSqr()
	for i := 0; i < maxIterations; i++ {
		if vv <= containmentTolerance {
			return 0
		}

		w := MinkowskiSupport(a, b, v.Mul(-1))

		// Lower bound reached: no point of A - B is closer than the current one
		// by more than the tolerance.
		if vv-v.Dot(w) <= relativeTolerance*vv {
			break
		}
		if simplex.contains(w) {
			break
		}

		simplex.Points[simplex.Count] = w
		simplex.Count++

		closest, inside := reduce(simplex)
		if inside {
			return 0
		}

		closestSqr := closest.LenSqr()
		// No progress: numerical noise dominates, keep the best bound found
		if closestSqr >= vv {
			break
		}
		v, vv = closest, closestSqr
	}

	return math.Sqrt(vv)
}

// Intersects reports whether the distance between a and b is at most margin
func Intersects(a, b Convex, margin float32) bool {
	return Distance(a, b) <= float64(margin)
}

// reduce finds the point of the simplex closest to the origin and drops the
// vertices that do not support it.
//
// Behavior by simplex dimension:
//   - 2 points (segment): vertex or interior of the segment
//   - 3 points (triangle): vertex, edge or face region
//   - 4 points (tetrahedron): closest face the origin lies outside of, or containment
//
// Returns inside = true when the origin lies within a full tetrahedron.
func reduce(simplex *Simplex) (mgl64.Vec3, bool) {
	switch simplex.Count {
	case 1:
		return simplex.Points[0], false
	case 2:
		return segment(simplex), false
	case 3:
		return triangle(simplex), false
	case 4:
		return tetrahedron(simplex)
	}
	return mgl64.Vec3{}, false
}

func setSimplex(simplex *Simplex, points ...mgl64.Vec3) {
	simplex.Count = copy(simplex.Points[:], points)
}

// segment handles the two points case (A, B).
func segment(simplex *Simplex) mgl64.Vec3 {
	a := simplex.Points[0]
	b := simplex.Points[1]
	ab := b.Sub(a)

	denominator := ab.LenSqr()
	// Identical points
	if denominator == 0 {
		setSimplex(simplex, a)
		return a
	}

	t := -a.Dot(ab) / denominator
	if t <= 0 {
		setSimplex(simplex, a)
		return a
	}
	if t >= 1 {
		setSimplex(simplex, b)
		return b
	}

	return a.Add(ab.Mul(t))
}

// triangle handles the three points case (A, B, C) with the Voronoi region
// classification of Ericson's closest point on triangle.
//
// Degenerate case: collinear points are reduced to the closest of the three edges.
func triangle(simplex *Simplex) mgl64.Vec3 {
	a := simplex.Points[0]
	b := simplex.Points[1]
	c := simplex.Points[2]

	ab := b.Sub(a)
	ac := c.Sub(a)
	if ab.Cross(ac).LenSqr() <= 1e-24*ab.LenSqr()*ac.LenSqr() {
		return degenerateTriangle(simplex, a, b, c)
	}

	ap := a.Mul(-1)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	// Vertex region A
	if d1 <= 0 && d2 <= 0 {
		setSimplex(simplex, a)
		return a
	}

	bp := b.Mul(-1)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	// Vertex region B
	if d3 >= 0 && d4 <= d3 {
		setSimplex(simplex, b)
		return b
	}

	// Edge region AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		setSimplex(simplex, a, b)
		return a.Add(ab.Mul(v))
	}

	cp := c.Mul(-1)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	// Vertex region C
	if d6 >= 0 && d5 <= d6 {
		setSimplex(simplex, c)
		return c
	}

	// Edge region AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		setSimplex(simplex, a, c)
		return a.Add(ac.Mul(w))
	}

	// Edge region BC
	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		setSimplex(simplex, b, c)
		return b.Add(c.Sub(b).Mul(w))
	}

	// Face region
	denominator := 1 / (va + vb + vc)
	v := vb * denominator
	w := vc * denominator
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

func degenerateTriangle(simplex *Simplex, a, b, c mgl64.Vec3) mgl64.Vec3 {
	var best mgl64.Vec3
	var bestSimplex Simplex
	bestDistance := math.Inf(1)

	for _, pair := range [3][2]mgl64.Vec3{{a, b}, {b, c}, {a, c}} {
		candidate := Simplex{Points: [4]mgl64.Vec3{pair[0], pair[1]}, Count: 2}
		point := segment(&candidate)
		if d := point.LenSqr(); d < bestDistance {
			best, bestDistance, bestSimplex = point, d, candidate
		}
	}

	*simplex = bestSimplex
	return best
}

// tetrahedron handles the four points case.
//
// Each face the origin lies outside of (on the opposite side from the fourth vertex)
// is tested with the triangle case and the closest result is kept. When the origin
// is outside no face it is contained in the tetrahedron.
// A flat tetrahedron has every face tested, its faces covering its hull.
func tetrahedron(simplex *Simplex) (mgl64.Vec3, bool) {
	p := simplex.Points
	faces := [4][4]mgl64.Vec3{
		{p[0], p[1], p[2], p[3]},
		{p[0], p[2], p[3], p[1]},
		{p[0], p[3], p[1], p[2]},
		{p[1], p[3], p[2], p[0]},
	}

	var best mgl64.Vec3
	var bestSimplex Simplex
	bestDistance := math.Inf(1)
	outside := false

	for _, face := range faces {
		if !originOutsideFace(face[0], face[1], face[2], face[3]) {
			continue
		}
		outside = true

		candidate := Simplex{Points: [4]mgl64.Vec3{face[0], face[1], face[2]}, Count: 3}
		point := triangle(&candidate)
		if d := point.LenSqr(); d < bestDistance {
			best, bestDistance, bestSimplex = point, d, candidate
		}
	}

	if !outside {
		return mgl64.Vec3{}, true
	}

	*simplex = bestSimplex
	return best, false
}

// originOutsideFace reports whether the origin and d lie on different sides of the
// plane through a, b, c, or whether the tetrahedron is too flat to tell.
func originOutsideFace(a, b, c, d mgl64.Vec3) bool {
	normal := b.Sub(a).Cross(c.Sub(a))
	signOrigin := normal.Dot(a.Mul(-1))
	signD := normal.Dot(d.Sub(a))

	if math.Abs(signD) <= 1e-12*normal.Len()*d.Sub(a).Len() {
		return true
	}
	return signOrigin*signD <= 0
}

func toVec64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}
