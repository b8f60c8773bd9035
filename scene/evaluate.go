package scene

import (
	"fmt"
	"math"

	"github.com/akmonengine/overlap"
	"github.com/akmonengine/overlap/shape"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

const (
	DEFAULT_WORKERS   = 1
	DEFAULT_CELL_SIZE = 4
	DEFAULT_NUM_CELLS = 1024
)

type Options struct {
	// Workers evaluating the queries concurrently
	Workers int
	// CellSize of the broad phase grid; 0 tests every pair exactly
	CellSize float32
	// MaxT is the ceiling of the rays that do not set one
	MaxT float32
}

func DefaultOptions() Options {
	return Options{
		Workers:  DEFAULT_WORKERS,
		CellSize: DEFAULT_CELL_SIZE,
		MaxT:     math.MaxFloat32,
	}
}

// PairResult is the outcome of one unordered shape pair, A listed first in
// the scene. Culled pairs were rejected by the broad phase.
type PairResult struct {
	A, B       string
	Intersects bool
	Culled     bool
}

type PointResult struct {
	Point  string
	Shape  string
	Inside bool
}

type RayResult struct {
	Ray   string
	Shape string
	Hit   bool
}

type Report struct {
	Pairs  []PairResult
	Points []PointResult
	Rays   []RayResult
}

type Summary struct {
	Pairs        int
	Intersecting int
	Culled       int
	PointsInside int
	RayHits      int
}

// Evaluate runs every pair, point and ray query of the scene. The results
// are listed in scene order whatever the number of workers.
func (s *Scene) Evaluate(logger *log.Logger, options Options) Report {
	return NewEvaluator(logger, options).Evaluate(s)
}

// Evaluator evaluates successive scenes with the same options and reuses its
// broad phase grid between them. It is not safe for concurrent use.
type Evaluator struct {
	logger  *log.Logger
	options Options
	grid    *SpatialGrid
}

func NewEvaluator(logger *log.Logger, options Options) *Evaluator {
	if logger == nil {
		logger = log.Default()
	}

	e := &Evaluator{logger: logger, options: options}
	if options.CellSize > 0 {
		e.grid = NewSpatialGrid(options.CellSize, DEFAULT_NUM_CELLS)
	}
	return e
}

// Evaluate runs every pair, point and ray query of s
func (e *Evaluator) Evaluate(s *Scene) Report {
	shapes := lo.Map(s.Shapes, func(entry Entry, _ int) shape.Shape { return entry.Shape })
	report := Report{
		Pairs:  s.evaluatePairs(shapes, e.broadPhase(shapes), e.options),
		Points: s.evaluatePoints(e.options),
		Rays:   s.evaluateRays(e.options),
	}

	for _, p := range report.Pairs {
		e.logger.Debug("pair", "a", p.A, "b", p.B, "intersects", p.Intersects, "culled", p.Culled)
	}
	for _, p := range report.Points {
		e.logger.Debug("point", "point", p.Point, "shape", p.Shape, "inside", p.Inside)
	}
	for _, r := range report.Rays {
		e.logger.Debug("ray", "ray", r.Ray, "shape", r.Shape, "hit", r.Hit)
	}

	summary := report.Summary()
	e.logger.Info("scene evaluated",
		"shapes", len(s.Shapes),
		"pairs", summary.Pairs,
		"intersecting", summary.Intersecting,
		"culled", summary.Culled,
		"points_inside", summary.PointsInside,
		"ray_hits", summary.RayHits,
	)
	return report
}

// broadPhase returns the pairs worth an exact test: those of overlapping
// bounds, or all of them without a grid
func (e *Evaluator) broadPhase(shapes []shape.Shape) []Pair {
	if e.grid == nil {
		pairs := make([]Pair, 0, len(shapes)*(len(shapes)-1)/2)
		for i := range shapes {
			for j := i + 1; j < len(shapes); j++ {
				pairs = append(pairs, Pair{A: i, B: j})
			}
		}
		return pairs
	}

	e.grid.Clear()
	for i, s := range shapes {
		e.grid.Insert(i, s)
	}
	return e.grid.FindPairs(shapes)
}

// pairIndex is the position of the pair (i, j), i < j, in the upper
// triangle of an n x n matrix read row by row
func pairIndex(i, j, n int) int {
	return i*n - i*(i+1)/2 + (j - i - 1)
}

func (s *Scene) evaluatePairs(shapes []shape.Shape, candidates []Pair, options Options) []PairResult {
	n := len(shapes)
	results := make([]PairResult, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			results = append(results, PairResult{A: s.Shapes[i].Name, B: s.Shapes[j].Name, Culled: true})
		}
	}

	task(options.Workers, candidates, func(pair Pair) {
		result := &results[pairIndex(pair.A, pair.B, n)]
		result.Culled = false
		result.Intersects = overlap.Intersects(shapes[pair.A], shapes[pair.B])
	})
	return results
}

func (s *Scene) evaluatePoints(options Options) []PointResult {
	results := make([]PointResult, 0, len(s.Points)*len(s.Shapes))
	for _, p := range s.Points {
		for _, e := range s.Shapes {
			results = append(results, PointResult{Point: p.Name, Shape: e.Name})
		}
	}

	task(options.Workers, lo.Range(len(results)), func(i int) {
		p := s.Points[i/len(s.Shapes)]
		e := s.Shapes[i%len(s.Shapes)]
		results[i].Inside = overlap.PointIn(p.Position, e.Shape)
	})
	return results
}

func (s *Scene) evaluateRays(options Options) []RayResult {
	results := make([]RayResult, 0, len(s.Rays)*len(s.Shapes))
	for _, r := range s.Rays {
		for _, e := range s.Shapes {
			results = append(results, RayResult{Ray: r.Name, Shape: e.Name})
		}
	}

	task(options.Workers, lo.Range(len(results)), func(i int) {
		r := s.Rays[i/len(s.Shapes)]
		e := s.Shapes[i%len(s.Shapes)]

		if r.Line {
			results[i].Hit = overlap.LineIntersects(r.Ray, e.Shape)
			return
		}

		maxT := options.MaxT
		if r.MaxT != nil {
			maxT = *r.MaxT
		}
		results[i].Hit = overlap.RayIntersects(r.Ray, e.Shape, maxT)
	})
	return results
}

// Hits keeps the intersecting pairs, the points inside a shape and the rays
// hitting one
func (r Report) Hits() Report {
	return Report{
		Pairs:  lo.Filter(r.Pairs, func(p PairResult, _ int) bool { return p.Intersects }),
		Points: lo.Filter(r.Points, func(p PointResult, _ int) bool { return p.Inside }),
		Rays:   lo.Filter(r.Rays, func(ray RayResult, _ int) bool { return ray.Hit }),
	}
}

func (r Report) Summary() Summary {
	return Summary{
		Pairs:        len(r.Pairs),
		Intersecting: lo.CountBy(r.Pairs, func(p PairResult) bool { return p.Intersects }),
		Culled:       lo.CountBy(r.Pairs, func(p PairResult) bool { return p.Culled }),
		PointsInside: lo.CountBy(r.Points, func(p PointResult) bool { return p.Inside }),
		RayHits:      lo.CountBy(r.Rays, func(ray RayResult) bool { return ray.Hit }),
	}
}

// Lines renders one line per result
func (r Report) Lines() []string {
	lines := lo.Map(r.Pairs, func(p PairResult, _ int) string {
		return fmt.Sprintf("pair  %s / %s: %v", p.A, p.B, p.Intersects)
	})
	lines = append(lines, lo.Map(r.Points, func(p PointResult, _ int) string {
		return fmt.Sprintf("point %s in %s: %v", p.Point, p.Shape, p.Inside)
	})...)
	lines = append(lines, lo.Map(r.Rays, func(ray RayResult, _ int) string {
		return fmt.Sprintf("ray   %s on %s: %v", ray.Ray, ray.Shape, ray.Hit)
	})...)
	return lines
}
