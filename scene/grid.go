package scene

import (
	"math"
	"sort"

	"github.com/akmonengine/overlap/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// maxCellsPerShape bounds the cells a single shape is inserted in. Larger
// shapes are kept with the unbounded ones and paired with everything.
const maxCellsPerShape = 4096

// CellKey - coordinates of a cell in 3D space
type CellKey struct {
	X, Y, Z int
}

// Cell - shape indices stored in one hashed cell
type Cell struct {
	indices []int
}

// Pair - indices of two shapes whose bounds overlap, A < B
type Pair struct {
	A, B int
}

// SpatialGrid - uniform hashed grid used as broad phase before the exact tests
type SpatialGrid struct {
	cellSize float32
	cells    []Cell
	cellMask int

	// planes holds the shapes without finite bounds
	planes Cell
}

// NewSpatialGrid - creates a grid of numCells hashed cells, rounded up to a
// power of two
func NewSpatialGrid(cellSize float32, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].indices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - inserts a shape in every cell its bounds cover
func (sg *SpatialGrid) Insert(index int, s shape.Shape) {
	minCell, maxCell, ok := sg.cellRange(s)
	if !ok {
		sg.planes.indices = append(sg.planes.indices, index)
		return
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})
				sg.cells[cellIdx].indices = append(sg.cells[cellIdx].indices, index)
			}
		}
	}
}

// Clear - empties every cell, keeping their storage for the next scene
func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].indices = sg.cells[i].indices[:0]
	}
	sg.planes.indices = sg.planes.indices[:0]
}

// FindPairs - lists the pairs of shapes whose bounds overlap, sorted by
// (A, B). Every shape inserted as unbounded is paired with all the others.
// The shapes must have been inserted with their index in the slice.
func (sg *SpatialGrid) FindPairs(shapes []shape.Shape) []Pair {
	pairs := make([]Pair, 0, len(shapes)/2)
	seen := make([]bool, len(shapes))
	unbounded := make([]bool, len(shapes))
	for _, idx := range sg.planes.indices {
		unbounded[idx] = true
	}

	for idx := range shapes {
		clear(seen)

		if unbounded[idx] {
			for other := idx + 1; other < len(shapes); other++ {
				pairs = append(pairs, Pair{A: idx, B: other})
			}
			continue
		}

		for _, other := range sg.planes.indices {
			if other > idx {
				seen[other] = true
				pairs = append(pairs, Pair{A: idx, B: other})
			}
		}

		boundsA, _ := shape.Bounds(shapes[idx])
		minCell, maxCell, _ := sg.cellRange(shapes[idx])

		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				for z := minCell.Z; z <= maxCell.Z; z++ {
					cellIdx := sg.hashCell(CellKey{x, y, z})

					for _, other := range sg.cells[cellIdx].indices {
						// Keeps a single (A, B) with A < B, hash collisions included
						if other <= idx || seen[other] {
							continue
						}
						seen[other] = true

						boundsB, _ := shape.Bounds(shapes[other])
						if boundsA.Overlaps(boundsB) {
							pairs = append(pairs, Pair{A: idx, B: other})
						}
					}
				}
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}

// cellRange returns the cells covered by the bounds of s, false when s has
// no finite bounds or covers too many cells
func (sg *SpatialGrid) cellRange(s shape.Shape) (CellKey, CellKey, bool) {
	bounds, ok := shape.Bounds(s)
	if !ok {
		return CellKey{}, CellKey{}, false
	}

	lo, hi := bounds.Min(), bounds.Max()
	limit := float32(math.MaxInt32) * sg.cellSize
	if shape.MaxAbs(lo) >= limit || shape.MaxAbs(hi) >= limit {
		return CellKey{}, CellKey{}, false
	}

	minCell, maxCell := sg.worldToCell(lo), sg.worldToCell(hi)
	dx, dy, dz := maxCell.X-minCell.X+1, maxCell.Y-minCell.Y+1, maxCell.Z-minCell.Z+1
	if max(dx, dy, dz) > maxCellsPerShape || dx*dy*dz > maxCellsPerShape {
		return CellKey{}, CellKey{}, false
	}
	return minCell, maxCell, true
}

// worldToCell - converts a world position to cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl32.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(float64(pos.X() / sg.cellSize))),
		Y: int(math.Floor(float64(pos.Y() / sg.cellSize))),
		Z: int(math.Floor(float64(pos.Z() / sg.cellSize))),
	}
}

// hashCell - hashes a cell to an index of the cell array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
