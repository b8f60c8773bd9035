package shape

import "github.com/pkg/errors"

// Construction errors reported by NewConvexPolyhedron. They are wrapped with
// the offending index; test them with errors.Is.
var (
	ErrTooFewPoints      = errors.New("convex mesh needs at least 4 points")
	ErrTooFewFaces       = errors.New("convex mesh needs at least 4 triangles")
	ErrIndexOutOfRange   = errors.New("face index out of range")
	ErrInvalidCoordinate = errors.New("point coordinate is not finite")
	ErrDegenerateFace    = errors.New("face has zero area")
	ErrFlat              = errors.New("points are coplanar")
	ErrNotClosed         = errors.New("mesh is not a closed manifold")
	ErrNotConvex         = errors.New("mesh is not convex")
)
