// Package occgrid defines cell states, connectivity, sentinel errors and the
// read-only query interface of the occupancy grid.
package occgrid

import (
	"errors"
)

// Sentinel errors for occgrid operations.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("occgrid: grid must have at least one row and one column")

	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("occgrid: all rows must have the same length")

	// ErrOutOfBounds indicates a write outside [0,W)×[0,H).
	ErrOutOfBounds = errors.New("occgrid: coordinate out of bounds")

	// ErrBadRune indicates an ASCII map character with no cell state.
	ErrBadRune = errors.New("occgrid: unknown map character")

	// ErrBadState indicates a CellState value outside the defined set.
	ErrBadState = errors.New("occgrid: invalid cell state")
)

// CellState is what the robot currently knows about one cell.
// The zero value is Unknown, so a freshly allocated grid is fully unexplored.
type CellState uint8

const (
	// Unknown cells have never been observed.
	Unknown CellState = iota
	// Seen cells were observed as free space by a range sweep.
	Seen
	// Driven cells were occupied by the robot at some point.
	Driven
	// Wall cells are permanent obstacles.
	Wall
)

// String returns a lower-case name for s.
func (s CellState) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Seen:
		return "seen"
	case Driven:
		return "driven"
	case Wall:
		return "wall"
	default:
		return "invalid"
	}
}

// Charted reports whether s is known free space (seen or driven over).
func (s CellState) Charted() bool {
	return s == Seen || s == Driven
}

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// offsets returns the neighbor offsets for c.
func (c Connectivity) offsets() [][2]int {
	if c == Conn8 {
		return [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	}
	return [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
}

// Querier is the read-only view of a grid consumed by frontier searches.
//
// Implementations must be free of side effects and must answer false for
// any coordinate outside [0,Width())×[0,Height()). A cell that is neither
// a wall nor charted is unknown.
type Querier interface {
	Width() int
	Height() int
	IsWall(x, y int) bool
	IsCharted(x, y int) bool
}

// Counts holds per-state cell totals of a grid.
type Counts struct {
	Unknown, Seen, Driven, Wall int
}

// Charted returns the number of known free cells.
func (c Counts) Charted() int { return c.Seen + c.Driven }

// Pocket is a connected region of unknown cells.
// Cells are row-major indices in discovery order.
type Pocket struct {
	Cells []int
}

// Size returns the number of cells in the pocket.
func (p Pocket) Size() int { return len(p.Cells) }
