// Package occgrid stores the robot's occupancy grid: a fixed W×H raster in
// which every cell is unknown, seen, driven over, or a wall.
package occgrid

import (
	"fmt"
)

// Grid is a row-major occupancy grid. The zero value is not usable; build
// grids with New, FromStates or Parse.
//
// Grid is not safe for concurrent mutation. Concurrent reads are safe as
// long as no writer runs at the same time (see explore.Session for a
// locked wrapper, or Clone for a snapshot).
type Grid struct {
	w, h  int
	cells []CellState
}

var _ Querier = (*Grid)(nil)

// New returns a w×h grid with every cell Unknown.
// Returns ErrEmptyGrid if either dimension is not positive.
// Complexity: O(W×H) time and memory.
func New(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyGrid
	}
	return &Grid{w: w, h: h, cells: make([]CellState, w*h)}, nil
}

// FromStates constructs a Grid from a non-empty, rectangular 2D slice
// indexed [y][x]. The input is copied.
// Returns ErrEmptyGrid, ErrNonRectangular or ErrBadState.
func FromStates(rows [][]CellState) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	g := &Grid{w: w, h: h, cells: make([]CellState, 0, w*h)}
	for y, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		for x, s := range row {
			if s > Wall {
				return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrBadState, s, x, y)
			}
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// State returns the state of (x,y), or Unknown outside the grid.
func (g *Grid) State(x, y int) CellState {
	if !g.InBounds(x, y) {
		return Unknown
	}
	return g.cells[g.index(x, y)]
}

// Set overwrites the state of (x,y) unconditionally.
func (g *Grid) Set(x, y int, s CellState) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, g.w, g.h)
	}
	if s > Wall {
		return fmt.Errorf("%w: %d", ErrBadState, s)
	}
	g.cells[g.index(x, y)] = s
	return nil
}

// IsWall reports whether (x,y) is a wall. False outside the grid.
func (g *Grid) IsWall(x, y int) bool {
	return g.State(x, y) == Wall
}

// IsCharted reports whether (x,y) is seen or driven over. False outside the grid.
func (g *Grid) IsCharted(x, y int) bool {
	return g.State(x, y).Charted()
}

// IsUnknown reports whether (x,y) is inside the grid and neither wall nor charted.
func (g *Grid) IsUnknown(x, y int) bool {
	return g.InBounds(x, y) && g.cells[g.index(x, y)] == Unknown
}

// MarkWall turns (x,y) into a wall, whatever it was before.
// Out-of-bounds coordinates are ignored; the return value reports whether
// the cell changed.
func (g *Grid) MarkWall(x, y int) bool {
	return g.mark(x, y, Wall, func(CellState) bool { return true })
}

// MarkSeen records free space at (x,y). Walls and driven cells are kept.
func (g *Grid) MarkSeen(x, y int) bool {
	return g.mark(x, y, Seen, func(old CellState) bool { return old == Unknown })
}

// MarkDriven records that the robot occupied (x,y). Walls are kept.
func (g *Grid) MarkDriven(x, y int) bool {
	return g.mark(x, y, Driven, func(old CellState) bool { return old != Wall })
}

func (g *Grid) mark(x, y int, s CellState, allowed func(CellState) bool) bool {
	if !g.InBounds(x, y) {
		return false
	}
	i := g.index(x, y)
	if old := g.cells[i]; old == s || !allowed(old) {
		return false
	}
	g.cells[i] = s
	return true
}

// Clone returns a deep copy of g.
// Complexity: O(W×H).
func (g *Grid) Clone() *Grid {
	cells := make([]CellState, len(g.cells))
	copy(cells, g.cells)
	return &Grid{w: g.w, h: g.h, cells: cells}
}

// Counts tallies cells per state.
// Complexity: O(W×H).
func (g *Grid) Counts() Counts {
	var c Counts
	for _, s := range g.cells {
		switch s {
		case Unknown:
			c.Unknown++
		case Seen:
			c.Seen++
		case Driven:
			c.Driven++
		case Wall:
			c.Wall++
		}
	}
	return c
}

// index maps (x,y) to a row-major index: y*Width + x.
func (g *Grid) index(x, y int) int {
	return y*g.w + x
}

// Coordinate converts a row-major index back to (x,y).
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) (x, y int) {
	return idx % g.w, idx / g.w
}
