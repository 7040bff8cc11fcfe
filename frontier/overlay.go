package frontier

import (
	"github.com/katalvlaran/frontier/occgrid"
)

// overlay is the per-run "visited" layer. It is kept apart from the grid so
// that a charted cell can still be unvisited in the current search.
type overlay struct {
	grid    occgrid.Querier
	w, h    int
	visited []bool
	marked  int
}

// reset binds the overlay to grid and clears every flag, reusing storage
// when the size is unchanged.
func (o *overlay) reset(grid occgrid.Querier) {
	o.grid = grid
	o.w, o.h = grid.Width(), grid.Height()
	n := o.w * o.h
	if cap(o.visited) < n {
		o.visited = make([]bool, n)
	} else {
		o.visited = o.visited[:n]
		clear(o.visited)
	}
	o.marked = 0
}

func (o *overlay) inBounds(x, y int) bool {
	return x >= 0 && x < o.w && y >= 0 && y < o.h
}

// shouldVisit is the single gate in front of every scan and enqueue:
// in bounds, not yet visited in this run, and not a wall.
func (o *overlay) shouldVisit(x, y int) bool {
	if !o.inBounds(x, y) {
		return false
	}
	return !o.visited[y*o.w+x] && !o.grid.IsWall(x, y)
}

// markVisited is idempotent; out-of-bounds coordinates are ignored.
func (o *overlay) markVisited(x, y int) {
	if !o.inBounds(x, y) {
		return
	}
	i := y*o.w + x
	if !o.visited[i] {
		o.visited[i] = true
		o.marked++
	}
}
