// Package frontier finds the unexplored cell closest to a robot on an
// occupancy grid, as long as that cell is reachable through charted space.
//
// What
//
//   - A queue-based scanline flood fill over an occgrid.Querier:
//   - charted cells (seen or driven over) are traversable,
//   - walls and the grid edge are absolute barriers,
//   - unknown cells are terminals: they stop a scan and become candidates.
//   - Every run owns a private visited overlay, cleared at the start, so a
//     cell is scanned at most once and the persistent map is never touched.
//   - The closest candidate by Manhattan distance (|dx|+|dy|) from the start
//     cell is reported. Ties keep the first one found; within a scanline the
//     left contact is offered before the right one.
//   - Single-cell spans still report their contacts but are not expanded
//     vertically. A corridor one cell wide running north-south is therefore
//     not followed beyond its first row.
//   - Observers (WithOnSpan, WithOnContact, WithOnCandidate, WithLogger)
//     see enqueued spans and candidate updates without affecting the result.
//
// Why
//
//   - Frontier exploration: steer the robot toward the nearest unknown
//     region until the reachable map is complete.
//   - Scanlines batch the fill row by row, so a large open area costs one
//     queue entry per run of cells instead of one per cell.
//
// Determinism
//
//	Rows are probed above before below, left to right, and the queue is
//	FIFO, so two runs on the same grid produce identical results and
//	identical observer call sequences.
//
// Complexity (A = W×H)
//
//   - Time:   O(A)  (each cell is marked visited at most once)
//   - Memory: O(A)  (overlay) + O(number of pending spans)
//
// Concurrency
//
//	Search runs to completion on the calling goroutine; there is no
//	cancellation. The grid is only read, so concurrent searches may share
//	it, but no writer may touch it during a run. Each concurrent search needs
//	its own Searcher (the package-level Search allocates one per call).
//
// Usage
//
//	res, err := frontier.Search(grid, robotX, robotY)
//	if err != nil {
//	    // ErrNilGrid, ErrStartOutOfBounds or ErrStartBlocked
//	}
//	if res.Explored() {
//	    // nothing left to explore from here
//	}
//	target := res.Nearest.Point()
//
// Errors
//
//   - ErrNilGrid           if the grid is nil.
//   - ErrStartOutOfBounds  if the start cell lies outside the grid.
//   - ErrStartBlocked      if the start cell is a wall.
package frontier
