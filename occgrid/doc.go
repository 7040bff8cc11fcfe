// Package occgrid holds the occupancy grid a robot builds from range sweeps
// and exposes the read-only queries a frontier search needs.
//
// What:
//
//   - Grid is a fixed W×H raster; every cell is Unknown, Seen, Driven or Wall.
//   - IsWall / IsCharted / IsUnknown answer per-cell queries; coordinates
//     outside the grid are never walls and never charted.
//   - MarkWall / MarkSeen / MarkDriven apply sensor updates with the usual
//     precedence: a wall is never downgraded to free space by a later sweep.
//   - Parse and String convert to and from a compact ASCII map.
//   - UnknownPockets groups unknown cells into 4- or 8-connected regions.
//
// Why:
//
//   - Frontier exploration needs a clean split between the persistent map
//     (this package) and per-search scratch state (package frontier).
//
// Complexity:
//
//   - Cell queries and updates: O(1).
//   - Clone, Counts, String:    O(W×H).
//   - UnknownPockets:           O(W×H×d), Memory: O(W×H)  (d = 4 or 8).
//
// Errors:
//
//   - ErrEmptyGrid:      grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrOutOfBounds:    Set outside the grid.
//   - ErrBadRune:        Parse met a character with no cell state.
//   - ErrBadState:       a CellState value outside Unknown..Wall.
//
// ASCII example (robot at R, one unknown pocket on the right):
//
//	#######
//	#R..??#
//	#...??#
//	#######
package occgrid
