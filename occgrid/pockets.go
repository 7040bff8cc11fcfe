package occgrid

import (
	"sort"
)

// UnknownPockets finds all contiguous regions of unknown cells according to
// conn. Pockets are ordered by size, largest first; ties keep discovery
// order (row-major by first cell).
//
// To convert a cell index back to (x,y), use Coordinate.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (g *Grid) UnknownPockets(conn Connectivity) []Pocket {
	seen := make([]bool, len(g.cells))
	offsets := conn.offsets()
	var pockets []Pocket

	for i0, s := range g.cells {
		if s != Unknown || seen[i0] {
			continue
		}
		// BFS to collect the pocket
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			ux, uy := g.Coordinate(queue[qi])
			for _, d := range offsets {
				vx, vy := ux+d[0], uy+d[1]
				if !g.IsUnknown(vx, vy) {
					continue
				}
				vi := g.index(vx, vy)
				if !seen[vi] {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		pockets = append(pockets, Pocket{Cells: queue})
	}

	sort.SliceStable(pockets, func(i, j int) bool {
		return pockets[i].Size() > pockets[j].Size()
	})
	return pockets
}
