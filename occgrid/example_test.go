package occgrid_test

import (
	"fmt"

	"github.com/katalvlaran/frontier/occgrid"
)

// ExampleGrid_UnknownPockets lists the unexplored regions of a small map.
func ExampleGrid_UnknownPockets() {
	g := occgrid.MustParse(`
#######
#...??#
#.#####
#??...#
#######
`)
	for i, p := range g.UnknownPockets(occgrid.Conn4) {
		fmt.Printf("pocket %d:", i)
		for _, idx := range p.Cells {
			x, y := g.Coordinate(idx)
			fmt.Printf(" (%d,%d)", x, y)
		}
		fmt.Println()
	}
	// Output:
	// pocket 0: (4,1) (5,1)
	// pocket 1: (1,3) (2,3)
}

// ExampleGrid_MarkSeen shows that a sweep never erases a wall.
func ExampleGrid_MarkSeen() {
	g, _ := occgrid.New(3, 1)
	g.MarkWall(2, 0)
	for x := 0; x < 3; x++ {
		g.MarkSeen(x, 0)
	}
	fmt.Print(g)
	// Output:
	// ..#
}
