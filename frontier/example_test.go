package frontier_test

import (
	"fmt"

	"github.com/katalvlaran/frontier/frontier"
	"github.com/katalvlaran/frontier/occgrid"
)

////////////////////////////////////////////////////////////////////////////////
// Example: Search
////////////////////////////////////////////////////////////////////////////////

// ExampleSearch finds the nearest reachable unknown cell in a small map.
// Scenario:
//
//   - The robot (R) is in the left room.
//   - The right room still has unknown cells (?), reachable through the door
//     in the middle wall; (9,1) is the closest at Manhattan distance 8.
//   - The unknown pocket at the bottom left is walled off and ignored.
//
// Complexity: O(W·H), Memory: O(W·H)
func ExampleSearch() {
	g, robot, _, _ := occgrid.Parse(`
###########
#R...#...?#
#.........#
#....#..??#
######....#
#??#......#
###########
`)
	res, err := frontier.Search(g, robot.X, robot.Y)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("explored:", res.Explored())
	fmt.Printf("nearest: (%d,%d) distance %d\n", res.Nearest.X, res.Nearest.Y, res.Nearest.Distance)
	// Output:
	// explored: false
	// nearest: (9,1) distance 8
}

////////////////////////////////////////////////////////////////////////////////
// Example: observers
////////////////////////////////////////////////////////////////////////////////

// ExampleWithOnSpan prints every span queued for vertical expansion.
func ExampleWithOnSpan() {
	g, robot, _, _ := occgrid.Parse(`
#####
#R..?
#...#
#####
`)
	res, _ := frontier.Search(g, robot.X, robot.Y,
		frontier.WithOnSpan(func(s frontier.Span) {
			fmt.Printf("span y=%d x=%d..%d\n", s.Y, s.StartX, s.EndX)
		}),
		frontier.WithOnCandidate(func(c frontier.Candidate) {
			fmt.Printf("candidate (%d,%d) d=%d\n", c.X, c.Y, c.Distance)
		}),
	)
	fmt.Println("spans enqueued:", res.Stats.Enqueued)
	// Output:
	// candidate (4,1) d=3
	// span y=1 x=1..3
	// span y=2 x=1..3
	// spans enqueued: 2
}
