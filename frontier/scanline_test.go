package frontier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/frontier/occgrid"
)

// newOverlay returns an overlay bound to the parsed map.
func newOverlay(src string) (*overlay, *occgrid.Grid) {
	g := occgrid.MustParse(src)
	o := &overlay{}
	o.reset(g)
	return o, g
}

// TestOverlay_ShouldVisit covers the three rejection reasons: bounds, walls, visited.
func TestOverlay_ShouldVisit(t *testing.T) {
	o, _ := newOverlay(`
.#?
...
`)
	assert.True(t, o.shouldVisit(0, 0))
	assert.True(t, o.shouldVisit(2, 0), "unknown cells are visitable")
	assert.False(t, o.shouldVisit(1, 0), "wall")
	assert.False(t, o.shouldVisit(-1, 0), "left of grid")
	assert.False(t, o.shouldVisit(0, 2), "below grid")

	o.markVisited(0, 0)
	o.markVisited(0, 0)
	o.markVisited(9, 9)
	assert.False(t, o.shouldVisit(0, 0), "visited")
	assert.Equal(t, 1, o.marked, "markVisited is idempotent and ignores out-of-bounds")

	o.reset(occgrid.MustParse(".#?\n..."))
	assert.True(t, o.shouldVisit(0, 0), "reset clears visited flags")
	assert.Zero(t, o.marked)
}

// TestBuildScanLine covers the ways a scan can stop on either side.
func TestBuildScanLine(t *testing.T) {
	cases := []struct {
		name  string
		row   string
		seed  int
		want  Span
		marks int
	}{
		{"EdgeToEdge", ".....", 2, Span{StartX: 0, EndX: 4}, 5},
		{"Walls", "#...#", 1, Span{StartX: 1, EndX: 3}, 3},
		{"UnknownBothSides", "?...?", 2, Span{StartX: 1, EndX: 3, LeftUnknown: true, RightUnknown: true}, 5},
		{"UnknownLeftWallRight", ".?..#.", 3, Span{StartX: 2, EndX: 3, LeftUnknown: true}, 3},
		{"SeedAtEdge", "..?", 0, Span{StartX: 0, EndX: 1, RightUnknown: true}, 3},
		{"DegenerateBetweenUnknown", "?.?", 1, Span{StartX: 1, EndX: 1, LeftUnknown: true, RightUnknown: true}, 3},
		{"DegenerateBetweenWalls", "#o#", 1, Span{StartX: 1, EndX: 1}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o, _ := newOverlay(tc.row)
			got := o.buildScanLine(tc.seed, 0)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.marks, o.marked)
			assert.Equal(t, tc.want.StartX == tc.want.EndX, got.Degenerate())
		})
	}
}

// TestBuildScanLine_StopsAtVisited ensures a second scan on the same row does
// not re-cover cells claimed by the first one.
func TestBuildScanLine_StopsAtVisited(t *testing.T) {
	o, _ := newOverlay("...#...")
	first := o.buildScanLine(1, 0)
	assert.Equal(t, Span{StartX: 0, EndX: 2}, first)

	second := o.buildScanLine(5, 0)
	assert.Equal(t, Span{StartX: 4, EndX: 6}, second)
	assert.Equal(t, 6, o.marked)
}

// TestSpan_Contacts checks the contact cells reported on each side.
func TestSpan_Contacts(t *testing.T) {
	s := Span{Y: 3, StartX: 2, EndX: 5, LeftUnknown: true}
	p, ok := s.LeftContact()
	assert.True(t, ok)
	assert.Equal(t, 1, p.X)
	assert.Equal(t, 3, p.Y)
	_, ok = s.RightContact()
	assert.False(t, ok)
	assert.Equal(t, 4, s.Len())
}

// TestTracker_Consider verifies strict improvement and first-wins ties.
func TestTracker_Consider(t *testing.T) {
	var tr tracker
	assert.True(t, tr.consider(0, 0, 3, 4), "first candidate always accepted")
	assert.Equal(t, Candidate{X: 3, Y: 4, Distance: 7}, tr.best)

	assert.False(t, tr.consider(0, 0, -7, 0), "equal distance keeps the first")
	assert.False(t, tr.consider(0, 0, 9, 9))
	assert.True(t, tr.consider(0, 0, 0, -2))
	assert.Equal(t, Candidate{X: 0, Y: -2, Distance: 2}, tr.best)
	assert.True(t, tr.found)
}
