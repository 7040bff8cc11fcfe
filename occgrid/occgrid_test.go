package occgrid_test

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/frontier/occgrid"
)

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that New rejects non-positive dimensions.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{"ZeroWidth", 0, 3},
		{"ZeroHeight", 3, 0},
		{"Negative", -1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := occgrid.New(tc.w, tc.h)
			if !errors.Is(err, occgrid.ErrEmptyGrid) {
				t.Errorf("New(%d,%d) error = %v; want ErrEmptyGrid", tc.w, tc.h, err)
			}
		})
	}
}

// TestNew_AllUnknown checks that a fresh grid is entirely unexplored.
func TestNew_AllUnknown(t *testing.T) {
	g, err := occgrid.New(4, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, occgrid.Counts{Unknown: 12}, g.Counts())
	assert.True(t, g.IsUnknown(3, 2))
	assert.False(t, g.IsCharted(3, 2))
}

// TestFromStates_Errors verifies FromStates rejects empty, ragged and invalid inputs.
func TestFromStates_Errors(t *testing.T) {
	cases := []struct {
		name string
		rows [][]occgrid.CellState
		err  error
	}{
		{"EmptyRows", [][]occgrid.CellState{}, occgrid.ErrEmptyGrid},
		{"EmptyCols", [][]occgrid.CellState{{}}, occgrid.ErrEmptyGrid},
		{"NonRectangular", [][]occgrid.CellState{{occgrid.Seen, occgrid.Wall}, {occgrid.Seen}}, occgrid.ErrNonRectangular},
		{"BadState", [][]occgrid.CellState{{occgrid.CellState(9)}}, occgrid.ErrBadState},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := occgrid.FromStates(tc.rows)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

// TestFromStates_Copies ensures later mutation of the input does not leak into the grid.
func TestFromStates_Copies(t *testing.T) {
	rows := [][]occgrid.CellState{{occgrid.Seen, occgrid.Wall}}
	g, err := occgrid.FromStates(rows)
	require.NoError(t, err)
	rows[0][0] = occgrid.Unknown
	assert.Equal(t, occgrid.Seen, g.State(0, 0))
}

//----------------------------------------------------------------------------//
// Queries
//----------------------------------------------------------------------------//

// TestQueries_OutOfBounds checks the Querier contract at and beyond the edges.
func TestQueries_OutOfBounds(t *testing.T) {
	g := occgrid.MustParse(`
##
..
`)
	for _, xy := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 2}} {
		x, y := xy[0], xy[1]
		assert.False(t, g.InBounds(x, y), "InBounds(%d,%d)", x, y)
		assert.False(t, g.IsWall(x, y), "IsWall(%d,%d)", x, y)
		assert.False(t, g.IsCharted(x, y), "IsCharted(%d,%d)", x, y)
		assert.False(t, g.IsUnknown(x, y), "IsUnknown(%d,%d)", x, y)
		assert.Equal(t, occgrid.Unknown, g.State(x, y))
	}
	assert.True(t, g.IsWall(1, 0))
	assert.True(t, g.IsCharted(1, 1))
}

// TestSet_OutOfBounds ensures Set reports ErrOutOfBounds and ErrBadState.
func TestSet_OutOfBounds(t *testing.T) {
	g, _ := occgrid.New(2, 2)
	assert.ErrorIs(t, g.Set(2, 0, occgrid.Wall), occgrid.ErrOutOfBounds)
	assert.ErrorIs(t, g.Set(0, 0, occgrid.CellState(7)), occgrid.ErrBadState)
	require.NoError(t, g.Set(1, 1, occgrid.Driven))
	assert.Equal(t, occgrid.Driven, g.State(1, 1))
}

// TestMark_Precedence verifies that sweeps never erase walls and that seen
// never downgrades driven.
func TestMark_Precedence(t *testing.T) {
	g, _ := occgrid.New(3, 1)

	assert.True(t, g.MarkWall(0, 0))
	assert.False(t, g.MarkSeen(0, 0), "seen must not overwrite a wall")
	assert.False(t, g.MarkDriven(0, 0), "driven must not overwrite a wall")
	assert.Equal(t, occgrid.Wall, g.State(0, 0))

	assert.True(t, g.MarkDriven(1, 0))
	assert.False(t, g.MarkSeen(1, 0), "seen must not overwrite driven")
	assert.Equal(t, occgrid.Driven, g.State(1, 0))

	assert.True(t, g.MarkSeen(2, 0))
	assert.False(t, g.MarkSeen(2, 0), "second mark is a no-op")
	assert.True(t, g.MarkWall(2, 0), "walls override free space")

	assert.False(t, g.MarkWall(5, 5))
}

// TestClone_Independent checks that a clone does not share storage.
func TestClone_Independent(t *testing.T) {
	g := occgrid.MustParse("...")
	c := g.Clone()
	g.MarkWall(1, 0)
	assert.Equal(t, occgrid.Seen, c.State(1, 0))
	assert.Equal(t, "...\n", c.String())
}

//----------------------------------------------------------------------------//
// ASCII codec
//----------------------------------------------------------------------------//

// TestParse_RoundTrip parses a map with every state and renders it back.
func TestParse_RoundTrip(t *testing.T) {
	src := "" +
		"#####\n" +
		"#.o?#\n" +
		"#R..#\n" +
		"#####\n"
	g, robot, ok, err := occgrid.Parse(src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, image.Pt(1, 2), robot)
	assert.Equal(t, occgrid.Seen, g.State(1, 2), "robot marker is a seen cell")
	assert.Equal(t, occgrid.Driven, g.State(2, 1))
	assert.Equal(t, occgrid.Counts{Unknown: 1, Seen: 4, Driven: 1, Wall: 14}, g.Counts())

	want := "" +
		"#####\n" +
		"#.o?#\n" +
		"#...#\n" +
		"#####\n"
	assert.Equal(t, want, g.String())
}

// TestParse_Errors covers malformed maps.
func TestParse_Errors(t *testing.T) {
	_, _, _, err := occgrid.Parse("\n\n")
	assert.ErrorIs(t, err, occgrid.ErrEmptyGrid)

	_, _, _, err = occgrid.Parse("..\n.")
	assert.ErrorIs(t, err, occgrid.ErrNonRectangular)

	_, _, _, err = occgrid.Parse(".x.")
	assert.ErrorIs(t, err, occgrid.ErrBadRune)

	_, _, ok, err := occgrid.Parse("  ..")
	require.NoError(t, err)
	assert.False(t, ok, "no robot marker")
}

// TestParse_SpaceRows keeps edge rows written with spaces as unknown cells.
func TestParse_SpaceRows(t *testing.T) {
	g, robot, ok, err := occgrid.Parse("   \n.R.\n...\n")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, image.Pt(1, 1), robot)
	assert.Equal(t, "???\n...\n...\n", g.String())

	g, _, _, err = occgrid.Parse("\n...\n   \n\n")
	require.NoError(t, err)
	assert.Equal(t, occgrid.Counts{Unknown: 3, Seen: 3}, g.Counts())
}

// TestMustParse_Panics ensures MustParse panics on malformed input.
func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { occgrid.MustParse("!") })
}
