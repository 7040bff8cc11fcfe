package occgrid

import (
	"fmt"
	"image"
	"strings"
)

// ASCII map characters understood by Parse and produced by String.
const (
	RuneUnknown = '?'
	RuneSeen    = '.'
	RuneDriven  = 'o'
	RuneWall    = '#'
	// RuneRobot is a seen cell that also marks the robot's start.
	RuneRobot = 'R'
)

// Parse reads an ASCII map, one text line per grid row.
//
//	#  wall        .  seen       o  driven
//	?  unknown     (space) unknown
//	R  seen cell holding the robot
//
// Leading and trailing empty lines are dropped; a line of spaces is a row
// of unknown cells. All remaining lines must have the same length. The robot position is returned with ok=false when
// the map contains no 'R'; with several, the last one wins.
func Parse(s string) (g *Grid, robot image.Point, ok bool, err error) {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, image.Point{}, false, ErrEmptyGrid
	}

	rows := make([][]CellState, len(lines))
	for y, line := range lines {
		row := make([]CellState, 0, len(line))
		for x, r := range line {
			st, isRobot, rerr := stateOf(r)
			if rerr != nil {
				return nil, image.Point{}, false, fmt.Errorf("%w: %q at (%d,%d)", rerr, r, x, y)
			}
			if isRobot {
				robot, ok = image.Pt(len(row), y), true
			}
			row = append(row, st)
		}
		rows[y] = row
	}

	g, err = FromStates(rows)
	if err != nil {
		return nil, image.Point{}, false, err
	}
	return g, robot, ok, nil
}

// MustParse is like Parse but panics on error and drops the robot marker.
// Intended for tests and examples.
func MustParse(s string) *Grid {
	g, _, _, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return g
}

func stateOf(r rune) (CellState, bool, error) {
	switch r {
	case RuneUnknown, ' ':
		return Unknown, false, nil
	case RuneSeen:
		return Seen, false, nil
	case RuneDriven:
		return Driven, false, nil
	case RuneWall:
		return Wall, false, nil
	case RuneRobot:
		return Seen, true, nil
	}
	return Unknown, false, ErrBadRune
}

// String renders g in the Parse format, one line per row, without the robot marker.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.w + 1) * g.h)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			b.WriteRune(runeOf(g.cells[g.index(x, y)]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func runeOf(s CellState) rune {
	switch s {
	case Seen:
		return RuneSeen
	case Driven:
		return RuneDriven
	case Wall:
		return RuneWall
	default:
		return RuneUnknown
	}
}
