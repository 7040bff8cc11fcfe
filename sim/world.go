// Package sim simulates a robot exploring a known world: a ground-truth map,
// a ray-cast range finder and an explorer that drives the frontier search.
//
// The explorer teleports next to every target instead of planning a path.
package sim

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/frontier/occgrid"
	"github.com/katalvlaran/frontier/transform"
)

// Sentinel errors for simulation setup.
var (
	// ErrNoRobot indicates a world map without an 'R' start cell.
	ErrNoRobot = errors.New("sim: world has no robot start cell")

	// ErrFrameMismatch indicates a mapper whose frame differs from the world's.
	ErrFrameMismatch = errors.New("sim: mapper frame does not match world frame")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("sim: invalid option supplied")
)

// World is the ground truth the simulated sensor looks at. Every cell is
// either a wall or free; anything outside the grid counts as a wall.
type World struct {
	Grid  *occgrid.Grid
	Frame transform.Frame
}

// FrameFor returns a frame of w×h cells at scale cells/m with the world
// origin in the middle of the grid.
func FrameFor(w, h int, scale float64) transform.Frame {
	return transform.Frame{Scale: scale, OffsetX: w / 2, OffsetY: h / 2, Width: w, Height: h}
}

// NewWorld parses an ASCII world ('#' walls, 'R' start, anything else free)
// and returns it with the start pose at the centre of the 'R' cell, facing +x.
func NewWorld(ascii string, scale float64) (*World, transform.Pose, error) {
	g, start, ok, err := occgrid.Parse(ascii)
	if err != nil {
		return nil, transform.Pose{}, fmt.Errorf("sim: world map: %w", err)
	}
	if !ok {
		return nil, transform.Pose{}, ErrNoRobot
	}
	frame := FrameFor(g.Width(), g.Height(), scale)
	if err := frame.Validate(); err != nil {
		return nil, transform.Pose{}, err
	}
	wx, wy := frame.ToWorld(start.X, start.Y)
	return &World{Grid: g, Frame: frame}, transform.Pose{X: wx, Y: wy}, nil
}

// Blocked reports whether cell (x,y) stops a beam.
func (w *World) Blocked(x, y int) bool {
	return !w.Grid.InBounds(x, y) || w.Grid.IsWall(x, y)
}
