// Package transform converts between world coordinates (metres, y up),
// robot-local coordinates and grid cells (y down).
package transform

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for frame validation.
var (
	// ErrBadScale indicates a non-positive cells-per-metre scale.
	ErrBadScale = errors.New("transform: scale must be positive")

	// ErrBadSize indicates a non-positive grid dimension.
	ErrBadSize = errors.New("transform: grid size must be positive")
)

// Frame is the linear mapping between world metres and grid cells:
//
//	x = OffsetX + trunc(Scale·wx)
//	y = OffsetY - trunc(Scale·wy)
//
// The world origin sits at cell (OffsetX, OffsetY) and the y axis is flipped
// so that north is up in the rendered map.
type Frame struct {
	// Scale is the number of cells per metre.
	Scale float64 `yaml:"scale"`
	// OffsetX, OffsetY locate the world origin in the grid.
	OffsetX int `yaml:"offset_x"`
	OffsetY int `yaml:"offset_y"`
	// Width, Height are the grid dimensions in cells.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultFrame returns a 500×500 grid at 30 cells/m centred on the world origin.
func DefaultFrame() Frame {
	return Frame{Scale: 30, OffsetX: 250, OffsetY: 250, Width: 500, Height: 500}
}

// Validate reports ErrBadScale or ErrBadSize.
func (f Frame) Validate() error {
	if !(f.Scale > 0) || math.IsInf(f.Scale, 0) {
		return fmt.Errorf("%w: %v", ErrBadScale, f.Scale)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadSize, f.Width, f.Height)
	}
	return nil
}

// ToGrid maps a world point to its grid cell. The result may lie outside the
// grid; use Contains or Locate to check.
func (f Frame) ToGrid(wx, wy float64) (x, y int) {
	return f.OffsetX + int(f.Scale*wx), f.OffsetY - int(f.Scale*wy)
}

// ToWorld maps a grid cell to the world point at the centre of its footprint,
// so that ToGrid(ToWorld(x, y)) == (x, y).
func (f Frame) ToWorld(x, y int) (wx, wy float64) {
	return centre(x-f.OffsetX) / f.Scale, centre(f.OffsetY-y) / f.Scale
}

// centre returns the midpoint of the range truncated to d. Truncation toward
// zero makes cell 0 twice as wide as the others; its centre is 0.
func centre(d int) float64 {
	switch {
	case d > 0:
		return float64(d) + 0.5
	case d < 0:
		return float64(d) - 0.5
	default:
		return 0
	}
}

// Contains reports whether (x,y) is a cell of the grid.
func (f Frame) Contains(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// Locate is ToGrid followed by Contains.
func (f Frame) Locate(wx, wy float64) (x, y int, ok bool) {
	x, y = f.ToGrid(wx, wy)
	return x, y, f.Contains(x, y)
}

// Pose is a robot pose in the world frame: position in metres, heading
// Theta in radians counter-clockwise from the x axis.
type Pose struct {
	X, Y, Theta float64
}

// LocalToMap rotates and translates a robot-local point (x forward, y left)
// into the world frame.
func LocalToMap(p Pose, lx, ly float64) (wx, wy float64) {
	sin, cos := math.Sincos(p.Theta)
	return cos*lx - sin*ly + p.X, sin*lx + cos*ly + p.Y
}

// Polar converts a bearing (radians) and range (metres) to a local point.
func Polar(angle, r float64) (lx, ly float64) {
	sin, cos := math.Sincos(angle)
	return r * cos, r * sin
}
