// Package laser turns range sweeps into occupancy-grid updates.
package laser

import (
	"fmt"

	"github.com/katalvlaran/frontier/occgrid"
	"github.com/katalvlaran/frontier/transform"
)

// Mapper paints sweeps into a grid laid out by Frame.
type Mapper struct {
	Frame transform.Frame
	Model Model
	opts  MapperOptions
}

// NewMapper validates frame, model and options.
// Returns transform errors, ErrBadModel or ErrOptionViolation.
func NewMapper(frame transform.Frame, model Model, opts ...Option) (*Mapper, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	o := DefaultMapperOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	return &Mapper{Frame: frame, Model: model, opts: o}, nil
}

// Options returns the rasterisation parameters in use.
func (m *Mapper) Options() MapperOptions {
	o := m.opts
	o.err = nil
	return o
}

// Integrate paints one sweep taken at pose into g.
//
// For every beam with a usable reading the end point becomes a wall and
// the cells along the beam, up to one step short of the end, become seen.
// Readings that hit nothing are dropped entirely: no wall, no free space.
// Seen never overwrites a wall. Finally the robot's own cell is set to
// driven, even if a thick wall mark covered it.
//
// Returns ErrFrameMismatch or ErrSampleCount; g is untouched in that case.
func (m *Mapper) Integrate(g *occgrid.Grid, pose transform.Pose, scan Scan) (Stats, error) {
	var st Stats
	if g.Width() != m.Frame.Width || g.Height() != m.Frame.Height {
		return st, fmt.Errorf("%w: grid %dx%d, frame %dx%d",
			ErrFrameMismatch, g.Width(), g.Height(), m.Frame.Width, m.Frame.Height)
	}
	if len(scan.Ranges) != m.Model.Samples {
		return st, fmt.Errorf("%w: got %d, want %d", ErrSampleCount, len(scan.Ranges), m.Model.Samples)
	}

	for i, r := range scan.Ranges {
		if m.Model.NoHit(r) {
			st.Discarded++
			continue
		}
		st.Beams++
		angle := m.Model.AngleAt(i)

		ex, ey := m.cell(pose, angle, r)
		st.Walls += m.paint(ex, ey, g.MarkWall)

		px, py := -1, -1
		for d := m.opts.Step; d < r-m.opts.Step; d += m.opts.Step {
			x, y := m.cell(pose, angle, d)
			if x == px && y == py {
				continue
			}
			px, py = x, y
			st.Seen += m.paint(x, y, g.MarkSeen)
		}
	}

	rx, ry := m.Frame.ToGrid(pose.X, pose.Y)
	if g.InBounds(rx, ry) {
		_ = g.Set(rx, ry, occgrid.Driven)
	}
	return st, nil
}

// cell returns the grid cell hit by a beam at angle after distance r.
func (m *Mapper) cell(pose transform.Pose, angle, r float64) (x, y int) {
	lx, ly := transform.Polar(angle, r)
	wx, wy := transform.LocalToMap(pose, lx, ly)
	return m.Frame.ToGrid(wx, wy)
}

// paint applies mark to the square of half-width Thickness around (x,y)
// and returns how many cells changed.
func (m *Mapper) paint(x, y int, mark func(x, y int) bool) int {
	n := 0
	t := m.opts.Thickness
	for dy := -t; dy <= t; dy++ {
		for dx := -t; dx <= t; dx++ {
			if mark(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}
