// Package laser defines the range-sensor model, sweep type, mapper options
// and sentinel errors.
package laser

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for laser operations.
var (
	// ErrBadModel indicates an inconsistent sensor model.
	ErrBadModel = errors.New("laser: invalid sensor model")

	// ErrSampleCount indicates a sweep whose length differs from Model.Samples.
	ErrSampleCount = errors.New("laser: sweep length does not match sensor samples")

	// ErrFrameMismatch indicates a grid whose size differs from the mapper frame.
	ErrFrameMismatch = errors.New("laser: grid size does not match frame")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("laser: invalid option supplied")
)

// Model describes a planar scanning range finder. Beams are spread evenly
// over FOVDeg, centred on the robot's heading.
type Model struct {
	FOVDeg   float64 `yaml:"fov_deg"`
	Samples  int     `yaml:"samples"`
	RangeMin float64 `yaml:"range_min"`
	RangeMax float64 `yaml:"range_max"`
	// Epsilon is the tolerance below RangeMax at which a reading counts as
	// "nothing hit".
	Epsilon float64 `yaml:"epsilon"`
}

// URG04LX returns the model of a Hokuyo URG-04LX: 240°, 681 samples, 0.35–4 m.
func URG04LX() Model {
	return Model{FOVDeg: 240, Samples: 681, RangeMin: 0.35, RangeMax: 4.0, Epsilon: 0.001}
}

// Validate reports ErrBadModel with the first inconsistency found.
func (m Model) Validate() error {
	switch {
	case !(m.FOVDeg > 0) || m.FOVDeg > 360:
		return fmt.Errorf("%w: fov %v out of (0,360]", ErrBadModel, m.FOVDeg)
	case m.Samples <= 0:
		return fmt.Errorf("%w: %d samples", ErrBadModel, m.Samples)
	case m.RangeMin < 0 || !(m.RangeMax > m.RangeMin):
		return fmt.Errorf("%w: range [%v,%v]", ErrBadModel, m.RangeMin, m.RangeMax)
	case m.Epsilon < 0:
		return fmt.Errorf("%w: negative epsilon", ErrBadModel)
	}
	return nil
}

// Resolution returns the angle between two beams in radians.
func (m Model) Resolution() float64 {
	return m.FOVDeg * math.Pi / 180 / float64(m.Samples)
}

// AngleAt returns the bearing of beam i in radians, relative to the heading.
func (m Model) AngleAt(i int) float64 {
	return float64(i)*m.Resolution() - m.FOVDeg*math.Pi/360
}

// IndexAt returns the beam closest to a bearing given in degrees.
func (m Model) IndexAt(deg float64) int {
	return int(deg/(m.FOVDeg/2)*float64(m.Samples)/2 + float64(m.Samples)/2)
}

// NoHit reports whether reading r should be discarded: at or beyond the
// maximum range, or not a usable number.
func (m Model) NoHit(r float64) bool {
	return math.IsNaN(r) || r < 0 || r >= m.RangeMax-m.Epsilon
}

// Scan is one sweep of readings in metres, beam 0 at the rightmost bearing.
type Scan struct {
	Ranges []float64
}

// Stats counts what one Integrate call did.
type Stats struct {
	Beams     int // beams with a usable reading
	Discarded int // beams dropped by NoHit
	Walls     int // cells turned into walls
	Seen      int // cells turned from unknown into seen
}

// Option configures a Mapper via functional arguments.
type Option func(*MapperOptions)

// MapperOptions holds the rasterisation parameters of a Mapper.
type MapperOptions struct {
	// Step is the distance in metres between two samples along a beam.
	Step float64
	// Thickness is the half-width in cells of every painted mark:
	// 0 paints one cell, 1 paints a 3×3 block.
	Thickness int

	err error
}

// DefaultMapperOptions returns Step 0.1 m and Thickness 1.
func DefaultMapperOptions() MapperOptions {
	return MapperOptions{Step: 0.1, Thickness: 1}
}

// WithStep sets the beam sampling step; it must be positive.
func WithStep(step float64) Option {
	return func(o *MapperOptions) {
		if !(step > 0) {
			o.err = fmt.Errorf("%w: step must be positive (%v)", ErrOptionViolation, step)
			return
		}
		o.Step = step
	}
}

// WithThickness sets the half-width of painted marks; it must not be negative.
func WithThickness(n int) Option {
	return func(o *MapperOptions) {
		if n < 0 {
			o.err = fmt.Errorf("%w: thickness cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.Thickness = n
	}
}
