// Package render draws occupancy grids and frontier-search traces as
// images, and reads maps back from images.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/katalvlaran/frontier/occgrid"
)

// Sentinel errors for rendering.
var (
	// ErrBadColor indicates a palette entry that is not a #rrggbb colour.
	ErrBadColor = errors.New("render: invalid colour")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("render: invalid option supplied")

	// ErrImageSize indicates an image whose size is not a multiple of the cell size.
	ErrImageSize = errors.New("render: image size not a multiple of the cell size")
)

// Palette assigns a colour to every cell state and trace element.
type Palette struct {
	Unknown, Seen, Driven, Wall colorful.Color
	// Span tints cells covered by an enqueued span.
	Span colorful.Color
	// Contact marks unknown cells offered as candidates.
	Contact colorful.Color
	// Robot marks the search origin.
	Robot colorful.Color
	// Target draws the line from the robot to the nearest unknown cell.
	Target colorful.Color
}

// DefaultPalette mirrors the classic map view: black unknown space, dark
// green seen space, white walls, red robot and a yellow target line.
func DefaultPalette() Palette {
	p, err := ParsePalette(map[string]string{})
	if err != nil {
		panic(err)
	}
	return p
}

var defaultHex = map[string]string{
	"unknown": "#000000",
	"seen":    "#005c00",
	"driven":  "#2f6fbf",
	"wall":    "#ffffff",
	"span":    "#7f7fff",
	"contact": "#ff00ff",
	"robot":   "#ff0000",
	"target":  "#ffff00",
}

// ParsePalette builds a palette from #rrggbb strings keyed by element name
// (unknown, seen, driven, wall, span, contact, robot, target). Missing keys
// keep their default colour; unknown keys are rejected.
func ParsePalette(hex map[string]string) (Palette, error) {
	merged := make(map[string]string, len(defaultHex))
	for k, v := range defaultHex {
		merged[k] = v
	}
	for k, v := range hex {
		if _, ok := defaultHex[k]; !ok {
			return Palette{}, fmt.Errorf("%w: no palette entry %q", ErrBadColor, k)
		}
		merged[k] = v
	}

	var p Palette
	slots := map[string]*colorful.Color{
		"unknown": &p.Unknown, "seen": &p.Seen, "driven": &p.Driven, "wall": &p.Wall,
		"span": &p.Span, "contact": &p.Contact, "robot": &p.Robot, "target": &p.Target,
	}
	for k, dst := range slots {
		c, err := colorful.Hex(merged[k])
		if err != nil {
			return Palette{}, fmt.Errorf("%w: %s=%q: %v", ErrBadColor, k, merged[k], err)
		}
		*dst = c
	}
	return p, nil
}

// State returns the colour of a cell state.
func (p Palette) State(s occgrid.CellState) colorful.Color {
	switch s {
	case occgrid.Seen:
		return p.Seen
	case occgrid.Driven:
		return p.Driven
	case occgrid.Wall:
		return p.Wall
	default:
		return p.Unknown
	}
}

// Classify maps a pixel to the cell state whose colour is nearest in CIE-Lab.
// robot reports that the pixel is closer to the robot colour than to any
// state; such a pixel is classified as Driven. Fully transparent pixels are
// Unknown.
func (p Palette) Classify(c color.Color) (s occgrid.CellState, robot bool) {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return occgrid.Unknown, false
	}
	best, bestD := occgrid.Unknown, cc.DistanceLab(p.Unknown)
	for _, st := range []occgrid.CellState{occgrid.Seen, occgrid.Driven, occgrid.Wall} {
		if d := cc.DistanceLab(p.State(st)); d < bestD {
			best, bestD = st, d
		}
	}
	if cc.DistanceLab(p.Robot) < bestD {
		return occgrid.Driven, true
	}
	return best, false
}

// nrgba converts a palette colour to an opaque pixel.
func nrgba(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
