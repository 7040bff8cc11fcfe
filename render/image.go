package render

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/katalvlaran/frontier/occgrid"
)

// Option configures Image via functional arguments.
type Option func(*ImageOptions)

// ImageOptions controls what Image draws.
type ImageOptions struct {
	// Palette colours cells and trace elements.
	Palette Palette
	// Scale is the side of one cell in pixels.
	Scale int
	// Trace, if non-nil, is drawn over the map.
	Trace *Trace

	err error
}

// DefaultImageOptions returns the default palette, one pixel per cell and no trace.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{Palette: DefaultPalette(), Scale: 1}
}

// WithPalette replaces the colours.
func WithPalette(p Palette) Option {
	return func(o *ImageOptions) { o.Palette = p }
}

// WithScale draws every cell as an n×n block; n must be at least 1.
func WithScale(n int) Option {
	return func(o *ImageOptions) {
		if n < 1 {
			o.err = fmt.Errorf("%w: scale must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Scale = n
	}
}

// WithTrace overlays a recorded search. A nil trace is ignored.
func WithTrace(t *Trace) Option {
	return func(o *ImageOptions) {
		if t != nil {
			o.Trace = t
		}
	}
}

// Image draws g, one pixel per cell before scaling.
//
// Drawing order: cell states, span tint, contact cells, target line, robot.
// Later layers overwrite earlier ones.
func Image(g occgrid.Querier, opts ...Option) (*image.NRGBA, error) {
	o := DefaultImageOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	w, h := g.Width(), g.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, nrgba(o.Palette.State(stateAt(g, x, y))))
		}
	}

	if t := o.Trace; t != nil {
		p := o.Palette
		for _, s := range t.Spans {
			for x := s.StartX; x <= s.EndX; x++ {
				base := p.State(stateAt(g, x, s.Y))
				img.SetNRGBA(x, s.Y, nrgba(base.BlendRgb(p.Span, 0.5)))
			}
		}
		contact := nrgba(p.Contact)
		for _, c := range t.Contacts {
			img.SetNRGBA(c.X, c.Y, contact)
		}
		if t.Found {
			target := nrgba(p.Target)
			line(t.Origin, t.Target, func(x, y int) { img.SetNRGBA(x, y, target) })
		}
		img.SetNRGBA(t.Origin.X, t.Origin.Y, nrgba(p.Robot))
	}

	if o.Scale > 1 {
		img = imaging.Resize(img, w*o.Scale, h*o.Scale, imaging.NearestNeighbor)
	}
	return img, nil
}

// stateAt recovers the cell state through the Querier view.
func stateAt(g occgrid.Querier, x, y int) occgrid.CellState {
	if s, ok := g.(interface {
		State(x, y int) occgrid.CellState
	}); ok {
		return s.State(x, y)
	}
	switch {
	case g.IsWall(x, y):
		return occgrid.Wall
	case g.IsCharted(x, y):
		return occgrid.Seen
	default:
		return occgrid.Unknown
	}
}

// line visits the cells of the Bresenham segment from a to b, both ends included.
func line(a, b image.Point, plot func(x, y int)) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	e := dx + dy
	x, y := a.X, a.Y
	for {
		plot(x, y)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Save writes img to path; the format follows the file extension.
func Save(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

// Load reads a map image drawn with palette p at scale pixels per cell.
// Each cell is classified from the pixel at the centre of its block. The
// robot position is returned with ok=false when no pixel matches the robot
// colour.
func Load(path string, p Palette, scale int) (g *occgrid.Grid, robot image.Point, ok bool, err error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, image.Point{}, false, fmt.Errorf("render: load %s: %w", path, err)
	}
	return FromImage(img, p, scale)
}

// FromImage classifies the cells of an in-memory map image; see Load.
func FromImage(img image.Image, p Palette, scale int) (g *occgrid.Grid, robot image.Point, ok bool, err error) {
	if scale < 1 {
		return nil, image.Point{}, false, fmt.Errorf("%w: scale must be >= 1 (%d)", ErrOptionViolation, scale)
	}
	b := img.Bounds()
	if b.Dx()%scale != 0 || b.Dy()%scale != 0 {
		return nil, image.Point{}, false, fmt.Errorf("%w: %dx%d at %d px/cell", ErrImageSize, b.Dx(), b.Dy(), scale)
	}
	w, h := b.Dx()/scale, b.Dy()/scale
	rows := make([][]occgrid.CellState, h)
	for y := 0; y < h; y++ {
		rows[y] = make([]occgrid.CellState, w)
		for x := 0; x < w; x++ {
			st, isRobot := p.Classify(img.At(b.Min.X+x*scale+scale/2, b.Min.Y+y*scale+scale/2))
			if isRobot {
				robot, ok = image.Pt(x, y), true
			}
			rows[y][x] = st
		}
	}
	g, err = occgrid.FromStates(rows)
	if err != nil {
		return nil, image.Point{}, false, err
	}
	return g, robot, ok, nil
}
