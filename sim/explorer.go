package sim

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/frontier/frontier"
	"github.com/katalvlaran/frontier/laser"
	"github.com/katalvlaran/frontier/occgrid"
	"github.com/katalvlaran/frontier/transform"
)

// Option configures an Explorer via functional arguments.
type Option func(*ExplorerOptions)

// ExplorerOptions bounds and observes an exploration run.
type ExplorerOptions struct {
	// MaxSteps caps Run; 0 is rejected.
	MaxSteps int
	// Logger, if set, receives one debug entry per step.
	Logger logrus.FieldLogger
	// OnSweep is called with every sweep after it is integrated.
	OnSweep func(pose transform.Pose, scan laser.Scan)

	err error
}

// DefaultExplorerOptions returns MaxSteps 1000 and no logger.
func DefaultExplorerOptions() ExplorerOptions {
	return ExplorerOptions{MaxSteps: 1000, OnSweep: func(transform.Pose, laser.Scan) {}}
}

// WithMaxSteps bounds the number of sense-search steps of Run.
func WithMaxSteps(n int) Option {
	return func(o *ExplorerOptions) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: max steps must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithLogger sets a logger for per-step traces.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *ExplorerOptions) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnSweep registers a callback receiving every sweep; nil is ignored.
func WithOnSweep(fn func(pose transform.Pose, scan laser.Scan)) Option {
	return func(o *ExplorerOptions) {
		if fn != nil {
			o.OnSweep = fn
		}
	}
}

// Report summarises an exploration run.
type Report struct {
	// Steps is the number of sense-search cycles performed.
	Steps int
	// Targets lists the nearest unknown cell picked at each step, in order.
	Targets []image.Point
	// Touched counts targets the sweep could not resolve, settled by
	// driving into them.
	Touched int
	// Explored is true when the last search found no reachable unknown cell.
	Explored bool
}

// Explorer alternates sensing and searching on its own map of a World.
type Explorer struct {
	World  *World
	Ranger *Ranger
	Mapper *laser.Mapper
	// Map is what the robot has learned so far; it starts fully unknown.
	Map  *occgrid.Grid
	Pose transform.Pose

	opts     ExplorerOptions
	searcher *frontier.Searcher
	pending  *image.Point
	report   Report
}

// NewExplorer places a robot at start in w. The mapper must use w's frame.
func NewExplorer(w *World, m *laser.Mapper, start transform.Pose, opts ...Option) (*Explorer, error) {
	if m.Frame != w.Frame {
		return nil, fmt.Errorf("%w: %+v vs %+v", ErrFrameMismatch, m.Frame, w.Frame)
	}
	o := DefaultExplorerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	g, err := occgrid.New(w.Frame.Width, w.Frame.Height)
	if err != nil {
		return nil, err
	}
	return &Explorer{
		World:    w,
		Ranger:   &Ranger{World: w, Model: m.Model},
		Mapper:   m,
		Map:      g,
		Pose:     start,
		opts:     o,
		searcher: frontier.NewSearcher(),
	}, nil
}

// Step senses from the current pose, integrates the sweep, and searches for
// the nearest unknown cell. When one is found the robot moves next to it,
// facing it, ready for the next Step. done is true once the search reports
// the reachable region explored.
func (e *Explorer) Step() (done bool, err error) {
	scan := e.Ranger.Sweep(e.Pose)
	if _, err := e.Mapper.Integrate(e.Map, e.Pose, scan); err != nil {
		return false, err
	}
	e.opts.OnSweep(e.Pose, scan)
	if p := e.pending; p != nil && e.Map.IsUnknown(p.X, p.Y) {
		e.touch(*p)
	}
	e.pending = nil

	x, y := e.World.Frame.ToGrid(e.Pose.X, e.Pose.Y)
	var searchOpts []frontier.Option
	if e.opts.Logger != nil {
		searchOpts = append(searchOpts, frontier.WithLogger(e.opts.Logger))
	}
	res, err := e.searcher.Search(e.Map, x, y, searchOpts...)
	if err != nil {
		return false, fmt.Errorf("sim: step %d: %w", e.report.Steps+1, err)
	}
	e.report.Steps++

	if res.Explored() {
		e.report.Explored = true
		e.log(res, "explored")
		return true, nil
	}
	target := res.Nearest.Point()
	e.report.Targets = append(e.report.Targets, target)
	e.pending = &target
	e.moveNextTo(target)
	e.log(res, "target")
	return false, nil
}

// Run steps until the world is explored, MaxSteps is reached or ctx is done.
func (e *Explorer) Run(ctx context.Context) (Report, error) {
	for e.report.Steps < e.opts.MaxSteps {
		if err := ctx.Err(); err != nil {
			return e.Report(), err
		}
		done, err := e.Step()
		if err != nil {
			return e.Report(), err
		}
		if done {
			break
		}
	}
	return e.Report(), nil
}

// Report returns a copy of the run summary so far.
func (e *Explorer) Report() Report {
	r := e.report
	r.Targets = append([]image.Point(nil), e.report.Targets...)
	return r
}

// touch settles an unknown cell from ground truth, as a bumper would.
func (e *Explorer) touch(p image.Point) {
	if e.World.Blocked(p.X, p.Y) {
		e.Map.MarkWall(p.X, p.Y)
	} else {
		e.Map.MarkSeen(p.X, p.Y)
	}
	e.report.Touched++
}

// moveNextTo puts the robot on the first charted free neighbour of target
// (left, right, up, down) and turns it toward target. Without such a
// neighbour the robot only turns.
func (e *Explorer) moveNextTo(target image.Point) {
	f := e.World.Frame
	for _, d := range [...]image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		c := target.Add(d)
		if e.Map.IsCharted(c.X, c.Y) && !e.World.Blocked(c.X, c.Y) {
			e.Pose.X, e.Pose.Y = f.ToWorld(c.X, c.Y)
			break
		}
	}
	tx, ty := f.ToWorld(target.X, target.Y)
	e.Pose.Theta = math.Atan2(ty-e.Pose.Y, tx-e.Pose.X)
}

func (e *Explorer) log(res frontier.Result, msg string) {
	if e.opts.Logger == nil {
		return
	}
	e.opts.Logger.WithFields(logrus.Fields{
		"component": "sim",
		"step":      e.report.Steps,
		"origin":    res.Origin,
		"target":    res.Nearest.Point(),
		"distance":  res.Nearest.Distance,
	}).Debug(msg)
}
