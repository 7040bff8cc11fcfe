// Package frontier locates the unknown cell nearest to a robot that is still
// reachable through charted free space of an occupancy grid.
package frontier

import (
	"fmt"
	"image"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/frontier/occgrid"
)

// Searcher keeps overlay and queue storage between runs so repeated
// searches on grids of the same size do not reallocate. The overlay is
// cleared at the start of every run; nothing carries over.
//
// The zero value is ready to use. A Searcher is not safe for concurrent
// use. Give each goroutine its own, or call the package-level Search which
// allocates a fresh one.
type Searcher struct {
	ov    overlay
	queue *deque.Deque[Span]
}

// NewSearcher returns an empty Searcher.
func NewSearcher() *Searcher {
	return &Searcher{queue: deque.New[Span]()}
}

// Search runs a frontier search on grid from cell (x,y) with a fresh Searcher.
func Search(grid occgrid.Querier, x, y int, opts ...Option) (Result, error) {
	return NewSearcher().Search(grid, x, y, opts...)
}

// walker encapsulates the mutable state of one run.
type walker struct {
	grid   occgrid.Querier
	ov     *overlay
	queue  *deque.Deque[Span]
	best   tracker
	origin image.Point
	opts   SearchOptions
	stats  Stats
}

// Search flood-fills the charted region around (x,y) one scanline at a time
// and returns the nearest unknown cell touching it.
//
// Returns ErrNilGrid, ErrStartOutOfBounds or ErrStartBlocked for invalid
// input. A run always completes; its cost is bounded by the grid area.
func (s *Searcher) Search(grid occgrid.Querier, x, y int, opts ...Option) (Result, error) {
	if grid == nil {
		return Result{}, ErrNilGrid
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w, h := grid.Width(), grid.Height()
	if x < 0 || x >= w || y < 0 || y >= h {
		return Result{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrStartOutOfBounds, x, y, w, h)
	}
	if grid.IsWall(x, y) {
		return Result{}, fmt.Errorf("%w: (%d,%d)", ErrStartBlocked, x, y)
	}

	s.ov.reset(grid)
	if s.queue == nil {
		s.queue = deque.New[Span]()
	}
	s.queue.Clear()
	wk := &walker{
		grid:   grid,
		ov:     &s.ov,
		queue:  s.queue,
		origin: image.Pt(x, y),
		opts:   o,
	}
	wk.loop()

	res := Result{
		Found:   wk.best.found,
		Nearest: wk.best.best,
		Origin:  wk.origin,
		Stats:   wk.stats,
	}
	res.Stats.Visited = s.ov.marked
	if o.Logger != nil {
		o.Logger.WithFields(logrus.Fields{
			"origin":   res.Origin,
			"found":    res.Found,
			"nearest":  res.Nearest.Point(),
			"distance": res.Nearest.Distance,
			"spans":    res.Stats.Spans,
			"visited":  res.Stats.Visited,
		}).Debug("frontier search done")
	}
	return res, nil
}

// loop seeds the queue from the origin and expands spans until none remain.
func (w *walker) loop() {
	w.probe(w.origin.X, w.origin.Y)
	for w.queue.Len() > 0 {
		s := w.queue.PopFront()
		w.expandRow(s, s.Y-1)
		w.expandRow(s, s.Y+1)
	}
}

// expandRow probes every visitable cell of row directly above or below s.
func (w *walker) expandRow(s Span, row int) {
	for x := s.StartX; x <= s.EndX; x++ {
		if w.ov.shouldVisit(x, row) {
			w.probe(x, row)
		}
	}
}

// probe handles one visitable cell: an unknown cell is a contact in its own
// right; a charted one seeds a new scanline.
func (w *walker) probe(x, y int) {
	if !w.grid.IsCharted(x, y) {
		w.ov.markVisited(x, y)
		w.offer(x, y)
		return
	}

	s := w.ov.buildScanLine(x, y)
	w.stats.Spans++
	w.opts.OnScan(s)
	if p, ok := s.LeftContact(); ok {
		w.offer(p.X, p.Y)
	}
	if p, ok := s.RightContact(); ok {
		w.offer(p.X, p.Y)
	}
	if s.Degenerate() {
		return
	}
	w.queue.PushBack(s)
	w.stats.Enqueued++
	w.opts.OnSpan(s)
}

// offer feeds an unknown cell to the tracker and notifies observers.
func (w *walker) offer(x, y int) {
	w.stats.Contacts++
	w.opts.OnContact(x, y)
	if !w.best.consider(w.origin.X, w.origin.Y, x, y) {
		return
	}
	w.opts.OnCandidate(w.best.best)
	if w.opts.Logger != nil {
		w.opts.Logger.WithFields(logrus.Fields{
			"x":        x,
			"y":        y,
			"distance": w.best.best.Distance,
		}).Debug("closer unknown cell")
	}
}
