// Package frontier defines the span, candidate and result types, tunable
// hooks and sentinel errors of the frontier search.
package frontier

import (
	"errors"
	"image"

	"github.com/sirupsen/logrus"
)

// Sentinel errors for frontier searches.
var (
	// ErrNilGrid is returned if a nil grid is passed.
	ErrNilGrid = errors.New("frontier: grid is nil")

	// ErrStartOutOfBounds is returned when the start cell lies outside the grid.
	ErrStartOutOfBounds = errors.New("frontier: start cell outside grid")

	// ErrStartBlocked is returned when the start cell is a wall.
	ErrStartBlocked = errors.New("frontier: start cell is a wall")
)

// Span is a maximal horizontal run of traversable cells in row Y, from
// StartX to EndX inclusive. LeftUnknown / RightUnknown report whether the
// scan that produced it stopped at an unknown cell rather than at a wall,
// the grid edge or an already visited cell. The unknown cells themselves
// are not part of the span: they sit at (StartX-1,Y) and (EndX+1,Y).
type Span struct {
	Y            int
	StartX, EndX int
	LeftUnknown  bool
	RightUnknown bool
}

// Degenerate reports whether the span covers a single cell. Degenerate
// spans still yield contact cells but are never expanded vertically.
func (s Span) Degenerate() bool { return s.StartX == s.EndX }

// Len returns the number of cells in the span.
func (s Span) Len() int { return s.EndX - s.StartX + 1 }

// LeftContact returns the unknown cell that stopped the left scan.
// ok is false when the scan stopped for another reason.
func (s Span) LeftContact() (p image.Point, ok bool) {
	return image.Pt(s.StartX-1, s.Y), s.LeftUnknown
}

// RightContact returns the unknown cell that stopped the right scan.
func (s Span) RightContact() (p image.Point, ok bool) {
	return image.Pt(s.EndX+1, s.Y), s.RightUnknown
}

// Candidate is an unknown cell together with its Manhattan distance from
// the search origin.
type Candidate struct {
	X, Y     int
	Distance int
}

// Point returns the candidate cell as an image.Point.
func (c Candidate) Point() image.Point { return image.Pt(c.X, c.Y) }

// Stats counts the work done by one search run.
type Stats struct {
	// Spans is the number of scanlines built, degenerate ones included.
	Spans int
	// Enqueued is the number of spans pushed for vertical expansion.
	Enqueued int
	// Visited is the number of cells marked in the visited overlay.
	Visited int
	// Contacts is the number of unknown cells offered to the tracker.
	Contacts int
}

// Result is the outcome of a frontier search.
//
//   - Found:   an unknown cell is reachable from Origin.
//   - Nearest: the reachable unknown cell closest to Origin (valid if Found).
//   - Origin:  the start cell.
//   - Stats:   work counters.
type Result struct {
	Found   bool
	Nearest Candidate
	Origin  image.Point
	Stats   Stats
}

// Explored reports whether the reachable region holds no unknown cell.
func (r Result) Explored() bool { return !r.Found }

// Option configures a search via functional arguments.
type Option func(*SearchOptions)

// SearchOptions holds observers invoked at well-defined points of a run.
// Observers never change the outcome of a search.
type SearchOptions struct {
	// OnScan is called for every span built, degenerate ones included.
	OnScan func(s Span)

	// OnSpan is called when a span is enqueued for vertical expansion.
	OnSpan func(s Span)

	// OnContact is called for every unknown cell offered to the tracker,
	// whether or not it improves the best candidate.
	OnContact func(x, y int)

	// OnCandidate is called whenever the best candidate improves.
	OnCandidate func(c Candidate)

	// Logger, if set, receives debug-level traces of candidate updates and
	// a summary when the run ends.
	Logger logrus.FieldLogger
}

// DefaultOptions returns SearchOptions with no-op observers and no logger.
func DefaultOptions() SearchOptions {
	return SearchOptions{
		OnScan:      func(Span) {},
		OnSpan:      func(Span) {},
		OnContact:   func(int, int) {},
		OnCandidate: func(Candidate) {},
	}
}

// WithOnScan registers a callback to run for every span built.
func WithOnScan(fn func(s Span)) Option {
	return func(o *SearchOptions) {
		if fn != nil {
			o.OnScan = fn
		}
	}
}

// WithOnSpan registers a callback to run when a span is enqueued.
func WithOnSpan(fn func(s Span)) Option {
	return func(o *SearchOptions) {
		if fn != nil {
			o.OnSpan = fn
		}
	}
}

// WithOnContact registers a callback to run for every unknown contact cell.
func WithOnContact(fn func(x, y int)) Option {
	return func(o *SearchOptions) {
		if fn != nil {
			o.OnContact = fn
		}
	}
}

// WithOnCandidate registers a callback to run when a closer unknown cell is found.
func WithOnCandidate(fn func(c Candidate)) Option {
	return func(o *SearchOptions) {
		if fn != nil {
			o.OnCandidate = fn
		}
	}
}

// WithLogger sets a logger for debug traces.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *SearchOptions) {
		if l != nil {
			o.Logger = l
		}
	}
}
