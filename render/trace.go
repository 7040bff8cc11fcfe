package render

import (
	"image"

	"github.com/katalvlaran/frontier/frontier"
)

// Trace records what a frontier search touched so it can be drawn over the map.
//
// Use Options to hook a Trace into a search, then Record with the result:
//
//	tr := render.NewTrace()
//	res, err := frontier.Search(g, x, y, tr.Options()...)
//	tr.Record(res)
type Trace struct {
	// Spans holds every span the search built, including single-cell spans
	// that were never expanded.
	Spans    []frontier.Span
	Contacts []image.Point

	Origin image.Point
	// Target is the nearest unknown cell; valid when Found.
	Target image.Point
	Found  bool
}

// NewTrace returns an empty trace.
func NewTrace() *Trace { return &Trace{} }

// Options returns the search observers that fill the trace.
func (t *Trace) Options() []frontier.Option {
	return []frontier.Option{
		frontier.WithOnScan(func(s frontier.Span) {
			t.Spans = append(t.Spans, s)
		}),
		frontier.WithOnContact(func(x, y int) {
			t.Contacts = append(t.Contacts, image.Pt(x, y))
		}),
	}
}

// Record stores the origin and outcome of the traced search.
func (t *Trace) Record(res frontier.Result) {
	t.Origin = res.Origin
	t.Found = res.Found
	t.Target = res.Nearest.Point()
}

// Reset empties the trace, keeping its buffers.
func (t *Trace) Reset() {
	t.Spans = t.Spans[:0]
	t.Contacts = t.Contacts[:0]
	t.Origin, t.Target, t.Found = image.Point{}, image.Point{}, false
}
