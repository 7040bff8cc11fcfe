package frontier

import (
	"image"
)

// Manhattan returns |dx| + |dy| between a and b.
func Manhattan(a, b image.Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// tracker keeps the closest unknown cell seen so far.
type tracker struct {
	best  Candidate
	found bool
}

// consider offers (x,y) measured from (refX,refY). The candidate replaces
// the current best only when strictly closer, so the first of two
// equidistant cells wins. Reports whether the best changed.
func (t *tracker) consider(refX, refY, x, y int) bool {
	d := Manhattan(image.Pt(refX, refY), image.Pt(x, y))
	if t.found && d >= t.best.Distance {
		return false
	}
	t.best = Candidate{X: x, Y: y, Distance: d}
	t.found = true
	return true
}
