package frontier

// buildScanLine grows a span left and right from a charted seed cell.
//
// The seed is marked visited and always belongs to the span. Each scan
// stops at the first cell that fails shouldVisit (wall, edge, visited). An
// unknown cell also stops the scan: it is marked visited and flagged on
// that side, but stays outside [StartX,EndX].
func (o *overlay) buildScanLine(seedX, seedY int) Span {
	o.markVisited(seedX, seedY)
	s := Span{Y: seedY, StartX: seedX, EndX: seedX}

	for x := seedX - 1; o.shouldVisit(x, seedY); x-- {
		charted := o.grid.IsCharted(x, seedY)
		o.markVisited(x, seedY)
		if !charted {
			s.LeftUnknown = true
			break
		}
		s.StartX = x
	}

	for x := seedX + 1; o.shouldVisit(x, seedY); x++ {
		charted := o.grid.IsCharted(x, seedY)
		o.markVisited(x, seedY)
		if !charted {
			s.RightUnknown = true
			break
		}
		s.EndX = x
	}

	return s
}
